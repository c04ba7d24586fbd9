package domain

// UserProfile is the authenticated user extracted from a Supabase JWT.
type UserProfile struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	Name          string `json:"name,omitempty"`
	Picture       string `json:"picture,omitempty"`
	EmailVerified bool   `json:"email_verified"`
	Role          string `json:"role,omitempty"`
}
