package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"scribe-be/internal/domain"
	"scribe-be/internal/service"
	"scribe-be/pkg/errors"
	"scribe-be/pkg/logger"
)

// ContextKey represents keys used in request context
type ContextKey string

// UserContextKey is the key for the authenticated user's profile in context
const UserContextKey ContextKey = "user"

// Auth rejects requests without a valid bearer token and stores the caller's
// profile in the request context.
func Auth(authService service.AuthService, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, appErr := bearerToken(r)
			if appErr != nil {
				writeAuthError(w, appErr, log)
				return
			}

			profile, err := authService.ValidateToken(r.Context(), token)
			if err != nil {
				log.WithError(err).Debug("Token validation failed")
				writeAuthError(w, errors.NewAuthenticationError("Invalid or expired token"), log)
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth validates a bearer token when one is present but lets
// anonymous requests through untouched. A present-but-invalid token still
// fails the request.
func OptionalAuth(authService service.AuthService, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, appErr := bearerToken(r)
			if appErr != nil {
				writeAuthError(w, appErr, log)
				return
			}

			profile, err := authService.ValidateToken(r.Context(), token)
			if err != nil {
				writeAuthError(w, errors.NewAuthenticationError("Invalid or expired token"), log)
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated profile, or nil for anonymous
// requests.
func UserFromContext(ctx context.Context) *domain.UserProfile {
	profile, _ := ctx.Value(UserContextKey).(*domain.UserProfile)
	return profile
}

func bearerToken(r *http.Request) (string, *errors.AppError) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errors.NewAuthenticationError("Authorization header is required")
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return "", errors.NewAuthenticationError("Invalid authorization header format")
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return "", errors.NewAuthenticationError("Token is required")
	}
	return token, nil
}

func writeAuthError(w http.ResponseWriter, appErr *errors.AppError, log *logger.Logger) {
	log.WithError(appErr).Debug("Request rejected")

	response := &errors.ErrorResponse{}
	response.Error.Type = appErr.Type
	response.Error.Message = appErr.Message
	response.Error.Timestamp = time.Now().UTC().Format(time.RFC3339)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	_ = json.NewEncoder(w).Encode(response)
}
