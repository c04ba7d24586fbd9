package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"scribe-be/internal/domain"
	"scribe-be/internal/service"
	"scribe-be/pkg/errors"
	"scribe-be/pkg/logger"
)

// Service validates Supabase-issued JWTs. Supabase signs access tokens with
// an HMAC shared secret, so validation is local with no network round trip.
type Service struct {
	jwtSecret []byte
	logger    *logger.Logger
}

// NewService creates a new auth service
func NewService(jwtSecret string, log *logger.Logger) service.AuthService {
	return &Service{
		jwtSecret: []byte(jwtSecret),
		logger:    log,
	}
}

// ValidateToken verifies the token signature and expiry and extracts the
// caller's profile from the claims.
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*domain.UserProfile, error) {
	if len(s.jwtSecret) == 0 {
		s.logger.Error("JWT secret not configured")
		return nil, errors.NewAuthenticationError("Token validation not configured")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		s.logger.WithError(err).Debug("Token rejected")
		return nil, errors.NewAuthenticationError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.NewAuthenticationError("Invalid token claims")
	}

	profile := &domain.UserProfile{
		Sub:           stringClaim(claims, "sub"),
		Email:         stringClaim(claims, "email"),
		EmailVerified: boolClaim(claims, "email_verified"),
		Role:          stringClaim(claims, "role"),
	}

	if meta, ok := claims["user_metadata"].(map[string]interface{}); ok {
		profile.Name = stringClaim(meta, "name")
		profile.Picture = stringClaim(meta, "avatar_url")
	}

	if profile.Sub == "" {
		return nil, errors.NewAuthenticationError("Token carries no user identifier")
	}

	s.logger.WithField("user_id", profile.Sub).Debug("Token validated")
	return profile, nil
}

func stringClaim(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}

func boolClaim(m map[string]interface{}, key string) bool {
	if val, ok := m[key].(bool); ok {
		return val
	}
	return false
}
