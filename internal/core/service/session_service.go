package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/plantnet/plantnet-api/internal/core/domain"
	"github.com/plantnet/plantnet-api/internal/core/ports"
)

const defaultSessionTTL = 365 * 24 * time.Hour

// sessionClaims is the signed payload of a session token.
type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SessionService signs and verifies HS256 session tokens.
type SessionService struct {
	secret  []byte
	ttl     time.Duration
	revoked ports.RevocationStore
	log     zerolog.Logger
}

// NewSessionService returns a SessionService. revoked may be nil, in which case
// logout only clears the cookie.
func NewSessionService(secret string, ttl time.Duration, revoked ports.RevocationStore, log zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionService{secret: []byte(secret), ttl: ttl, revoked: revoked, log: log}
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a new session token for email.
func (s *SessionService) Issue(_ context.Context, email string) (string, *domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", nil, fmt.Errorf("%w: email is required", domain.ErrInvalidRequest)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", nil, fmt.Errorf("%w: invalid email", domain.ErrInvalidRequest)
	}

	now := time.Now()
	claims := sessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session: %w", err)
	}

	return signed, &domain.Session{
		Email:     email,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Verify checks the token signature, expiry and revocation. Every failure is
// reported as domain.ErrUnauthenticated.
func (s *SessionService) Verify(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%w: token carries no email", domain.ErrUnauthenticated)
	}

	if s.revoked != nil && claims.ID != "" {
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("token_id", claims.ID).Msg("revocation check failed, accepting token")
		case revoked:
			return nil, fmt.Errorf("%w: session revoked", domain.ErrUnauthenticated)
		}
	}

	return &domain.Session{
		Email:     claims.Email,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Revoke invalidates token until it would have expired anyway. Tokens that do
// not verify are ignored since they grant nothing.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	if s.revoked == nil || token == "" {
		return nil
	}

	session, err := s.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return nil
		}
		return err
	}
	if session.TokenID == "" {
		return nil
	}

	if err := s.revoked.Revoke(ctx, session.TokenID, session.TTL()); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	s.log.Info().Str("email", session.Email).Str("token_id", session.TokenID).Msg("session revoked")
	return nil
}
