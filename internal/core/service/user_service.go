package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/plantnet/plantnet-api/internal/core/domain"
	"github.com/plantnet/plantnet-api/internal/core/ports"
	"github.com/plantnet/plantnet-api/internal/pkg/metrics"
)

// UserService implements registration and account administration.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// Register creates the user on first sign-in. Repeat calls for the same email
// report AlreadyExists instead of failing.
func (s *UserService) Register(ctx context.Context, in ports.RegisterUserInput) (*ports.RegisterResult, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Image) == "" {
		return nil, fmt.Errorf("%w: email, name and image are required", domain.ErrInvalidRequest)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", domain.ErrInvalidRequest)
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		metrics.UserRegistrationsTotal.WithLabelValues("existing").Inc()
		return &ports.RegisterResult{AlreadyExists: true, Email: existing.Email}, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("register: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:       email,
		Name:        strings.TrimSpace(in.Name),
		Image:       strings.TrimSpace(in.Image),
		Role:        domain.RoleCustomer,
		CreatedAt:   now,
		LastLoginAt: now,
	}

	id, err := s.repo.Create(ctx, user)
	if err != nil {
		// Lost a race with a concurrent registration; the unique index kept
		// the collection consistent.
		if errors.Is(err, domain.ErrUserExists) {
			metrics.UserRegistrationsTotal.WithLabelValues("existing").Inc()
			return &ports.RegisterResult{AlreadyExists: true, Email: email}, nil
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	metrics.UserRegistrationsTotal.WithLabelValues("created").Inc()
	s.log.Info().Str("user_id", id).Str("email", email).Msg("user registered")

	return &ports.RegisterResult{InsertedID: id, Email: email}, nil
}

func (s *UserService) ListUsers(ctx context.Context, callerEmail string) ([]*domain.User, error) {
	return s.repo.List(ctx, callerEmail)
}

func (s *UserService) GetRole(ctx context.Context, email string) (domain.Role, error) {
	if strings.TrimSpace(email) == "" {
		return "", fmt.Errorf("%w: email is required", domain.ErrInvalidRequest)
	}
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// TouchLastLogin records a sign-in. A zero at means now.
func (s *UserService) TouchLastLogin(ctx context.Context, email string, at time.Time) (bool, error) {
	if strings.TrimSpace(email) == "" {
		return false, fmt.Errorf("%w: email is required", domain.ErrInvalidRequest)
	}
	if at.IsZero() {
		at = time.Now()
	}
	return s.repo.UpdateLastLogin(ctx, email, at.UTC())
}

// UpdateRole is the admin decision on a user: the role changes and the
// seller-verification status becomes verified in the same write.
func (s *UserService) UpdateRole(ctx context.Context, id string, role domain.Role) (bool, error) {
	if !role.Valid() {
		return false, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidRequest, role)
	}
	modified, err := s.repo.UpdateRole(ctx, id, role, domain.StatusVerified)
	if err != nil {
		return false, err
	}
	s.log.Info().Str("user_id", id).Str("role", string(role)).Msg("user role updated")
	return modified, nil
}

// RequestSeller moves a customer into the seller-verification queue.
func (s *UserService) RequestSeller(ctx context.Context, email string) (bool, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if user.Role != domain.RoleCustomer || !user.Status.CanTransitionTo(domain.StatusRequested) {
		return false, fmt.Errorf("request seller: %w (role %s, status %q)",
			domain.ErrInvalidTransition, user.Role, user.Status)
	}

	modified, err := s.repo.UpdateStatus(ctx, email, domain.StatusRequested)
	if err != nil {
		return false, err
	}
	s.log.Info().Str("email", email).Msg("seller status requested")
	return modified, nil
}
