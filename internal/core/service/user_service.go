package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/crewhub/accounts-system/internal/core/domain"
	"github.com/crewhub/accounts-system/internal/core/ports"
)

type userService struct {
	users ports.UserRepository
	salt  string
	log   zerolog.Logger
	now   func() time.Time
}

// NewUserService returns the account-provisioning service.
func NewUserService(users ports.UserRepository, salt string, log zerolog.Logger) ports.UserService {
	return &userService{users: users, salt: salt, log: log, now: time.Now}
}

// Create provisions a new account with a salted password hash. Role defaults
// to "user" when empty.
func (s *userService) Create(ctx context.Context, in ports.CreateUserInput) (domain.Profile, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return domain.Profile{}, fmt.Errorf("%w: %q", domain.ErrInvalidRole, in.Role)
	}

	user := &domain.User{
		Email:     in.Email,
		Hash:      HashPassword(in.Password, s.salt),
		Role:      role,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Position:  in.Position,
		IsActive:  true,
		CreatedAt: s.now(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user created")

	return domain.NewProfile(created), nil
}
