package ports

import (
	"context"

	"github.com/crewhub/accounts-system/internal/core/domain"
)

// UserRepository defines the user-record store the auth subsystem consumes.
type UserRepository interface {
	// FindByEmailAndHash returns the user whose email and stored password
	// hash both match exactly, or domain.ErrUserNotFound.
	FindByEmailAndHash(ctx context.Context, email, hash string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
