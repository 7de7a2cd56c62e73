package ports

import (
	"context"

	"github.com/crewhub/accounts-system/internal/core/domain"
)

// CreateUserInput is the payload for provisioning a new account.
type CreateUserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Position  string
	Role      string
}

// UserService covers the thin account-provisioning surface the auth subsystem
// needs; the rest of profile management lives with external collaborators.
type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (domain.Profile, error)
}
