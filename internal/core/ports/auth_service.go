package ports

import (
	"context"
	"time"

	"github.com/crewhub/accounts-system/internal/core/domain"
)

// LoginInput carries a login attempt's credentials and delivery preferences.
type LoginInput struct {
	Email    string
	Password string
	Remember bool
	Cookies  bool
}

// LoginResult is the outcome of a successful login: the session (with owning
// user), the signed token handed to the client, and the expiration instant.
type LoginResult struct {
	Session     *domain.SessionWithUser
	SignedToken string
	ExpiresAt   time.Time
}

// AuthService orchestrates login, logout, per-request authentication and
// expired-session cleanup.
type AuthService interface {
	// Login verifies credentials and obtains-or-rotates a session. When
	// existing is non-nil and belongs to a different user it is deleted
	// before the new session is established.
	Login(ctx context.Context, existing *domain.SessionWithUser, in LoginInput) (*LoginResult, error)

	// Logout deletes the session. Idempotent.
	Logout(ctx context.Context, session *domain.Session) error

	// Authenticate resolves a signed token back to its session and user.
	// Every failure collapses to domain.ErrUnauthenticated.
	Authenticate(ctx context.Context, signedToken string) (*domain.SessionWithUser, error)

	// CleanExpiredSessions deletes all sessions past expiration and returns
	// the number removed.
	CleanExpiredSessions(ctx context.Context) (int64, error)
}
