package ports

import (
	"context"
	"time"

	"github.com/crewhub/accounts-system/internal/core/domain"
)

// SessionRepository is the session store. It owns token uniqueness and
// expiration state; all lookups that resolve a session also resolve its
// owning user in the same round trip.
type SessionRepository interface {
	// FindByToken resolves a session by its opaque token together with the
	// owning user, or domain.ErrSessionNotFound.
	FindByToken(ctx context.Context, token string) (*domain.SessionWithUser, error)

	// Insert stores a new session bound to session.UserID.
	Insert(ctx context.Context, session *domain.Session) (*domain.SessionWithUser, error)

	// Rotate replaces the token, expiration and cookie flag of the session
	// identified by id, keeping its identity and owning user.
	Rotate(ctx context.Context, id, token string, expiresAt time.Time, cookies bool) (*domain.SessionWithUser, error)

	// Delete removes a session by id. Deleting a missing session is not an
	// error.
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes every session whose expiration is before now and
	// returns the number of rows removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)

	// TouchLastSeen updates the session's last-seen instant.
	TouchLastSeen(ctx context.Context, id string, at time.Time) error
}
