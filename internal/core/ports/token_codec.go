package ports

import "context"

// TokenCodec signs and verifies the envelope handed to clients. The envelope
// wraps only the session token; expiration is never part of the signature so
// that server-side revocation takes effect immediately.
type TokenCodec interface {
	Sign(sessionToken string) (string, error)
	// Verify returns the wrapped session token, or domain.ErrUnauthenticated
	// on tampering, malformed input or a missing id claim.
	Verify(signedToken string) (string, error)
}

// TouchThrottle coalesces best-effort last-seen writes: Allow reports whether
// this session should be written to the store now, or was touched recently
// enough to skip.
type TouchThrottle interface {
	Allow(ctx context.Context, sessionID string) bool
}
