package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/crewhub/accounts-system/internal/core/domain"
	"github.com/crewhub/accounts-system/internal/core/ports"
)

const (
	defaultSessionTTL  = 24 * time.Hour
	extendedSessionTTL = 365 * 24 * time.Hour

	// Token candidates are uuid4 (122 bits of entropy); more than a handful
	// of collisions in a row means the random source is broken, not bad luck.
	maxTokenAttempts = 10
)

type authService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	codec    ports.TokenCodec
	touch    ports.TouchThrottle
	salt     string
	ttl      time.Duration
	extended time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

// NewAuthService returns the session manager. touch may be nil, in which case
// every authenticated request writes last-seen directly.
func NewAuthService(
	users ports.UserRepository,
	sessions ports.SessionRepository,
	codec ports.TokenCodec,
	touch ports.TouchThrottle,
	salt string,
	ttl, extended time.Duration,
	log zerolog.Logger,
) ports.AuthService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	if extended <= 0 {
		extended = extendedSessionTTL
	}
	return &authService{
		users:    users,
		sessions: sessions,
		codec:    codec,
		touch:    touch,
		salt:     salt,
		ttl:      ttl,
		extended: extended,
		log:      log,
		now:      time.Now,
	}
}

// Login verifies credentials, evicts a stale cross-user session, and
// obtains-or-rotates a session for the authenticated user.
func (s *authService) Login(ctx context.Context, existing *domain.SessionWithUser, in ports.LoginInput) (*ports.LoginResult, error) {
	// 1. Credential check: a single lookup by (email, salted hash). Unknown
	// email and wrong password are indistinguishable on purpose.
	user, err := s.users.FindByEmailAndHash(ctx, in.Email, HashPassword(in.Password, s.salt))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	// 2. A device must never silently carry over another account's session.
	if existing != nil && existing.User.ID != user.ID {
		if err := s.Logout(ctx, &existing.Session); err != nil {
			return nil, fmt.Errorf("login: evict stale session: %w", err)
		}
		existing = nil
	}

	// 3. Expiration window.
	ttl := s.ttl
	if in.Remember {
		ttl = s.extended
	}
	expiresAt := s.now().Add(ttl)

	// 4. Obtain-or-rotate the session.
	sw, err := s.obtainSession(ctx, existing, user.ID, expiresAt, in.Cookies)
	if err != nil {
		return nil, err
	}

	// 5. Wrap the session token for the client.
	signed, err := s.codec.Sign(sw.Session.Token)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().
		Str("user_id", user.ID).
		Bool("remember", in.Remember).
		Bool("cookies", in.Cookies).
		Msg("user logged in")

	return &ports.LoginResult{Session: sw, SignedToken: signed, ExpiresAt: expiresAt}, nil
}

// Logout deletes the session record. Deleting an already-gone session is not
// an error.
func (s *authService) Logout(ctx context.Context, session *domain.Session) error {
	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Authenticate resolves a signed token to its session and owning user,
// touching last-seen on the way through.
func (s *authService) Authenticate(ctx context.Context, signedToken string) (*domain.SessionWithUser, error) {
	token, err := s.codec.Verify(signedToken)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	sw, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	// The reaper removes expired rows eventually; checking here closes the
	// window between nominal expiration and the next sweep.
	if sw.Session.Expired(s.now()) {
		return nil, domain.ErrUnauthenticated
	}

	s.touchLastSeen(ctx, &sw.Session)

	return sw, nil
}

// CleanExpiredSessions deletes every session past its expiration.
func (s *authService) CleanExpiredSessions(ctx context.Context) (int64, error) {
	count, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("clean expired sessions: %w", err)
	}
	return count, nil
}

// obtainSession rotates the existing session in place when one is supplied,
// preserving its identity and last-seen bookkeeping; otherwise it inserts a
// fresh row for the user.
func (s *authService) obtainSession(ctx context.Context, existing *domain.SessionWithUser, userID string, expiresAt time.Time, cookies bool) (*domain.SessionWithUser, error) {
	token, err := s.uniqueToken(ctx)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		sw, err := s.sessions.Rotate(ctx, existing.Session.ID, token, expiresAt, cookies)
		if err != nil {
			return nil, fmt.Errorf("rotate session: %w", err)
		}
		return sw, nil
	}

	now := s.now()
	sw, err := s.sessions.Insert(ctx, &domain.Session{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		Cookies:   cookies,
		LastSeen:  now,
		CreatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sw, nil
}

// uniqueToken generates a candidate token and retries until no session holds
// it. Exhausting the attempt budget signals a broken random source and is
// surfaced as a fatal fault rather than retried forever.
func (s *authService) uniqueToken(ctx context.Context) (string, error) {
	for i := 0; i < maxTokenAttempts; i++ {
		candidate := uuid.NewString()

		_, err := s.sessions.FindByToken(ctx, candidate)
		if errors.Is(err, domain.ErrSessionNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("token uniqueness check: %w", err)
		}

		s.log.Warn().Int("attempt", i+1).Msg("session token collision, regenerating")
	}
	return "", domain.ErrTokenGeneration
}

// touchLastSeen is best-effort: a failed write never blocks the request.
func (s *authService) touchLastSeen(ctx context.Context, session *domain.Session) {
	if s.touch != nil && !s.touch.Allow(ctx, session.ID) {
		return
	}
	if err := s.sessions.TouchLastSeen(ctx, session.ID, s.now()); err != nil {
		s.log.Warn().Err(err).Str("session_id", session.ID).Msg("failed to update last seen")
	}
}
