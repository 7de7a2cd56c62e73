package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/crewhub/accounts-system/internal/api/metrics"
	"github.com/crewhub/accounts-system/internal/core/domain"
	"github.com/crewhub/accounts-system/internal/core/ports"
)

// CookieName is the cookie carrying the signed token for browser clients.
const CookieName = "jwt"

// SessionContextKey is the echo context key under which the resolved
// *domain.SessionWithUser is stored.
const SessionContextKey = "auth.session"

// ExtractToken pulls the signed token from the request, preferring the
// Authorization bearer header and falling back to the session cookie.
func ExtractToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") && parts[1] != "" {
			return parts[1], true
		}
	}

	if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	return "", false
}

// Auth resolves the request's signed token to a session and user and injects
// the pair into the context. Requests without a resolvable identity are
// rejected with a single undifferentiated 401.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := ExtractToken(c)
			if !ok {
				metrics.AuthRequestsTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrUnauthenticated
			}

			sw, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				metrics.AuthRequestsTotal.WithLabelValues("rejected").Inc()
				return err
			}

			metrics.AuthRequestsTotal.WithLabelValues("ok").Inc()
			c.Set(SessionContextKey, sw)

			return next(c)
		}
	}
}
