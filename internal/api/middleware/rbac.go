package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/crewhub/accounts-system/internal/core/domain"
)

// RBAC enforces role-based access control over the identity resolved by Auth.
// It must run after Auth in the chain.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sw, ok := c.Get(SessionContextKey).(*domain.SessionWithUser)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if _, ok := allowed[sw.User.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
