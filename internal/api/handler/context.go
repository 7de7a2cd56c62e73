package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/crewhub/accounts-system/internal/api/middleware"
	"github.com/crewhub/accounts-system/internal/core/domain"
)

// ctxSession extracts the session+user pair injected by the Auth middleware.
// The typed context value is the only channel between the authenticator and
// handlers; nothing is smuggled through untyped request state.
func ctxSession(c echo.Context) (*domain.SessionWithUser, error) {
	sw, ok := c.Get(middleware.SessionContextKey).(*domain.SessionWithUser)
	if !ok || sw == nil {
		return nil, domain.ErrUnauthenticated
	}
	return sw, nil
}
