package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/crewhub/accounts-system/internal/core/domain"
	"github.com/crewhub/accounts-system/internal/core/ports"
)

type stubAuthService struct {
	authenticateFn func(ctx context.Context, signedToken string) (*domain.SessionWithUser, error)
}

func (s *stubAuthService) Login(context.Context, *domain.SessionWithUser, ports.LoginInput) (*ports.LoginResult, error) {
	panic("not used")
}

func (s *stubAuthService) Logout(context.Context, *domain.Session) error {
	panic("not used")
}

func (s *stubAuthService) Authenticate(ctx context.Context, signedToken string) (*domain.SessionWithUser, error) {
	return s.authenticateFn(ctx, signedToken)
}

func (s *stubAuthService) CleanExpiredSessions(context.Context) (int64, error) {
	panic("not used")
}

func resolved() *domain.SessionWithUser {
	return &domain.SessionWithUser{
		Session: domain.Session{ID: "s1", UserID: "u1", Token: "tok"},
		User:    domain.User{ID: "u1", Email: "a@x.com", Role: domain.RoleUser},
	}
}

func TestAuth_BearerToken(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		authenticateFn: func(_ context.Context, signedToken string) (*domain.SessionWithUser, error) {
			if signedToken != "signed-abc" {
				t.Fatalf("unexpected token: %s", signedToken)
			}
			return resolved(), nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer signed-abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(stub)(func(c echo.Context) error {
		called = true
		sw, ok := c.Get(SessionContextKey).(*domain.SessionWithUser)
		if !ok || sw.User.ID != "u1" {
			t.Fatalf("session not injected into context")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuth_CookieFallback(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		authenticateFn: func(_ context.Context, signedToken string) (*domain.SessionWithUser, error) {
			if signedToken != "signed-cookie" {
				t.Fatalf("unexpected token: %s", signedToken)
			}
			return resolved(), nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "signed-cookie"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(stub)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAuth_BearerPreferredOverCookie(t *testing.T) {
	e := echo.New()
	var got string
	stub := &stubAuthService{
		authenticateFn: func(_ context.Context, signedToken string) (*domain.SessionWithUser, error) {
			got = signedToken
			return resolved(), nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer from-header")
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "from-cookie"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(stub)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got != "from-header" {
		t.Fatalf("bearer header must win, got %s", got)
	}
}

func TestAuth_MissingToken(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		authenticateFn: func(context.Context, string) (*domain.SessionWithUser, error) {
			t.Fatalf("authenticate must not be called without a token")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(stub)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuth_RejectedToken(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		authenticateFn: func(context.Context, string) (*domain.SessionWithUser, error) {
			return nil, domain.ErrUnauthenticated
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer forged")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(stub)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuth_MalformedAuthorizationHeader(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		authenticateFn: func(context.Context, string) (*domain.SessionWithUser, error) {
			t.Fatalf("authenticate must not be called for a malformed header")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(stub)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
