package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/crewhub/accounts-system/internal/api/metrics"
	"github.com/crewhub/accounts-system/internal/api/middleware"
	"github.com/crewhub/accounts-system/internal/core/domain"
	"github.com/crewhub/accounts-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	// secure marks the service itself as TLS-terminating; proxied TLS is
	// detected per request from X-Forwarded-Proto.
	secure bool
}

func NewAuthHandler(authService ports.AuthService, secure bool) *AuthHandler {
	return &AuthHandler{authService: authService, secure: secure}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
	Cookies  bool   `json:"cookies"`
}

type loginResponse struct {
	Token          string         `json:"token,omitempty"`
	ExpirationTime int64          `json:"expirationTime"`
	Account        domain.Profile `json:"account"`
}

type logoutResponse struct {
	Success bool `json:"success"`
}

// Login authenticates a user and establishes a session.
//
// The signed token travels exactly one way: when the client asks for cookie
// delivery the response body omits it and a httpOnly cookie is set; otherwise
// the body carries it and no cookie is touched.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials and delivery preferences"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// A login request may itself carry a session (continuing or switching
	// accounts on the same device). Resolution is lenient: a missing or bad
	// token simply means no existing session.
	existing := h.resolveSession(c)

	res, err := h.authService.Login(c.Request().Context(), existing, ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Remember: req.Remember,
		Cookies:  req.Cookies,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResultLabel(err)).Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	if existing != nil && existing.Session.ID == res.Session.Session.ID {
		metrics.SessionRotationsTotal.WithLabelValues("rotated").Inc()
	} else {
		metrics.SessionRotationsTotal.WithLabelValues("created").Inc()
	}

	resp := loginResponse{
		ExpirationTime: res.ExpiresAt.UnixMilli(),
		Account:        domain.NewProfile(&res.Session.User),
	}

	if req.Cookies {
		h.setSessionCookie(c, res.SignedToken, res.ExpiresAt)
	} else {
		resp.Token = res.SignedToken
		// The device may still hold a cookie from an evicted session.
		if existing != nil && existing.User.ID != res.Session.User.ID {
			h.clearSessionCookie(c)
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// Logout deletes the current session, if any, and clears the session cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  logoutResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	// No-op when no session resolves: logging out twice is not an error.
	if sw := h.resolveSession(c); sw != nil {
		if err := h.authService.Logout(c.Request().Context(), &sw.Session); err != nil {
			return err
		}
	}

	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, logoutResponse{Success: true})
}

// Profile returns the account of the authenticated user.
//
// @Summary      Current account profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  map[string]string
// @Router       /auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	sw, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, domain.NewProfile(&sw.User))
}

// resolveSession attempts to resolve the request's token to a session without
// failing the request.
func (h *AuthHandler) resolveSession(c echo.Context) *domain.SessionWithUser {
	token, ok := middleware.ExtractToken(c)
	if !ok {
		return nil
	}
	sw, err := h.authService.Authenticate(c.Request().Context(), token)
	if err != nil {
		return nil
	}
	return sw
}

// requestSecure reports whether the client connection is TLS, directly or via
// a TLS-terminating proxy.
func (h *AuthHandler) requestSecure(c echo.Context) bool {
	return h.secure || c.Request().TLS != nil || c.Request().Header.Get("X-Forwarded-Proto") == "https"
}

func (h *AuthHandler) setSessionCookie(c echo.Context, signedToken string, expiresAt time.Time) {
	secure := h.requestSecure(c)
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    signedToken,
		Path:     "/",
		MaxAge:   int(time.Until(expiresAt) / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite(secure),
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	secure := h.requestSecure(c)
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite(secure),
	})
}

func loginResultLabel(err error) string {
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return "invalid_credentials"
	}
	return "error"
}

// sameSite follows cross-site cookie rules: None requires Secure, so plain
// HTTP falls back to Lax.
func sameSite(secure bool) http.SameSite {
	if secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}
