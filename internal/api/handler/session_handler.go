package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/plantnet/plantnet-api/internal/core/ports"
)

// CookieConfig controls how the session cookie is written.
type CookieConfig struct {
	Name string
	// Production switches the cookie to Secure with SameSite=None so the
	// storefront can call the API cross-site.
	Production bool
}

// SessionHandler issues and clears the session cookie.
type SessionHandler struct {
	sessions ports.SessionService
	cookie   CookieConfig
	log      zerolog.Logger
}

func NewSessionHandler(sessions ports.SessionService, cookie CookieConfig, log zerolog.Logger) *SessionHandler {
	if cookie.Name == "" {
		cookie.Name = "token"
	}
	return &SessionHandler{sessions: sessions, cookie: cookie, log: log}
}

// Issue handles POST /jwt.
//
// @Summary      Start a session
// @Description  Signs a session token for the email and sets it as an http-only cookie.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body      issueTokenRequest  true  "Email"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /jwt [post]
func (h *SessionHandler) Issue(c echo.Context) error {
	var req issueTokenRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, _, err := h.sessions.Issue(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}

	cookie := h.newCookie(token)
	cookie.MaxAge = int(h.sessions.TTL() / time.Second)
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Logout handles GET /logout.
//
// @Summary      End the session
// @Description  Revokes the presented session token, if any, and clears the cookie.
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  successResponse
// @Router       /logout [get]
func (h *SessionHandler) Logout(c echo.Context) error {
	if existing, err := c.Cookie(h.cookie.Name); err == nil && existing.Value != "" {
		if err := h.sessions.Revoke(c.Request().Context(), existing.Value); err != nil {
			h.log.Warn().Err(err).Msg("session revoke failed, clearing cookie anyway")
		}
	}

	cookie := h.newCookie("")
	cookie.MaxAge = -1
	cookie.Expires = time.Unix(0, 0)
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func (h *SessionHandler) newCookie(value string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	if h.cookie.Production {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}
