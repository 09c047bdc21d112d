package middleware

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/plantnet/plantnet-api/internal/api/handler"
	"github.com/plantnet/plantnet-api/internal/core/domain"
)

// SessionVerifier verifies a session token.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Session, error)
}

// Auth reads the session cookie, verifies it and injects the identity into
// the context.
func Auth(sessions SessionVerifier, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return fmt.Errorf("%w: missing session cookie", domain.ErrUnauthenticated)
			}

			session, err := sessions.Verify(c.Request().Context(), cookie.Value)
			if err != nil {
				return err
			}

			c.Set(handler.CtxEmail, session.Email)
			c.Set(handler.CtxSession, session)

			return next(c)
		}
	}
}
