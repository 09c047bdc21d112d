package middleware

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/plantnet/plantnet-api/internal/api/handler"
	"github.com/plantnet/plantnet-api/internal/core/domain"
	"github.com/plantnet/plantnet-api/internal/core/ports"
)

// RequireRole lets the request through only when the stored role of the
// authenticated user is one of allowed. It must run after Auth. The role is
// read from the store on every request.
func RequireRole(users ports.UserReader, allowed ...domain.Role) echo.MiddlewareFunc {
	set := make(map[domain.Role]struct{}, len(allowed))
	for _, r := range allowed {
		set[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, _ := c.Get(handler.CtxEmail).(string)
			if email == "" {
				return domain.ErrUnauthenticated
			}

			user, err := users.FindByEmail(c.Request().Context(), email)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return fmt.Errorf("%w: unknown user", domain.ErrForbidden)
				}
				return fmt.Errorf("role check: %w", err)
			}
			if _, ok := set[user.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
