package handler

import (
	"fmt"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/plantnet/plantnet-api/internal/core/domain"
)

// Context keys set by the Auth middleware.
const (
	CtxEmail   = "email"
	CtxSession = "session"
)

// ctxEmail returns the identity injected by the Auth middleware. An empty
// email means the middleware did not run, which is reported as 401.
func ctxEmail(c echo.Context) (string, error) {
	email, _ := c.Get(CtxEmail).(string)
	if email == "" {
		return "", domain.ErrUnauthenticated
	}
	return email, nil
}

// emailParam returns the :email path parameter decoded. Echo leaves params
// escaped when the request path carried escapes, as with an encoded "@".
func emailParam(c echo.Context) (string, error) {
	email, err := url.PathUnescape(c.Param("email"))
	if err != nil {
		return "", fmt.Errorf("%w: malformed email in path", domain.ErrInvalidRequest)
	}
	return email, nil
}
