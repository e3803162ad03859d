package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ValiCoder/courseboard/internal/api/middleware"
	"github.com/ValiCoder/courseboard/internal/core/domain"
)

// ctxIdentity extracts the identity attached by the session middleware and
// fast-fails before any service call when the guard was bypassed or
// misordered: a protected handler must never run without an identity.
func ctxIdentity(c echo.Context) (*domain.User, error) {
	user := middleware.Identity(c)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authenticated identity")
	}
	return user, nil
}

// wantsJSON reports whether the caller is a machine client rather than a
// browser form post, judged by the request content type and Accept header.
func wantsJSON(c echo.Context) bool {
	if strings.Contains(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return true
	}
	return strings.Contains(c.Request().Header.Get("Accept"), echo.MIMEApplicationJSON)
}
