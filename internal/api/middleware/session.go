package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ValiCoder/courseboard/internal/core/domain"
	"github.com/ValiCoder/courseboard/internal/core/ports"
)

// SessionCookie is the name of the cookie carrying the signed session id.
const SessionCookie = "sid"

const identityKey = "identity"

// ResolveIdentity loads the user bound to the request's session cookie and
// attaches it to the context, with the credential projected out. This is
// best-effort enrichment, not a gate: a missing cookie, a tampered or expired
// session, or any store failure leaves the request anonymous. Store failures
// are logged and never surfaced as a request error.
func ResolveIdentity(sessions ports.SessionStore, users ports.UserRepository, codec *CookieCodec, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			sessionID, err := codec.Decode(cookie.Value)
			if err != nil {
				return next(c)
			}

			ctx := c.Request().Context()
			userID, err := sessions.Resolve(ctx, sessionID)
			if err != nil {
				if !errors.Is(err, domain.ErrSessionNotFound) {
					log.Warn().Err(err).Msg("session lookup failed, request stays anonymous")
				}
				return next(c)
			}

			user, err := users.FindByID(ctx, userID)
			if err != nil {
				if !errors.Is(err, domain.ErrUserNotFound) {
					log.Warn().Err(err).Str("user_id", userID).Msg("identity load failed, request stays anonymous")
				}
				return next(c)
			}

			// credential never travels with the request identity
			user.PasswordHash = ""
			c.Set(identityKey, user)
			return next(c)
		}
	}
}

// RequireAuth gates protected routes. Requests carrying an identity proceed
// unconditionally. Anonymous requests to paths under apiPrefix fail with a
// structured 401; anonymous requests to any other path are redirected to the
// login page. The path prefix is the sole browser-vs-machine policy.
func RequireAuth(apiPrefix, loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Identity(c) != nil {
				return next(c)
			}
			if strings.HasPrefix(c.Request().URL.Path, apiPrefix) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}
			return c.Redirect(http.StatusFound, loginPath)
		}
	}
}

// Identity returns the authenticated user attached to the request, or nil
// when the request is anonymous.
func Identity(c echo.Context) *domain.User {
	user, _ := c.Get(identityKey).(*domain.User)
	return user
}
