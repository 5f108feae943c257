package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	userIDKey  contextKey = "session_user_id"
	roleKey    contextKey = "session_role"
	tokenKey   contextKey = "session_token"
	CookieName            = "hms_session"
)

// publicPaths lists URL paths that bypass session authentication: the login
// and registration endpoints plus the health check.
var publicPaths = map[string]bool{
	"/health":       true,
	"/api/login":    true,
	"/api/register": true,
}

// Skipper returns true for requests whose path should skip authentication.
func Skipper(c echo.Context) bool {
	return publicPaths[c.Path()]
}

// Middleware resolves the session cookie against the store and places the
// user id and role on the request context. Requests without a live session
// get 401 unless the path is public.
func Middleware(store Store, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Skipper(c) {
				return next(c)
			}

			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			s, err := store.Get(c.Request().Context(), cookie.Value)
			if errors.Is(err, ErrNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired or invalid")
			}
			if err != nil {
				return err
			}

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, userIDKey, s.UserID)
			ctx = context.WithValue(ctx, roleKey, s.Role)
			ctx = context.WithValue(ctx, tokenKey, s.Token)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// UserIDFromContext returns the authenticated user's id, if any.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// RoleFromContext returns the authenticated user's role, if any.
func RoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	return role, ok
}

// TokenFromContext returns the session token carried by the request, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok
}
