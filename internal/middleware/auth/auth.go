package auth

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/tokens"
)

const (
	ctxUserID = "userID"
	ctxRole   = "role"
)

// Guard authenticates requests from the Authorization header and
// enforces role allow-lists on protected groups.
type Guard struct {
	Issuer *tokens.Issuer
}

// RequireAuth parses the bearer access token and stores the caller's
// identity in the request context.
func (g *Guard) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			return apperr.New(apperr.Unauthorized, "missing access token")
		}

		claims, err := g.Issuer.ParseAccess(raw)
		if err != nil {
			return apperr.Wrap(apperr.Unauthorized, "invalid access token", err)
		}
		id, err := claims.UserID()
		if err != nil {
			return apperr.Wrap(apperr.Unauthorized, "invalid access token", err)
		}

		c.Set(ctxUserID, id)
		c.Set(ctxRole, claims.Role)
		return next(c)
	}
}

// RequireRoles allows the request through only when the authenticated
// role is in the allow-list. Must run after RequireAuth.
func (g *Guard) RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ctxRole).(string)
			if !ok {
				return apperr.New(apperr.Unauthorized, "missing access token")
			}
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}
			return apperr.New(apperr.Forbidden, "not enough rights")
		}
	}
}

// UserID reads the authenticated user id set by RequireAuth.
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(ctxUserID).(uint)
	return id, ok
}

// Role reads the authenticated role set by RequireAuth.
func Role(c echo.Context) (string, bool) {
	role, ok := c.Get(ctxRole).(string)
	return role, ok
}
