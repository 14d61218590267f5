package middleware // middleware provides shared request processing for handlers

// identity.go decodes the signed identity cookie on every request. A
// missing, malformed or expired cookie simply leaves the request
// anonymous; rejection is the job of the RequireLogin and
// RequirePrivileged gates.

import (
	"github.com/labstack/echo/v4"

	"github.com/camdenmotors/dealerweb/internal/utils"
)

// LoadIdentity returns middleware that reads the identity cookie, decodes
// it with the given secret and stores the resulting Identity in the
// request context. It never short-circuits: anonymous requests continue
// down the chain without an identity value.
func LoadIdentity(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(utils.IdentityCookie)
			if err != nil || ck.Value == "" {
				return next(c)
			}
			ident, err := utils.DecodeToken(ck.Value, secret)
			if err != nil {
				// Invalid signature or elapsed expiry: treat as anonymous.
				return next(c)
			}
			c.Set(utils.IdentityContextKey, ident)
			return next(c)
		}
	}
}

// IdentityFrom extracts the decoded request identity from context. The
// second return value is false for anonymous requests.
func IdentityFrom(c echo.Context) (utils.Identity, bool) {
	ident, ok := c.Get(utils.IdentityContextKey).(utils.Identity)
	return ident, ok
}
