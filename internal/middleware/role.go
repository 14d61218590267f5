package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/camdenmotors/dealerweb/internal/view"
)

// RequireLogin returns middleware that rejects anonymous requests before
// any controller logic runs. The visitor is flashed a notice and
// redirected to the login form, matching the behavior of every
// session-gated page.
func RequireLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := IdentityFrom(c); !ok {
				view.SetNotice(c, "Please log in.")
				return c.Redirect(http.StatusSeeOther, "/account/login")
			}
			return next(c)
		}
	}
}

// RequirePrivileged returns middleware that admits only Employee and Admin
// identities. Anonymous visitors are sent to the login form; logged-in
// clients get a 403 rendered by the centralized error handler. Either way
// the rejection happens before any mutating side effect.
func RequirePrivileged() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := IdentityFrom(c)
			if !ok {
				view.SetNotice(c, "Please log in.")
				return c.Redirect(http.StatusSeeOther, "/account/login")
			}
			if !ident.Privileged() {
				return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to access that page.")
			}
			return next(c)
		}
	}
}
