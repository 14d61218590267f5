package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/camdenmotors/dealerweb/internal/repository"
	"github.com/camdenmotors/dealerweb/internal/view"
)

// NewErrorHandler returns the centralized Echo error handler. Every error
// that escapes a handler lands here: the real cause is logged server-side
// and the visitor sees the error view with a generic message. Messages
// attached to an *echo.HTTPError are considered safe to show; anything
// else is replaced wholesale so internals never reach the page.
func NewErrorHandler(classifications *repository.ClassificationRepo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := ""
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if s, ok := he.Message.(string); ok {
				msg = s
			}
		}
		if msg == "" {
			if code == http.StatusNotFound {
				msg = "Sorry, we couldn't find that page."
			} else {
				msg = "Oh no! There was a crash. Maybe try a different route?"
			}
		}
		if code >= http.StatusInternalServerError {
			c.Logger().Error(err)
		}

		// Navigation is best effort on the error page.
		var items []view.NavItem
		if classifications != nil {
			if n, navErr := nav(c, classifications); navErr == nil {
				items = n
			}
		}

		title := http.StatusText(code)
		if renderErr := c.Render(code, "error.html", view.Page(c, title, items, echo.Map{
			"Status":  code,
			"Message": msg,
		})); renderErr != nil {
			c.Logger().Error(renderErr)
			_ = c.String(code, msg)
		}
	}
}
