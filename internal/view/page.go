package view

import (
	"github.com/labstack/echo/v4"

	"github.com/camdenmotors/dealerweb/internal/utils"
)

// Page assembles the data bag common to every rendered view: title,
// navigation items, the pending flash notice and the request identity (nil
// for anonymous visitors). Extra page-specific fields are merged on top,
// so a page can override Title or Errors when needed.
func Page(c echo.Context, title string, nav []NavItem, extra echo.Map) echo.Map {
	data := echo.Map{
		"Title":    title,
		"Nav":      nav,
		"Notice":   PopNotice(c),
		"Identity": nil,
		"Errors":   nil,
	}
	if ident, ok := c.Get(utils.IdentityContextKey).(utils.Identity); ok {
		data["Identity"] = ident
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}
