package handler // handler defines http handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/camdenmotors/dealerweb/internal/repository"
	"github.com/camdenmotors/dealerweb/internal/utils"
	"github.com/camdenmotors/dealerweb/internal/view"
)

// dbTimeout bounds every database round-trip made from a handler.
const dbTimeout = 5 * time.Second

// timeNow is stubbed in tests that pin token issuance.
var timeNow = time.Now

// dbCtx derives a bounded context from the request.
func dbCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// nav builds the classification navigation items shown on every page.
func nav(c echo.Context, classifications *repository.ClassificationRepo) ([]view.NavItem, error) {
	ctx, cancel := dbCtx(c)
	defer cancel()
	list, err := classifications.List(ctx)
	if err != nil {
		return nil, err
	}
	return view.NavFrom(list), nil
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "Sorry, we couldn't find that page.")
	}
	return id, nil
}

// setIdentityCookie delivers a freshly issued identity token. HTTP-only is
// unconditional; Secure is forced on outside development; the max-age
// mirrors the token expiry.
func setIdentityCookie(c echo.Context, token string, dev bool) {
	c.SetCookie(&http.Cookie{
		Name:     utils.IdentityCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   !dev,
		MaxAge:   int(utils.TokenTTL.Seconds()),
	})
}

// clearIdentityCookie removes the identity cookie on logout. The cookie is
// cleared, not left to expire.
func clearIdentityCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     utils.IdentityCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}
