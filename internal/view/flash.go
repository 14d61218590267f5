package view

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// noticeCookie carries a single flash message across one redirect. The
// value is base64-encoded because cookie values may not contain spaces.
const noticeCookie = "notice"

// SetNotice stores a one-shot flash message shown on the next rendered
// page.
func SetNotice(c echo.Context, msg string) {
	c.SetCookie(&http.Cookie{
		Name:     noticeCookie,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(msg)),
		Path:     "/",
		HttpOnly: true,
	})
}

// PopNotice returns the pending flash message, clearing the cookie so the
// message renders exactly once. An absent or undecodable cookie yields "".
func PopNotice(c echo.Context) string {
	ck, err := c.Cookie(noticeCookie)
	if err != nil || ck.Value == "" {
		return ""
	}
	c.SetCookie(&http.Cookie{
		Name:     noticeCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
	b, err := base64.RawURLEncoding.DecodeString(ck.Value)
	if err != nil {
		return ""
	}
	return string(b)
}
