package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorPage(t *testing.T, err error) (*httptest.ResponseRecorder, string) {
	t.Helper()
	e := newTestEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewErrorHandler(nil)(err, c)
	return rec, rec.Body.String()
}

func TestErrorHandlerHidesInternals(t *testing.T) {
	rec, body := errorPage(t, assertableError("dial tcp 10.0.0.5:3306: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, body, "Oh no! There was a crash.")
	assert.NotContains(t, body, "10.0.0.5")
	assert.NotContains(t, body, "connection refused")
}

func TestErrorHandlerNotFoundMessage(t *testing.T) {
	rec, body := errorPage(t, echo.NewHTTPError(http.StatusNotFound))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, body, "find that page.")
}

func TestErrorHandlerKeepsSafeMessages(t *testing.T) {
	rec, body := errorPage(t, echo.NewHTTPError(http.StatusForbidden, "You are not authorized to access that page."))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, body, "You are not authorized to access that page.")
}

func TestErrorHandlerSkipsCommittedResponse(t *testing.T) {
	e := newTestEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, c.String(http.StatusOK, "already sent"))

	NewErrorHandler(nil)(assertableError("late failure"), c)
	assert.Equal(t, "already sent", rec.Body.String())
}
