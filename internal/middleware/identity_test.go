package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camdenmotors/dealerweb/internal/model"
	"github.com/camdenmotors/dealerweb/internal/utils"
)

const testSecret = "middleware-test-secret"

func identityRequest(t *testing.T, cookie string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: utils.IdentityCookie, Value: cookie})
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func runChain(c echo.Context, mw echo.MiddlewareFunc) (utils.Identity, bool, error) {
	var ident utils.Identity
	var ok bool
	err := mw(func(c echo.Context) error {
		ident, ok = IdentityFrom(c)
		return nil
	})(c)
	return ident, ok, err
}

func TestLoadIdentityAnonymous(t *testing.T) {
	c := identityRequest(t, "")

	_, ok, err := runChain(c, LoadIdentity(testSecret))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadIdentityValidCookie(t *testing.T) {
	acct := model.Account{ID: 3, FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Role: model.RoleClient}
	token, err := utils.IssueToken(acct, testSecret, time.Now())
	require.NoError(t, err)
	c := identityRequest(t, token)

	ident, ok, err := runChain(c, LoadIdentity(testSecret))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(3), ident.AccountID)
	assert.Equal(t, model.RoleClient, ident.Role)
}

func TestLoadIdentityTamperedCookie(t *testing.T) {
	acct := model.Account{ID: 3, Role: model.RoleAdmin}
	token, err := utils.IssueToken(acct, "a-different-secret", time.Now())
	require.NoError(t, err)
	c := identityRequest(t, token)

	_, ok, err := runChain(c, LoadIdentity(testSecret))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadIdentityExpiredCookie(t *testing.T) {
	acct := model.Account{ID: 3, Role: model.RoleClient}
	token, err := utils.IssueToken(acct, testSecret, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	c := identityRequest(t, token)

	_, ok, err := runChain(c, LoadIdentity(testSecret))
	require.NoError(t, err)
	assert.False(t, ok)
}
