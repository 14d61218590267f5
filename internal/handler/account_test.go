package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camdenmotors/dealerweb/internal/config"
	"github.com/camdenmotors/dealerweb/internal/form"
	"github.com/camdenmotors/dealerweb/internal/repository"
	"github.com/camdenmotors/dealerweb/internal/utils"
	"github.com/camdenmotors/dealerweb/internal/view"
)

const handlerTestSecret = "handler-test-secret"

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	r, err := view.NewRenderer()
	require.NoError(t, err)
	e.Renderer = r
	return e
}

func newAccountHandler(t *testing.T) (*AccountHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{Env: "test", JWTSecret: handlerTestSecret, BcryptCost: 4}
	return NewAccountHandler(cfg, repository.NewAccountRepo(db), repository.NewClassificationRepo(db)), mock
}

func postForm(e *echo.Echo, path string, values url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func expectNavQuery(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT id, name, created_at FROM classification ORDER BY name").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow(1, "Sedan", time.Now()))
}

func accountRow(passwordHash string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "password_hash", "role", "created_at", "updated_at"}).
		AddRow(3, "Jane", "Doe", "jane@example.com", passwordHash, "Client", now, now)
}

func TestLoginUnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	hash, err := utils.HashPassword("Correct&Secret99", 4)
	require.NoError(t, err)

	bodies := make([]string, 0, 2)
	codes := make([]int, 0, 2)

	run := func(rows *sqlmock.Rows) {
		h, mock := newAccountHandler(t)
		e := newTestEcho(t)
		mock.ExpectQuery("SELECT (.+) FROM account WHERE email=").WillReturnRows(rows)
		expectNavQuery(mock)

		c, rec := postForm(e, "/account/login", nil)
		c.Set(form.ContextKey, form.Login{Email: "jane@example.com", Password: "Wrong&Secret99"})
		require.NoError(t, h.Login(c))
		bodies = append(bodies, rec.Body.String())
		codes = append(codes, rec.Code)
	}

	// Unknown email: the account query returns nothing.
	run(sqlmock.NewRows([]string{"id"}))
	// Known email, wrong password.
	run(accountRow(hash))

	assert.Equal(t, http.StatusBadRequest, codes[0])
	assert.Equal(t, codes[0], codes[1])
	assert.Equal(t, bodies[0], bodies[1], "failure responses must not reveal whether the email exists")
	assert.Contains(t, bodies[0], "value=\"jane@example.com\"")
}

func TestLoginSuccessSetsIdentityCookie(t *testing.T) {
	hash, err := utils.HashPassword("Correct&Secret99", 4)
	require.NoError(t, err)

	h, mock := newAccountHandler(t)
	e := newTestEcho(t)
	mock.ExpectQuery("SELECT (.+) FROM account WHERE email=").WillReturnRows(accountRow(hash))

	c, rec := postForm(e, "/account/login", nil)
	c.Set(form.ContextKey, form.Login{Email: "jane@example.com", Password: "Correct&Secret99"})
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/account/", rec.Header().Get("Location"))

	var jwtCookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == utils.IdentityCookie {
			jwtCookie = ck
		}
	}
	require.NotNil(t, jwtCookie, "login must set the identity cookie")
	assert.True(t, jwtCookie.HttpOnly)
	assert.True(t, jwtCookie.Secure, "cookie is secure outside development")
	assert.Equal(t, int(utils.TokenTTL.Seconds()), jwtCookie.MaxAge)

	ident, err := utils.DecodeToken(jwtCookie.Value, handlerTestSecret)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), ident.AccountID)
}

func TestLoginCookieNotSecureInDev(t *testing.T) {
	hash, err := utils.HashPassword("Correct&Secret99", 4)
	require.NoError(t, err)

	h, mock := newAccountHandler(t)
	h.Cfg.Env = "dev"
	e := newTestEcho(t)
	mock.ExpectQuery("SELECT (.+) FROM account WHERE email=").WillReturnRows(accountRow(hash))

	c, rec := postForm(e, "/account/login", nil)
	c.Set(form.ContextKey, form.Login{Email: "jane@example.com", Password: "Correct&Secret99"})
	require.NoError(t, h.Login(c))

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == utils.IdentityCookie {
			assert.False(t, ck.Secure)
			return
		}
	}
	t.Fatal("identity cookie not set")
}

func TestRegisterSuccessRendersLogin(t *testing.T) {
	h, mock := newAccountHandler(t)
	e := newTestEcho(t)

	mock.ExpectExec("INSERT INTO account").WillReturnResult(sqlmock.NewResult(9, 1))
	expectNavQuery(mock)

	c, rec := postForm(e, "/account/register", nil)
	c.Set(form.ContextKey, form.Registration{
		FirstName: "Jane", LastName: "Doe",
		Email: "jane@example.com", Password: "Fresh&Secret1234",
	})
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "registered Jane")
	assert.Contains(t, rec.Body.String(), "value=\"jane@example.com\"")
	assert.NotContains(t, rec.Body.String(), "Fresh&Secret1234")
}

func TestRegisterInsertFailureRendersSticky(t *testing.T) {
	h, mock := newAccountHandler(t)
	e := newTestEcho(t)

	mock.ExpectExec("INSERT INTO account").WillReturnError(assertableError("connection lost"))
	expectNavQuery(mock)

	c, rec := postForm(e, "/account/register", nil)
	c.Set(form.ContextKey, form.Registration{
		FirstName: "Jane", LastName: "Doe",
		Email: "jane@example.com", Password: "Fresh&Secret1234",
	})
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.Contains(t, rec.Body.String(), "value=\"Jane\"")
	assert.Contains(t, rec.Body.String(), "value=\"jane@example.com\"")
	assert.NotContains(t, rec.Body.String(), "Fresh&Secret1234")
}

func TestLogoutClearsCookie(t *testing.T) {
	h, _ := newAccountHandler(t)
	e := newTestEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/account/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, h.Logout(c))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == utils.IdentityCookie {
			assert.Equal(t, -1, ck.MaxAge)
			assert.Empty(t, ck.Value)
			return
		}
	}
	t.Fatal("identity cookie not cleared")
}

type assertableError string

func (e assertableError) Error() string { return string(e) }
