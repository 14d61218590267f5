package form

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

	"github.com/camdenmotors/dealerweb/internal/repository"
	"github.com/camdenmotors/dealerweb/internal/view"
)

func newForms(t *testing.T) (*Forms, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(
		repository.NewAccountRepo(db),
		repository.NewClassificationRepo(db),
		repository.NewInventoryRepo(db),
		repository.NewReviewRepo(db),
	), mock
}

func renderContext(t *testing.T, path string, values url.Values) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	r, err := view.NewRenderer()
	require.NoError(t, err)
	e.Renderer = r
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func expectNav(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT id, name, created_at FROM classification ORDER BY name").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow(1, "Sedan", time.Now()))
}

func registrationValues(password string) url.Values {
	return url.Values{
		"first_name": {"Jane"},
		"last_name":  {"Doe"},
		"email":      {"jane@example.com"},
		"password":   {password},
	}
}

func TestCheckRegistrationDuplicateEmailStopsPipeline(t *testing.T) {
	f, mock := newForms(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM account WHERE email=`).
		WithArgs("jane@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	expectNav(mock)

	c, rec := renderContext(t, "/account/register", registrationValues("Fresh&Secret1234"))
	called := false
	err := f.CheckRegistration()(func(c echo.Context) error {
		called = true
		return nil
	})(c)
	require.NoError(t, err)

	assert.False(t, called, "controller must not run for a duplicate email")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email exists.")
	assert.NotContains(t, rec.Body.String(), "Fresh&Secret1234")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckRegistrationWeakPasswordSkipsUniquenessLookup(t *testing.T) {
	f, mock := newForms(t)
	// Only the nav query is expected: a failed password rule rejects before
	// the email-existence rule touches the database.
	expectNav(mock)

	c, rec := renderContext(t, "/account/register", registrationValues("short1!"))
	called := false
	err := f.CheckRegistration()(func(c echo.Context) error {
		called = true
		return nil
	})(c)
	require.NoError(t, err)

	assert.False(t, called)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password does not meet requirements.")
	assert.NotContains(t, rec.Body.String(), "short1!")
	assert.NoError(t, mock.ExpectationsWereMet())
}
