package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camdenmotors/dealerweb/internal/form"
	"github.com/camdenmotors/dealerweb/internal/handler"
	"github.com/camdenmotors/dealerweb/internal/middleware"
	"github.com/camdenmotors/dealerweb/internal/model"
	"github.com/camdenmotors/dealerweb/internal/repository"
	"github.com/camdenmotors/dealerweb/internal/utils"
	"github.com/camdenmotors/dealerweb/internal/view"
)

const routerTestSecret = "router-test-secret"

// newInventoryApp wires the inventory routes the way main does, with a
// pass-through in place of the redis cache middleware.
func newInventoryApp(t *testing.T) (*echo.Echo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	e := echo.New()
	r, err := view.NewRenderer()
	require.NoError(t, err)
	e.Renderer = r
	e.Use(middleware.LoadIdentity(routerTestSecret))

	classifications := repository.NewClassificationRepo(db)
	inventory := repository.NewInventoryRepo(db)
	reviews := repository.NewReviewRepo(db)
	forms := form.New(repository.NewAccountRepo(db), classifications, inventory, reviews)

	inv := handler.NewInventoryHandler(classifications, inventory, reviews)
	rev := handler.NewReviewHandler(reviews, inventory, nil)
	passthrough := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	RegisterInventory(e, inv, rev, forms, passthrough)
	return e, mock
}

func identityCookie(t *testing.T, role string) *http.Cookie {
	t.Helper()
	token, err := utils.IssueToken(model.Account{
		ID: 7, FirstName: "Pat", LastName: "Lee",
		Email: "pat@example.com", Role: role,
	}, routerTestSecret, time.Now())
	require.NoError(t, err)
	return &http.Cookie{Name: utils.IdentityCookie, Value: token}
}

func TestInventoryJSONAnonymousRedirectsToLogin(t *testing.T) {
	e, _ := newInventoryApp(t)

	req := httptest.NewRequest(http.MethodGet, "/inv/getInventory/2", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/account/login", rec.Header().Get("Location"))
}

func TestInventoryJSONForbiddenForClientRole(t *testing.T) {
	e, _ := newInventoryApp(t)

	req := httptest.NewRequest(http.MethodGet, "/inv/getInventory/2", nil)
	req.AddCookie(identityCookie(t, model.RoleClient))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestInventoryJSONServesEmployee(t *testing.T) {
	e, mock := newInventoryApp(t)
	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM inventory i").
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "classification_id", "make", "model", "year", "description",
			"image", "thumbnail", "price", "miles", "color", "status",
			"created_at", "updated_at", "name",
		}).AddRow(11, 2, "Jeep", "Wrangler", 2021, "Trail ready.",
			"/images/wrangler.jpg", "/images/wrangler-tn.jpg", 31000.0, 12000,
			"Red", "Available", now, now, "SUV"))

	req := httptest.NewRequest(http.MethodGet, "/inv/getInventory/2", nil)
	req.AddCookie(identityCookie(t, model.RoleEmployee))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"inv_id":11`)
}

func TestPublicBrowseRoutesStayAnonymous(t *testing.T) {
	e, mock := newInventoryApp(t)
	mock.ExpectQuery("SELECT id, name, created_at FROM classification WHERE id = ").
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow(2, "SUV", time.Now()))
	mock.ExpectQuery("SELECT (.+) FROM inventory i").
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "classification_id", "make", "model", "year", "description",
			"image", "thumbnail", "price", "miles", "color", "status",
			"created_at", "updated_at", "name",
		}))
	mock.ExpectQuery("SELECT id, name, created_at FROM classification ORDER BY name").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow(2, "SUV", time.Now()))

	req := httptest.NewRequest(http.MethodGet, "/inv/type/2", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "SUV")
}
