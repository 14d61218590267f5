package form

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusRequest(values url.Values) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/inv/update-status", strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestCheckStatusAcceptsEnum(t *testing.T) {
	f := &Forms{}
	for _, status := range []string{"Available", "Pending", "Sold"} {
		c := statusRequest(url.Values{"inv_id": {"11"}, "status": {status}})
		var got StatusForm
		err := f.CheckStatus()(func(c echo.Context) error {
			got = c.Get(ContextKey).(StatusForm)
			return nil
		})(c)
		require.NoError(t, err, status)
		assert.Equal(t, uint64(11), got.InvID)
		assert.Equal(t, status, got.Status)
	}
}

func vehicleValues() url.Values {
	return url.Values{
		"classification_id": {"2"},
		"make":              {"Jeep"},
		"model":             {"Wrangler"},
		"year":              {"2021"},
		"description":       {"Trail ready."},
		"image":             {"/images/wrangler.jpg"},
		"thumbnail":         {"/images/wrangler-tn.jpg"},
		"price":             {"31000"},
		"miles":             {"12000"},
		"color":             {"Red"},
	}
}

func TestCheckInventoryAddSurfacesClassificationLookupFailure(t *testing.T) {
	f, mock := newForms(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM classification WHERE id = `).
		WithArgs(uint64(2)).
		WillReturnError(errors.New("connection lost"))

	c, rec := renderContext(t, "/inv/add-inventory", vehicleValues())
	called := false
	err := f.CheckInventoryAdd()(func(c echo.Context) error {
		called = true
		return nil
	})(c)

	require.Error(t, err)
	assert.False(t, called, "a lookup failure must not pass the existence rule")
	assert.Empty(t, rec.Body.String())
}

func TestCheckStatusRejectsUnknownValue(t *testing.T) {
	f := &Forms{}
	cases := []url.Values{
		{"inv_id": {"11"}, "status": {"Parked"}},
		{"inv_id": {"11"}, "status": {"available"}},
		{"inv_id": {"11"}, "status": {""}},
		{"inv_id": {"0"}, "status": {"Sold"}},
		{"inv_id": {"abc"}, "status": {"Sold"}},
	}
	for _, values := range cases {
		c := statusRequest(values)
		err := f.CheckStatus()(func(c echo.Context) error { return nil })(c)
		require.Error(t, err, values.Encode())
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	}
}
