package form

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/camdenmotors/dealerweb/internal/repository"
	"github.com/camdenmotors/dealerweb/internal/view"
)

// ReviewForm carries a validated new review.
type ReviewForm struct {
	InvID  uint64
	Rating int
	Text   string
}

// ResponseForm carries a validated dealer response. InvID is resolved from
// the review so the controller can redirect back to the detail page.
type ResponseForm struct {
	ReviewID uint64
	InvID    uint64
	Text     string
}

// CheckReview validates a submitted review: an existing vehicle, a rating
// strictly between 1 and 5, and a body of at least five characters. On
// failure the vehicle detail page is re-rendered with the errors and the
// sticky review fields.
func (f *Forms) CheckReview() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			invID, err := strconv.ParseUint(strings.TrimSpace(c.FormValue("inv_id")), 10, 64)
			if err != nil || invID == 0 {
				return echo.NewHTTPError(http.StatusBadRequest, "Missing vehicle id.")
			}

			var errs Errors
			rating, err := strconv.Atoi(strings.TrimSpace(c.FormValue("rating")))
			if err != nil || rating < 1 || rating > 5 {
				errs.Add("rating", "Rating must be between 1 and 5.")
			}
			text := strings.TrimSpace(c.FormValue("review_text"))
			if len(text) < 5 {
				errs.Add("review_text", "Review must be at least 5 characters.")
			}

			if errs.Any() {
				return f.renderDetail(c, invID, echo.Map{
					"Errors":     errs,
					"ReviewText": text,
					"Rating":     rating,
				})
			}

			c.Set(ContextKey, ReviewForm{InvID: invID, Rating: rating, Text: text})
			return next(c)
		}
	}
}

// CheckResponse validates a dealer response: an existing review and a
// non-empty body. The owning vehicle is resolved here so both the
// re-render and the controller redirect know where to go.
func (f *Forms) CheckResponse() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reviewID, err := strconv.ParseUint(strings.TrimSpace(c.FormValue("review_id")), 10, 64)
			if err != nil || reviewID == 0 {
				return echo.NewHTTPError(http.StatusBadRequest, "Missing review id.")
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			rv, err := f.Reviews.GetByID(ctx, reviewID)
			if err != nil {
				if errors.Is(err, repository.ErrReviewNotFound) {
					return echo.NewHTTPError(http.StatusNotFound, "Review not found.")
				}
				return err
			}

			text := strings.TrimSpace(c.FormValue("response_text"))
			if text == "" {
				var errs Errors
				errs.Add("response_text", "Response is required.")
				return f.renderDetail(c, rv.InvID, echo.Map{
					"Errors": errs,
				})
			}

			c.Set(ContextKey, ResponseForm{ReviewID: reviewID, InvID: rv.InvID, Text: text})
			return next(c)
		}
	}
}

// renderDetail re-renders the vehicle detail page with the given extra
// fields at HTTP 400. The review form lives on that page, so validation
// failures land the visitor back where they typed.
func (f *Forms) renderDetail(c echo.Context, invID uint64, extra echo.Map) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	vehicle, err := f.Inventory.GetByID(ctx, invID)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Vehicle not found.")
		}
		return err
	}
	reviews, err := f.Reviews.ListByVehicle(ctx, invID)
	if err != nil {
		return err
	}
	nav, err := f.nav(c)
	if err != nil {
		return err
	}

	data := view.Page(c, vehicle.Make+" "+vehicle.Model, nav, echo.Map{
		"Vehicle": vehicle,
		"Reviews": reviews,
	})
	for k, v := range extra {
		data[k] = v
	}
	return c.Render(http.StatusBadRequest, "detail.html", data)
}
