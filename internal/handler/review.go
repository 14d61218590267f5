package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/camdenmotors/dealerweb/internal/form"
	"github.com/camdenmotors/dealerweb/internal/middleware"
	"github.com/camdenmotors/dealerweb/internal/queue"
	"github.com/camdenmotors/dealerweb/internal/repository"
	"github.com/camdenmotors/dealerweb/internal/view"
)

// ReviewHandler bundles dependencies for posting reviews and dealer
// responses. Publish points at the broker publisher; tests substitute
// a recorder.
type ReviewHandler struct {
	Reviews   *repository.ReviewRepo
	Inventory *repository.InventoryRepo
	Publish   func(ctx context.Context, ev queue.ReviewSubmittedEvent) error
}

func NewReviewHandler(reviews *repository.ReviewRepo, inventory *repository.InventoryRepo, publish func(context.Context, queue.ReviewSubmittedEvent) error) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews, Inventory: inventory, Publish: publish}
}

// AddReview stores a validated review by the authenticated visitor and
// returns to the vehicle detail page. The broker event is fire-and-forget:
// a publish failure never breaks the request.
func (h *ReviewHandler) AddReview(c echo.Context) error {
	f := c.Get(form.ContextKey).(form.ReviewForm)
	ident, _ := middleware.IdentityFrom(c)

	ctx, cancel := dbCtx(c)
	defer cancel()

	vehicle, err := h.Inventory.GetByID(ctx, f.InvID)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Sorry, that vehicle could not be found.")
		}
		return err
	}

	reviewID, err := h.Reviews.Create(ctx, f.InvID, ident.AccountID, f.Rating, f.Text)
	if err != nil {
		view.SetNotice(c, "Sorry, your review could not be saved.")
		return c.Redirect(http.StatusSeeOther, detailPath(f.InvID))
	}

	if h.Publish != nil {
		_ = h.Publish(ctx, queue.ReviewSubmittedEvent{
			ReviewID:    reviewID,
			InvID:       f.InvID,
			AccountID:   ident.AccountID,
			Rating:      f.Rating,
			Make:        vehicle.Make,
			Model:       vehicle.Model,
			Year:        vehicle.Year,
			SubmittedAt: timeNow().UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	view.SetNotice(c, "Thank you for your review.")
	return c.Redirect(http.StatusSeeOther, detailPath(f.InvID))
}

// AddResponse writes the dealer response of a review. The privileged-role
// gate on the route is what prevents arbitrary overwrite; the write itself
// replaces any previous response.
func (h *ReviewHandler) AddResponse(c echo.Context) error {
	f := c.Get(form.ContextKey).(form.ResponseForm)
	ident, _ := middleware.IdentityFrom(c)

	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Reviews.SetResponse(ctx, f.ReviewID, f.Text, ident.AccountID); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Review not found.")
		}
		return err
	}

	view.SetNotice(c, "Your response has been posted.")
	return c.Redirect(http.StatusSeeOther, detailPath(f.InvID))
}

func detailPath(invID uint64) string {
	return fmt.Sprintf("/inv/detail/%d", invID)
}
