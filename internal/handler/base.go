package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/camdenmotors/dealerweb/internal/repository"
	"github.com/camdenmotors/dealerweb/internal/view"
)

// BaseHandler serves the home page and the deliberate error route.
type BaseHandler struct {
	Classifications *repository.ClassificationRepo
	Reviews         *repository.ReviewRepo
}

func NewBaseHandler(classifications *repository.ClassificationRepo, reviews *repository.ReviewRepo) *BaseHandler {
	return &BaseHandler{Classifications: classifications, Reviews: reviews}
}

// Home delivers the landing page: the most recently reviewed vehicle as the
// featured spot plus the latest reviews across the whole inventory. A site
// with no reviews yet simply renders without a featured vehicle.
func (h *BaseHandler) Home(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	featured, err := h.Reviews.Featured(ctx)
	if err != nil && !errors.Is(err, repository.ErrVehicleNotFound) {
		return err
	}
	latest, err := h.Reviews.Latest(ctx, 5)
	if err != nil {
		return err
	}

	items, err := nav(c, h.Classifications)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "home.html", view.Page(c, "Home", items, echo.Map{
		"Featured":      featured,
		"LatestReviews": latest,
	}))
}

// TriggerError fails on purpose so the error handling path stays testable
// end to end.
func (h *BaseHandler) TriggerError(c echo.Context) error {
	return errors.New("intentional server error")
}

// Health responds with a plain "ok" for load balancers and monitoring.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
