package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/camdenmotors/dealerweb/internal/form"
	"github.com/camdenmotors/dealerweb/internal/model"
	"github.com/camdenmotors/dealerweb/internal/repository"
	"github.com/camdenmotors/dealerweb/internal/view"
)

// InventoryHandler bundles dependencies for the public browsing pages and
// the privileged inventory management screens.
type InventoryHandler struct {
	Classifications *repository.ClassificationRepo
	Inventory       *repository.InventoryRepo
	Reviews         *repository.ReviewRepo
}

func NewInventoryHandler(classifications *repository.ClassificationRepo, inventory *repository.InventoryRepo, reviews *repository.ReviewRepo) *InventoryHandler {
	return &InventoryHandler{Classifications: classifications, Inventory: inventory, Reviews: reviews}
}

// vehicleJSON is the shape of the management screen's AJAX inventory
// listing.
type vehicleJSON struct {
	ID                 uint64  `json:"inv_id"`
	ClassificationID   uint64  `json:"classification_id"`
	ClassificationName string  `json:"classification_name"`
	Make               string  `json:"make"`
	Model              string  `json:"model"`
	Year               int     `json:"year"`
	Price              float64 `json:"price"`
	Miles              int     `json:"miles"`
	Color              string  `json:"color"`
	Status             string  `json:"status"`
}

// ByClassification delivers the public vehicle grid for one
// classification. The classification itself must exist; an empty grid is
// rendered when it has no vehicles yet.
func (h *InventoryHandler) ByClassification(c echo.Context) error {
	id, err := pathID(c, "classification_id")
	if err != nil {
		return err
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	cls, err := h.Classifications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClassificationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Sorry, we couldn't find that page.")
		}
		return err
	}
	vehicles, err := h.Inventory.ListByClassification(ctx, id)
	if err != nil {
		return err
	}

	items, err := nav(c, h.Classifications)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "classification.html", view.Page(c, cls.Name+" vehicles", items, echo.Map{
		"ClassificationName": cls.Name,
		"Vehicles":           vehicles,
	}))
}

// Detail delivers the public vehicle detail page together with its
// reviews, newest first.
func (h *InventoryHandler) Detail(c echo.Context) error {
	id, err := pathID(c, "inv_id")
	if err != nil {
		return err
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	vehicle, err := h.Inventory.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Sorry, that vehicle could not be found.")
		}
		return err
	}
	reviews, err := h.Reviews.ListByVehicle(ctx, id)
	if err != nil {
		return err
	}

	items, err := nav(c, h.Classifications)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "detail.html", view.Page(c, vehicle.Make+" "+vehicle.Model, items, echo.Map{
		"Vehicle": vehicle,
		"Reviews": reviews,
	}))
}

// Management delivers the inventory management view with the
// classification select list.
func (h *InventoryHandler) Management(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	classifications, err := h.Classifications.List(ctx)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "management.html", view.Page(c, "Inventory Management", view.NavFrom(classifications), echo.Map{
		"Classifications": classifications,
	}))
}

// AddClassificationForm delivers the add-classification view.
func (h *InventoryHandler) AddClassificationForm(c echo.Context) error {
	items, err := nav(c, h.Classifications)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "add-classification.html", view.Page(c, "Add Classification", items, nil))
}

// AddClassification stores a validated classification and returns to the
// management view. A persistence failure re-renders the form at 501 with
// the submitted name kept sticky.
func (h *InventoryHandler) AddClassification(c echo.Context) error {
	f := c.Get(form.ContextKey).(form.ClassificationForm)

	ctx, cancel := dbCtx(c)
	defer cancel()
	if _, err := h.Classifications.Create(ctx, f.Name); err != nil {
		items, navErr := nav(c, h.Classifications)
		if navErr != nil {
			return navErr
		}
		msg := "Sorry, the classification could not be added."
		if errors.Is(err, repository.ErrClassificationExists) {
			msg = "That classification already exists."
		}
		return c.Render(http.StatusNotImplemented, "add-classification.html", view.Page(c, "Add Classification", items, echo.Map{
			"Notice":             msg,
			"ClassificationName": f.Name,
		}))
	}

	view.SetNotice(c, `Success: "`+f.Name+`" classification was added.`)
	return c.Redirect(http.StatusSeeOther, "/inv/")
}

// AddInventoryForm delivers the add-inventory view with the
// classification select list.
func (h *InventoryHandler) AddInventoryForm(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	classifications, err := h.Classifications.List(ctx)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "add-inventory.html", view.Page(c, "Add Inventory", view.NavFrom(classifications), echo.Map{
		"Classifications": classifications,
	}))
}

// AddInventory stores a validated vehicle and returns to the management
// view. Persistence failures re-render the form at 501 with every
// submitted value kept sticky.
func (h *InventoryHandler) AddInventory(c echo.Context) error {
	f := c.Get(form.ContextKey).(form.VehicleForm)

	v := model.Vehicle{
		ClassificationID: f.ClassificationID,
		Make:             f.Make,
		Model:            f.Model,
		Year:             f.Year,
		Description:      f.Description,
		Image:            f.Image,
		Thumbnail:        f.Thumbnail,
		Price:            f.Price,
		Miles:            f.Miles,
		Color:            f.Color,
	}

	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Inventory.Create(ctx, &v); err != nil {
		list, listErr := h.Classifications.List(ctx)
		if listErr != nil {
			return listErr
		}
		data := view.Page(c, "Add Inventory", view.NavFrom(list), h.stickyVehicle(f))
		data["Notice"] = "Sorry, the inventory item could not be added."
		data["Classifications"] = list
		return c.Render(http.StatusNotImplemented, "add-inventory.html", data)
	}

	view.SetNotice(c, "Success: "+strconv.Itoa(f.Year)+" "+f.Make+" "+f.Model+" was added to inventory.")
	return c.Redirect(http.StatusSeeOther, "/inv/")
}

// EditForm delivers the edit-inventory view prefilled from the stored
// vehicle.
func (h *InventoryHandler) EditForm(c echo.Context) error {
	id, err := pathID(c, "inv_id")
	if err != nil {
		return err
	}

	ctx, cancel := dbCtx(c)
	defer cancel()
	vehicle, err := h.Inventory.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Sorry, that vehicle could not be found.")
		}
		return err
	}
	classifications, err := h.Classifications.List(ctx)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "edit-inventory.html", view.Page(c, "Edit "+vehicle.Make+" "+vehicle.Model, view.NavFrom(classifications), echo.Map{
		"Classifications":  classifications,
		"InvID":            vehicle.ID,
		"ClassificationID": vehicle.ClassificationID,
		"Make":             vehicle.Make,
		"Model":            vehicle.Model,
		"Year":             vehicle.Year,
		"Description":      vehicle.Description,
		"Image":            vehicle.Image,
		"Thumbnail":        vehicle.Thumbnail,
		"Price":            vehicle.Price,
		"Miles":            vehicle.Miles,
		"Color":            vehicle.Color,
		"Status":           vehicle.Status,
	}))
}

// Update applies a validated full-record edit. A missing vehicle
// re-renders the form at 501 with sticky values.
func (h *InventoryHandler) Update(c echo.Context) error {
	f := c.Get(form.ContextKey).(form.VehicleForm)

	v := model.Vehicle{
		ID:               f.InvID,
		ClassificationID: f.ClassificationID,
		Make:             f.Make,
		Model:            f.Model,
		Year:             f.Year,
		Description:      f.Description,
		Image:            f.Image,
		Thumbnail:        f.Thumbnail,
		Price:            f.Price,
		Miles:            f.Miles,
		Color:            f.Color,
		Status:           f.Status,
	}

	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Inventory.Update(ctx, &v); err != nil {
		list, listErr := h.Classifications.List(ctx)
		if listErr != nil {
			return listErr
		}
		data := view.Page(c, "Edit "+f.Make+" "+f.Model, view.NavFrom(list), h.stickyVehicle(f))
		data["Notice"] = "Sorry, the update failed."
		data["Classifications"] = list
		return c.Render(http.StatusNotImplemented, "edit-inventory.html", data)
	}

	view.SetNotice(c, "The "+f.Make+" "+f.Model+" was successfully updated.")
	return c.Redirect(http.StatusSeeOther, "/inv/")
}

// DeleteConfirmForm delivers the delete confirmation view.
func (h *InventoryHandler) DeleteConfirmForm(c echo.Context) error {
	id, err := pathID(c, "inv_id")
	if err != nil {
		return err
	}

	ctx, cancel := dbCtx(c)
	defer cancel()
	vehicle, err := h.Inventory.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Sorry, that vehicle could not be found.")
		}
		return err
	}

	items, err := nav(c, h.Classifications)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "delete-confirm.html", view.Page(c, "Delete "+vehicle.Make+" "+vehicle.Model, items, echo.Map{
		"Vehicle": vehicle,
	}))
}

// Delete removes a vehicle. Zero rows affected is a failure, never a
// silent success: the repository reports it as ErrVehicleNotFound and the
// visitor sees the failure.
func (h *InventoryHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(strings.TrimSpace(c.FormValue("inv_id")), 10, 64)
	if err != nil || id == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing vehicle id.")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Inventory.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return echo.NewHTTPError(http.StatusNotImplemented, "Sorry, the delete failed.")
		}
		return err
	}

	view.SetNotice(c, "The vehicle was successfully deleted.")
	return c.Redirect(http.StatusSeeOther, "/inv/")
}

// UpdateStatus applies a validated narrow status change without touching
// any other column.
func (h *InventoryHandler) UpdateStatus(c echo.Context) error {
	f := c.Get(form.ContextKey).(form.StatusForm)

	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Inventory.UpdateStatus(ctx, f.InvID, f.Status); err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return echo.NewHTTPError(http.StatusNotImplemented, "Sorry, the status update failed.")
		}
		return err
	}

	view.SetNotice(c, "Vehicle status set to "+f.Status+".")
	return c.Redirect(http.StatusSeeOther, "/inv/")
}

// InventoryJSON returns the vehicles of one classification for the
// management screen's AJAX table.
func (h *InventoryHandler) InventoryJSON(c echo.Context) error {
	id, err := pathID(c, "classification_id")
	if err != nil {
		return err
	}

	ctx, cancel := dbCtx(c)
	defer cancel()
	vehicles, err := h.Inventory.ListByClassification(ctx, id)
	if err != nil {
		return err
	}

	out := make([]vehicleJSON, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, vehicleJSON{
			ID:                 v.ID,
			ClassificationID:   v.ClassificationID,
			ClassificationName: v.ClassificationName,
			Make:               v.Make,
			Model:              v.Model,
			Year:               v.Year,
			Price:              v.Price,
			Miles:              v.Miles,
			Color:              v.Color,
			Status:             v.Status,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// stickyVehicle rebuilds the submitted values for a 501 re-render.
func (h *InventoryHandler) stickyVehicle(f form.VehicleForm) echo.Map {
	return echo.Map{
		"InvID":            f.InvID,
		"ClassificationID": f.ClassificationID,
		"Make":             f.Make,
		"Model":            f.Model,
		"Year":             f.Year,
		"Description":      f.Description,
		"Image":            f.Image,
		"Thumbnail":        f.Thumbnail,
		"Price":            f.Price,
		"Miles":            f.Miles,
		"Color":            f.Color,
		"Status":           f.Status,
	}
}
