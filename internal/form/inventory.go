package form

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/camdenmotors/dealerweb/internal/model"
	"github.com/camdenmotors/dealerweb/internal/view"
)

// ClassificationForm carries a validated classification name.
type ClassificationForm struct {
	Name string
}

// VehicleForm carries the validated fields of the add and edit inventory
// forms. InvID is zero for adds. Status is empty for adds (the database
// defaults it to Available) and mandatory for updates.
type VehicleForm struct {
	InvID            uint64
	ClassificationID uint64
	Make             string
	Model            string
	Year             int
	Description      string
	Image            string
	Thumbnail        string
	Price            float64
	Miles            int
	Color            string
	Status           string
}

// StatusForm carries a validated narrow status change.
type StatusForm struct {
	InvID  uint64
	Status string
}

// CheckClassification validates the add-classification form: a non-empty
// name made of letters and digits only.
func (f *Forms) CheckClassification() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var errs Errors
			name := required(&errs, "classification_name", "Classification name", c.FormValue("classification_name"))
			checkAlnum(&errs, "classification_name", "Classification name", name)

			if errs.Any() {
				nav, err := f.nav(c)
				if err != nil {
					return err
				}
				return c.Render(http.StatusBadRequest, "add-classification.html", view.Page(c, "Add Classification", nav, echo.Map{
					"Errors":             errs,
					"ClassificationName": name,
				}))
			}

			c.Set(ContextKey, ClassificationForm{Name: name})
			return next(c)
		}
	}
}

// parseVehicleFields runs the shared add/update rule list and returns the
// partially populated form for sticky re-rendering even when rules failed.
func (f *Forms) parseVehicleFields(c echo.Context, errs *Errors) (VehicleForm, error) {
	var v VehicleForm

	if id, err := strconv.ParseUint(strings.TrimSpace(c.FormValue("classification_id")), 10, 64); err == nil && id > 0 {
		v.ClassificationID = id
	} else {
		errs.Add("classification_id", "Please choose a classification.")
	}

	v.Make = required(errs, "make", "Make", c.FormValue("make"))
	v.Model = required(errs, "model", "Model", c.FormValue("model"))

	if y, err := strconv.Atoi(strings.TrimSpace(c.FormValue("year"))); err == nil && y >= 1900 && y <= 2099 {
		v.Year = y
	} else {
		errs.Add("year", "Year must be a number between 1900 and 2099.")
	}

	v.Description = required(errs, "description", "Description", c.FormValue("description"))
	v.Image = required(errs, "image", "Image path", c.FormValue("image"))
	v.Thumbnail = required(errs, "thumbnail", "Thumbnail path", c.FormValue("thumbnail"))

	if p, err := strconv.ParseFloat(strings.TrimSpace(c.FormValue("price")), 64); err == nil && p >= 0 {
		v.Price = p
	} else {
		errs.Add("price", "Price must be a number 0 or greater.")
	}

	if m, err := strconv.Atoi(strings.TrimSpace(c.FormValue("miles"))); err == nil && m >= 0 {
		v.Miles = m
	} else {
		errs.Add("miles", "Miles must be a whole number 0 or greater.")
	}

	v.Color = required(errs, "color", "Color", c.FormValue("color"))

	// The FK target must exist before any row is written.
	if v.ClassificationID > 0 {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()
		exists, err := f.Classifications.Exists(ctx, v.ClassificationID)
		if err != nil {
			return v, err
		}
		if !exists {
			errs.Add("classification_id", "Please choose an existing classification.")
		}
	}
	return v, nil
}

// stickyVehicle merges the submitted values back into the re-rendered
// form's data bag.
func stickyVehicle(v VehicleForm) echo.Map {
	return echo.Map{
		"InvID":            v.InvID,
		"ClassificationID": v.ClassificationID,
		"Make":             v.Make,
		"Model":            v.Model,
		"Year":             v.Year,
		"Description":      v.Description,
		"Image":            v.Image,
		"Thumbnail":        v.Thumbnail,
		"Price":            v.Price,
		"Miles":            v.Miles,
		"Color":            v.Color,
		"Status":           v.Status,
	}
}

// CheckInventoryAdd validates the add-inventory form and re-renders it
// with sticky values and the classification select list on failure.
func (f *Forms) CheckInventoryAdd() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var errs Errors
			v, err := f.parseVehicleFields(c, &errs)
			if err != nil {
				return err
			}

			if errs.Any() {
				ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
				defer cancel()
				list, err := f.Classifications.List(ctx)
				if err != nil {
					return err
				}
				data := view.Page(c, "Add Inventory", view.NavFrom(list), stickyVehicle(v))
				data["Classifications"] = list
				data["Errors"] = errs
				return c.Render(http.StatusBadRequest, "add-inventory.html", data)
			}

			c.Set(ContextKey, v)
			return next(c)
		}
	}
}

// CheckInventoryUpdate validates the edit-inventory form: the shared field
// rules plus the vehicle id and the status enum.
func (f *Forms) CheckInventoryUpdate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var errs Errors
			v, err := f.parseVehicleFields(c, &errs)
			if err != nil {
				return err
			}

			if id, err := strconv.ParseUint(strings.TrimSpace(c.FormValue("inv_id")), 10, 64); err == nil && id > 0 {
				v.InvID = id
			} else {
				errs.Add("inv_id", "Missing vehicle id.")
			}
			v.Status = strings.TrimSpace(c.FormValue("status"))
			if !model.ValidStatus(v.Status) {
				errs.Add("status", "Status must be Available, Pending or Sold.")
			}

			if errs.Any() {
				ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
				defer cancel()
				list, err := f.Classifications.List(ctx)
				if err != nil {
					return err
				}
				data := view.Page(c, "Edit "+v.Make+" "+v.Model, view.NavFrom(list), stickyVehicle(v))
				data["Classifications"] = list
				data["Errors"] = errs
				return c.Render(http.StatusBadRequest, "edit-inventory.html", data)
			}

			c.Set(ContextKey, v)
			return next(c)
		}
	}
}

// CheckStatus validates the narrow status change: an existing-looking id
// and a status inside the enum. There is no form page to re-render, so a
// failure surfaces as a plain 400 through the centralized error handler.
func (f *Forms) CheckStatus() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := strconv.ParseUint(strings.TrimSpace(c.FormValue("inv_id")), 10, 64)
			if err != nil || id == 0 {
				return echo.NewHTTPError(http.StatusBadRequest, "Missing vehicle id.")
			}
			status := strings.TrimSpace(c.FormValue("status"))
			if !model.ValidStatus(status) {
				return echo.NewHTTPError(http.StatusBadRequest, "Status must be Available, Pending or Sold.")
			}
			c.Set(ContextKey, StatusForm{InvID: id, Status: status})
			return next(c)
		}
	}
}
