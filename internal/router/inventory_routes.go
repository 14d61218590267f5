package router

import (
	"github.com/labstack/echo/v4"

	"github.com/camdenmotors/dealerweb/internal/form"
	"github.com/camdenmotors/dealerweb/internal/handler"
	"github.com/camdenmotors/dealerweb/internal/middleware"
)

// RegisterInventory registers the inventory routes in three tiers: public
// browse pages (cached), review submission for any logged-in visitor, and
// the management surface restricted to Employee and Admin accounts.
func RegisterInventory(e *echo.Echo, inv *handler.InventoryHandler, rev *handler.ReviewHandler, f *form.Forms, cache echo.MiddlewareFunc) {
	// Public browse pages. The classification grid and the vehicle detail
	// page are anonymous.
	e.GET("/inv/type/:classification_id", inv.ByClassification, cache)
	e.GET("/inv/detail/:inv_id", inv.Detail, cache)

	// Reviews require a session but no particular role; responses are a
	// dealer-side action.
	e.POST("/inv/add-review", rev.AddReview, middleware.RequireLogin(), f.CheckReview())
	e.POST("/inv/add-response", rev.AddResponse, middleware.RequirePrivileged(), f.CheckResponse())

	// Management surface. Every route in the group runs the privileged-role
	// gate before any handler or validator.
	g := e.Group("/inv", middleware.RequirePrivileged())
	g.GET("/", inv.Management)
	g.GET("/getInventory/:classification_id", inv.InventoryJSON)
	g.GET("/add-classification", inv.AddClassificationForm)
	g.POST("/add-classification", inv.AddClassification, f.CheckClassification())
	g.GET("/add-inventory", inv.AddInventoryForm)
	g.POST("/add-inventory", inv.AddInventory, f.CheckInventoryAdd())
	g.GET("/edit/:inv_id", inv.EditForm)
	g.POST("/update", inv.Update, f.CheckInventoryUpdate())
	g.GET("/delete/:inv_id", inv.DeleteConfirmForm)
	g.POST("/delete", inv.Delete)
	g.POST("/update-status", inv.UpdateStatus, f.CheckStatus())
}
