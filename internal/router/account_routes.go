package router

import (
	"github.com/labstack/echo/v4"

	"github.com/camdenmotors/dealerweb/internal/form"
	"github.com/camdenmotors/dealerweb/internal/handler"
	"github.com/camdenmotors/dealerweb/internal/middleware"
)

// RegisterAccount registers the account routes. Login and registration are
// open to anonymous visitors and carry the rate limiter so credential
// guessing and bulk signups are throttled at the edge; everything else in
// the group requires a valid session cookie.
func RegisterAccount(e *echo.Echo, a *handler.AccountHandler, f *form.Forms, limiter echo.MiddlewareFunc) {
	g := e.Group("/account")

	g.GET("/login", a.LoginForm)
	g.POST("/login", a.Login, limiter, f.CheckLogin())
	g.GET("/register", a.RegisterForm)
	g.POST("/register", a.Register, limiter, f.CheckRegistration())

	auth := g.Group("", middleware.RequireLogin())
	auth.GET("/", a.Account)
	auth.GET("/update", a.UpdateForm)
	auth.POST("/update", a.Update, f.CheckAccountUpdate())
	auth.POST("/update-password", a.UpdatePassword, f.CheckPasswordUpdate())
	auth.GET("/logout", a.Logout)
}
