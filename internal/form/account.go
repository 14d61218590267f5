package form

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/camdenmotors/dealerweb/internal/middleware"
	"github.com/camdenmotors/dealerweb/internal/view"
)

// Registration carries the validated registration fields into the
// controller. The password travels as the submitted plain text; hashing is
// the controller's job so a hashing failure can short-circuit there.
type Registration struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Login carries the validated login fields.
type Login struct {
	Email    string
	Password string
}

// AccountUpdate carries the validated profile fields.
type AccountUpdate struct {
	AccountID uint64
	FirstName string
	LastName  string
	Email     string
}

// PasswordUpdate carries the validated new password.
type PasswordUpdate struct {
	AccountID uint64
	Password  string
}

// nav loads the classification navigation items used by every re-rendered
// form.
func (f *Forms) nav(c echo.Context) ([]view.NavItem, error) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	classifications, err := f.Classifications.List(ctx)
	if err != nil {
		return nil, err
	}
	return view.NavFrom(classifications), nil
}

// CheckRegistration validates the registration form. The duplicate-email
// rule runs here so an already-used address rejects the request before
// the controller ever hashes the password or touches the insert. The
// password is never echoed back on failure.
func (f *Forms) CheckRegistration() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var errs Errors
			firstName := required(&errs, "first_name", "First name", c.FormValue("first_name"))
			lastName := required(&errs, "last_name", "Last name", c.FormValue("last_name"))
			if lastName != "" && len(lastName) < 2 {
				errs.Add("last_name", "Last name must be at least 2 characters.")
			}
			email := strings.ToLower(required(&errs, "email", "Email", c.FormValue("email")))
			checkEmail(&errs, "email", email)
			password := c.FormValue("password")
			checkPassword(&errs, "password", password)

			if !errs.Any() {
				ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
				defer cancel()
				exists, err := f.Accounts.EmailExists(ctx, email)
				if err != nil {
					return err
				}
				if exists {
					errs.Add("email", "Email exists. Please log in or use a different email.")
				}
			}

			if errs.Any() {
				nav, err := f.nav(c)
				if err != nil {
					return err
				}
				return c.Render(http.StatusBadRequest, "register.html", view.Page(c, "Register", nav, echo.Map{
					"Errors":    errs,
					"FirstName": firstName,
					"LastName":  lastName,
					"Email":     email,
				}))
			}

			c.Set(ContextKey, Registration{FirstName: firstName, LastName: lastName, Email: email, Password: password})
			return next(c)
		}
	}
}

// CheckLogin validates the login form: both fields present, email shaped
// like an address. Credential verification stays in the controller so
// format failures and bad credentials render the same page.
func (f *Forms) CheckLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var errs Errors
			email := strings.ToLower(required(&errs, "email", "Email", c.FormValue("email")))
			checkEmail(&errs, "email", email)
			password := c.FormValue("password")
			if password == "" {
				errs.Add("password", "Password is required.")
			}

			if errs.Any() {
				nav, err := f.nav(c)
				if err != nil {
					return err
				}
				return c.Render(http.StatusBadRequest, "login.html", view.Page(c, "Login", nav, echo.Map{
					"Errors": errs,
					"Email":  email,
				}))
			}

			c.Set(ContextKey, Login{Email: email, Password: password})
			return next(c)
		}
	}
}

// CheckAccountUpdate validates the profile update form. The email
// uniqueness rule only fires when the address is taken by a different
// account, so resubmitting the current email never falsely rejects. The
// submitted account id must match the session identity.
func (f *Forms) CheckAccountUpdate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := middleware.IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to access that page.")
			}
			accountID, err := strconv.ParseUint(strings.TrimSpace(c.FormValue("account_id")), 10, 64)
			if err != nil || accountID != ident.AccountID {
				return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to access that page.")
			}

			var errs Errors
			firstName := required(&errs, "first_name", "First name", c.FormValue("first_name"))
			lastName := required(&errs, "last_name", "Last name", c.FormValue("last_name"))
			email := strings.ToLower(required(&errs, "email", "Email", c.FormValue("email")))
			checkEmail(&errs, "email", email)

			if !errs.Any() {
				ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
				defer cancel()
				taken, err := f.Accounts.EmailTakenByOther(ctx, email, accountID)
				if err != nil {
					return err
				}
				if taken {
					errs.Add("email", "Email exists. Please use a different email.")
				}
			}

			if errs.Any() {
				nav, err := f.nav(c)
				if err != nil {
					return err
				}
				return c.Render(http.StatusBadRequest, "update-account.html", view.Page(c, "Update Account Information", nav, echo.Map{
					"Errors":    errs,
					"AccountID": accountID,
					"FirstName": firstName,
					"LastName":  lastName,
					"Email":     email,
				}))
			}

			c.Set(ContextKey, AccountUpdate{AccountID: accountID, FirstName: firstName, LastName: lastName, Email: email})
			return next(c)
		}
	}
}

// CheckPasswordUpdate validates the password change form against the same
// complexity policy as registration. On failure the update form is
// re-rendered with the identity's current profile fields; the rejected
// password itself is never echoed back.
func (f *Forms) CheckPasswordUpdate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := middleware.IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to access that page.")
			}
			accountID, err := strconv.ParseUint(strings.TrimSpace(c.FormValue("account_id")), 10, 64)
			if err != nil || accountID != ident.AccountID {
				return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to access that page.")
			}

			var errs Errors
			checkPassword(&errs, "password", c.FormValue("password"))

			if errs.Any() {
				nav, err := f.nav(c)
				if err != nil {
					return err
				}
				return c.Render(http.StatusBadRequest, "update-account.html", view.Page(c, "Update Account Information", nav, echo.Map{
					"Errors":    errs,
					"AccountID": accountID,
					"FirstName": ident.FirstName,
					"LastName":  ident.LastName,
					"Email":     ident.Email,
				}))
			}

			c.Set(ContextKey, PasswordUpdate{AccountID: accountID, Password: c.FormValue("password")})
			return next(c)
		}
	}
}
