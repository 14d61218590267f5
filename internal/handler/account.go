package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/camdenmotors/dealerweb/internal/config"
	"github.com/camdenmotors/dealerweb/internal/form"
	"github.com/camdenmotors/dealerweb/internal/middleware"
	"github.com/camdenmotors/dealerweb/internal/repository"
	"github.com/camdenmotors/dealerweb/internal/utils"
	"github.com/camdenmotors/dealerweb/internal/view"
)

// AccountHandler bundles dependencies for the account pages: registration,
// login, the management view, profile and password updates and logout.
type AccountHandler struct {
	Cfg             config.Config
	Accounts        *repository.AccountRepo
	Classifications *repository.ClassificationRepo
}

func NewAccountHandler(cfg config.Config, accounts *repository.AccountRepo, classifications *repository.ClassificationRepo) *AccountHandler {
	return &AccountHandler{Cfg: cfg, Accounts: accounts, Classifications: classifications}
}

// LoginForm delivers the login view.
func (h *AccountHandler) LoginForm(c echo.Context) error {
	items, err := nav(c, h.Classifications)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "login.html", view.Page(c, "Login", items, nil))
}

// RegisterForm delivers the registration view.
func (h *AccountHandler) RegisterForm(c echo.Context) error {
	items, err := nav(c, h.Classifications)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "register.html", view.Page(c, "Register", items, nil))
}

// Register processes a validated registration. Hashing happens here, and a
// hashing failure short-circuits to an error response before any insert;
// the handler never proceeds with an undefined hash.
func (h *AccountHandler) Register(c echo.Context) error {
	f := c.Get(form.ContextKey).(form.Registration)

	hash, err := utils.HashPassword(f.Password, h.Cfg.BcryptCost)
	if err != nil {
		items, navErr := nav(c, h.Classifications)
		if navErr != nil {
			return navErr
		}
		return c.Render(http.StatusInternalServerError, "register.html", view.Page(c, "Register", items, echo.Map{
			"Notice":    "Sorry, there was an error processing the registration.",
			"FirstName": f.FirstName,
			"LastName":  f.LastName,
			"Email":     f.Email,
		}))
	}

	ctx, cancel := dbCtx(c)
	defer cancel()
	if _, err := h.Accounts.Create(ctx, f.FirstName, f.LastName, f.Email, hash); err != nil {
		items, navErr := nav(c, h.Classifications)
		if navErr != nil {
			return navErr
		}
		return c.Render(http.StatusNotImplemented, "register.html", view.Page(c, "Register", items, echo.Map{
			"Notice":    "Sorry, the registration failed.",
			"FirstName": f.FirstName,
			"LastName":  f.LastName,
			"Email":     f.Email,
		}))
	}

	items, err := nav(c, h.Classifications)
	if err != nil {
		return err
	}
	return c.Render(http.StatusCreated, "login.html", view.Page(c, "Login", items, echo.Map{
		"Notice": "Congratulations, you're registered " + f.FirstName + ". Please log in.",
		"Email":  f.Email,
	}))
}

// Login verifies credentials and issues the identity cookie. Unknown email
// and wrong password produce byte-identical responses so the page never
// leaks whether an address is registered.
func (h *AccountHandler) Login(c echo.Context) error {
	f := c.Get(form.ContextKey).(form.Login)

	ctx, cancel := dbCtx(c)
	defer cancel()

	acct, err := h.Accounts.GetByEmail(ctx, f.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return h.badCredentials(c, f.Email)
		}
		return err
	}
	if !utils.VerifyPassword(acct.PasswordHash, f.Password) {
		return h.badCredentials(c, f.Email)
	}

	token, err := utils.IssueToken(acct, h.Cfg.JWTSecret, timeNow())
	if err != nil {
		return err
	}
	setIdentityCookie(c, token, h.Cfg.IsDev())
	return c.Redirect(http.StatusSeeOther, "/account/")
}

// badCredentials renders the single generic login failure.
func (h *AccountHandler) badCredentials(c echo.Context, email string) error {
	items, err := nav(c, h.Classifications)
	if err != nil {
		return err
	}
	return c.Render(http.StatusBadRequest, "login.html", view.Page(c, "Login", items, echo.Map{
		"Notice": "Please check your credentials and try again.",
		"Email":  email,
	}))
}

// Account delivers the account management view.
func (h *AccountHandler) Account(c echo.Context) error {
	items, err := nav(c, h.Classifications)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "account.html", view.Page(c, "Account Management", items, nil))
}

// UpdateForm delivers the profile update view prefilled from the stored
// account, not the token snapshot, so the form always shows current data.
func (h *AccountHandler) UpdateForm(c echo.Context) error {
	ident, _ := middleware.IdentityFrom(c)

	ctx, cancel := dbCtx(c)
	defer cancel()
	acct, err := h.Accounts.GetByID(ctx, ident.AccountID)
	if err != nil {
		return err
	}

	items, err := nav(c, h.Classifications)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "update-account.html", view.Page(c, "Update Account Information", items, echo.Map{
		"AccountID": acct.ID,
		"FirstName": acct.FirstName,
		"LastName":  acct.LastName,
		"Email":     acct.Email,
	}))
}

// Update applies a validated profile change and re-issues the identity
// token so the UI reflects the new claims immediately. Tokens are always
// re-issued whole, never patched.
func (h *AccountHandler) Update(c echo.Context) error {
	f := c.Get(form.ContextKey).(form.AccountUpdate)

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Accounts.UpdateProfile(ctx, f.AccountID, f.FirstName, f.LastName, f.Email); err != nil {
		items, navErr := nav(c, h.Classifications)
		if navErr != nil {
			return navErr
		}
		return c.Render(http.StatusInternalServerError, "update-account.html", view.Page(c, "Update Account Information", items, echo.Map{
			"Notice":    "Sorry, the account update failed.",
			"AccountID": f.AccountID,
			"FirstName": f.FirstName,
			"LastName":  f.LastName,
			"Email":     f.Email,
		}))
	}

	acct, err := h.Accounts.GetByID(ctx, f.AccountID)
	if err != nil {
		return err
	}
	token, err := utils.IssueToken(acct, h.Cfg.JWTSecret, timeNow())
	if err != nil {
		return err
	}
	setIdentityCookie(c, token, h.Cfg.IsDev())

	view.SetNotice(c, "Account information updated successfully.")
	return c.Redirect(http.StatusSeeOther, "/account/")
}

// UpdatePassword hashes and stores a validated new password, then
// re-issues the token. A hashing failure short-circuits before the update
// statement runs.
func (h *AccountHandler) UpdatePassword(c echo.Context) error {
	f := c.Get(form.ContextKey).(form.PasswordUpdate)

	hash, err := utils.HashPassword(f.Password, h.Cfg.BcryptCost)
	if err != nil {
		view.SetNotice(c, "Sorry, there was an error updating the password.")
		return c.Redirect(http.StatusSeeOther, "/account/update")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Accounts.UpdatePassword(ctx, f.AccountID, hash); err != nil {
		view.SetNotice(c, "Sorry, the password update failed.")
		return c.Redirect(http.StatusSeeOther, "/account/update")
	}

	acct, err := h.Accounts.GetByID(ctx, f.AccountID)
	if err != nil {
		return err
	}
	token, err := utils.IssueToken(acct, h.Cfg.JWTSecret, timeNow())
	if err != nil {
		return err
	}
	setIdentityCookie(c, token, h.Cfg.IsDev())

	view.SetNotice(c, "Password updated successfully.")
	return c.Redirect(http.StatusSeeOther, "/account/")
}

// Logout clears the identity cookie and returns to the home page.
func (h *AccountHandler) Logout(c echo.Context) error {
	clearIdentityCookie(c)
	view.SetNotice(c, "You have been logged out.")
	return c.Redirect(http.StatusSeeOther, "/")
}
