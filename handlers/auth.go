package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fakti/templates"
)

// setAuthCookie writes the auth token cookie for the session.
func setAuthCookie(e *core.RequestEvent, token string) {
	http.SetCookie(e.Response, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// HandleLoginPage handles GET /login
func HandleLoginPage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if GetCurrentUser(e.Request) != nil {
			return e.Redirect(http.StatusFound, "/dashboard")
		}
		data := templates.LoginData{
			Next:   e.Request.URL.Query().Get("next"),
			Errors: make(map[string]string),
		}
		return templates.LoginPage(data, GetHeaderData(e.Request)).Render(e.Request.Context(), e.Response)
	}
}

// HandleLogin handles POST /login
func HandleLogin(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		email := strings.TrimSpace(e.Request.FormValue("email"))
		password := e.Request.FormValue("password")
		next := strings.TrimSpace(e.Request.FormValue("next"))

		fail := func() error {
			SetToast(e, "error", "Invalid email or password")
			data := templates.LoginData{
				Email:  email,
				Next:   next,
				Errors: map[string]string{"form": "Invalid email or password"},
			}
			return templates.LoginPage(data, GetHeaderData(e.Request)).Render(e.Request.Context(), e.Response)
		}

		user, err := app.FindAuthRecordByEmail("users", email)
		if err != nil {
			return fail()
		}
		if !user.ValidatePassword(password) {
			return fail()
		}

		token, err := user.NewAuthToken()
		if err != nil {
			log.Printf("auth: HandleLogin: could not issue auth token for %s: %v", user.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		setAuthCookie(e, token)

		target := "/dashboard"
		if next != "" && strings.HasPrefix(next, "/") {
			target = next
		}
		return e.Redirect(http.StatusFound, target)
	}
}

// HandleRegisterPage handles GET /register
func HandleRegisterPage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if GetCurrentUser(e.Request) != nil {
			return e.Redirect(http.StatusFound, "/dashboard")
		}
		data := templates.RegisterData{Errors: make(map[string]string)}
		return templates.RegisterPage(data, GetHeaderData(e.Request)).Render(e.Request.Context(), e.Response)
	}
}

// HandleRegister handles POST /register
func HandleRegister(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		email := strings.TrimSpace(e.Request.FormValue("email"))
		businessName := strings.TrimSpace(e.Request.FormValue("business_name"))
		password := e.Request.FormValue("password")
		passwordConfirm := e.Request.FormValue("password_confirm")

		errors := make(map[string]string)
		if email == "" {
			errors["email"] = "Email is required"
		}
		if len(password) < 8 {
			errors["password"] = "Password must be at least 8 characters"
		}
		if password != passwordConfirm {
			errors["password_confirm"] = "Passwords do not match"
		}
		if _, err := app.FindAuthRecordByEmail("users", email); email != "" && err == nil {
			errors["email"] = "An account with this email already exists"
		}

		if len(errors) > 0 {
			SetToast(e, "warning", "Please fix the errors below")
			data := templates.RegisterData{
				Email:        email,
				BusinessName: businessName,
				Errors:       errors,
			}
			return templates.RegisterPage(data, GetHeaderData(e.Request)).Render(e.Request.Context(), e.Response)
		}

		col, err := app.FindCollectionByNameOrId("users")
		if err != nil {
			log.Printf("auth: HandleRegister: could not find users collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		user := core.NewRecord(col)
		user.SetEmail(email)
		user.SetPassword(password)
		user.Set("business_name", businessName)

		if err := app.Save(user); err != nil {
			log.Printf("auth: HandleRegister: could not save user: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		token, err := user.NewAuthToken()
		if err != nil {
			log.Printf("auth: HandleRegister: could not issue auth token for %s: %v", user.Id, err)
			return e.Redirect(http.StatusFound, "/login")
		}
		setAuthCookie(e, token)

		SetToast(e, "success", "Welcome to Fakti")
		return e.Redirect(http.StatusFound, "/dashboard")
	}
}

// HandleLogout handles POST /logout
func HandleLogout(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		http.SetCookie(e.Response, &http.Cookie{
			Name:     AuthCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
		return e.Redirect(http.StatusFound, "/login")
	}
}
