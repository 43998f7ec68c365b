package handlers

import (
	"context"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fakti/templates"
)

type contextKey string

const CurrentUserKey contextKey = "currentUser"
const HeaderDataKey contextKey = "headerData"

// AuthCookieName holds the PocketBase auth token between requests.
const AuthCookieName = "fakti_auth"

// GetCurrentUser extracts the signed-in user record from the request context.
func GetCurrentUser(r *http.Request) *core.Record {
	if val, ok := r.Context().Value(CurrentUserKey).(*core.Record); ok {
		return val
	}
	return nil
}

// GetHeaderData extracts the pre-built HeaderData from the request context.
func GetHeaderData(r *http.Request) templates.HeaderData {
	if val, ok := r.Context().Value(HeaderDataKey).(templates.HeaderData); ok {
		return val
	}
	return templates.HeaderData{}
}

// LoadAuthMiddleware reads the auth token cookie, resolves the user record
// and stores it with the pre-built HeaderData in the request context. An
// invalid or expired token clears the cookie; the request continues
// unauthenticated.
func LoadAuthMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var user *core.Record

		cookie, err := e.Request.Cookie(AuthCookieName)
		if err == nil && cookie.Value != "" {
			rec, err := app.FindAuthRecordByToken(cookie.Value, core.TokenTypeAuth)
			if err == nil {
				user = rec
			} else {
				http.SetCookie(e.Response, &http.Cookie{
					Name:     AuthCookieName,
					Value:    "",
					Path:     "/",
					MaxAge:   -1,
					HttpOnly: true,
				})
			}
		}

		headerData := templates.HeaderData{}
		if user != nil {
			headerData = templates.HeaderData{
				UserID:       user.Id,
				UserEmail:    user.Email(),
				BusinessName: user.GetString("business_name"),
			}
		}

		ctx := context.WithValue(e.Request.Context(), CurrentUserKey, user)
		ctx = context.WithValue(ctx, HeaderDataKey, headerData)
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}

// RequireAuth wraps a handler and redirects unauthenticated requests to the
// login page. HTMX requests get an HX-Redirect instead of a 302 so the
// browser performs a full navigation.
func RequireAuth(next func(*core.RequestEvent) error) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if GetCurrentUser(e.Request) == nil {
			target := "/login?next=" + e.Request.URL.Path
			if e.Request.Header.Get("HX-Request") == "true" {
				e.Response.Header().Set("HX-Redirect", target)
				return e.String(http.StatusOK, "")
			}
			return e.Redirect(http.StatusFound, target)
		}
		return next(e)
	}
}
