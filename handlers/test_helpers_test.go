package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fakti/templates"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// withUser attaches a signed-in user to the request context the way
// LoadAuthMiddleware does, so protected handlers see an authenticated
// request.
func withUser(e *core.RequestEvent, user *core.Record) *core.RequestEvent {
	headerData := templates.HeaderData{
		UserID:       user.Id,
		UserEmail:    user.Email(),
		BusinessName: user.GetString("business_name"),
	}
	ctx := context.WithValue(e.Request.Context(), CurrentUserKey, user)
	ctx = context.WithValue(ctx, HeaderDataKey, headerData)
	e.Request = e.Request.WithContext(ctx)
	return e
}
