package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// findOwned loads a record and verifies it belongs to ownerID. A missing
// record and a record owned by someone else are indistinguishable to the
// caller, so cross-tenant probing cannot confirm existence.
func findOwned(app *pocketbase.PocketBase, collection, id, ownerID string) (*core.Record, bool) {
	if id == "" {
		return nil, false
	}
	rec, err := app.FindRecordById(collection, id)
	if err != nil || rec.GetString("owner") != ownerID {
		return nil, false
	}
	return rec, true
}

// redirectAfterSave issues an HX-Redirect for HTMX requests and a regular
// 302 otherwise.
func redirectAfterSave(e *core.RequestEvent, target string) error {
	if e.Request.Header.Get("HX-Request") == "true" {
		e.Response.Header().Set("HX-Redirect", target)
		return e.String(http.StatusOK, "")
	}
	return e.Redirect(http.StatusFound, target)
}
