package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleInvoiceDraftSave handles POST /invoices/draft
// Fire-and-forget autosave of the invoice form. The serialized form body is
// stored under the form's draft key; failures are logged and ignored so
// editing is never interrupted. Snapshots are not read back automatically.
func HandleInvoiceDraftSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)

		if err := e.Request.ParseForm(); err != nil {
			return e.NoContent(http.StatusNoContent)
		}

		draftKey := e.Request.FormValue("draft_key")
		if draftKey == "" {
			return e.NoContent(http.StatusNoContent)
		}

		payload := e.Request.Form.Encode()

		existing, err := app.FindRecordsByFilter(
			"invoice_drafts",
			"owner = {:owner} && draft_key = {:key}",
			"",
			1,
			0,
			map[string]any{"owner": user.Id, "key": draftKey},
		)
		if err == nil && len(existing) > 0 {
			rec := existing[0]
			rec.Set("payload", payload)
			if err := app.Save(rec); err != nil {
				log.Printf("invoice_draft: HandleInvoiceDraftSave: could not update draft %s: %v", draftKey, err)
			}
			return e.NoContent(http.StatusNoContent)
		}

		col, err := app.FindCollectionByNameOrId("invoice_drafts")
		if err != nil {
			log.Printf("invoice_draft: HandleInvoiceDraftSave: could not find invoice_drafts collection: %v", err)
			return e.NoContent(http.StatusNoContent)
		}

		rec := core.NewRecord(col)
		rec.Set("owner", user.Id)
		rec.Set("draft_key", draftKey)
		rec.Set("payload", payload)
		if err := app.Save(rec); err != nil {
			log.Printf("invoice_draft: HandleInvoiceDraftSave: could not save draft %s: %v", draftKey, err)
		}
		return e.NoContent(http.StatusNoContent)
	}
}
