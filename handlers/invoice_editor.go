package handlers

import (
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fakti/services"
	"fakti/templates"
)

// The editor fragment endpoints are stateless: each request carries the whole
// form (hx-include="closest form"), the handler rebuilds the editor model
// from it, applies one mutation, recomputes and renders the fragment with
// rewritten positional field names.

func renderEditor(e *core.RequestEvent, rows []templates.LineItemRowData) error {
	data := buildEditorData(rows, e.Request.FormValue("discount"))
	return templates.LineItemsSection(data).Render(e.Request.Context(), e.Response)
}

// HandleEditorAddRow handles POST /invoices/editor/add
func HandleEditorAddRow(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		rows := editorRowsFromForm(e.Request.Form)
		ed := services.NewEditor(rowsToItems(rows))
		added := ed.Add()

		// Focus lands on the new row's description so typing can continue
		// immediately after the swap.
		rows = append(rows, templates.LineItemRowData{Index: added.Index, Focus: true})
		reindexRows(rows)
		return renderEditor(e, rows)
	}
}

// HandleEditorRequestDelete handles POST /invoices/editor/delete?index=N
// First phase of the delete: the row is marked pending and the fragment shows
// confirm/cancel in its place. Nothing is removed yet.
func HandleEditorRequestDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		index, err := strconv.Atoi(e.Request.URL.Query().Get("index"))
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid line item index")
		}

		rows := editorRowsFromForm(e.Request.Form)
		ed := services.NewEditor(rowsToItems(rows))
		if err := ed.RequestDelete(index); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Line item not found")
		}

		rows[index].PendingDelete = true
		return renderEditor(e, rows)
	}
}

// HandleEditorConfirmDelete handles POST /invoices/editor/delete/confirm?index=N
// Second phase: the row is removed and the remaining rows re-indexed to a
// dense 0..N-1 sequence.
func HandleEditorConfirmDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		index, err := strconv.Atoi(e.Request.URL.Query().Get("index"))
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid line item index")
		}

		rows := editorRowsFromForm(e.Request.Form)
		ed := services.NewEditor(rowsToItems(rows))
		if err := ed.RequestDelete(index); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Line item not found")
		}
		if err := ed.ConfirmDelete(index); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Line item not found")
		}

		rows = append(rows[:index], rows[index+1:]...)
		reindexRows(rows)
		return renderEditor(e, rows)
	}
}

// HandleEditorCancelDelete handles POST /invoices/editor/delete/cancel
// Aborts a pending delete; the fragment is re-rendered with no row removed
// and no pending state.
func HandleEditorCancelDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		rows := editorRowsFromForm(e.Request.Form)
		return renderEditor(e, rows)
	}
}

// HandleEditorRecompute handles POST /invoices/editor/recompute
// Re-renders the fragment so the per-row and aggregate totals reflect the
// posted values, e.g. after the discount changes.
func HandleEditorRecompute(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		rows := editorRowsFromForm(e.Request.Form)
		return renderEditor(e, rows)
	}
}
