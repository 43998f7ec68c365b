package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fakti/templates"
)

// HandleInvoiceDeleteConfirm handles GET /invoices/{id}/delete
func HandleInvoiceDeleteConfirm(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)
		invoiceID := e.Request.PathValue("id")

		invoice, ok := findOwned(app, "invoices", invoiceID, user.Id)
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Invoice not found")
		}

		data := templates.ConfirmDeleteData{
			Title:     "Delete invoice",
			Prompt:    "Delete " + invoice.GetString("invoice_number") + "? This cannot be undone.",
			Action:    "/invoices/" + invoice.Id + "/delete",
			CancelURL: "/invoices/" + invoice.Id,
		}
		return templates.ConfirmDeletePage(data, GetHeaderData(e.Request)).Render(e.Request.Context(), e.Response)
	}
}

// HandleInvoiceDelete handles POST /invoices/{id}/delete
func HandleInvoiceDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)
		invoiceID := e.Request.PathValue("id")

		invoice, ok := findOwned(app, "invoices", invoiceID, user.Id)
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Invoice not found")
		}

		// Line items cascade from the invoice relation.
		if err := app.Delete(invoice); err != nil {
			log.Printf("invoice_delete: HandleInvoiceDelete: could not delete invoice %s: %v", invoice.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Invoice deleted")
		return redirectAfterSave(e, "/invoices")
	}
}
