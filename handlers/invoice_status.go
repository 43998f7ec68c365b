package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// statusTransitions lists the statuses an invoice may move to from each
// current status. Paid and cancelled are terminal.
var statusTransitions = map[string][]string{
	"draft":     {"sent", "cancelled"},
	"sent":      {"paid", "overdue", "cancelled"},
	"overdue":   {"paid", "cancelled"},
	"paid":      nil,
	"cancelled": nil,
}

func transitionAllowed(from, to string) bool {
	for _, s := range statusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// HandleInvoiceStatusChange handles POST /invoices/{id}/status/{status}
func HandleInvoiceStatusChange(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)
		invoiceID := e.Request.PathValue("id")
		newStatus := e.Request.PathValue("status")

		invoice, ok := findOwned(app, "invoices", invoiceID, user.Id)
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Invoice not found")
		}

		current := invoice.GetString("status")
		if !transitionAllowed(current, newStatus) {
			return ErrorToast(e, http.StatusBadRequest,
				"Cannot change a "+current+" invoice to "+newStatus)
		}

		invoice.Set("status", newStatus)
		if err := app.Save(invoice); err != nil {
			log.Printf("invoice_status: HandleInvoiceStatusChange: could not save invoice %s: %v", invoice.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Invoice marked "+newStatus)
		return redirectAfterSave(e, "/invoices/"+invoice.Id)
	}
}
