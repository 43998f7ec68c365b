package handlers

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fakti/templates"
)

// HandleInvoiceView handles GET /invoices/{id}
func HandleInvoiceView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)
		invoiceID := e.Request.PathValue("id")

		invoice, ok := findOwned(app, "invoices", invoiceID, user.Id)
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Invoice not found")
		}

		clientName := ""
		if client, err := app.FindRecordById("clients", invoice.GetString("client")); err == nil {
			clientName = client.GetString("name")
		} else {
			log.Printf("invoice_view: HandleInvoiceView: could not find client for invoice %s: %v", invoice.Id, err)
		}

		items, err := app.FindRecordsByFilter(
			"invoice_items",
			"invoice = {:invoice}",
			"position",
			0,
			0,
			map[string]any{"invoice": invoice.Id},
		)
		if err != nil {
			log.Printf("invoice_view: HandleInvoiceView: could not query invoice_items: %v", err)
			items = nil
		}

		data := templates.InvoiceViewData{
			ID:            invoice.Id,
			InvoiceNumber: invoice.GetString("invoice_number"),
			ClientID:      invoice.GetString("client"),
			ClientName:    clientName,
			IssueDate:     invoice.GetString("issue_date"),
			DueDate:       invoice.GetString("due_date"),
			Status:        invoice.GetString("status"),
			Currency:      invoice.GetString("currency"),
			Notes:         invoice.GetString("notes"),
			Subtotal:      invoice.GetFloat("subtotal"),
			TotalTax:      invoice.GetFloat("total_tax"),
			Discount:      invoice.GetFloat("discount"),
			Total:         invoice.GetFloat("total"),
			NextStatuses:  statusTransitions[invoice.GetString("status")],
		}

		for i, rec := range items {
			quantity := rec.GetFloat("quantity")
			rate := rec.GetFloat("rate")
			taxRate := rec.GetFloat("tax_rate")
			data.Items = append(data.Items, templates.InvoiceViewItem{
				Position:    i + 1,
				Description: rec.GetString("description"),
				Quantity:    quantity,
				Rate:        rate,
				TaxRate:     taxRate,
				Total:       quantity * rate * (1 + taxRate/100),
			})
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.InvoiceViewContent(data)
		} else {
			component = templates.InvoiceViewPage(data, GetHeaderData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
