package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fakti/services"
	"fakti/templates"
)

// loadInvoiceRows reads the stored line items of an invoice into editor rows
// ordered by position.
func loadInvoiceRows(app *pocketbase.PocketBase, invoiceID string) []templates.LineItemRowData {
	records, err := app.FindRecordsByFilter(
		"invoice_items",
		"invoice = {:invoice}",
		"position",
		0,
		0,
		map[string]any{"invoice": invoiceID},
	)
	if err != nil {
		log.Printf("invoice_edit: loadInvoiceRows: could not query invoice_items: %v", err)
		return nil
	}

	var rows []templates.LineItemRowData
	for i, rec := range records {
		rows = append(rows, templates.LineItemRowData{
			Index:       i,
			Description: rec.GetString("description"),
			Quantity:    fmt.Sprintf("%g", rec.GetFloat("quantity")),
			Rate:        fmt.Sprintf("%g", rec.GetFloat("rate")),
			TaxRate:     fmt.Sprintf("%g", rec.GetFloat("tax_rate")),
		})
	}
	return rows
}

// HandleInvoiceEdit handles GET /invoices/{id}/edit
func HandleInvoiceEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)
		invoiceID := e.Request.PathValue("id")

		invoice, ok := findOwned(app, "invoices", invoiceID, user.Id)
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Invoice not found")
		}

		rows := loadInvoiceRows(app, invoice.Id)
		if len(rows) == 0 {
			rows = []templates.LineItemRowData{{Index: 0}}
		}

		discount := ""
		if d := invoice.GetFloat("discount"); d != 0 {
			discount = fmt.Sprintf("%g", d)
		}

		data := templates.InvoiceFormData{
			Title:         "Edit " + invoice.GetString("invoice_number"),
			Action:        "/invoices/" + invoice.Id + "/edit",
			ID:            invoice.Id,
			InvoiceNumber: invoice.GetString("invoice_number"),
			IssueDate:     invoice.GetString("issue_date"),
			DueDate:       invoice.GetString("due_date"),
			Currency:      invoice.GetString("currency"),
			Status:        invoice.GetString("status"),
			Notes:         invoice.GetString("notes"),
			Statuses:      invoiceStatuses,
			Clients:       fetchClientOptions(app, user.Id, invoice.GetString("client")),
			CatalogItems:  fetchCatalogOptions(app, user.Id),
			DraftKey:      uuid.NewString(),
			Errors:        make(map[string]string),
		}
		data.Editor = buildEditorData(rows, discount)

		return renderInvoiceForm(e, data)
	}
}

// HandleInvoiceUpdate handles POST /invoices/{id}/edit
func HandleInvoiceUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)
		invoiceID := e.Request.PathValue("id")

		invoice, ok := findOwned(app, "invoices", invoiceID, user.Id)
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Invoice not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		data := invoiceFormFromRequest(e)
		data.Title = "Edit " + invoice.GetString("invoice_number")
		data.Action = "/invoices/" + invoice.Id + "/edit"
		data.ID = invoice.Id

		clientID := e.Request.FormValue("client")
		rows := editorRowsFromForm(e.Request.Form)
		items := rowsToItems(rows)
		discount := e.Request.FormValue("discount")

		if clientID == "" {
			data.Errors["client"] = "Client is required"
		} else if _, ok := findOwned(app, "clients", clientID, user.Id); !ok {
			data.Errors["client"] = "Client is required"
			clientID = ""
		}
		if data.InvoiceNumber == "" {
			data.Errors["invoice_number"] = "Invoice number is required"
		} else if services.InvoiceNumberTaken(app, user.Id, data.InvoiceNumber, invoice.Id) {
			data.Errors["invoice_number"] = "This invoice number is already used"
		}
		if !validInvoiceStatus(data.Status) {
			data.Status = invoice.GetString("status")
		}

		itemErrs := services.ValidateLineItems(items)

		if len(data.Errors) > 0 || len(itemErrs) > 0 {
			SetToast(e, "warning", "Please fix the errors below")
			data.Clients = fetchClientOptions(app, user.Id, clientID)
			data.CatalogItems = fetchCatalogOptions(app, user.Id)
			data.Editor = buildEditorData(rows, discount)
			data.Editor.Error = services.FirstValidationMessage(itemErrs)
			return renderInvoiceForm(e, data)
		}

		totals := services.CalcInvoiceTotals(items, services.ParseAmount(discount))

		invoice.Set("client", clientID)
		invoice.Set("invoice_number", data.InvoiceNumber)
		invoice.Set("issue_date", data.IssueDate)
		invoice.Set("due_date", data.DueDate)
		invoice.Set("currency", data.Currency)
		invoice.Set("status", data.Status)
		invoice.Set("notes", data.Notes)
		invoice.Set("discount", totals.Discount)
		invoice.Set("subtotal", totals.Subtotal)
		invoice.Set("total_tax", totals.TotalTax)
		invoice.Set("total", totals.Total)

		if err := app.Save(invoice); err != nil {
			log.Printf("invoice_edit: HandleInvoiceUpdate: could not save invoice %s: %v", invoice.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		if err := persistInvoiceItems(app, invoice.Id, items); err != nil {
			log.Printf("invoice_edit: HandleInvoiceUpdate: could not save line items: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		discardDraft(app, user.Id, data.DraftKey)

		SetToast(e, "success", "Invoice updated")
		return redirectAfterSave(e, "/invoices/"+invoice.Id)
	}
}
