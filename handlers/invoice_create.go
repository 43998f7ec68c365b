package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fakti/services"
	"fakti/templates"
)

// HandleInvoiceCreate handles GET /invoices/add
func HandleInvoiceCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)
		now := time.Now()

		preselected := e.Request.URL.Query().Get("client")

		data := templates.InvoiceFormData{
			Title:         "New invoice",
			Action:        "/invoices/add",
			InvoiceNumber: services.NextInvoiceNumber(app, user.Id, now),
			IssueDate:     now.Format("2006-01-02"),
			DueDate:       now.AddDate(0, 0, 30).Format("2006-01-02"),
			Currency:      "USD",
			Status:        "draft",
			Statuses:      invoiceStatuses,
			Clients:       fetchClientOptions(app, user.Id, preselected),
			CatalogItems:  fetchCatalogOptions(app, user.Id),
			DraftKey:      uuid.NewString(),
			Errors:        make(map[string]string),
		}
		// The editor always starts with one empty row.
		data.Editor = buildEditorData([]templates.LineItemRowData{{Index: 0}}, "")

		return renderInvoiceForm(e, data)
	}
}

// HandleInvoiceSave handles POST /invoices/add
func HandleInvoiceSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		data := invoiceFormFromRequest(e)
		data.Title = "New invoice"
		data.Action = "/invoices/add"

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
		} else if services.InvoiceNumberTaken(app, user.Id, data.InvoiceNumber, "") {
			data.Errors["invoice_number"] = "This invoice number is already used"
		}
		if !validInvoiceStatus(data.Status) {
			data.Status = "draft"
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

		col, err := app.FindCollectionByNameOrId("invoices")
		if err != nil {
			log.Printf("invoice_create: HandleInvoiceSave: could not find invoices collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("owner", user.Id)
		record.Set("client", clientID)
		record.Set("invoice_number", data.InvoiceNumber)
		record.Set("issue_date", data.IssueDate)
		record.Set("due_date", data.DueDate)
		record.Set("currency", data.Currency)
		record.Set("status", data.Status)
		record.Set("notes", data.Notes)
		record.Set("discount", totals.Discount)
		record.Set("subtotal", totals.Subtotal)
		record.Set("total_tax", totals.TotalTax)
		record.Set("total", totals.Total)

		if err := app.Save(record); err != nil {
			log.Printf("invoice_create: HandleInvoiceSave: could not save invoice: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		if err := persistInvoiceItems(app, record.Id, items); err != nil {
			log.Printf("invoice_create: HandleInvoiceSave: could not save line items: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		discardDraft(app, user.Id, data.DraftKey)

		SetToast(e, "success", "Invoice "+data.InvoiceNumber+" created")
		return redirectAfterSave(e, "/invoices/"+record.Id)
	}
}
