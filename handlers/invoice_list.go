package handlers

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fakti/services"
	"fakti/templates"
)

// fetchInvoices returns the owner's invoices, optionally filtered by status,
// newest first.
func fetchInvoices(app *pocketbase.PocketBase, ownerID, status string) []*core.Record {
	filter := "owner = {:owner}"
	params := map[string]any{"owner": ownerID}
	if status != "" {
		filter += " && status = {:status}"
		params["status"] = status
	}

	records, err := app.FindRecordsByFilter("invoices", filter, "-created", 0, 0, params)
	if err != nil {
		log.Printf("invoice_list: fetchInvoices: could not query invoices: %v", err)
		return nil
	}
	return records
}

// clientNames resolves the client name for each invoice in one pass.
func clientNames(app *pocketbase.PocketBase, invoices []*core.Record) map[string]string {
	names := make(map[string]string)
	for _, inv := range invoices {
		clientID := inv.GetString("client")
		if clientID == "" {
			continue
		}
		if _, done := names[clientID]; done {
			continue
		}
		client, err := app.FindRecordById("clients", clientID)
		if err != nil {
			log.Printf("invoice_list: clientNames: could not find client %s: %v", clientID, err)
			names[clientID] = ""
			continue
		}
		names[clientID] = client.GetString("name")
	}
	return names
}

// HandleInvoiceList handles GET /invoices
func HandleInvoiceList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)
		statusFilter := e.Request.URL.Query().Get("status")
		if !validInvoiceStatus(statusFilter) {
			statusFilter = ""
		}

		// Stats always cover all invoices, not just the filtered view.
		all := fetchInvoices(app, user.Id, "")
		data := templates.InvoiceListData{
			StatusFilter:  statusFilter,
			Statuses:      invoiceStatuses,
			TotalInvoices: len(all),
		}
		for _, inv := range all {
			total := inv.GetFloat("total")
			data.TotalAmount += total
			switch inv.GetString("status") {
			case "draft":
				data.DraftCount++
			case "sent":
				data.SentCount++
				data.TotalOutstanding += total
			case "paid":
				data.PaidCount++
				data.TotalPaid += total
			case "overdue":
				data.OverdueCount++
				data.TotalOutstanding += total
			}
		}

		visible := all
		if statusFilter != "" {
			visible = fetchInvoices(app, user.Id, statusFilter)
		}
		names := clientNames(app, visible)
		for _, inv := range visible {
			data.Invoices = append(data.Invoices, templates.InvoiceRow{
				ID:            inv.Id,
				InvoiceNumber: inv.GetString("invoice_number"),
				ClientName:    names[inv.GetString("client")],
				IssueDate:     inv.GetString("issue_date"),
				DueDate:       inv.GetString("due_date"),
				Status:        inv.GetString("status"),
				Total:         inv.GetFloat("total"),
				Currency:      inv.GetString("currency"),
			})
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.InvoiceListContent(data)
		} else {
			component = templates.InvoiceListPage(data, GetHeaderData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleInvoiceExportExcel handles GET /invoices/export
// Exports the (optionally status-filtered) invoice register as xlsx.
func HandleInvoiceExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)
		statusFilter := e.Request.URL.Query().Get("status")
		if !validInvoiceStatus(statusFilter) {
			statusFilter = ""
		}

		invoices := fetchInvoices(app, user.Id, statusFilter)
		names := clientNames(app, invoices)

		var rows []services.InvoiceRegisterRow
		for _, inv := range invoices {
			rows = append(rows, services.InvoiceRegisterRow{
				InvoiceNumber: inv.GetString("invoice_number"),
				ClientName:    names[inv.GetString("client")],
				IssueDate:     inv.GetString("issue_date"),
				DueDate:       inv.GetString("due_date"),
				Status:        inv.GetString("status"),
				Currency:      inv.GetString("currency"),
				Subtotal:      inv.GetFloat("subtotal"),
				TotalTax:      inv.GetFloat("total_tax"),
				Discount:      inv.GetFloat("discount"),
				Total:         inv.GetFloat("total"),
			})
		}

		title := "Invoices"
		if statusFilter != "" {
			title = "Invoices - " + statusFilter
		}

		fileBytes, err := services.GenerateInvoiceRegisterExcel(title, rows)
		if err != nil {
			log.Printf("invoice_list: HandleInvoiceExportExcel: could not generate file: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not generate the export file")
		}

		e.Response.Header().Set("Content-Disposition", `attachment; filename="invoices.xlsx"`)
		return e.Blob(http.StatusOK,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", fileBytes)
	}
}
