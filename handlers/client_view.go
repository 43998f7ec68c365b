package handlers

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fakti/templates"
)

// HandleClientView handles GET /clients/{id}
func HandleClientView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)
		clientID := e.Request.PathValue("id")

		client, ok := findOwned(app, "clients", clientID, user.Id)
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Client not found")
		}

		invoices, err := app.FindRecordsByFilter(
			"invoices",
			"owner = {:owner} && client = {:client}",
			"-created",
			0,
			0,
			map[string]any{"owner": user.Id, "client": client.Id},
		)
		if err != nil {
			log.Printf("client_view: HandleClientView: could not query invoices for client %s: %v", client.Id, err)
			invoices = nil
		}

		var rows []templates.ClientInvoiceRow
		for _, inv := range invoices {
			rows = append(rows, templates.ClientInvoiceRow{
				ID:            inv.Id,
				InvoiceNumber: inv.GetString("invoice_number"),
				IssueDate:     inv.GetString("issue_date"),
				Status:        inv.GetString("status"),
				Total:         inv.GetFloat("total"),
				Currency:      inv.GetString("currency"),
			})
		}

		data := templates.ClientDetailData{
			ID:       client.Id,
			Name:     client.GetString("name"),
			Email:    client.GetString("email"),
			Phone:    client.GetString("phone"),
			Address:  client.GetString("address"),
			City:     client.GetString("city"),
			Country:  client.GetString("country"),
			Notes:    client.GetString("notes"),
			Invoices: rows,
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.ClientDetailContent(data)
		} else {
			component = templates.ClientDetailPage(data, GetHeaderData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
