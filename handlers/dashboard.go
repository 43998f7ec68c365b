package handlers

import (
	"log"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fakti/templates"
)

const recentInvoiceLimit = 5

// HandleDashboard handles GET /dashboard
func HandleDashboard(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)

		data := templates.DashboardData{}

		clients, err := app.FindRecordsByFilter(
			"clients",
			"owner = {:owner}",
			"", 0, 0,
			map[string]any{"owner": user.Id},
		)
		if err != nil {
			log.Printf("dashboard: HandleDashboard: could not query clients: %v", err)
		}
		data.ClientCount = len(clients)

		invoices := fetchInvoices(app, user.Id, "")
		data.InvoiceCount = len(invoices)
		for _, inv := range invoices {
			total := inv.GetFloat("total")
			switch inv.GetString("status") {
			case "draft":
				data.DraftCount++
			case "sent":
				data.TotalOutstanding += total
			case "paid":
				data.TotalPaid += total
			case "overdue":
				data.OverdueCount++
				data.TotalOutstanding += total
			}
		}

		recent := invoices
		if len(recent) > recentInvoiceLimit {
			recent = recent[:recentInvoiceLimit]
		}
		names := clientNames(app, recent)
		for _, inv := range recent {
			data.RecentInvoices = append(data.RecentInvoices, templates.InvoiceRow{
				ID:            inv.Id,
				InvoiceNumber: inv.GetString("invoice_number"),
				ClientName:    names[inv.GetString("client")],
				IssueDate:     inv.GetString("issue_date"),
				Status:        inv.GetString("status"),
				Total:         inv.GetFloat("total"),
				Currency:      inv.GetString("currency"),
			})
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.DashboardContent(data)
		} else {
			component = templates.DashboardPage(data, GetHeaderData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
