package handlers

import (
	"log"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fakti/templates"
)

// HandleClientList handles GET /clients
func HandleClientList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)

		records, err := app.FindRecordsByFilter(
			"clients",
			"owner = {:owner}",
			"name",
			0,
			0,
			map[string]any{"owner": user.Id},
		)
		if err != nil {
			log.Printf("client_list: HandleClientList: could not query clients: %v", err)
			records = nil
		}

		var rows []templates.ClientRow
		for _, rec := range records {
			rows = append(rows, templates.ClientRow{
				ID:      rec.Id,
				Name:    rec.GetString("name"),
				Email:   rec.GetString("email"),
				Phone:   rec.GetString("phone"),
				City:    rec.GetString("city"),
				Country: rec.GetString("country"),
			})
		}

		data := templates.ClientListData{Clients: rows}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.ClientListContent(data)
		} else {
			component = templates.ClientListPage(data, GetHeaderData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
