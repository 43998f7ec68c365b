package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fakti/services"
)

// HandleClientExportExcel handles GET /clients/export
// The export uses the import template's column layout so a downloaded file
// doubles as an import template.
func HandleClientExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
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
			log.Printf("client_export: HandleClientExportExcel: could not query clients: %v", err)
			records = nil
		}

		var rows []services.ClientExportRow
		for _, rec := range records {
			rows = append(rows, services.ClientExportRow{
				Name:    rec.GetString("name"),
				Email:   rec.GetString("email"),
				Phone:   rec.GetString("phone"),
				Address: rec.GetString("address"),
				City:    rec.GetString("city"),
				Country: rec.GetString("country"),
				Notes:   rec.GetString("notes"),
			})
		}

		fileBytes, err := services.GenerateClientListExcel(rows)
		if err != nil {
			log.Printf("client_export: HandleClientExportExcel: could not generate file: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not generate the export file")
		}

		e.Response.Header().Set("Content-Disposition", `attachment; filename="clients.xlsx"`)
		return e.Blob(http.StatusOK,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", fileBytes)
	}
}
