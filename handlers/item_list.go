package handlers

import (
	"log"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fakti/templates"
)

// HandleItemList handles GET /items
func HandleItemList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)

		records, err := app.FindRecordsByFilter(
			"catalog_items",
			"owner = {:owner}",
			"name",
			0,
			0,
			map[string]any{"owner": user.Id},
		)
		if err != nil {
			log.Printf("item_list: HandleItemList: could not query catalog_items: %v", err)
			records = nil
		}

		var rows []templates.CatalogItemRow
		for _, rec := range records {
			rows = append(rows, templates.CatalogItemRow{
				ID:          rec.Id,
				Name:        rec.GetString("name"),
				Description: rec.GetString("description"),
				UnitPrice:   rec.GetFloat("unit_price"),
			})
		}

		data := templates.ItemListData{Items: rows}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.ItemListContent(data)
		} else {
			component = templates.ItemListPage(data, GetHeaderData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
