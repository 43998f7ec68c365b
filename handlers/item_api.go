package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleItemDetailAPI handles GET /api/items/{id}
// Returns the catalog item as JSON; the invoice editor uses it to prefill a
// line-item row.
func HandleItemDetailAPI(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)
		itemID := e.Request.PathValue("id")

		item, ok := findOwned(app, "catalog_items", itemID, user.Id)
		if !ok {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":          item.Id,
			"name":        item.GetString("name"),
			"description": item.GetString("description"),
			"unit_price":  item.GetFloat("unit_price"),
		})
	}
}
