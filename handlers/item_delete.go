package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fakti/templates"
)

// HandleItemDeleteConfirm handles GET /items/{id}/delete
func HandleItemDeleteConfirm(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)
		itemID := e.Request.PathValue("id")

		item, ok := findOwned(app, "catalog_items", itemID, user.Id)
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Item not found")
		}

		data := templates.ConfirmDeleteData{
			Title:     "Delete item",
			Prompt:    "Delete " + item.GetString("name") + "? Existing invoices keep their line items.",
			Action:    "/items/" + item.Id + "/delete",
			CancelURL: "/items",
		}
		return templates.ConfirmDeletePage(data, GetHeaderData(e.Request)).Render(e.Request.Context(), e.Response)
	}
}

// HandleItemDelete handles POST /items/{id}/delete
func HandleItemDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)
		itemID := e.Request.PathValue("id")

		item, ok := findOwned(app, "catalog_items", itemID, user.Id)
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Item not found")
		}

		if err := app.Delete(item); err != nil {
			log.Printf("item_delete: HandleItemDelete: could not delete catalog item %s: %v", item.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Item deleted")
		return redirectAfterSave(e, "/items")
	}
}
