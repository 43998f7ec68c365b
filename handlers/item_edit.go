package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fakti/services"
	"fakti/templates"
)

// HandleItemEdit handles GET /items/{id}/edit
func HandleItemEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)
		itemID := e.Request.PathValue("id")

		item, ok := findOwned(app, "catalog_items", itemID, user.Id)
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Item not found")
		}

		data := templates.ItemFormData{
			Title:       "Edit " + item.GetString("name"),
			Action:      "/items/" + item.Id + "/edit",
			ID:          item.Id,
			Name:        item.GetString("name"),
			Description: item.GetString("description"),
			UnitPrice:   fmt.Sprintf("%.2f", item.GetFloat("unit_price")),
			Errors:      make(map[string]string),
		}
		return renderItemForm(e, data)
	}
}

// HandleItemUpdate handles POST /items/{id}/edit
func HandleItemUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)
		itemID := e.Request.PathValue("id")

		item, ok := findOwned(app, "catalog_items", itemID, user.Id)
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Item not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		data := templates.ItemFormData{
			Title:       "Edit " + item.GetString("name"),
			Action:      "/items/" + item.Id + "/edit",
			ID:          item.Id,
			Name:        strings.TrimSpace(e.Request.FormValue("name")),
			Description: strings.TrimSpace(e.Request.FormValue("description")),
			UnitPrice:   strings.TrimSpace(e.Request.FormValue("unit_price")),
			Errors:      make(map[string]string),
		}

		validateItemForm(&data)
		if len(data.Errors) > 0 {
			SetToast(e, "warning", "Please fix the errors below")
			return renderItemForm(e, data)
		}

		item.Set("name", data.Name)
		item.Set("description", data.Description)
		item.Set("unit_price", services.ParseAmount(data.UnitPrice))

		if err := app.Save(item); err != nil {
			log.Printf("item_edit: HandleItemUpdate: could not save catalog item %s: %v", item.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Item updated")
		return redirectAfterSave(e, "/items")
	}
}
