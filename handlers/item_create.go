package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fakti/services"
	"fakti/templates"
)

func renderItemForm(e *core.RequestEvent, data templates.ItemFormData) error {
	var component templ.Component
	if e.Request.Header.Get("HX-Request") == "true" {
		component = templates.ItemFormContent(data)
	} else {
		component = templates.ItemFormPage(data, GetHeaderData(e.Request))
	}
	return component.Render(e.Request.Context(), e.Response)
}

// validateItemForm fills data.Errors; empty map means the form is valid.
func validateItemForm(data *templates.ItemFormData) {
	if data.Name == "" {
		data.Errors["name"] = "Name is required"
	}
	if services.ParseAmount(data.UnitPrice) < 0 {
		data.Errors["unit_price"] = "Unit price must be zero or greater"
	}
}

// HandleItemCreate handles GET /items/add
func HandleItemCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.ItemFormData{
			Title:  "Add item",
			Action: "/items/add",
			Errors: make(map[string]string),
		}
		return renderItemForm(e, data)
	}
}

// HandleItemSave handles POST /items/add
func HandleItemSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		data := templates.ItemFormData{
			Title:       "Add item",
			Action:      "/items/add",
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

		col, err := app.FindCollectionByNameOrId("catalog_items")
		if err != nil {
			log.Printf("item_create: HandleItemSave: could not find catalog_items collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("owner", user.Id)
		record.Set("name", data.Name)
		record.Set("description", data.Description)
		record.Set("unit_price", services.ParseAmount(data.UnitPrice))

		if err := app.Save(record); err != nil {
			log.Printf("item_create: HandleItemSave: could not save catalog item: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Item added")
		return redirectAfterSave(e, "/items")
	}
}
