package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fakti/templates"
)

// clientFormData reads the posted client fields into the template data used
// for both re-rendering and saving.
func clientFormData(e *core.RequestEvent) templates.ClientFormData {
	return templates.ClientFormData{
		Name:    strings.TrimSpace(e.Request.FormValue("name")),
		Email:   strings.TrimSpace(e.Request.FormValue("email")),
		Phone:   strings.TrimSpace(e.Request.FormValue("phone")),
		Address: strings.TrimSpace(e.Request.FormValue("address")),
		City:    strings.TrimSpace(e.Request.FormValue("city")),
		Country: strings.TrimSpace(e.Request.FormValue("country")),
		Notes:   strings.TrimSpace(e.Request.FormValue("notes")),
		Errors:  make(map[string]string),
	}
}

func renderClientForm(e *core.RequestEvent, data templates.ClientFormData) error {
	var component templ.Component
	if e.Request.Header.Get("HX-Request") == "true" {
		component = templates.ClientFormContent(data)
	} else {
		component = templates.ClientFormPage(data, GetHeaderData(e.Request))
	}
	return component.Render(e.Request.Context(), e.Response)
}

// HandleClientCreate handles GET /clients/add
func HandleClientCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.ClientFormData{
			Title:  "Add client",
			Action: "/clients/add",
			Errors: make(map[string]string),
		}
		return renderClientForm(e, data)
	}
}

// HandleClientSave handles POST /clients/add
func HandleClientSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		data := clientFormData(e)
		data.Title = "Add client"
		data.Action = "/clients/add"

		if data.Name == "" {
			data.Errors["name"] = "Name is required"
			SetToast(e, "warning", "Please fix the errors below")
			return renderClientForm(e, data)
		}

		col, err := app.FindCollectionByNameOrId("clients")
		if err != nil {
			log.Printf("client_create: HandleClientSave: could not find clients collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("owner", user.Id)
		record.Set("name", data.Name)
		record.Set("email", data.Email)
		record.Set("phone", data.Phone)
		record.Set("address", data.Address)
		record.Set("city", data.City)
		record.Set("country", data.Country)
		record.Set("notes", data.Notes)

		if err := app.Save(record); err != nil {
			log.Printf("client_create: HandleClientSave: could not save client: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Client added")
		return redirectAfterSave(e, "/clients/"+record.Id)
	}
}
