package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fakti/templates"
)

// HandleClientEdit handles GET /clients/{id}/edit
func HandleClientEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)
		clientID := e.Request.PathValue("id")

		client, ok := findOwned(app, "clients", clientID, user.Id)
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Client not found")
		}

		data := templates.ClientFormData{
			Title:   "Edit " + client.GetString("name"),
			Action:  "/clients/" + client.Id + "/edit",
			ID:      client.Id,
			Name:    client.GetString("name"),
			Email:   client.GetString("email"),
			Phone:   client.GetString("phone"),
			Address: client.GetString("address"),
			City:    client.GetString("city"),
			Country: client.GetString("country"),
			Notes:   client.GetString("notes"),
			Errors:  make(map[string]string),
		}
		return renderClientForm(e, data)
	}
}

// HandleClientUpdate handles POST /clients/{id}/edit
func HandleClientUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)
		clientID := e.Request.PathValue("id")

		client, ok := findOwned(app, "clients", clientID, user.Id)
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Client not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		data := clientFormData(e)
		data.Title = "Edit " + client.GetString("name")
		data.Action = "/clients/" + client.Id + "/edit"
		data.ID = client.Id

		if data.Name == "" {
			data.Errors["name"] = "Name is required"
			SetToast(e, "warning", "Please fix the errors below")
			return renderClientForm(e, data)
		}

		client.Set("name", data.Name)
		client.Set("email", data.Email)
		client.Set("phone", data.Phone)
		client.Set("address", data.Address)
		client.Set("city", data.City)
		client.Set("country", data.Country)
		client.Set("notes", data.Notes)

		if err := app.Save(client); err != nil {
			log.Printf("client_edit: HandleClientUpdate: could not save client %s: %v", client.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Client updated")
		return redirectAfterSave(e, "/clients/"+client.Id)
	}
}
