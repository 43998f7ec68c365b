package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fakti/templates"
)

// HandleClientDeleteConfirm handles GET /clients/{id}/delete
func HandleClientDeleteConfirm(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)
		clientID := e.Request.PathValue("id")

		client, ok := findOwned(app, "clients", clientID, user.Id)
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Client not found")
		}

		invoiceCount := 0
		if invoices, err := app.FindRecordsByFilter(
			"invoices",
			"owner = {:owner} && client = {:client}",
			"", 0, 0,
			map[string]any{"owner": user.Id, "client": client.Id},
		); err == nil {
			invoiceCount = len(invoices)
		}

		prompt := fmt.Sprintf("Delete %s?", client.GetString("name"))
		if invoiceCount > 0 {
			prompt = fmt.Sprintf("Delete %s? This also removes %d invoice(s).",
				client.GetString("name"), invoiceCount)
		}

		data := templates.ConfirmDeleteData{
			Title:     "Delete client",
			Prompt:    prompt,
			Action:    "/clients/" + client.Id + "/delete",
			CancelURL: "/clients/" + client.Id,
		}
		return templates.ConfirmDeletePage(data, GetHeaderData(e.Request)).Render(e.Request.Context(), e.Response)
	}
}

// HandleClientDelete handles POST /clients/{id}/delete
func HandleClientDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)
		clientID := e.Request.PathValue("id")

		client, ok := findOwned(app, "clients", clientID, user.Id)
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Client not found")
		}

		// Invoice items and invoices cascade from the client relation.
		if err := app.Delete(client); err != nil {
			log.Printf("client_delete: HandleClientDelete: could not delete client %s: %v", client.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Client deleted")
		return redirectAfterSave(e, "/clients")
	}
}
