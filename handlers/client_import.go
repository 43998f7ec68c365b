package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fakti/services"
	"fakti/templates"
)

// HandleClientImportPage handles GET /clients/import
func HandleClientImportPage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.ClientImportData{}
		return templates.ClientImportPage(data, GetHeaderData(e.Request)).Render(e.Request.Context(), e.Response)
	}
}

// HandleClientValidate handles POST /clients/import
// Parses the uploaded file and renders the validation review; nothing is
// written until the commit step.
func HandleClientValidate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Could not read the uploaded file")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Please choose a file to upload")
		}
		defer file.Close()

		result, err := services.ValidateClientFile(file, header.Filename)
		if err != nil {
			log.Printf("client_import: HandleClientValidate: %v", err)
			return ErrorToast(e, http.StatusBadRequest, err.Error())
		}

		data := templates.ClientImportData{
			TotalRows: result.TotalRows,
			ValidRows: result.ValidRows,
			ErrorRows: result.ErrorRows,
			FileName:  result.FileName,
		}
		for _, re := range result.Errors {
			data.Errors = append(data.Errors, templates.ClientImportError{
				Row:     re.Row,
				Field:   re.Field,
				Message: re.Message,
			})
		}

		if result.ErrorRows == 0 {
			payload, err := json.Marshal(result.ParsedRows)
			if err != nil {
				log.Printf("client_import: HandleClientValidate: could not serialize rows: %v", err)
				return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
			data.Payload = string(payload)
		}

		return templates.ClientImportPage(data, GetHeaderData(e.Request)).Render(e.Request.Context(), e.Response)
	}
}

// HandleClientImportCommit handles POST /clients/import/commit
func HandleClientImportCommit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		var rows []map[string]string
		if err := json.Unmarshal([]byte(e.Request.FormValue("payload")), &rows); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Import payload is invalid, please re-upload the file")
		}
		if len(rows) == 0 {
			return ErrorToast(e, http.StatusBadRequest, "Nothing to import")
		}

		saved, err := services.CommitClientImport(app, user.Id, rows)
		if err != nil {
			log.Printf("client_import: HandleClientImportCommit: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Import failed after saving some rows. Please review your client list.")
		}

		SetToast(e, "success", fmt.Sprintf("Imported %d client(s)", saved))
		return redirectAfterSave(e, "/clients")
	}
}
