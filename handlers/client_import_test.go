package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"fakti/testhelpers"
)

func uploadCSV(t *testing.T, target, fileName, content string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("could not create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("could not write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("could not close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req, httptest.NewRecorder()
}

func TestHandleClientValidate_CleanFile(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Import Co")

	handler := HandleClientValidate(app)

	csv := "Name,Email,City\n" +
		"Acme Industries,billing@acme.test,Springfield\n" +
		"Globex,info@globex.test,Cypress Creek\n"
	req, rec := uploadCSV(t, "/clients/import", "clients.csv", csv)
	e := withUser(newTestRequestEvent(app, req, rec), user)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	// A clean file gets a commit payload; nothing is saved yet.
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Acme Industries")

	clients, _ := app.FindRecordsByFilter("clients",
		"owner = {:owner}", "", 0, 0,
		map[string]any{"owner": user.Id})
	if len(clients) != 0 {
		t.Error("expected validation to write nothing")
	}
}

func TestHandleClientValidate_ReportsRowErrors(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Import Co")

	handler := HandleClientValidate(app)

	csv := "Name,Email\n" +
		",missing-name@acme.test\n" +
		"Globex,not-an-email\n"
	req, rec := uploadCSV(t, "/clients/import", "clients.csv", csv)
	e := withUser(newTestRequestEvent(app, req, rec), user)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Name is required",
		"Invalid email format",
	)
}

func TestHandleClientValidate_UnsupportedFormat(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Import Co")

	handler := HandleClientValidate(app)

	req, rec := uploadCSV(t, "/clients/import", "clients.txt", "whatever")
	e := withUser(newTestRequestEvent(app, req, rec), user)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unsupported file format, got %d", rec.Code)
	}
}

func TestHandleClientImportCommit(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Import Co")

	handler := HandleClientImportCommit(app)

	payload, err := json.Marshal([]map[string]string{
		{"name": "Acme Industries", "email": "billing@acme.test"},
		{"name": "Globex", "city": "Cypress Creek"},
	})
	if err != nil {
		t.Fatalf("could not marshal payload: %v", err)
	}

	form := url.Values{}
	form.Set("payload", string(payload))

	req, rec := postForm(t, "/clients/import/commit", form)
	req.Header.Set("HX-Request", "true")
	e := withUser(newTestRequestEvent(app, req, rec), user)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	clients, err := app.FindRecordsByFilter("clients",
		"owner = {:owner}", "name", 0, 0,
		map[string]any{"owner": user.Id})
	if err != nil || len(clients) != 2 {
		t.Fatalf("expected 2 imported clients, got %d (err %v)", len(clients), err)
	}
	if clients[0].GetString("name") != "Acme Industries" {
		t.Errorf("unexpected first client %q", clients[0].GetString("name"))
	}

	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/clients")
}

func TestHandleClientImportCommit_EmptyPayload(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Import Co")

	handler := HandleClientImportCommit(app)

	form := url.Values{}
	form.Set("payload", "[]")

	req, rec := postForm(t, "/clients/import/commit", form)
	e := withUser(newTestRequestEvent(app, req, rec), user)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for an empty payload, got %d", rec.Code)
	}
}
