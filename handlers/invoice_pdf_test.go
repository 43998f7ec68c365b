package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fakti/testhelpers"
)

func TestHandleInvoiceExportPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "PDF Co")
	client := testhelpers.CreateTestClient(t, app, user.Id, "Acme Industries")
	invoice := testhelpers.CreateTestInvoice(t, app, user.Id, client.Id, "INV-2026-00001")
	testhelpers.CreateTestInvoiceItem(t, app, invoice.Id, 0, "Consulting", 2, 100, 10)

	handler := HandleInvoiceExportPDF(app)

	req := httptest.NewRequest(http.MethodGet, "/invoices/"+invoice.Id+"/pdf", nil)
	req.SetPathValue("id", invoice.Id)
	rec := httptest.NewRecorder()
	e := withUser(newTestRequestEvent(app, req, rec), user)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected application/pdf, got %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Error("expected response body to be a PDF document")
	}

	disposition := rec.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "invoice_INV-2026-00001_Acme_Industries.pdf") {
		t.Errorf("unexpected Content-Disposition %q", disposition)
	}
}

func TestHandleInvoiceExportPDF_NotOwned(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	owner := testhelpers.CreateTestUser(t, app, "Owner Co")
	client := testhelpers.CreateTestClient(t, app, owner.Id, "Their Client")
	invoice := testhelpers.CreateTestInvoice(t, app, owner.Id, client.Id, "INV-2026-00001")

	intruder := testhelpers.CreateTestUser(t, app, "Intruder Co")

	handler := HandleInvoiceExportPDF(app)

	req := httptest.NewRequest(http.MethodGet, "/invoices/"+invoice.Id+"/pdf", nil)
	req.SetPathValue("id", invoice.Id)
	rec := httptest.NewRecorder()
	e := withUser(newTestRequestEvent(app, req, rec), intruder)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for another user's invoice, got %d", rec.Code)
	}
}
