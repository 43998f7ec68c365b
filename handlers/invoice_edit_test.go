package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fakti/testhelpers"
)

func TestHandleInvoiceEdit_GET(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Edit Co")
	client := testhelpers.CreateTestClient(t, app, user.Id, "Acme Industries")
	invoice := testhelpers.CreateTestInvoice(t, app, user.Id, client.Id, "INV-2026-00007")
	testhelpers.CreateTestInvoiceItem(t, app, invoice.Id, 0, "Stored work", 2, 150, 10)

	handler := HandleInvoiceEdit(app)

	req := httptest.NewRequest(http.MethodGet, "/invoices/"+invoice.Id+"/edit", nil)
	req.SetPathValue("id", invoice.Id)
	rec := httptest.NewRecorder()
	e := withUser(newTestRequestEvent(app, req, rec), user)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"INV-2026-00007",
		`value="Stored work"`,
		`name="items-0-quantity"`,
		`value="2"`,
	)
}

func TestHandleInvoiceEdit_NotOwned(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	owner := testhelpers.CreateTestUser(t, app, "Owner Co")
	client := testhelpers.CreateTestClient(t, app, owner.Id, "Their Client")
	invoice := testhelpers.CreateTestInvoice(t, app, owner.Id, client.Id, "INV-2026-00001")

	intruder := testhelpers.CreateTestUser(t, app, "Intruder Co")

	handler := HandleInvoiceEdit(app)

	req := httptest.NewRequest(http.MethodGet, "/invoices/"+invoice.Id+"/edit", nil)
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

func TestHandleInvoiceUpdate_ReplacesItems(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Edit Co")
	client := testhelpers.CreateTestClient(t, app, user.Id, "Acme Industries")
	invoice := testhelpers.CreateTestInvoice(t, app, user.Id, client.Id, "INV-2026-00007")
	testhelpers.CreateTestInvoiceItem(t, app, invoice.Id, 0, "Old item", 1, 100, 0)
	testhelpers.CreateTestInvoiceItem(t, app, invoice.Id, 1, "Old item two", 1, 200, 0)

	handler := HandleInvoiceUpdate(app)

	form := editorForm([][4]string{
		{"Replacement", "3", "50", "20"},
	})
	form.Set("client", client.Id)
	form.Set("invoice_number", "INV-2026-00007")
	form.Set("status", "draft")

	req, rec := postForm(t, "/invoices/"+invoice.Id+"/edit", form)
	req.SetPathValue("id", invoice.Id)
	req.Header.Set("HX-Request", "true")
	e := withUser(newTestRequestEvent(app, req, rec), user)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	items, err := app.FindRecordsByFilter("invoice_items",
		"invoice = {:invoice}", "position", 0, 0,
		map[string]any{"invoice": invoice.Id})
	if err != nil || len(items) != 1 {
		t.Fatalf("expected the old items to be replaced by 1 item, got %d (err %v)", len(items), err)
	}
	if items[0].GetString("description") != "Replacement" {
		t.Errorf("expected replacement item, got %q", items[0].GetString("description"))
	}

	// 3 x 50 = 150 subtotal, 30 tax
	updated, err := app.FindRecordById("invoices", invoice.Id)
	if err != nil {
		t.Fatalf("could not reload invoice: %v", err)
	}
	if got := updated.GetFloat("subtotal"); got != 150 {
		t.Errorf("expected recomputed subtotal 150, got %v", got)
	}
	if got := updated.GetFloat("total"); got != 180 {
		t.Errorf("expected recomputed total 180, got %v", got)
	}
}

func TestHandleInvoiceUpdate_NumberTakenByOtherInvoice(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Edit Co")
	client := testhelpers.CreateTestClient(t, app, user.Id, "Acme Industries")
	testhelpers.CreateTestInvoice(t, app, user.Id, client.Id, "INV-2026-00001")
	invoice := testhelpers.CreateTestInvoice(t, app, user.Id, client.Id, "INV-2026-00002")

	handler := HandleInvoiceUpdate(app)

	form := editorForm([][4]string{
		{"Work", "1", "100", "0"},
	})
	form.Set("client", client.Id)
	form.Set("invoice_number", "INV-2026-00001")

	req, rec := postForm(t, "/invoices/"+invoice.Id+"/edit", form)
	req.SetPathValue("id", invoice.Id)
	e := withUser(newTestRequestEvent(app, req, rec), user)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(), "already used")
}

func TestHandleInvoiceUpdate_KeepingOwnNumberIsAllowed(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Edit Co")
	client := testhelpers.CreateTestClient(t, app, user.Id, "Acme Industries")
	invoice := testhelpers.CreateTestInvoice(t, app, user.Id, client.Id, "INV-2026-00002")

	handler := HandleInvoiceUpdate(app)

	form := editorForm([][4]string{
		{"Work", "1", "100", "0"},
	})
	form.Set("client", client.Id)
	form.Set("invoice_number", "INV-2026-00002")
	form.Set("status", "draft")

	req, rec := postForm(t, "/invoices/"+invoice.Id+"/edit", form)
	req.SetPathValue("id", invoice.Id)
	req.Header.Set("HX-Request", "true")
	e := withUser(newTestRequestEvent(app, req, rec), user)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Header().Get("HX-Redirect") == "" {
		t.Error("expected the update to succeed when keeping the invoice's own number")
	}
}
