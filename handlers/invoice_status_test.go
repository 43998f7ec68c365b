package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"fakti/testhelpers"
)

func TestHandleInvoiceStatusChange_DraftToSent(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Status Co")
	client := testhelpers.CreateTestClient(t, app, user.Id, "Acme Industries")
	invoice := testhelpers.CreateTestInvoice(t, app, user.Id, client.Id, "INV-2026-00001")

	handler := HandleInvoiceStatusChange(app)

	req, rec := postForm(t, "/invoices/"+invoice.Id+"/status/sent", url.Values{})
	req.SetPathValue("id", invoice.Id)
	req.SetPathValue("status", "sent")
	e := withUser(newTestRequestEvent(app, req, rec), user)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	updated, err := app.FindRecordById("invoices", invoice.Id)
	if err != nil {
		t.Fatalf("could not reload invoice: %v", err)
	}
	if updated.GetString("status") != "sent" {
		t.Errorf("expected status sent, got %q", updated.GetString("status"))
	}
}

func TestHandleInvoiceStatusChange_DraftToPaidRejected(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Status Co")
	client := testhelpers.CreateTestClient(t, app, user.Id, "Acme Industries")
	invoice := testhelpers.CreateTestInvoice(t, app, user.Id, client.Id, "INV-2026-00001")

	handler := HandleInvoiceStatusChange(app)

	req, rec := postForm(t, "/invoices/"+invoice.Id+"/status/paid", url.Values{})
	req.SetPathValue("id", invoice.Id)
	req.SetPathValue("status", "paid")
	e := withUser(newTestRequestEvent(app, req, rec), user)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a draft -> paid jump, got %d", rec.Code)
	}

	updated, _ := app.FindRecordById("invoices", invoice.Id)
	if updated.GetString("status") != "draft" {
		t.Errorf("expected status to stay draft, got %q", updated.GetString("status"))
	}
}

func TestHandleInvoiceStatusChange_PaidIsTerminal(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Status Co")
	client := testhelpers.CreateTestClient(t, app, user.Id, "Acme Industries")
	invoice := testhelpers.CreateTestInvoice(t, app, user.Id, client.Id, "INV-2026-00001")
	invoice.Set("status", "paid")
	if err := app.Save(invoice); err != nil {
		t.Fatalf("could not mark invoice paid: %v", err)
	}

	handler := HandleInvoiceStatusChange(app)

	req, rec := postForm(t, "/invoices/"+invoice.Id+"/status/cancelled", url.Values{})
	req.SetPathValue("id", invoice.Id)
	req.SetPathValue("status", "cancelled")
	e := withUser(newTestRequestEvent(app, req, rec), user)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a transition out of paid, got %d", rec.Code)
	}
}

func TestHandleInvoiceStatusChange_NotOwned(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	owner := testhelpers.CreateTestUser(t, app, "Owner Co")
	client := testhelpers.CreateTestClient(t, app, owner.Id, "Their Client")
	invoice := testhelpers.CreateTestInvoice(t, app, owner.Id, client.Id, "INV-2026-00001")

	intruder := testhelpers.CreateTestUser(t, app, "Intruder Co")

	handler := HandleInvoiceStatusChange(app)

	req, rec := postForm(t, "/invoices/"+invoice.Id+"/status/sent", url.Values{})
	req.SetPathValue("id", invoice.Id)
	req.SetPathValue("status", "sent")
	e := withUser(newTestRequestEvent(app, req, rec), intruder)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for another user's invoice, got %d", rec.Code)
	}
}

func TestTransitionAllowed(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{"draft", "sent", true},
		{"draft", "cancelled", true},
		{"draft", "paid", false},
		{"sent", "paid", true},
		{"sent", "overdue", true},
		{"overdue", "paid", true},
		{"paid", "sent", false},
		{"cancelled", "draft", false},
		{"bogus", "sent", false},
	}
	for _, c := range cases {
		if got := transitionAllowed(c.from, c.to); got != c.want {
			t.Errorf("transitionAllowed(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}
