package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"fakti/testhelpers"
)

// editorForm builds a posted editor form with dense row indices.
func editorForm(rows [][4]string) url.Values {
	form := url.Values{}
	for i, row := range rows {
		prefix := "items-" + strconv.Itoa(i)
		form.Set(prefix+"-description", row[0])
		form.Set(prefix+"-quantity", row[1])
		form.Set(prefix+"-rate", row[2])
		form.Set(prefix+"-tax_rate", row[3])
	}
	return form
}

func TestHandleEditorAddRow_AppendsAtNextIndex(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Editor Co")

	handler := HandleEditorAddRow(app)

	form := editorForm([][4]string{
		{"Design work", "2", "100", "10"},
	})
	req, rec := postForm(t, "/invoices/editor/add", form)
	e := withUser(newTestRequestEvent(app, req, rec), user)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body,
		`name="items-0-description"`,
		`value="Design work"`,
		`name="items-1-description"`,
		`name="items-1-quantity"`,
	)
	if strings.Contains(body, `name="items-2-description"`) {
		t.Error("expected exactly two rows after one add")
	}
}

func TestHandleEditorAddRow_FocusesNewRow(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Editor Co")

	handler := HandleEditorAddRow(app)

	form := editorForm([][4]string{
		{"Design work", "2", "100", "10"},
	})
	req, rec := postForm(t, "/invoices/editor/add", form)
	e := withUser(newTestRequestEvent(app, req, rec), user)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	body := rec.Body.String()
	// The appended row's description input carries autofocus; the existing
	// row's does not.
	testhelpers.AssertHTMLContains(t, body,
		`name="items-1-description" value="" autofocus`,
	)
	if strings.Contains(body, `name="items-0-description" value="Design work" autofocus`) {
		t.Error("expected focus only on the newly added row")
	}
}

func TestHandleEditorRequestDelete_MarksPending(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Editor Co")

	handler := HandleEditorRequestDelete(app)

	form := editorForm([][4]string{
		{"Row A", "1", "10", "0"},
		{"Row B", "1", "20", "0"},
	})
	req, rec := postForm(t, "/invoices/editor/delete?index=1", form)
	e := withUser(newTestRequestEvent(app, req, rec), user)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	body := rec.Body.String()
	// Both rows are still present; the second is awaiting confirmation.
	testhelpers.AssertHTMLContains(t, body,
		`value="Row A"`,
		`value="Row B"`,
		"pending-delete",
		"Confirm",
		"Cancel",
	)
}

func TestHandleEditorConfirmDelete_RemovesAndReindexes(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Editor Co")

	handler := HandleEditorConfirmDelete(app)

	form := editorForm([][4]string{
		{"First", "1", "10", "0"},
		{"Second", "1", "20", "0"},
		{"Third", "1", "30", "0"},
	})
	req, rec := postForm(t, "/invoices/editor/delete/confirm?index=1", form)
	e := withUser(newTestRequestEvent(app, req, rec), user)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	body := rec.Body.String()
	if strings.Contains(body, `value="Second"`) {
		t.Error("expected the deleted row to be gone")
	}
	// The former third row now occupies index 1.
	testhelpers.AssertHTMLContains(t, body,
		`name="items-0-description"`,
		`value="First"`,
		`name="items-1-description"`,
		`value="Third"`,
	)
	if strings.Contains(body, `name="items-2-description"`) {
		t.Error("expected indices to be re-packed to 0..N-1")
	}
}

func TestHandleEditorCancelDelete_KeepsAllRows(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Editor Co")

	handler := HandleEditorCancelDelete(app)

	form := editorForm([][4]string{
		{"Keep me", "1", "10", "0"},
		{"Me too", "1", "20", "0"},
	})
	req, rec := postForm(t, "/invoices/editor/delete/cancel", form)
	e := withUser(newTestRequestEvent(app, req, rec), user)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, `value="Keep me"`, `value="Me too"`)
	if strings.Contains(body, "pending-delete") {
		t.Error("expected no pending state after cancel")
	}
}

func TestHandleEditorRequestDelete_InvalidIndex(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Editor Co")

	handler := HandleEditorRequestDelete(app)

	form := editorForm([][4]string{
		{"Only row", "1", "10", "0"},
	})
	req, rec := postForm(t, "/invoices/editor/delete?index=5", form)
	e := withUser(newTestRequestEvent(app, req, rec), user)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for out-of-range index, got %d", rec.Code)
	}
}

func TestHandleEditorRecompute_UpdatesTotals(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Editor Co")

	handler := HandleEditorRecompute(app)

	// 2 x 10 at 10% tax twice: subtotal 40, tax 4, discount 5, total 39
	form := editorForm([][4]string{
		{"Item A", "2", "10", "10"},
		{"Item B", "2", "10", "10"},
	})
	form.Set("discount", "5")
	req, rec := postForm(t, "/invoices/editor/recompute", form)
	e := withUser(newTestRequestEvent(app, req, rec), user)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(), "40.00", "4.00", "39.00")
}

func TestHandleEditorRecompute_CoercesNonNumericToZero(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Editor Co")

	handler := HandleEditorRecompute(app)

	form := editorForm([][4]string{
		{"Bad numbers", "abc", "xyz", ""},
	})
	req, rec := postForm(t, "/invoices/editor/recompute", form)
	e := withUser(newTestRequestEvent(app, req, rec), user)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	body := rec.Body.String()
	// The raw input survives; the derived amounts treat it as zero.
	testhelpers.AssertHTMLContains(t, body, `value="abc"`, "0.00")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for coerced input, got %d", rec.Code)
	}
}
