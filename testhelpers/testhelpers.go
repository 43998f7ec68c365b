// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fakti/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

var testUserSeq int

// CreateTestUser creates a users auth record and returns it.
func CreateTestUser(t *testing.T, app *pocketbase.PocketBase, businessName string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("users")
	if err != nil {
		t.Fatalf("failed to find users collection: %v", err)
	}

	testUserSeq++
	record := core.NewRecord(col)
	record.SetEmail(fmt.Sprintf("user%d@test.local", testUserSeq))
	record.SetPassword("testpass123456")
	record.Set("business_name", businessName)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test user: %v", err)
	}

	return record
}

// CreateTestClient creates a client record owned by the given user.
func CreateTestClient(t *testing.T, app *pocketbase.PocketBase, ownerID, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("clients")
	if err != nil {
		t.Fatalf("failed to find clients collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("owner", ownerID)
	record.Set("name", name)
	record.Set("email", "client@test.local")
	record.Set("city", "Testville")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test client: %v", err)
	}

	return record
}

// CreateTestCatalogItem creates a catalog item record owned by the given user.
func CreateTestCatalogItem(t *testing.T, app *pocketbase.PocketBase, ownerID, name string, unitPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("catalog_items")
	if err != nil {
		t.Fatalf("failed to find catalog_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("owner", ownerID)
	record.Set("name", name)
	record.Set("unit_price", unitPrice)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test catalog item: %v", err)
	}

	return record
}

// CreateTestInvoice creates an invoice record linked to an owner and client.
func CreateTestInvoice(t *testing.T, app *pocketbase.PocketBase, ownerID, clientID, number string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("invoices")
	if err != nil {
		t.Fatalf("failed to find invoices collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("owner", ownerID)
	record.Set("client", clientID)
	record.Set("invoice_number", number)
	record.Set("status", "draft")
	record.Set("currency", "USD")
	record.Set("issue_date", "2026-01-15")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test invoice: %v", err)
	}

	return record
}

// CreateTestInvoiceItem creates one line item on an invoice.
func CreateTestInvoiceItem(t *testing.T, app *pocketbase.PocketBase, invoiceID string, position int, description string, quantity, rate, taxRate float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("invoice_items")
	if err != nil {
		t.Fatalf("failed to find invoice_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("invoice", invoiceID)
	record.Set("position", position)
	record.Set("description", description)
	record.Set("quantity", quantity)
	record.Set("rate", rate)
	record.Set("tax_rate", taxRate)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test invoice item: %v", err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
