package collections_test

import (
	"fmt"
	"testing"
	"time"

	"fakti/collections"
	"fakti/testhelpers"
)

func TestMigrateInvoiceNumbers(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Migrate Co")
	client := testhelpers.CreateTestClient(t, app, user.Id, "Acme Industries")

	keeper := testhelpers.CreateTestInvoice(t, app, user.Id, client.Id, "INV-2020-00042")
	dup := testhelpers.CreateTestInvoice(t, app, user.Id, client.Id, "INV-2020-00042")
	blank := testhelpers.CreateTestInvoice(t, app, user.Id, client.Id, " ")

	if err := collections.MigrateInvoiceNumbers(app); err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	reload := func(id string) string {
		rec, err := app.FindRecordById("invoices", id)
		if err != nil {
			t.Fatalf("could not reload invoice %s: %v", id, err)
		}
		return rec.GetString("invoice_number")
	}

	// The earliest row keeps its number.
	if got := reload(keeper.Id); got != "INV-2020-00042" {
		t.Errorf("expected the first invoice to keep its number, got %q", got)
	}

	prefix := fmt.Sprintf("INV-%d-", time.Now().Year())
	if got := reload(dup.Id); got != prefix+"00001" {
		t.Errorf("expected the duplicate to be renumbered to %s00001, got %q", prefix, got)
	}
	if got := reload(blank.Id); got != prefix+"00002" {
		t.Errorf("expected the blank number to be backfilled with %s00002, got %q", prefix, got)
	}
}

func TestMigrateInvoiceNumbers_ScopedPerOwner(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	a := testhelpers.CreateTestUser(t, app, "Owner A")
	aClient := testhelpers.CreateTestClient(t, app, a.Id, "A Client")
	b := testhelpers.CreateTestUser(t, app, "Owner B")
	bClient := testhelpers.CreateTestClient(t, app, b.Id, "B Client")

	// The same number on two different owners is not a duplicate.
	aInv := testhelpers.CreateTestInvoice(t, app, a.Id, aClient.Id, "INV-2026-00001")
	bInv := testhelpers.CreateTestInvoice(t, app, b.Id, bClient.Id, "INV-2026-00001")

	if err := collections.MigrateInvoiceNumbers(app); err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	for _, id := range []string{aInv.Id, bInv.Id} {
		rec, err := app.FindRecordById("invoices", id)
		if err != nil {
			t.Fatalf("could not reload invoice %s: %v", id, err)
		}
		if got := rec.GetString("invoice_number"); got != "INV-2026-00001" {
			t.Errorf("expected cross-owner numbers to be untouched, got %q", got)
		}
	}
}
