package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
)

// formatInvoiceNumber constructs the invoice number string from components.
func formatInvoiceNumber(year int, sequence int) string {
	return fmt.Sprintf("INV-%d-%05d", year, sequence)
}

// NextInvoiceNumber suggests the next invoice number for a user.
// Format: INV-{year}-{sequence} with a 5-digit zero-padded sequence that
// counts the user's invoices created in the current calendar year.
// The suggestion is not reserved; uniqueness is enforced at save time.
func NextInvoiceNumber(app *pocketbase.PocketBase, ownerID string, now time.Time) string {
	year := now.Year()
	prefix := fmt.Sprintf("INV-%d-", year)

	existing, err := app.FindRecordsByFilter(
		"invoices",
		"owner = {:ownerId} && invoice_number ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{
			"ownerId": ownerID,
			"prefix":  prefix + "%",
		},
	)
	if err != nil {
		existing = nil
	}

	return formatInvoiceNumber(year, len(existing)+1)
}

// InvoiceNumberTaken reports whether the given number is already used by
// another invoice of the same owner. excludeID skips the invoice being
// edited so an unchanged number does not collide with itself.
func InvoiceNumberTaken(app *pocketbase.PocketBase, ownerID, number, excludeID string) bool {
	records, err := app.FindRecordsByFilter(
		"invoices",
		"owner = {:ownerId} && invoice_number = {:number}",
		"",
		0,
		0,
		map[string]any{
			"ownerId": ownerID,
			"number":  number,
		},
	)
	if err != nil {
		return false
	}
	for _, rec := range records {
		if rec.Id != excludeID {
			return true
		}
	}
	return false
}
