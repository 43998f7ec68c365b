package collections

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
)

// MigrateInvoiceNumbers backfills missing invoice numbers and renumbers
// duplicates so that every owner holds a unique set. Rows created before the
// uniqueness rule existed may violate it; the earliest row keeps its number
// and later duplicates get the next free sequence for the current year.
func MigrateInvoiceNumbers(app *pocketbase.PocketBase) error {
	invoices, err := app.FindRecordsByFilter("invoices", "id != ''", "created", 0, 0, nil)
	if err != nil {
		return fmt.Errorf("migrate invoice numbers: query invoices: %w", err)
	}
	if len(invoices) == 0 {
		return nil
	}

	year := time.Now().Year()
	prefix := fmt.Sprintf("INV-%d-", year)

	// seen maps owner -> set of numbers already claimed, in creation order.
	seen := make(map[string]map[string]bool)
	fixed := 0

	for _, inv := range invoices {
		owner := inv.GetString("owner")
		if seen[owner] == nil {
			seen[owner] = make(map[string]bool)
		}

		number := strings.TrimSpace(inv.GetString("invoice_number"))
		if number != "" && !seen[owner][number] {
			seen[owner][number] = true
			continue
		}

		// Blank or duplicate: assign the next free number for this owner.
		seq := 1
		for {
			candidate := fmt.Sprintf("%s%05d", prefix, seq)
			if !seen[owner][candidate] {
				number = candidate
				break
			}
			seq++
		}

		inv.Set("invoice_number", number)
		if err := app.Save(inv); err != nil {
			return fmt.Errorf("migrate invoice numbers: save invoice %s: %w", inv.Id, err)
		}
		seen[owner][number] = true
		fixed++
	}

	if fixed > 0 {
		log.Printf("migrate_invoice_numbers: renumbered %d invoice(s)", fixed)
	}
	return nil
}
