package collections

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type clientDef struct {
	name    string
	email   string
	phone   string
	address string
	city    string
	country string
}

type catalogItemDef struct {
	name        string
	description string
	unitPrice   float64
}

type invoiceItemDef struct {
	position    int
	description string
	quantity    float64
	rate        float64
	taxRate     float64
}

type invoiceDef struct {
	number   string
	client   string // client name, resolved after client creation
	status   string
	currency string
	discount float64
	items    []invoiceItemDef
}

const seedEmail = "demo@fakti.local"
const seedPassword = "demo1234demo"

var seedClients = []clientDef{
	{"Acme Industries", "billing@acme.example", "+1 555 0100", "1 Factory Road", "Springfield", "USA"},
	{"Blue Harbor Consulting", "accounts@blueharbor.example", "+44 20 7946 0000", "14 Dock Street", "London", "UK"},
	{"Nordwind GmbH", "rechnung@nordwind.example", "", "Hafenstr. 9", "Hamburg", "Germany"},
}

var seedCatalogItems = []catalogItemDef{
	{"Consulting (hour)", "Senior consulting, billed hourly", 120},
	{"Workshop (day)", "On-site full-day workshop", 900},
	{"Monthly retainer", "Support retainer, monthly flat fee", 1500},
}

var seedInvoices = []invoiceDef{
	{
		number:   "", // filled with the current year at seed time
		client:   "Acme Industries",
		status:   "sent",
		currency: "USD",
		discount: 0,
		items: []invoiceItemDef{
			{0, "Consulting (hour)", 16, 120, 10},
			{1, "Workshop (day)", 1, 900, 10},
		},
	},
}

// Seed creates a demo account with a few clients, catalog items and one
// invoice. It is a no-op when the demo account already exists.
func Seed(app *pocketbase.PocketBase) error {
	if _, err := app.FindAuthRecordByEmail("users", seedEmail); err == nil {
		return nil
	}

	usersCol, err := app.FindCollectionByNameOrId("users")
	if err != nil {
		return fmt.Errorf("seed: users collection: %w", err)
	}
	user := core.NewRecord(usersCol)
	user.SetEmail(seedEmail)
	user.SetPassword(seedPassword)
	user.Set("business_name", "Fakti Demo Studio")
	if err := app.Save(user); err != nil {
		return fmt.Errorf("seed: demo user: %w", err)
	}

	clientsCol, err := app.FindCollectionByNameOrId("clients")
	if err != nil {
		return fmt.Errorf("seed: clients collection: %w", err)
	}
	clientIDs := make(map[string]string, len(seedClients))
	for _, def := range seedClients {
		rec := core.NewRecord(clientsCol)
		rec.Set("owner", user.Id)
		rec.Set("name", def.name)
		rec.Set("email", def.email)
		rec.Set("phone", def.phone)
		rec.Set("address", def.address)
		rec.Set("city", def.city)
		rec.Set("country", def.country)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed: client %q: %w", def.name, err)
		}
		clientIDs[def.name] = rec.Id
	}

	itemsCol, err := app.FindCollectionByNameOrId("catalog_items")
	if err != nil {
		return fmt.Errorf("seed: catalog_items collection: %w", err)
	}
	for _, def := range seedCatalogItems {
		rec := core.NewRecord(itemsCol)
		rec.Set("owner", user.Id)
		rec.Set("name", def.name)
		rec.Set("description", def.description)
		rec.Set("unit_price", def.unitPrice)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed: catalog item %q: %w", def.name, err)
		}
	}

	invoicesCol, err := app.FindCollectionByNameOrId("invoices")
	if err != nil {
		return fmt.Errorf("seed: invoices collection: %w", err)
	}
	lineItemsCol, err := app.FindCollectionByNameOrId("invoice_items")
	if err != nil {
		return fmt.Errorf("seed: invoice_items collection: %w", err)
	}

	now := time.Now()
	for i, def := range seedInvoices {
		var subtotal, totalTax float64
		for _, it := range def.items {
			subtotal += it.quantity * it.rate
			totalTax += it.quantity * it.rate * it.taxRate / 100
		}

		inv := core.NewRecord(invoicesCol)
		inv.Set("owner", user.Id)
		inv.Set("client", clientIDs[def.client])
		inv.Set("invoice_number", fmt.Sprintf("INV-%d-%05d", now.Year(), i+1))
		inv.Set("issue_date", now.Format("2006-01-02"))
		inv.Set("due_date", now.AddDate(0, 0, 30).Format("2006-01-02"))
		inv.Set("currency", def.currency)
		inv.Set("status", def.status)
		inv.Set("discount", def.discount)
		inv.Set("subtotal", subtotal)
		inv.Set("total_tax", totalTax)
		inv.Set("total", subtotal+totalTax-def.discount)
		if err := app.Save(inv); err != nil {
			return fmt.Errorf("seed: invoice for %q: %w", def.client, err)
		}

		for _, it := range def.items {
			rec := core.NewRecord(lineItemsCol)
			rec.Set("invoice", inv.Id)
			rec.Set("position", it.position)
			rec.Set("description", it.description)
			rec.Set("quantity", it.quantity)
			rec.Set("rate", it.rate)
			rec.Set("tax_rate", it.taxRate)
			if err := app.Save(rec); err != nil {
				return fmt.Errorf("seed: invoice item %q: %w", it.description, err)
			}
		}
	}

	fmt.Printf("Seeded demo account %s\n", seedEmail)
	return nil
}
