package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/pocketbase/pocketbase"
)

// InvoiceExportData holds all data needed to render an invoice to PDF or
// Excel.
type InvoiceExportData struct {
	// Issuer
	BusinessName  string
	BusinessEmail string

	// Invoice header
	InvoiceNumber string
	IssueDate     string
	DueDate       string
	Status        string
	Currency      string

	Client InvoiceExportClient

	LineItems []InvoiceExportLineItem

	// Totals
	Subtotal      float64
	TotalTax      float64
	Discount      float64
	Total         float64
	AmountInWords string

	Notes string
}

// InvoiceExportClient holds recipient details for export.
type InvoiceExportClient struct {
	Name    string
	Email   string
	Phone   string
	Address string // formatted multi-line
}

// InvoiceExportLineItem holds a single line item for export.
type InvoiceExportLineItem struct {
	Position    int // 1-based
	Description string
	Quantity    float64
	Rate        float64
	TaxRate     float64
	Subtotal    float64
	Tax         float64
	Total       float64
}

// BuildInvoiceExportData assembles all data needed for invoice export from
// PocketBase records. Totals are recomputed from the stored items rather
// than read from the invoice's cached columns.
func BuildInvoiceExportData(app *pocketbase.PocketBase, invoiceID string) (*InvoiceExportData, error) {
	invoice, err := app.FindRecordById("invoices", invoiceID)
	if err != nil {
		return nil, fmt.Errorf("invoice not found: %w", err)
	}

	data := &InvoiceExportData{
		InvoiceNumber: invoice.GetString("invoice_number"),
		IssueDate:     invoice.GetString("issue_date"),
		DueDate:       invoice.GetString("due_date"),
		Status:        invoice.GetString("status"),
		Currency:      invoice.GetString("currency"),
		Notes:         invoice.GetString("notes"),
	}

	if ownerID := invoice.GetString("owner"); ownerID != "" {
		owner, err := app.FindRecordById("users", ownerID)
		if err != nil {
			log.Printf("export_data: could not find owner %s: %v", ownerID, err)
		} else {
			data.BusinessName = owner.GetString("business_name")
			if data.BusinessName == "" {
				data.BusinessName = owner.GetString("name")
			}
			data.BusinessEmail = owner.Email()
		}
	}

	if clientID := invoice.GetString("client"); clientID != "" {
		client, err := app.FindRecordById("clients", clientID)
		if err != nil {
			log.Printf("export_data: could not find client %s: %v", clientID, err)
		} else {
			var addrParts []string
			if addr := client.GetString("address"); addr != "" {
				addrParts = append(addrParts, addr)
			}
			cityCountry := []string{}
			if city := client.GetString("city"); city != "" {
				cityCountry = append(cityCountry, city)
			}
			if country := client.GetString("country"); country != "" {
				cityCountry = append(cityCountry, country)
			}
			if len(cityCountry) > 0 {
				addrParts = append(addrParts, strings.Join(cityCountry, ", "))
			}
			data.Client = InvoiceExportClient{
				Name:    client.GetString("name"),
				Email:   client.GetString("email"),
				Phone:   client.GetString("phone"),
				Address: strings.Join(addrParts, "\n"),
			}
		}
	}

	itemRecords, err := app.FindRecordsByFilter(
		"invoice_items",
		"invoice = {:invoiceId}",
		"position",
		0,
		0,
		map[string]any{"invoiceId": invoiceID},
	)
	if err != nil {
		log.Printf("export_data: could not query invoice_items for %s: %v", invoiceID, err)
		itemRecords = nil
	}

	var items []LineItem
	for i, rec := range itemRecords {
		item := LineItem{
			Index:       i,
			Description: rec.GetString("description"),
			Quantity:    rec.GetFloat("quantity"),
			Rate:        rec.GetFloat("rate"),
			TaxRate:     rec.GetFloat("tax_rate"),
		}
		items = append(items, item)

		calc := CalcLineItem(item)
		data.LineItems = append(data.LineItems, InvoiceExportLineItem{
			Position:    i + 1,
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			TaxRate:     item.TaxRate,
			Subtotal:    calc.Subtotal,
			Tax:         calc.Tax,
			Total:       calc.Total,
		})
	}

	totals := CalcInvoiceTotals(items, invoice.GetFloat("discount"))
	data.Subtotal = totals.Subtotal
	data.TotalTax = totals.TotalTax
	data.Discount = totals.Discount
	data.Total = totals.Total
	data.AmountInWords = AmountToWords(totals.Total)

	return data, nil
}

// ExportFileName builds the download filename for an invoice export,
// e.g. invoice_INV-2026-00001_Bob_Co.pdf.
func ExportFileName(invoiceNumber, clientName, ext string) string {
	client := strings.ReplaceAll(strings.TrimSpace(clientName), " ", "_")
	if client == "" {
		return fmt.Sprintf("invoice_%s.%s", invoiceNumber, ext)
	}
	return fmt.Sprintf("invoice_%s_%s.%s", invoiceNumber, client, ext)
}
