package services

import "testing"

func TestGenerateInvoicePDF_Basic(t *testing.T) {
	data := &InvoiceExportData{
		BusinessName:  "Alice LLC",
		BusinessEmail: "alice@example.com",
		InvoiceNumber: "INV-2026-00001",
		IssueDate:     "2026-08-01",
		DueDate:       "2026-08-31",
		Status:        "draft",
		Currency:      "USD",
		Client: InvoiceExportClient{
			Name:    "Bob Co",
			Email:   "bob@example.com",
			Address: "123 Main St\nPort-au-Prince, Haiti",
		},
		LineItems: []InvoiceExportLineItem{
			{Position: 1, Description: "Consulting", Quantity: 2, Rate: 10, TaxRate: 10, Subtotal: 20, Tax: 2, Total: 22},
			{Position: 2, Description: "Hosting", Quantity: 1, Rate: 50, TaxRate: 0, Subtotal: 50, Tax: 0, Total: 50},
		},
		Subtotal:      70,
		TotalTax:      2,
		Discount:      5,
		Total:         67,
		AmountInWords: AmountToWords(67),
		Notes:         "Payment due within 30 days.",
	}

	result, err := GenerateInvoicePDF(data)
	if err != nil {
		t.Fatalf("GenerateInvoicePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateInvoicePDF() returned empty bytes")
	}
	// PDF files start with %PDF
	if len(result) > 4 && string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header, got %q", string(result[:5]))
	}
}

func TestGenerateInvoicePDF_NoItems(t *testing.T) {
	data := &InvoiceExportData{
		BusinessName:  "Alice LLC",
		InvoiceNumber: "INV-2026-00002",
		Status:        "draft",
	}

	result, err := GenerateInvoicePDF(data)
	if err != nil {
		t.Fatalf("GenerateInvoicePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateInvoicePDF() returned empty bytes")
	}
}

func TestExportFileName(t *testing.T) {
	tests := []struct {
		name          string
		invoiceNumber string
		clientName    string
		ext           string
		want          string
	}{
		{"basic", "INV-2026-00001", "Bob Co", "pdf", "invoice_INV-2026-00001_Bob_Co.pdf"},
		{"no client", "INV-2026-00002", "", "pdf", "invoice_INV-2026-00002.pdf"},
		{"xlsx", "INV-2026-00003", "Acme Inc", "xlsx", "invoice_INV-2026-00003_Acme_Inc.xlsx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExportFileName(tt.invoiceNumber, tt.clientName, tt.ext)
			if got != tt.want {
				t.Errorf("ExportFileName() = %q, want %q", got, tt.want)
			}
		})
	}
}
