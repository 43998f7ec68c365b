package handlers

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fakti/services"
	"fakti/templates"
)

var invoiceStatuses = []string{"draft", "sent", "paid", "overdue", "cancelled"}

// editorRowsFromForm reads the posted items-<i>-<field> values into display
// rows, preserving the raw strings exactly as typed. The scan stops at the
// first index with no fields present, mirroring the model-side parser.
func editorRowsFromForm(form url.Values) []templates.LineItemRowData {
	var rows []templates.LineItemRowData
	for i := 0; ; i++ {
		present := false
		for _, field := range []string{services.FieldDescription, services.FieldQuantity, services.FieldRate, services.FieldTaxRate} {
			if _, ok := form[services.ItemFieldName(i, field)]; ok {
				present = true
				break
			}
		}
		if !present {
			break
		}
		rows = append(rows, templates.LineItemRowData{
			Index:       i,
			Description: strings.TrimSpace(form.Get(services.ItemFieldName(i, services.FieldDescription))),
			Quantity:    strings.TrimSpace(form.Get(services.ItemFieldName(i, services.FieldQuantity))),
			Rate:        strings.TrimSpace(form.Get(services.ItemFieldName(i, services.FieldRate))),
			TaxRate:     strings.TrimSpace(form.Get(services.ItemFieldName(i, services.FieldTaxRate))),
		})
	}
	return rows
}

// rowsToItems coerces the raw row strings into model items.
func rowsToItems(rows []templates.LineItemRowData) []services.LineItem {
	items := make([]services.LineItem, len(rows))
	for i, row := range rows {
		items[i] = services.LineItem{
			Index:       i,
			Description: row.Description,
			Quantity:    services.ParseAmount(row.Quantity),
			Rate:        services.ParseAmount(row.Rate),
			TaxRate:     services.ParseAmount(row.TaxRate),
		}
	}
	return items
}

// reindexRows rewrites row indices to the dense 0..N-1 sequence, which also
// rewrites every rendered field name.
func reindexRows(rows []templates.LineItemRowData) {
	for i := range rows {
		rows[i].Index = i
	}
}

// buildEditorData attaches the derived per-row amounts and aggregate totals
// to the given rows.
func buildEditorData(rows []templates.LineItemRowData, discount string) templates.InvoiceEditorData {
	items := rowsToItems(rows)
	for i := range rows {
		calc := services.CalcLineItem(items[i])
		rows[i].Subtotal = calc.Subtotal
		rows[i].Tax = calc.Tax
		rows[i].Total = calc.Total
	}
	totals := services.CalcInvoiceTotals(items, services.ParseAmount(discount))
	return templates.InvoiceEditorData{
		Rows:     rows,
		Discount: discount,
		Subtotal: totals.Subtotal,
		TotalTax: totals.TotalTax,
		Total:    totals.Total,
	}
}

// fetchClientOptions returns the owner's clients for the invoice form select.
func fetchClientOptions(app *pocketbase.PocketBase, ownerID, selectedID string) []templates.ClientSelectItem {
	records, err := app.FindRecordsByFilter(
		"clients",
		"owner = {:owner}",
		"name",
		0,
		0,
		map[string]any{"owner": ownerID},
	)
	if err != nil {
		log.Printf("invoice_form: fetchClientOptions: could not query clients: %v", err)
		return nil
	}

	var items []templates.ClientSelectItem
	for _, rec := range records {
		items = append(items, templates.ClientSelectItem{
			ID:       rec.Id,
			Name:     rec.GetString("name"),
			Selected: rec.Id == selectedID,
		})
	}
	return items
}

// fetchCatalogOptions returns the owner's catalog items for row prefill.
func fetchCatalogOptions(app *pocketbase.PocketBase, ownerID string) []templates.CatalogSelectItem {
	records, err := app.FindRecordsByFilter(
		"catalog_items",
		"owner = {:owner}",
		"name",
		0,
		0,
		map[string]any{"owner": ownerID},
	)
	if err != nil {
		log.Printf("invoice_form: fetchCatalogOptions: could not query catalog_items: %v", err)
		return nil
	}

	var items []templates.CatalogSelectItem
	for _, rec := range records {
		items = append(items, templates.CatalogSelectItem{
			ID:        rec.Id,
			Name:      rec.GetString("name"),
			UnitPrice: rec.GetFloat("unit_price"),
		})
	}
	return items
}

// invoiceFormFromRequest reads the posted invoice header fields. The caller
// fills Title/Action and the select option lists.
func invoiceFormFromRequest(e *core.RequestEvent) templates.InvoiceFormData {
	return templates.InvoiceFormData{
		InvoiceNumber: strings.TrimSpace(e.Request.FormValue("invoice_number")),
		IssueDate:     strings.TrimSpace(e.Request.FormValue("issue_date")),
		DueDate:       strings.TrimSpace(e.Request.FormValue("due_date")),
		Currency:      strings.ToUpper(strings.TrimSpace(e.Request.FormValue("currency"))),
		Status:        strings.TrimSpace(e.Request.FormValue("status")),
		Notes:         strings.TrimSpace(e.Request.FormValue("notes")),
		DraftKey:      strings.TrimSpace(e.Request.FormValue("draft_key")),
		Statuses:      invoiceStatuses,
		Errors:        make(map[string]string),
	}
}

func renderInvoiceForm(e *core.RequestEvent, data templates.InvoiceFormData) error {
	var component templ.Component
	if e.Request.Header.Get("HX-Request") == "true" {
		component = templates.InvoiceFormContent(data)
	} else {
		component = templates.InvoiceFormPage(data, GetHeaderData(e.Request))
	}
	return component.Render(e.Request.Context(), e.Response)
}

// validInvoiceStatus reports whether s is one of the known status values.
func validInvoiceStatus(s string) bool {
	for _, v := range invoiceStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// persistInvoiceItems replaces the stored line items of an invoice with the
// given model items, positions matching the model indices.
func persistInvoiceItems(app *pocketbase.PocketBase, invoiceID string, items []services.LineItem) error {
	existing, err := app.FindRecordsByFilter(
		"invoice_items",
		"invoice = {:invoice}",
		"",
		0,
		0,
		map[string]any{"invoice": invoiceID},
	)
	if err != nil {
		return fmt.Errorf("query existing items: %w", err)
	}
	for _, rec := range existing {
		if err := app.Delete(rec); err != nil {
			return fmt.Errorf("delete item %s: %w", rec.Id, err)
		}
	}

	col, err := app.FindCollectionByNameOrId("invoice_items")
	if err != nil {
		return fmt.Errorf("invoice_items collection: %w", err)
	}
	for _, item := range items {
		rec := core.NewRecord(col)
		rec.Set("invoice", invoiceID)
		rec.Set("position", item.Index)
		rec.Set("description", item.Description)
		rec.Set("quantity", item.Quantity)
		rec.Set("rate", item.Rate)
		rec.Set("tax_rate", item.TaxRate)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("save item at position %d: %w", item.Index, err)
		}
	}
	return nil
}

// discardDraft removes the autosave snapshot for a draft key, if any. Best
// effort; failures are logged and ignored.
func discardDraft(app *pocketbase.PocketBase, ownerID, draftKey string) {
	if draftKey == "" {
		return
	}
	drafts, err := app.FindRecordsByFilter(
		"invoice_drafts",
		"owner = {:owner} && draft_key = {:key}",
		"",
		0,
		0,
		map[string]any{"owner": ownerID, "key": draftKey},
	)
	if err != nil {
		log.Printf("invoice_form: discardDraft: could not query drafts: %v", err)
		return
	}
	for _, rec := range drafts {
		if err := app.Delete(rec); err != nil {
			log.Printf("invoice_form: discardDraft: could not delete draft %s: %v", rec.Id, err)
		}
	}
}
