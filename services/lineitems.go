// Package services provides the invoice line-item model, pricing
// calculations and import/export helpers used by the handlers.
package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Form field names follow the pattern items-<index>-<fieldname>. The server
// side form processing reconstructs the item list from these positional
// names, so they must form a dense 0..N-1 sequence at all times.
const (
	FieldDescription = "description"
	FieldQuantity    = "quantity"
	FieldRate        = "rate"
	FieldTaxRate     = "tax_rate"
)

// LineItem is one billable row on an invoice.
type LineItem struct {
	Index       int
	Description string
	Quantity    float64
	Rate        float64
	TaxRate     float64
}

// LineItemCalc holds the derived amounts for a single line item.
type LineItemCalc struct {
	Subtotal float64 // Quantity * Rate
	Tax      float64 // Subtotal * TaxRate / 100
	Total    float64 // Subtotal + Tax
}

// CalcLineItem computes the derived amounts for one line item.
func CalcLineItem(item LineItem) LineItemCalc {
	subtotal := item.Quantity * item.Rate
	tax := subtotal * item.TaxRate / 100
	return LineItemCalc{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// InvoiceTotals holds the aggregated totals for an invoice. Totals are always
// a pure function of the current line items plus the discount amount.
type InvoiceTotals struct {
	Subtotal float64
	TotalTax float64
	Discount float64
	Total    float64
}

// CalcInvoiceTotals computes the aggregate totals across all line items.
// The discount is a single invoice-wide amount, not per line; a negative
// discount is treated as zero.
func CalcInvoiceTotals(items []LineItem, discount float64) InvoiceTotals {
	if discount < 0 {
		discount = 0
	}
	totals := InvoiceTotals{Discount: discount}
	for _, item := range items {
		calc := CalcLineItem(item)
		totals.Subtotal += calc.Subtotal
		totals.TotalTax += calc.Tax
	}
	totals.Total = totals.Subtotal + totals.TotalTax - discount
	return totals
}

// ItemFieldName returns the positional form field name for an item field,
// e.g. ItemFieldName(2, FieldQuantity) == "items-2-quantity".
func ItemFieldName(index int, field string) string {
	return fmt.Sprintf("items-%d-%s", index, field)
}

// ParseAmount converts a form value to a float64. Missing or non-numeric
// input is treated as 0, never as an error; validation is the authority
// for correctness.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseLineItems reconstructs the ordered item list from posted form values.
// It scans ascending indices starting at 0 and stops at the first index for
// which no field is present, so a well-formed post always yields a dense
// 0..N-1 list.
func ParseLineItems(form url.Values) []LineItem {
	var items []LineItem
	for i := 0; ; i++ {
		if !itemPresent(form, i) {
			break
		}
		items = append(items, LineItem{
			Index:       i,
			Description: strings.TrimSpace(form.Get(ItemFieldName(i, FieldDescription))),
			Quantity:    ParseAmount(form.Get(ItemFieldName(i, FieldQuantity))),
			Rate:        ParseAmount(form.Get(ItemFieldName(i, FieldRate))),
			TaxRate:     ParseAmount(form.Get(ItemFieldName(i, FieldTaxRate))),
		})
	}
	return items
}

func itemPresent(form url.Values, index int) bool {
	for _, field := range []string{FieldDescription, FieldQuantity, FieldRate, FieldTaxRate} {
		if _, ok := form[ItemFieldName(index, field)]; ok {
			return true
		}
	}
	return false
}

// Editor maintains an ordered, user-editable list of line items. The model
// is the single source of truth; rendered rows are a projection of it. The
// next index is always derived from the current item count, and deletion is
// a two-phase request/confirm pair so the decision point is testable without
// a modal dialog.
type Editor struct {
	items         []LineItem
	pendingDelete int // index awaiting confirmation, -1 when none
}

// NewEditor creates an editor over the given items. Indices are normalized
// to a dense 0..N-1 sequence regardless of what the caller passes in, which
// makes re-initialization from already-normalized rows a no-op.
func NewEditor(items []LineItem) *Editor {
	e := &Editor{
		items:         make([]LineItem, len(items)),
		pendingDelete: -1,
	}
	copy(e.items, items)
	e.reindex()
	return e
}

// Items returns a copy of the current item list in display order.
func (e *Editor) Items() []LineItem {
	out := make([]LineItem, len(e.items))
	copy(out, e.items)
	return out
}

// Count returns the number of items currently in the list.
func (e *Editor) Count() int {
	return len(e.items)
}

// NextIndex returns the index the next added item will receive.
func (e *Editor) NextIndex() int {
	return len(e.items)
}

// Add appends a new empty line item at the end of the list and returns it.
// The new item contributes zero to all totals until populated. There is no
// upper bound on the item count.
func (e *Editor) Add() LineItem {
	item := LineItem{Index: e.NextIndex()}
	e.items = append(e.items, item)
	return item
}

// SetItem replaces the fields of the item at the given index.
func (e *Editor) SetItem(index int, description string, quantity, rate, taxRate float64) error {
	if index < 0 || index >= len(e.items) {
		return fmt.Errorf("no line item at index %d", index)
	}
	e.items[index].Description = strings.TrimSpace(description)
	e.items[index].Quantity = quantity
	e.items[index].Rate = rate
	e.items[index].TaxRate = taxRate
	return nil
}

// RequestDelete marks the item at index as pending deletion. The item is not
// removed until ConfirmDelete is called; CancelDelete aborts with no change.
func (e *Editor) RequestDelete(index int) error {
	if index < 0 || index >= len(e.items) {
		return fmt.Errorf("no line item at index %d", index)
	}
	e.pendingDelete = index
	return nil
}

// PendingDelete reports which item, if any, is awaiting delete confirmation.
func (e *Editor) PendingDelete() (int, bool) {
	if e.pendingDelete < 0 {
		return 0, false
	}
	return e.pendingDelete, true
}

// CancelDelete clears a pending delete request. Calling it with no pending
// request is a no-op.
func (e *Editor) CancelDelete() {
	e.pendingDelete = -1
}

// ConfirmDelete removes the item at the given index, which must match the
// pending request. Remaining items are immediately re-indexed so the visible
// indices stay exactly {0, 1, ..., N-1}.
func (e *Editor) ConfirmDelete(index int) error {
	if e.pendingDelete < 0 {
		return fmt.Errorf("no delete pending")
	}
	if index != e.pendingDelete {
		return fmt.Errorf("delete pending for index %d, not %d", e.pendingDelete, index)
	}
	e.items = append(e.items[:index], e.items[index+1:]...)
	e.pendingDelete = -1
	e.reindex()
	return nil
}

// Totals recomputes the invoice totals from the current items and the given
// discount. No state is cached between calls.
func (e *Editor) Totals(discount float64) InvoiceTotals {
	return CalcInvoiceTotals(e.items, discount)
}

func (e *Editor) reindex() {
	for i := range e.items {
		e.items[i].Index = i
	}
}

// ItemValidationError describes one pre-submit validation failure, naming the
// offending item by its 1-based position.
type ItemValidationError struct {
	Position int // 1-based
	Field    string
	Message  string
}

func (e ItemValidationError) Error() string {
	if e.Position == 0 {
		return e.Message
	}
	return fmt.Sprintf("item %d: %s", e.Position, e.Message)
}

// ValidateLineItems runs the pre-submit checks over all items in ascending
// index order and returns every failure found. An empty result means the
// submission may proceed. Callers that want the reference one-message
// behavior surface only the first entry.
func ValidateLineItems(items []LineItem) []ItemValidationError {
	if len(items) == 0 {
		return []ItemValidationError{{
			Field:   "items",
			Message: "An invoice needs at least one line item",
		}}
	}

	var errs []ItemValidationError
	for i, item := range items {
		pos := i + 1
		if strings.TrimSpace(item.Description) == "" {
			errs = append(errs, ItemValidationError{
				Position: pos,
				Field:    FieldDescription,
				Message:  "Description is required",
			})
		}
		if item.Quantity <= 0 {
			errs = append(errs, ItemValidationError{
				Position: pos,
				Field:    FieldQuantity,
				Message:  "Quantity must be greater than zero",
			})
		}
		if item.Rate < 0 {
			errs = append(errs, ItemValidationError{
				Position: pos,
				Field:    FieldRate,
				Message:  "Rate must be zero or greater",
			})
		}
	}
	return errs
}

// FirstValidationMessage returns the message for the first validation error,
// or "" when the list is empty.
func FirstValidationMessage(errs []ItemValidationError) string {
	if len(errs) == 0 {
		return ""
	}
	return errs[0].Error()
}
