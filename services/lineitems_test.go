package services

import (
	"math"
	"net/url"
	"testing"
)

func TestCalcLineItem(t *testing.T) {
	tests := []struct {
		name         string
		quantity     float64
		rate         float64
		taxRate      float64
		wantSubtotal float64
		wantTax      float64
		wantTotal    float64
	}{
		{"basic", 2, 10, 10, 20, 2, 22},
		{"zero_quantity", 0, 100, 18, 0, 0, 0},
		{"zero_tax", 3, 50, 0, 150, 0, 150},
		{"fractional", 2.5, 19.99, 7, 49.975, 3.49825, 53.47325},
		{"empty_row", 0, 0, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcLineItem(LineItem{Quantity: tt.quantity, Rate: tt.rate, TaxRate: tt.taxRate})
			if !floatClose(got.Subtotal, tt.wantSubtotal) {
				t.Errorf("Subtotal = %f, want %f", got.Subtotal, tt.wantSubtotal)
			}
			if !floatClose(got.Tax, tt.wantTax) {
				t.Errorf("Tax = %f, want %f", got.Tax, tt.wantTax)
			}
			if !floatClose(got.Total, tt.wantTotal) {
				t.Errorf("Total = %f, want %f", got.Total, tt.wantTotal)
			}
		})
	}
}

func TestCalcInvoiceTotals_AddThenRecompute(t *testing.T) {
	e := NewEditor(nil)
	e.Add()
	if err := e.SetItem(0, "Consulting", 2, 10, 10); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}

	calc := CalcLineItem(e.Items()[0])
	if !floatClose(calc.Total, 22) {
		t.Errorf("line total = %f, want 22.00", calc.Total)
	}

	totals := e.Totals(5)
	if !floatClose(totals.Subtotal, 20) {
		t.Errorf("Subtotal = %f, want 20.00", totals.Subtotal)
	}
	if !floatClose(totals.TotalTax, 2) {
		t.Errorf("TotalTax = %f, want 2.00", totals.TotalTax)
	}
	if !floatClose(totals.Total, 17) {
		t.Errorf("Total = %f, want 17.00", totals.Total)
	}
}

func TestCalcInvoiceTotals_DiscountOnly(t *testing.T) {
	totals := CalcInvoiceTotals(nil, 5)
	if !floatClose(totals.Total, -5) {
		t.Errorf("Total = %f, want -5 (discount applies even with no items)", totals.Total)
	}
}

func TestCalcInvoiceTotals_NegativeDiscountTreatedAsZero(t *testing.T) {
	items := []LineItem{{Description: "work", Quantity: 1, Rate: 100}}

	totals := CalcInvoiceTotals(items, -50)
	if !floatClose(totals.Discount, 0) {
		t.Errorf("Discount = %f, want 0", totals.Discount)
	}
	if !floatClose(totals.Total, 100) {
		t.Errorf("Total = %f, want 100 (a negative discount must not inflate it)", totals.Total)
	}
}

func TestEditor_ReindexOnDelete(t *testing.T) {
	e := NewEditor([]LineItem{
		{Description: "first", Quantity: 1, Rate: 10},
		{Description: "second", Quantity: 2, Rate: 20},
		{Description: "third", Quantity: 3, Rate: 30},
	})

	if err := e.RequestDelete(1); err != nil {
		t.Fatalf("RequestDelete failed: %v", err)
	}
	if err := e.ConfirmDelete(1); err != nil {
		t.Fatalf("ConfirmDelete failed: %v", err)
	}

	items := e.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items after delete, got %d", len(items))
	}
	if items[0].Description != "first" || items[0].Index != 0 {
		t.Errorf("item 0 = %q index %d, want \"first\" index 0", items[0].Description, items[0].Index)
	}
	if items[1].Description != "third" || items[1].Index != 1 {
		t.Errorf("item 1 = %q index %d, want \"third\" index 1", items[1].Description, items[1].Index)
	}

	// The rewritten field names must reflect the new dense sequence.
	if got := ItemFieldName(items[1].Index, FieldRate); got != "items-1-rate" {
		t.Errorf("field name = %q, want items-1-rate", got)
	}
}

func TestEditor_CancelDeleteIsNoOp(t *testing.T) {
	e := NewEditor([]LineItem{{Description: "only", Quantity: 1, Rate: 5}})

	if err := e.RequestDelete(0); err != nil {
		t.Fatalf("RequestDelete failed: %v", err)
	}
	if _, ok := e.PendingDelete(); !ok {
		t.Fatal("expected a pending delete")
	}
	e.CancelDelete()
	if _, ok := e.PendingDelete(); ok {
		t.Error("expected pending delete to be cleared")
	}
	if e.Count() != 1 {
		t.Errorf("expected item to survive a cancelled delete, count = %d", e.Count())
	}
}

func TestEditor_ConfirmWithoutRequestFails(t *testing.T) {
	e := NewEditor([]LineItem{{Description: "x", Quantity: 1, Rate: 1}})
	if err := e.ConfirmDelete(0); err == nil {
		t.Error("expected ConfirmDelete without a pending request to fail")
	}
	if err := e.RequestDelete(0); err != nil {
		t.Fatalf("RequestDelete failed: %v", err)
	}
	if err := e.ConfirmDelete(99); err == nil {
		t.Error("expected ConfirmDelete for a different index to fail")
	}
}

func TestEditor_IdempotentInitialization(t *testing.T) {
	rows := []LineItem{
		{Index: 0, Description: "a", Quantity: 1, Rate: 10},
		{Index: 1, Description: "b", Quantity: 2, Rate: 20},
		{Index: 2, Description: "c", Quantity: 3, Rate: 30},
	}

	first := NewEditor(rows)
	second := NewEditor(first.Items())

	if first.Count() != 3 || second.Count() != 3 {
		t.Errorf("counts = %d, %d, want 3, 3", first.Count(), second.Count())
	}
	for i, item := range second.Items() {
		if item.Index != i {
			t.Errorf("item %d has index %d after re-initialization", i, item.Index)
		}
	}
}

func TestEditor_NormalizesSparseIndices(t *testing.T) {
	// Server-rendered rows may carry stale indices; initialization restores
	// the dense sequence.
	e := NewEditor([]LineItem{
		{Index: 3, Description: "a"},
		{Index: 7, Description: "b"},
	})
	for i, item := range e.Items() {
		if item.Index != i {
			t.Errorf("item %d has index %d, want %d", i, item.Index, i)
		}
	}
}

func TestEditor_IndexContiguityInvariant(t *testing.T) {
	// For an arbitrary add/delete sequence the visible indices must always
	// be exactly {0, 1, ..., N-1}.
	e := NewEditor(nil)

	type op struct {
		add    bool
		delIdx int
	}
	ops := []op{
		{add: true}, {add: true}, {add: true},
		{delIdx: 1}, {add: true}, {delIdx: 0},
		{add: true}, {add: true}, {delIdx: 3}, {delIdx: 0},
	}

	for i, o := range ops {
		if o.add {
			item := e.Add()
			if item.Index != e.Count()-1 {
				t.Fatalf("op %d: added item got index %d, want %d", i, item.Index, e.Count()-1)
			}
		} else {
			if err := e.RequestDelete(o.delIdx); err != nil {
				t.Fatalf("op %d: RequestDelete(%d) failed: %v", i, o.delIdx, err)
			}
			if err := e.ConfirmDelete(o.delIdx); err != nil {
				t.Fatalf("op %d: ConfirmDelete(%d) failed: %v", i, o.delIdx, err)
			}
		}

		for j, item := range e.Items() {
			if item.Index != j {
				t.Fatalf("op %d: item at position %d has index %d", i, j, item.Index)
			}
		}
	}
}

func TestParseLineItems(t *testing.T) {
	form := url.Values{}
	form.Set("items-0-description", "  Design work  ")
	form.Set("items-0-quantity", "2")
	form.Set("items-0-rate", "10")
	form.Set("items-0-tax_rate", "10")
	form.Set("items-1-description", "Hosting")
	form.Set("items-1-quantity", "1")
	form.Set("items-1-rate", "") // empty rate coerces to 0
	form.Set("items-1-tax_rate", "not-a-number")

	items := ParseLineItems(form)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Description != "Design work" {
		t.Errorf("description = %q, want trimmed \"Design work\"", items[0].Description)
	}
	if !floatClose(items[0].Quantity, 2) || !floatClose(items[0].Rate, 10) || !floatClose(items[0].TaxRate, 10) {
		t.Errorf("item 0 parsed as %+v", items[0])
	}
	if !floatClose(items[1].Rate, 0) || !floatClose(items[1].TaxRate, 0) {
		t.Errorf("invalid numeric input should coerce to 0, got %+v", items[1])
	}

	// The empty-rate row contributes only its quantity*0 to the totals.
	totals := CalcInvoiceTotals(items, 0)
	if !floatClose(totals.Subtotal, 20) {
		t.Errorf("Subtotal = %f, want 20", totals.Subtotal)
	}
	if !floatClose(totals.TotalTax, 2) {
		t.Errorf("TotalTax = %f, want 2", totals.TotalTax)
	}
}

func TestParseLineItems_StopsAtGap(t *testing.T) {
	form := url.Values{}
	form.Set("items-0-description", "a")
	// index 1 missing entirely
	form.Set("items-2-description", "c")

	items := ParseLineItems(form)
	if len(items) != 1 {
		t.Errorf("expected parsing to stop at the gap, got %d items", len(items))
	}
}

func TestValidateLineItems(t *testing.T) {
	tests := []struct {
		name         string
		items        []LineItem
		wantCount    int
		wantPosition int
		wantField    string
	}{
		{
			name:      "valid",
			items:     []LineItem{{Description: "ok", Quantity: 1, Rate: 0}},
			wantCount: 0,
		},
		{
			name:         "no_items",
			items:        nil,
			wantCount:    1,
			wantPosition: 0,
			wantField:    "items",
		},
		{
			name: "blank_description",
			items: []LineItem{
				{Description: "fine", Quantity: 1, Rate: 1},
				{Description: "   ", Quantity: 1, Rate: 1},
			},
			wantCount:    1,
			wantPosition: 2,
			wantField:    FieldDescription,
		},
		{
			name:         "zero_quantity",
			items:        []LineItem{{Description: "x", Quantity: 0, Rate: 10}},
			wantCount:    1,
			wantPosition: 1,
			wantField:    FieldQuantity,
		},
		{
			name:         "negative_rate",
			items:        []LineItem{{Description: "x", Quantity: 5, Rate: -1}},
			wantCount:    1,
			wantPosition: 1,
			wantField:    FieldRate,
		},
		{
			name: "collects_all_errors_in_order",
			items: []LineItem{
				{Description: "", Quantity: 0, Rate: 1},
				{Description: "y", Quantity: 2, Rate: -3},
			},
			wantCount:    3,
			wantPosition: 1,
			wantField:    FieldDescription,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateLineItems(tt.items)
			if len(errs) != tt.wantCount {
				t.Fatalf("got %d errors, want %d: %v", len(errs), tt.wantCount, errs)
			}
			if tt.wantCount == 0 {
				if msg := FirstValidationMessage(errs); msg != "" {
					t.Errorf("FirstValidationMessage = %q, want empty", msg)
				}
				return
			}
			if errs[0].Position != tt.wantPosition {
				t.Errorf("first error position = %d, want %d", errs[0].Position, tt.wantPosition)
			}
			if errs[0].Field != tt.wantField {
				t.Errorf("first error field = %q, want %q", errs[0].Field, tt.wantField)
			}
		})
	}
}

func TestItemValidationError_Message(t *testing.T) {
	err := ItemValidationError{Position: 2, Field: FieldQuantity, Message: "Quantity must be greater than zero"}
	want := "item 2: Quantity must be greater than zero"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func floatClose(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}
