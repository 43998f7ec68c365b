package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateInvoicePDF creates a PDF document for an invoice using maroto/v2.
// It returns the raw PDF bytes or an error.
func GenerateInvoicePDF(data *InvoiceExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addInvoiceHeader(m, data)
	addInvoiceParties(m, data)
	addInvoiceLineItemsTable(m, data)
	addInvoiceTotals(m, data)
	addInvoiceAmountInWords(m, data)
	addInvoiceNotes(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invoice PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addInvoiceHeader adds the business name, "INVOICE" title, invoice number,
// dates and status.
func addInvoiceHeader(m core.Maroto, data *InvoiceExportData) {
	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(
				text.New(data.BusinessName, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(6).Add(
				text.New("INVOICE", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: &props.Color{Red: 33, Green: 37, Blue: 41},
				}),
			),
		),
	)

	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(
				text.New(data.BusinessEmail, props.Text{Size: 8, Align: align.Left}),
			),
			col.New(6).Add(
				text.New("No: "+data.InvoiceNumber, props.Text{
					Size:  9,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)

	m.AddRows(
		row.New(5).Add(
			col.New(6).Add(
				text.New("Status: "+data.Status, props.Text{Size: 8, Align: align.Left}),
			),
			col.New(6).Add(
				text.New(
					fmt.Sprintf("Issued: %s    Due: %s", data.IssueDate, data.DueDate),
					props.Text{Size: 8, Align: align.Right},
				),
			),
		),
	)

	m.AddRows(row.New(2).Add(col.New(12).Add(line.New())))
	m.AddRows(row.New(2))
}

// addInvoiceParties adds the BILL TO block.
func addInvoiceParties(m core.Maroto, data *InvoiceExportData) {
	sectionLabel := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Left,
	}
	valueStyle := props.Text{Size: 8, Align: align.Left}
	boldValue := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left}

	headerBg := &props.Color{Red: 245, Green: 243, Blue: 239}
	headerCell := &props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(text.New("BILL TO", sectionLabel)).WithStyle(headerCell),
		),
	)

	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New(data.Client.Name, boldValue)),
		),
	)
	if data.Client.Address != "" {
		m.AddRows(
			row.New(8).Add(
				col.New(12).Add(text.New(data.Client.Address, valueStyle)),
			),
		)
	}
	if data.Client.Email != "" || data.Client.Phone != "" {
		m.AddRows(
			row.New(5).Add(
				col.New(6).Add(text.New(data.Client.Email, valueStyle)),
				col.New(6).Add(text.New(data.Client.Phone, valueStyle)),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addInvoiceLineItemsTable adds the line items table with header and body rows.
func addInvoiceLineItemsTable(m core.Maroto, data *InvoiceExportData) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", headerText)).WithStyle(&headerCell),
			col.New(4).Add(text.New("Description", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Rate", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Tax %", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Tax", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Amount", headerText)).WithStyle(&headerCell),
		),
	)

	altBg := &props.Color{Red: 248, Green: 249, Blue: 250}
	bodyText := props.Text{Size: 7, Align: align.Center}
	bodyTextLeft := props.Text{Size: 7, Align: align.Left}
	bodyTextRight := props.Text{Size: 7, Align: align.Right}

	for i, item := range data.LineItems {
		cols := []core.Col{
			col.New(1).Add(text.New(fmt.Sprintf("%d", item.Position), bodyText)),
			col.New(4).Add(text.New(item.Description, bodyTextLeft)),
			col.New(1).Add(text.New(fmt.Sprintf("%g", item.Quantity), bodyText)),
			col.New(2).Add(text.New(FormatAmount(item.Rate), bodyTextRight)),
			col.New(1).Add(text.New(fmt.Sprintf("%g", item.TaxRate), bodyText)),
			col.New(1).Add(text.New(FormatAmount(item.Tax), bodyTextRight)),
			col.New(2).Add(text.New(FormatAmount(item.Total), bodyTextRight)),
		}

		r := row.New(6).Add(cols...)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: altBg})
		}
		m.AddRows(r)
	}

	m.AddRows(row.New(2))
}

// addInvoiceTotals adds the subtotal / tax / discount / total block, right
// aligned under the table.
func addInvoiceTotals(m core.Maroto, data *InvoiceExportData) {
	label := props.Text{Size: 8, Align: align.Right}
	value := props.Text{Size: 8, Align: align.Right}
	boldLabel := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	boldValue := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}

	addTotalRow := func(name string, amount float64, bold bool) {
		l, v := label, value
		if bold {
			l, v = boldLabel, boldValue
		}
		m.AddRows(
			row.New(5).Add(
				col.New(8),
				col.New(2).Add(text.New(name, l)),
				col.New(2).Add(text.New(FormatMoney(amount, data.Currency), v)),
			),
		)
	}

	addTotalRow("Subtotal", data.Subtotal, false)
	addTotalRow("Tax", data.TotalTax, false)
	if data.Discount != 0 {
		addTotalRow("Discount", -data.Discount, false)
	}
	addTotalRow("Total", data.Total, true)

	m.AddRows(row.New(2))
}

// addInvoiceAmountInWords adds the amount-in-words line below the totals.
func addInvoiceAmountInWords(m core.Maroto, data *InvoiceExportData) {
	if data.AmountInWords == "" {
		return
	}
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New("Amount in words: "+data.AmountInWords, props.Text{
					Size:  8,
					Style: fontstyle.Italic,
					Align: align.Left,
				}),
			),
		),
	)
}

// addInvoiceNotes adds the free-text notes block when present.
func addInvoiceNotes(m core.Maroto, data *InvoiceExportData) {
	if data.Notes == "" {
		return
	}
	m.AddRows(row.New(2))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New("Notes", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left}),
			),
		),
	)
	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(
				text.New(data.Notes, props.Text{Size: 8, Align: align.Left}),
			),
		),
	)
}
