package services

import (
	"bytes"
	"fmt"
	"io"
	"net/mail"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/tools/mailer"
)

// InvoiceEmail describes one outgoing invoice email.
type InvoiceEmail struct {
	To        string
	CC        []string
	BCC       []string
	ReplyTo   string
	Subject   string
	Message   string
	AttachPDF bool
}

// SplitEmailList splits a comma or semicolon separated list of addresses
// and validates each entry.
func SplitEmailList(value string) ([]string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	var out []string
	for _, part := range strings.Split(strings.ReplaceAll(value, ";", ","), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, err := mail.ParseAddress(part); err != nil {
			return nil, fmt.Errorf("%s is not a valid email address", part)
		}
		out = append(out, part)
	}
	return out, nil
}

// DefaultEmailSubject builds the prefilled subject for the send-invoice form.
func DefaultEmailSubject(invoiceNumber, clientName string) string {
	return fmt.Sprintf("[Fakti] Invoice %s for %s", invoiceNumber, clientName)
}

// DefaultEmailMessage builds the prefilled body for the send-invoice form.
func DefaultEmailMessage(clientName, invoiceNumber string, total float64, currency, senderName string) string {
	return fmt.Sprintf(
		"Hello %s,\n\nPlease find attached your invoice %s totaling %s.\n\nThank you,\n%s",
		clientName, invoiceNumber, FormatMoney(total, currency), senderName,
	)
}

// SendInvoiceEmail sends an invoice email through the app mailer, optionally
// attaching the rendered PDF. The caller is responsible for the draft to
// sent status transition.
func SendInvoiceEmail(app *pocketbase.PocketBase, data *InvoiceExportData, req InvoiceEmail) error {
	if _, err := mail.ParseAddress(req.To); err != nil {
		return fmt.Errorf("invalid recipient address %q", req.To)
	}

	message := &mailer.Message{
		From: mail.Address{
			Name:    app.Settings().Meta.SenderName,
			Address: app.Settings().Meta.SenderAddress,
		},
		To:      []mail.Address{{Address: req.To}},
		Subject: req.Subject,
		Text:    req.Message,
	}

	for _, addr := range req.CC {
		message.Cc = append(message.Cc, mail.Address{Address: addr})
	}
	for _, addr := range req.BCC {
		message.Bcc = append(message.Bcc, mail.Address{Address: addr})
	}
	if req.ReplyTo != "" {
		message.Headers = map[string]string{"Reply-To": req.ReplyTo}
	}

	if req.AttachPDF {
		pdf, err := GenerateInvoicePDF(data)
		if err != nil {
			return fmt.Errorf("render attachment: %w", err)
		}
		fileName := ExportFileName(data.InvoiceNumber, data.Client.Name, "pdf")
		message.Attachments = map[string]io.Reader{
			fileName: bytes.NewReader(pdf),
		}
	}

	if err := app.NewMailClient().Send(message); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
