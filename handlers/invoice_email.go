package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fakti/services"
	"fakti/templates"
)

// HandleInvoiceSendForm handles GET /invoices/{id}/send
func HandleInvoiceSendForm(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)
		invoiceID := e.Request.PathValue("id")

		if _, ok := findOwned(app, "invoices", invoiceID, user.Id); !ok {
			return ErrorToast(e, http.StatusNotFound, "Invoice not found")
		}

		export, err := services.BuildInvoiceExportData(app, invoiceID)
		if err != nil {
			log.Printf("invoice_email: HandleInvoiceSendForm: could not build export data: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		senderName := export.BusinessName
		if senderName == "" {
			senderName = user.Email()
		}

		data := templates.SendEmailData{
			InvoiceID:     invoiceID,
			InvoiceNumber: export.InvoiceNumber,
			To:            export.Client.Email,
			Subject:       services.DefaultEmailSubject(export.InvoiceNumber, export.Client.Name),
			Message:       services.DefaultEmailMessage(export.Client.Name, export.InvoiceNumber, export.Total, export.Currency, senderName),
			AttachPDF:     true,
			Errors:        make(map[string]string),
		}
		return templates.SendEmailPage(data, GetHeaderData(e.Request)).Render(e.Request.Context(), e.Response)
	}
}

// HandleInvoiceSend handles POST /invoices/{id}/send
func HandleInvoiceSend(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)
		invoiceID := e.Request.PathValue("id")

		invoice, ok := findOwned(app, "invoices", invoiceID, user.Id)
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Invoice not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		data := templates.SendEmailData{
			InvoiceID:     invoiceID,
			InvoiceNumber: invoice.GetString("invoice_number"),
			To:            strings.TrimSpace(e.Request.FormValue("to_email")),
			CC:            strings.TrimSpace(e.Request.FormValue("cc")),
			BCC:           strings.TrimSpace(e.Request.FormValue("bcc")),
			ReplyTo:       strings.TrimSpace(e.Request.FormValue("reply_to")),
			Subject:       strings.TrimSpace(e.Request.FormValue("subject")),
			Message:       e.Request.FormValue("message"),
			AttachPDF:     e.Request.FormValue("attach_pdf") == "1",
			Errors:        make(map[string]string),
		}

		if data.To == "" {
			data.Errors["to_email"] = "Recipient email is required"
		}
		if data.Subject == "" {
			data.Errors["form"] = "Subject is required"
		}
		cc, err := services.SplitEmailList(data.CC)
		if err != nil {
			data.Errors["cc"] = err.Error()
		}
		bcc, err := services.SplitEmailList(data.BCC)
		if err != nil {
			data.Errors["bcc"] = err.Error()
		}

		if len(data.Errors) > 0 {
			SetToast(e, "warning", "Please fix the errors below")
			return templates.SendEmailPage(data, GetHeaderData(e.Request)).Render(e.Request.Context(), e.Response)
		}

		export, err := services.BuildInvoiceExportData(app, invoiceID)
		if err != nil {
			log.Printf("invoice_email: HandleInvoiceSend: could not build export data: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		req := services.InvoiceEmail{
			To:        data.To,
			CC:        cc,
			BCC:       bcc,
			ReplyTo:   data.ReplyTo,
			Subject:   data.Subject,
			Message:   data.Message,
			AttachPDF: data.AttachPDF,
		}

		if err := services.SendInvoiceEmail(app, export, req); err != nil {
			log.Printf("invoice_email: HandleInvoiceSend: send failed for invoice %s: %v", invoiceID, err)
			SetToast(e, "error", "Could not send the email. Please check the addresses and try again.")
			data.Errors["form"] = "Could not send the email"
			return templates.SendEmailPage(data, GetHeaderData(e.Request)).Render(e.Request.Context(), e.Response)
		}

		// A draft that has been emailed is no longer a draft.
		if invoice.GetString("status") == "draft" {
			invoice.Set("status", "sent")
			if err := app.Save(invoice); err != nil {
				log.Printf("invoice_email: HandleInvoiceSend: could not mark invoice %s sent: %v", invoiceID, err)
			}
		}

		SetToast(e, "success", "Invoice sent to "+data.To)
		return redirectAfterSave(e, "/invoices/"+invoiceID)
	}
}
