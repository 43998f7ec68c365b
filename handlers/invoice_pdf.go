package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fakti/services"
)

// HandleInvoiceExportPDF handles GET /invoices/{id}/pdf
func HandleInvoiceExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetCurrentUser(e.Request)
		invoiceID := e.Request.PathValue("id")

		if _, ok := findOwned(app, "invoices", invoiceID, user.Id); !ok {
			return ErrorToast(e, http.StatusNotFound, "Invoice not found")
		}

		data, err := services.BuildInvoiceExportData(app, invoiceID)
		if err != nil {
			log.Printf("invoice_pdf: HandleInvoiceExportPDF: could not build export data: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not generate the PDF")
		}

		pdfBytes, err := services.GenerateInvoicePDF(data)
		if err != nil {
			log.Printf("invoice_pdf: HandleInvoiceExportPDF: could not render PDF: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not generate the PDF")
		}

		fileName := services.ExportFileName(data.InvoiceNumber, data.Client.Name, "pdf")
		e.Response.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
		return e.Blob(http.StatusOK, "application/pdf", pdfBytes)
	}
}
