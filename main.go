package main

import (
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"fakti/collections"
	"fakti/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections, run data fixups and seed demo data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.MigrateInvoiceNumbers(app); err != nil {
			log.Printf("Warning: invoice number migration failed: %v", err)
		}
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Serve static files from ./static
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// Resolve the signed-in user for every request
		se.Router.BindFunc(handlers.LoadAuthMiddleware(app))

		auth := handlers.RequireAuth

		// ── Auth ─────────────────────────────────────────────────
		se.Router.GET("/login", handlers.HandleLoginPage(app))
		se.Router.POST("/login", handlers.HandleLogin(app))
		se.Router.GET("/register", handlers.HandleRegisterPage(app))
		se.Router.POST("/register", handlers.HandleRegister(app))
		se.Router.POST("/logout", handlers.HandleLogout(app))

		// ── Dashboard ────────────────────────────────────────────
		se.Router.GET("/dashboard", auth(handlers.HandleDashboard(app)))

		// ── Client CRUD ──────────────────────────────────────────
		se.Router.GET("/clients", auth(handlers.HandleClientList(app)))
		se.Router.GET("/clients/add", auth(handlers.HandleClientCreate(app)))
		se.Router.POST("/clients/add", auth(handlers.HandleClientSave(app)))

		// Client import/export (before /clients/{id} so the words don't match as IDs)
		se.Router.GET("/clients/import", auth(handlers.HandleClientImportPage(app)))
		se.Router.POST("/clients/import", auth(handlers.HandleClientValidate(app)))
		se.Router.POST("/clients/import/commit", auth(handlers.HandleClientImportCommit(app)))
		se.Router.GET("/clients/export", auth(handlers.HandleClientExportExcel(app)))

		se.Router.GET("/clients/{id}/edit", auth(handlers.HandleClientEdit(app)))
		se.Router.POST("/clients/{id}/edit", auth(handlers.HandleClientUpdate(app)))
		se.Router.GET("/clients/{id}/delete", auth(handlers.HandleClientDeleteConfirm(app)))
		se.Router.POST("/clients/{id}/delete", auth(handlers.HandleClientDelete(app)))
		se.Router.GET("/clients/{id}", auth(handlers.HandleClientView(app)))

		// ── Item catalog ─────────────────────────────────────────
		se.Router.GET("/items", auth(handlers.HandleItemList(app)))
		se.Router.GET("/items/add", auth(handlers.HandleItemCreate(app)))
		se.Router.POST("/items/add", auth(handlers.HandleItemSave(app)))
		se.Router.GET("/items/{id}/edit", auth(handlers.HandleItemEdit(app)))
		se.Router.POST("/items/{id}/edit", auth(handlers.HandleItemUpdate(app)))
		se.Router.GET("/items/{id}/delete", auth(handlers.HandleItemDeleteConfirm(app)))
		se.Router.POST("/items/{id}/delete", auth(handlers.HandleItemDelete(app)))
		se.Router.GET("/api/items/{id}", auth(handlers.HandleItemDetailAPI(app)))

		// ── Line-item editor fragments ───────────────────────────
		se.Router.POST("/invoices/editor/add", auth(handlers.HandleEditorAddRow(app)))
		se.Router.POST("/invoices/editor/delete", auth(handlers.HandleEditorRequestDelete(app)))
		se.Router.POST("/invoices/editor/delete/confirm", auth(handlers.HandleEditorConfirmDelete(app)))
		se.Router.POST("/invoices/editor/delete/cancel", auth(handlers.HandleEditorCancelDelete(app)))
		se.Router.POST("/invoices/editor/recompute", auth(handlers.HandleEditorRecompute(app)))

		// ── Invoice CRUD ─────────────────────────────────────────
		se.Router.GET("/invoices", auth(handlers.HandleInvoiceList(app)))
		se.Router.GET("/invoices/add", auth(handlers.HandleInvoiceCreate(app)))
		se.Router.POST("/invoices/add", auth(handlers.HandleInvoiceSave(app)))
		se.Router.GET("/invoices/export", auth(handlers.HandleInvoiceExportExcel(app)))
		se.Router.POST("/invoices/draft", auth(handlers.HandleInvoiceDraftSave(app)))

		se.Router.GET("/invoices/{id}/edit", auth(handlers.HandleInvoiceEdit(app)))
		se.Router.POST("/invoices/{id}/edit", auth(handlers.HandleInvoiceUpdate(app)))
		se.Router.GET("/invoices/{id}/delete", auth(handlers.HandleInvoiceDeleteConfirm(app)))
		se.Router.POST("/invoices/{id}/delete", auth(handlers.HandleInvoiceDelete(app)))
		se.Router.POST("/invoices/{id}/status/{status}", auth(handlers.HandleInvoiceStatusChange(app)))
		se.Router.GET("/invoices/{id}/pdf", auth(handlers.HandleInvoiceExportPDF(app)))
		se.Router.GET("/invoices/{id}/send", auth(handlers.HandleInvoiceSendForm(app)))
		se.Router.POST("/invoices/{id}/send", auth(handlers.HandleInvoiceSend(app)))

		// Invoice view (after specific /invoices/{id}/* routes)
		se.Router.GET("/invoices/{id}", auth(handlers.HandleInvoiceView(app)))

		// Redirect home to the dashboard
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/dashboard")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
