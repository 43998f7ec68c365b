package templates

import "github.com/a-h/templ"

// ClientRow is one client in the list view.
type ClientRow struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	City    string
	Country string
}

type ClientListData struct {
	Clients []ClientRow
}

var clientListTmpl = parse("client_list", `<section>
<div class="page-head">
	<h1>Clients</h1>
	<div class="actions">
		<a class="button" href="/clients/add">Add client</a>
		<a class="button secondary" href="/clients/import">Import</a>
		<a class="button secondary" href="/clients/export">Export</a>
	</div>
</div>
{{if .Clients}}
<table class="list">
<thead><tr><th>Name</th><th>Email</th><th>Phone</th><th>City</th><th>Country</th><th></th></tr></thead>
<tbody>
{{range .Clients}}
<tr>
	<td><a href="/clients/{{.ID}}">{{.Name}}</a></td>
	<td>{{.Email}}</td>
	<td>{{.Phone}}</td>
	<td>{{.City}}</td>
	<td>{{.Country}}</td>
	<td class="row-actions">
		<a href="/clients/{{.ID}}/edit">Edit</a>
		<a href="/invoices/add?client={{.ID}}">New invoice</a>
	</td>
</tr>
{{end}}
</tbody>
</table>
{{else}}
<p class="empty">No clients yet. <a href="/clients/add">Add your first client</a>.</p>
{{end}}
</section>`)

func ClientListContent(data ClientListData) templ.Component {
	return templ.FromGoHTML(clientListTmpl, data)
}

func ClientListPage(data ClientListData, header HeaderData) templ.Component {
	return Page("Clients", header, ClientListContent(data))
}

// ClientFormData feeds both the create and the edit form.
type ClientFormData struct {
	Title   string
	Action  string
	ID      string
	Name    string
	Email   string
	Phone   string
	Address string
	City    string
	Country string
	Notes   string
	Errors  map[string]string
}

var clientFormTmpl = parse("client_form", `<section class="card">
<h1>{{.Title}}</h1>
<form method="post" action="{{.Action}}">
	<label>Name *
		<input type="text" name="name" value="{{.Name}}" required autofocus>
	</label>
	{{with .Errors.name}}<p class="field-error">{{.}}</p>{{end}}
	<label>Email
		<input type="email" name="email" value="{{.Email}}">
	</label>
	{{with .Errors.email}}<p class="field-error">{{.}}</p>{{end}}
	<label>Phone
		<input type="text" name="phone" value="{{.Phone}}">
	</label>
	<label>Address
		<textarea name="address" rows="3">{{.Address}}</textarea>
	</label>
	<label>City
		<input type="text" name="city" value="{{.City}}">
	</label>
	<label>Country
		<input type="text" name="country" value="{{.Country}}">
	</label>
	<label>Notes
		<textarea name="notes" rows="3">{{.Notes}}</textarea>
	</label>
	<div class="actions">
		<button type="submit">Save</button>
		<a class="button secondary" href="/clients">Cancel</a>
	</div>
</form>
</section>`)

func ClientFormContent(data ClientFormData) templ.Component {
	return templ.FromGoHTML(clientFormTmpl, data)
}

func ClientFormPage(data ClientFormData, header HeaderData) templ.Component {
	return Page(data.Title, header, ClientFormContent(data))
}

// ClientInvoiceRow is one invoice shown on the client detail page.
type ClientInvoiceRow struct {
	ID            string
	InvoiceNumber string
	IssueDate     string
	Status        string
	Total         float64
	Currency      string
}

type ClientDetailData struct {
	ID       string
	Name     string
	Email    string
	Phone    string
	Address  string
	City     string
	Country  string
	Notes    string
	Invoices []ClientInvoiceRow
}

var clientDetailTmpl = parse("client_detail", `<section>
<div class="page-head">
	<h1>{{.Name}}</h1>
	<div class="actions">
		<a class="button" href="/invoices/add?client={{.ID}}">New invoice</a>
		<a class="button secondary" href="/clients/{{.ID}}/edit">Edit</a>
		<a class="button danger" href="/clients/{{.ID}}/delete">Delete</a>
	</div>
</div>
<dl class="details">
	{{if .Email}}<dt>Email</dt><dd>{{.Email}}</dd>{{end}}
	{{if .Phone}}<dt>Phone</dt><dd>{{.Phone}}</dd>{{end}}
	{{if .Address}}<dt>Address</dt><dd>{{.Address}}</dd>{{end}}
	{{if .City}}<dt>City</dt><dd>{{.City}}</dd>{{end}}
	{{if .Country}}<dt>Country</dt><dd>{{.Country}}</dd>{{end}}
	{{if .Notes}}<dt>Notes</dt><dd>{{.Notes}}</dd>{{end}}
</dl>
<h2>Invoices</h2>
{{if .Invoices}}
<table class="list">
<thead><tr><th>Number</th><th>Issued</th><th>Status</th><th class="num">Total</th></tr></thead>
<tbody>
{{range .Invoices}}
<tr>
	<td><a href="/invoices/{{.ID}}">{{.InvoiceNumber}}</a></td>
	<td>{{.IssueDate}}</td>
	<td><span class="status status-{{.Status}}">{{.Status}}</span></td>
	<td class="num">{{money .Total .Currency}}</td>
</tr>
{{end}}
</tbody>
</table>
{{else}}
<p class="empty">No invoices for this client yet.</p>
{{end}}
</section>`)

func ClientDetailContent(data ClientDetailData) templ.Component {
	return templ.FromGoHTML(clientDetailTmpl, data)
}

func ClientDetailPage(data ClientDetailData, header HeaderData) templ.Component {
	return Page(data.Name, header, ClientDetailContent(data))
}

// ConfirmDeleteData feeds the generic delete confirmation page.
type ConfirmDeleteData struct {
	Title     string
	Prompt    string
	Action    string
	CancelURL string
}

var confirmDeleteTmpl = parse("confirm_delete", `<section class="card narrow">
<h1>{{.Title}}</h1>
<p>{{.Prompt}}</p>
<form method="post" action="{{.Action}}">
	<div class="actions">
		<button type="submit" class="danger">Delete</button>
		<a class="button secondary" href="{{.CancelURL}}">Cancel</a>
	</div>
</form>
</section>`)

func ConfirmDeleteContent(data ConfirmDeleteData) templ.Component {
	return templ.FromGoHTML(confirmDeleteTmpl, data)
}

func ConfirmDeletePage(data ConfirmDeleteData, header HeaderData) templ.Component {
	return Page(data.Title, header, ConfirmDeleteContent(data))
}

// ClientImportData feeds the upload page and the validate-then-commit review.
type ClientImportData struct {
	TotalRows int
	ValidRows int
	ErrorRows int
	Errors    []ClientImportError
	FileName  string
	Payload   string // serialized parsed rows carried to the commit step
}

type ClientImportError struct {
	Row     int
	Field   string
	Message string
}

var clientImportTmpl = parse("client_import", `<section class="card">
<h1>Import clients</h1>
<p>Upload a .csv or .xlsx file. Columns: Name *, Email, Phone, Address, City, Country, Notes.
<a href="/clients/export">Download a template</a>.</p>
<form method="post" action="/clients/import" enctype="multipart/form-data">
	<input type="file" name="file" accept=".csv,.xlsx" required>
	<button type="submit">Validate</button>
</form>
{{if .FileName}}
<h2>{{.FileName}}</h2>
<p>{{.ValidRows}} of {{.TotalRows}} rows valid, {{.ErrorRows}} with errors.</p>
{{if .Errors}}
<table class="list">
<thead><tr><th>Row</th><th>Field</th><th>Error</th></tr></thead>
<tbody>
{{range .Errors}}<tr><td>{{.Row}}</td><td>{{.Field}}</td><td>{{.Message}}</td></tr>{{end}}
</tbody>
</table>
{{else}}
<form method="post" action="/clients/import/commit">
	<input type="hidden" name="payload" value="{{.Payload}}">
	<button type="submit">Import {{.ValidRows}} clients</button>
</form>
{{end}}
{{end}}
</section>`)

func ClientImportContent(data ClientImportData) templ.Component {
	return templ.FromGoHTML(clientImportTmpl, data)
}

func ClientImportPage(data ClientImportData, header HeaderData) templ.Component {
	return Page("Import clients", header, ClientImportContent(data))
}
