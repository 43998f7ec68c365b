package templates

import (
	"html/template"

	"github.com/a-h/templ"
)

// ClientSelectItem is one option in the invoice form's client dropdown.
type ClientSelectItem struct {
	ID       string
	Name     string
	Selected bool
}

// CatalogSelectItem is one option in the row prefill dropdown.
type CatalogSelectItem struct {
	ID        string
	Name      string
	UnitPrice float64
}

// LineItemRowData is one editable row of the line-item editor. The value
// fields are carried as the raw strings the user posted so a failed
// validation never clears or alters an input; the derived amounts come from
// coercing those strings through the editor model.
type LineItemRowData struct {
	Index         int
	Description   string
	Quantity      string
	Rate          string
	TaxRate       string
	Subtotal      float64
	Tax           float64
	Total         float64
	PendingDelete bool
	Focus         bool // render autofocus on the description input
}

// InvoiceEditorData feeds the line-items fragment: the rows plus the derived
// totals summary.
type InvoiceEditorData struct {
	Rows     []LineItemRowData
	Discount string
	Subtotal float64
	TotalTax float64
	Total    float64
	Error    string // first validation error, when present
}

// Positional field names are the server contract: items-<index>-<field>
// forms a dense 0..N-1 sequence that the form processor reconstructs the
// item list from, so every add/delete re-render rewrites them.
var lineItemsTmpl = parse("line_items", `<fieldset id="line-items">
<legend>Line items</legend>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<table class="editor">
<thead>
<tr><th>#</th><th>Description</th><th>Qty</th><th>Rate</th><th>Tax %</th><th class="num">Line total</th><th></th></tr>
</thead>
<tbody>
{{range .Rows}}
<tr{{if .PendingDelete}} class="pending-delete"{{end}}>
	<td>{{inc .Index}}</td>
	<td><input type="text" name="{{field .Index "description"}}" value="{{.Description}}"{{if .Focus}} autofocus{{end}}></td>
	<td><input type="number" name="{{field .Index "quantity"}}" value="{{.Quantity}}" step="0.01" min="0"></td>
	<td><input type="number" name="{{field .Index "rate"}}" value="{{.Rate}}" step="0.01" min="0"></td>
	<td><input type="number" name="{{field .Index "tax_rate"}}" value="{{.TaxRate}}" min="0" max="100"></td>
	<td class="num line-total">{{amount .Total}}</td>
	<td class="row-actions">
	{{if .PendingDelete}}
		<button type="button" class="danger"
			hx-post="/invoices/editor/delete/confirm?index={{.Index}}"
			hx-include="closest form" hx-target="#line-items" hx-swap="outerHTML">Confirm</button>
		<button type="button" class="secondary"
			hx-post="/invoices/editor/delete/cancel"
			hx-include="closest form" hx-target="#line-items" hx-swap="outerHTML">Cancel</button>
	{{else}}
		<button type="button" class="link danger"
			hx-post="/invoices/editor/delete?index={{.Index}}"
			hx-include="closest form" hx-target="#line-items" hx-swap="outerHTML">Delete</button>
	{{end}}
	</td>
</tr>
{{end}}
</tbody>
</table>
<button type="button" id="add-line-item"
	hx-post="/invoices/editor/add"
	hx-include="closest form" hx-target="#line-items" hx-swap="outerHTML">Add line item</button>
<div class="totals">
	<div><span>Subtotal</span><span id="invoice-subtotal">{{amount .Subtotal}}</span></div>
	<div><span>Tax</span><span id="invoice-tax">{{amount .TotalTax}}</span></div>
	<div><label>Discount
		<input type="number" name="discount" class="discount" value="{{.Discount}}" step="0.01" min="0"
			hx-post="/invoices/editor/recompute" hx-include="closest form"
			hx-target="#line-items" hx-swap="outerHTML" hx-trigger="change">
	</label></div>
	<div class="grand"><span>Total</span><span id="invoice-total">{{amount .Total}}</span></div>
</div>
</fieldset>`)

// LineItemsSection renders only the editor fragment; the HTMX endpoints swap
// it in place after every add/delete/recompute.
func LineItemsSection(data InvoiceEditorData) templ.Component {
	return templ.FromGoHTML(lineItemsTmpl, data)
}

// InvoiceFormData feeds both the create and the edit form.
type InvoiceFormData struct {
	Title         string
	Action        string
	ID            string
	InvoiceNumber string
	IssueDate     string
	DueDate       string
	Currency      string
	Status        string
	Notes         string
	Statuses      []string
	Clients       []ClientSelectItem
	CatalogItems  []CatalogSelectItem
	Editor        InvoiceEditorData
	DraftKey      string
	Errors        map[string]string
}

var invoiceFormTmpl = parse("invoice_form", `<section class="card">
<h1>{{.Title}}</h1>
<form method="post" action="{{.Action}}" id="invoice-form"
	hx-post="/invoices/draft" hx-trigger="change delay:2s from:form" hx-swap="none">
	<input type="hidden" name="draft_key" value="{{.DraftKey}}">
	<div class="grid">
	<label>Client *
		<select name="client" required>
			<option value="">choose a client</option>
			{{range .Clients}}<option value="{{.ID}}"{{if .Selected}} selected{{end}}>{{.Name}}</option>{{end}}
		</select>
	</label>
	{{with .Errors.client}}<p class="field-error">{{.}}</p>{{end}}
	<label>Invoice number *
		<input type="text" name="invoice_number" value="{{.InvoiceNumber}}" required>
	</label>
	{{with .Errors.invoice_number}}<p class="field-error">{{.}}</p>{{end}}
	<label>Issue date
		<input type="date" name="issue_date" value="{{.IssueDate}}">
	</label>
	<label>Due date
		<input type="date" name="due_date" value="{{.DueDate}}">
	</label>
	<label>Currency
		<input type="text" name="currency" value="{{.Currency}}" maxlength="3">
	</label>
	<label>Status
		<select name="status">
			{{$current := .Status}}
			{{range .Statuses}}<option value="{{.}}"{{if eq . $current}} selected{{end}}>{{.}}</option>{{end}}
		</select>
	</label>
	</div>
	{{template "line_items" .Editor}}
	<label>Notes
		<textarea name="notes" rows="3">{{.Notes}}</textarea>
	</label>
	<div class="actions">
		<button type="submit">Save invoice</button>
		<a class="button secondary" href="/invoices">Cancel</a>
	</div>
</form>
</section>`)

func init() {
	// The form embeds the editor fragment so a full page render and an HTMX
	// swap produce identical markup.
	template.Must(invoiceFormTmpl.AddParseTree("line_items", lineItemsTmpl.Tree))
}

func InvoiceFormContent(data InvoiceFormData) templ.Component {
	return templ.FromGoHTML(invoiceFormTmpl, data)
}

func InvoiceFormPage(data InvoiceFormData, header HeaderData) templ.Component {
	return Page(data.Title, header, InvoiceFormContent(data))
}

// InvoiceRow is one invoice in the list view.
type InvoiceRow struct {
	ID            string
	InvoiceNumber string
	ClientName    string
	IssueDate     string
	DueDate       string
	Status        string
	Total         float64
	Currency      string
}

// InvoiceListData feeds the list view with its status filter and stats strip.
type InvoiceListData struct {
	Invoices         []InvoiceRow
	StatusFilter     string
	Statuses         []string
	TotalInvoices    int
	DraftCount       int
	SentCount        int
	PaidCount        int
	OverdueCount     int
	TotalAmount      float64
	TotalPaid        float64
	TotalOutstanding float64
}

var invoiceListTmpl = parse("invoice_list", `<section>
<div class="page-head">
	<h1>Invoices</h1>
	<div class="actions">
		<a class="button" href="/invoices/add">New invoice</a>
		<a class="button secondary" href="/invoices/export{{if .StatusFilter}}?status={{.StatusFilter}}{{end}}">Export</a>
	</div>
</div>
<div class="stats">
	<div class="stat"><span>{{.TotalInvoices}}</span>total</div>
	<div class="stat"><span>{{.DraftCount}}</span>draft</div>
	<div class="stat"><span>{{.SentCount}}</span>sent</div>
	<div class="stat"><span>{{.PaidCount}}</span>paid</div>
	<div class="stat"><span>{{.OverdueCount}}</span>overdue</div>
	<div class="stat"><span>{{amount .TotalPaid}}</span>collected</div>
	<div class="stat"><span>{{amount .TotalOutstanding}}</span>outstanding</div>
</div>
<form method="get" action="/invoices" class="filter">
	<select name="status" onchange="this.form.submit()">
		<option value="">All statuses</option>
		{{$current := .StatusFilter}}
		{{range .Statuses}}<option value="{{.}}"{{if eq . $current}} selected{{end}}>{{.}}</option>{{end}}
	</select>
</form>
{{if .Invoices}}
<table class="list">
<thead><tr><th>Number</th><th>Client</th><th>Issued</th><th>Due</th><th>Status</th><th class="num">Total</th></tr></thead>
<tbody>
{{range .Invoices}}
<tr>
	<td><a href="/invoices/{{.ID}}">{{.InvoiceNumber}}</a></td>
	<td>{{.ClientName}}</td>
	<td>{{.IssueDate}}</td>
	<td>{{.DueDate}}</td>
	<td><span class="status status-{{.Status}}">{{.Status}}</span></td>
	<td class="num">{{money .Total .Currency}}</td>
</tr>
{{end}}
</tbody>
</table>
{{else}}
<p class="empty">No invoices{{if .StatusFilter}} with status {{.StatusFilter}}{{end}}.</p>
{{end}}
</section>`)

func InvoiceListContent(data InvoiceListData) templ.Component {
	return templ.FromGoHTML(invoiceListTmpl, data)
}

func InvoiceListPage(data InvoiceListData, header HeaderData) templ.Component {
	return Page("Invoices", header, InvoiceListContent(data))
}

// InvoiceViewItem is one read-only line on the invoice detail page.
type InvoiceViewItem struct {
	Position    int
	Description string
	Quantity    float64
	Rate        float64
	TaxRate     float64
	Total       float64
}

type InvoiceViewData struct {
	ID            string
	InvoiceNumber string
	ClientID      string
	ClientName    string
	IssueDate     string
	DueDate       string
	Status        string
	Currency      string
	Notes         string
	Items         []InvoiceViewItem
	Subtotal      float64
	TotalTax      float64
	Discount      float64
	Total         float64
	NextStatuses  []string
}

var invoiceViewTmpl = parse("invoice_view", `<section>
<div class="page-head">
	<h1>{{.InvoiceNumber}}</h1>
	<div class="actions">
		<a class="button" href="/invoices/{{.ID}}/edit">Edit</a>
		<a class="button secondary" href="/invoices/{{.ID}}/pdf">Download PDF</a>
		<a class="button secondary" href="/invoices/{{.ID}}/send">Email</a>
		<a class="button danger" href="/invoices/{{.ID}}/delete">Delete</a>
	</div>
</div>
<dl class="details">
	<dt>Client</dt><dd><a href="/clients/{{.ClientID}}">{{.ClientName}}</a></dd>
	<dt>Status</dt><dd><span class="status status-{{.Status}}">{{.Status}}</span></dd>
	<dt>Issued</dt><dd>{{.IssueDate}}</dd>
	<dt>Due</dt><dd>{{.DueDate}}</dd>
</dl>
{{if .NextStatuses}}
<div class="status-actions">
	{{$id := .ID}}
	{{range .NextStatuses}}
	<form method="post" action="/invoices/{{$id}}/status/{{.}}"><button type="submit" class="secondary">Mark {{.}}</button></form>
	{{end}}
</div>
{{end}}
<table class="list">
<thead><tr><th>#</th><th>Description</th><th class="num">Qty</th><th class="num">Rate</th><th class="num">Tax %</th><th class="num">Total</th></tr></thead>
<tbody>
{{range .Items}}
<tr>
	<td>{{.Position}}</td>
	<td>{{.Description}}</td>
	<td class="num">{{.Quantity}}</td>
	<td class="num">{{amount .Rate}}</td>
	<td class="num">{{.TaxRate}}</td>
	<td class="num">{{amount .Total}}</td>
</tr>
{{end}}
</tbody>
</table>
<div class="totals">
	<div><span>Subtotal</span><span>{{money .Subtotal .Currency}}</span></div>
	<div><span>Tax</span><span>{{money .TotalTax .Currency}}</span></div>
	{{if .Discount}}<div><span>Discount</span><span>-{{money .Discount .Currency}}</span></div>{{end}}
	<div class="grand"><span>Total</span><span>{{money .Total .Currency}}</span></div>
</div>
{{if .Notes}}<h2>Notes</h2><p>{{.Notes}}</p>{{end}}
</section>`)

func InvoiceViewContent(data InvoiceViewData) templ.Component {
	return templ.FromGoHTML(invoiceViewTmpl, data)
}

func InvoiceViewPage(data InvoiceViewData, header HeaderData) templ.Component {
	return Page(data.InvoiceNumber, header, InvoiceViewContent(data))
}

// SendEmailData feeds the send-invoice form.
type SendEmailData struct {
	InvoiceID     string
	InvoiceNumber string
	To            string
	CC            string
	BCC           string
	ReplyTo       string
	Subject       string
	Message       string
	AttachPDF     bool
	Errors        map[string]string
}

var sendEmailTmpl = parse("send_email", `<section class="card">
<h1>Send {{.InvoiceNumber}}</h1>
{{with .Errors.form}}<p class="error">{{.}}</p>{{end}}
<form method="post" action="/invoices/{{.InvoiceID}}/send">
	<label>To *
		<input type="email" name="to_email" value="{{.To}}" required>
	</label>
	{{with .Errors.to_email}}<p class="field-error">{{.}}</p>{{end}}
	<label>CC
		<input type="text" name="cc" value="{{.CC}}" placeholder="Comma or semicolon separated">
	</label>
	{{with .Errors.cc}}<p class="field-error">{{.}}</p>{{end}}
	<label>BCC
		<input type="text" name="bcc" value="{{.BCC}}">
	</label>
	{{with .Errors.bcc}}<p class="field-error">{{.}}</p>{{end}}
	<label>Reply-To
		<input type="email" name="reply_to" value="{{.ReplyTo}}">
	</label>
	<label>Subject *
		<input type="text" name="subject" value="{{.Subject}}" maxlength="200" required>
	</label>
	<label>Message
		<textarea name="message" rows="6">{{.Message}}</textarea>
	</label>
	<label class="check">
		<input type="checkbox" name="attach_pdf" value="1"{{if .AttachPDF}} checked{{end}}> Attach PDF
	</label>
	<div class="actions">
		<button type="submit">Send</button>
		<a class="button secondary" href="/invoices/{{.InvoiceID}}">Cancel</a>
	</div>
</form>
</section>`)

func SendEmailContent(data SendEmailData) templ.Component {
	return templ.FromGoHTML(sendEmailTmpl, data)
}

func SendEmailPage(data SendEmailData, header HeaderData) templ.Component {
	return Page("Send "+data.InvoiceNumber, header, SendEmailContent(data))
}
