package templates

import "github.com/a-h/templ"

// DashboardData feeds the landing page: headline numbers plus the most
// recent invoices.
type DashboardData struct {
	ClientCount      int
	InvoiceCount     int
	DraftCount       int
	OverdueCount     int
	TotalPaid        float64
	TotalOutstanding float64
	RecentInvoices   []InvoiceRow
}

var dashboardTmpl = parse("dashboard", `<section>
<div class="page-head">
	<h1>Dashboard</h1>
	<div class="actions">
		<a class="button" href="/invoices/add">New invoice</a>
	</div>
</div>
<div class="stats">
	<div class="stat"><span>{{.ClientCount}}</span>clients</div>
	<div class="stat"><span>{{.InvoiceCount}}</span>invoices</div>
	<div class="stat"><span>{{.DraftCount}}</span>drafts</div>
	<div class="stat"><span>{{.OverdueCount}}</span>overdue</div>
	<div class="stat"><span>{{amount .TotalPaid}}</span>collected</div>
	<div class="stat"><span>{{amount .TotalOutstanding}}</span>outstanding</div>
</div>
<h2>Recent invoices</h2>
{{if .RecentInvoices}}
<table class="list">
<thead><tr><th>Number</th><th>Client</th><th>Issued</th><th>Status</th><th class="num">Total</th></tr></thead>
<tbody>
{{range .RecentInvoices}}
<tr>
	<td><a href="/invoices/{{.ID}}">{{.InvoiceNumber}}</a></td>
	<td>{{.ClientName}}</td>
	<td>{{.IssueDate}}</td>
	<td><span class="status status-{{.Status}}">{{.Status}}</span></td>
	<td class="num">{{money .Total .Currency}}</td>
</tr>
{{end}}
</tbody>
</table>
{{else}}
<p class="empty">Nothing here yet. <a href="/invoices/add">Create your first invoice</a>.</p>
{{end}}
</section>`)

func DashboardContent(data DashboardData) templ.Component {
	return templ.FromGoHTML(dashboardTmpl, data)
}

func DashboardPage(data DashboardData, header HeaderData) templ.Component {
	return Page("Dashboard", header, DashboardContent(data))
}
