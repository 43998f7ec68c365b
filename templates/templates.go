// Package templates renders the server-side HTML for all pages and HTMX
// fragments. Components are html/template sources exposed as
// templ.Component values via templ.FromGoHTML, so handlers compose and
// render them the same way regardless of backing.
package templates

import (
	"bytes"
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"fakti/services"
)

var funcs = template.FuncMap{
	"amount": services.FormatAmount,
	"money":  services.FormatMoney,
	"field":  services.ItemFieldName,
	"inc":    func(i int) int { return i + 1 },
}

// parse compiles a component template at package init time so malformed
// markup fails fast.
func parse(name, src string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).Parse(src))
}

// HeaderData carries the signed-in user shown in the top navigation.
type HeaderData struct {
	UserID       string
	UserEmail    string
	BusinessName string
}

// SignedIn reports whether a user is attached to the request.
func (h HeaderData) SignedIn() bool { return h.UserID != "" }

type layoutData struct {
	Title  string
	Header HeaderData
	Body   template.HTML
}

var layoutTmpl = parse("layout", `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} | Fakti</title>
<link rel="stylesheet" href="/static/app.css">
<script src="https://unpkg.com/htmx.org@2.0.4" defer></script>
<script src="/static/app.js" defer></script>
</head>
<body>
<header class="topnav">
	<a class="brand" href="/dashboard">Fakti</a>
	{{if .Header.SignedIn}}
	<nav>
		<a href="/dashboard">Dashboard</a>
		<a href="/invoices">Invoices</a>
		<a href="/clients">Clients</a>
		<a href="/items">Items</a>
	</nav>
	<div class="session">
		<span>{{if .Header.BusinessName}}{{.Header.BusinessName}}{{else}}{{.Header.UserEmail}}{{end}}</span>
		<form method="post" action="/logout"><button type="submit" class="link">Log out</button></form>
	</div>
	{{else}}
	<nav>
		<a href="/login">Log in</a>
		<a href="/register">Register</a>
	</nav>
	{{end}}
</header>
<div id="toast-container"></div>
<main id="content">
{{.Body}}
</main>
</body>
</html>`)

// Page wraps a content component in the site layout.
func Page(title string, header HeaderData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var body bytes.Buffer
		if err := content.Render(ctx, &body); err != nil {
			return err
		}
		return templ.FromGoHTML(layoutTmpl, layoutData{
			Title:  title,
			Header: header,
			Body:   template.HTML(body.String()),
		}).Render(ctx, w)
	})
}
