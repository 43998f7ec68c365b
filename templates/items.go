package templates

import "github.com/a-h/templ"

// CatalogItemRow is one reusable item in the catalog list.
type CatalogItemRow struct {
	ID          string
	Name        string
	Description string
	UnitPrice   float64
}

type ItemListData struct {
	Items []CatalogItemRow
}

var itemListTmpl = parse("item_list", `<section>
<div class="page-head">
	<h1>Item catalog</h1>
	<div class="actions">
		<a class="button" href="/items/add">Add item</a>
	</div>
</div>
{{if .Items}}
<table class="list">
<thead><tr><th>Name</th><th>Description</th><th class="num">Unit price</th><th></th></tr></thead>
<tbody>
{{range .Items}}
<tr>
	<td>{{.Name}}</td>
	<td>{{.Description}}</td>
	<td class="num">{{amount .UnitPrice}}</td>
	<td class="row-actions">
		<a href="/items/{{.ID}}/edit">Edit</a>
		<a href="/items/{{.ID}}/delete">Delete</a>
	</td>
</tr>
{{end}}
</tbody>
</table>
{{else}}
<p class="empty">Your catalog is empty. Reusable items prefill invoice rows.</p>
{{end}}
</section>`)

func ItemListContent(data ItemListData) templ.Component {
	return templ.FromGoHTML(itemListTmpl, data)
}

func ItemListPage(data ItemListData, header HeaderData) templ.Component {
	return Page("Item catalog", header, ItemListContent(data))
}

// ItemFormData feeds both the create and the edit form.
type ItemFormData struct {
	Title       string
	Action      string
	ID          string
	Name        string
	Description string
	UnitPrice   string
	Errors      map[string]string
}

var itemFormTmpl = parse("item_form", `<section class="card narrow">
<h1>{{.Title}}</h1>
<form method="post" action="{{.Action}}">
	<label>Name *
		<input type="text" name="name" value="{{.Name}}" required autofocus>
	</label>
	{{with .Errors.name}}<p class="field-error">{{.}}</p>{{end}}
	<label>Description
		<input type="text" name="description" value="{{.Description}}">
	</label>
	<label>Unit price
		<input type="number" name="unit_price" value="{{.UnitPrice}}" step="0.01" min="0">
	</label>
	{{with .Errors.unit_price}}<p class="field-error">{{.}}</p>{{end}}
	<div class="actions">
		<button type="submit">Save</button>
		<a class="button secondary" href="/items">Cancel</a>
	</div>
</form>
</section>`)

func ItemFormContent(data ItemFormData) templ.Component {
	return templ.FromGoHTML(itemFormTmpl, data)
}

func ItemFormPage(data ItemFormData, header HeaderData) templ.Component {
	return Page(data.Title, header, ItemFormContent(data))
}
