package templates

import "github.com/a-h/templ"

// LoginData feeds the login form.
type LoginData struct {
	Email  string
	Next   string
	Errors map[string]string
}

var loginTmpl = parse("login", `<section class="card narrow">
<h1>Log in</h1>
{{with .Errors.form}}<p class="error">{{.}}</p>{{end}}
<form method="post" action="/login">
	<input type="hidden" name="next" value="{{.Next}}">
	<label>Email
		<input type="email" name="email" value="{{.Email}}" required autofocus>
	</label>
	{{with .Errors.email}}<p class="field-error">{{.}}</p>{{end}}
	<label>Password
		<input type="password" name="password" required>
	</label>
	{{with .Errors.password}}<p class="field-error">{{.}}</p>{{end}}
	<button type="submit">Log in</button>
</form>
<p>No account yet? <a href="/register">Register</a></p>
</section>`)

func LoginContent(data LoginData) templ.Component {
	return templ.FromGoHTML(loginTmpl, data)
}

func LoginPage(data LoginData, header HeaderData) templ.Component {
	return Page("Log in", header, LoginContent(data))
}

// RegisterData feeds the registration form.
type RegisterData struct {
	Email        string
	BusinessName string
	Errors       map[string]string
}

var registerTmpl = parse("register", `<section class="card narrow">
<h1>Create your account</h1>
{{with .Errors.form}}<p class="error">{{.}}</p>{{end}}
<form method="post" action="/register">
	<label>Email
		<input type="email" name="email" value="{{.Email}}" required autofocus>
	</label>
	{{with .Errors.email}}<p class="field-error">{{.}}</p>{{end}}
	<label>Business name
		<input type="text" name="business_name" value="{{.BusinessName}}">
	</label>
	<label>Password
		<input type="password" name="password" required minlength="8">
	</label>
	{{with .Errors.password}}<p class="field-error">{{.}}</p>{{end}}
	<label>Confirm password
		<input type="password" name="password_confirm" required>
	</label>
	{{with .Errors.password_confirm}}<p class="field-error">{{.}}</p>{{end}}
	<button type="submit">Register</button>
</form>
</section>`)

func RegisterContent(data RegisterData) templ.Component {
	return templ.FromGoHTML(registerTmpl, data)
}

func RegisterPage(data RegisterData, header HeaderData) templ.Component {
	return Page("Register", header, RegisterContent(data))
}
