package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"usermgmt/internal/app/usersync"
	dom "usermgmt/internal/domain/user"
	"usermgmt/internal/validation"
)

const htmxScript = "https://unpkg.com/htmx.org@1.9.12"

// PageData is everything a full page render needs.
type PageData struct {
	View    usersync.View
	Users   []dom.User
	Form    *usersync.Form
	Rules   []validation.Rule
	Editing bool
	// Banner is shown above the content when non-empty.
	Banner string
}

// Page renders the whole document: header actions plus the active view.
func Page(d PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<!DOCTYPE html>\n")
		h.open("html", attr{"lang", "en"})
		h.open("head")
		h.open("meta", attr{"charset", "utf-8"})
		h.open("meta", attr{"name", "viewport"}, attr{"content", "width=device-width, initial-scale=1"})
		h.element("title", "User Management")
		h.open("script", attr{"src", htmxScript})
		h.close("script")
		h.raw("<style>" + stylesheet + "</style>")
		h.close("head")
		h.open("body")

		h.render(ctx, Header(d.View))

		h.open("main", attr{"class", "content"})
		if d.Banner != "" {
			h.element("div", d.Banner, attr{"class", "banner"}, attr{"role", "alert"})
		}

		if d.View == usersync.ViewList {
			h.render(ctx, ListView(d.Users))
		} else {
			form := d.Form
			if form == nil {
				f := usersync.NewForm(nil)
				form = &f
			}
			h.render(ctx, FormView(form, d.Rules, d.Editing))
		}

		h.close("main")
		h.close("body")
		h.close("html")
		return h.err
	})
}

// Header renders the title bar with the "Add User" and "User List" actions.
func Header(active usersync.View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.open("header", attr{"class", "bar"})
		h.element("h1", "User Management")
		h.open("nav")
		h.postButton("/view/form", "Add User", navClass(active == usersync.ViewForm))
		h.postButton("/view/list", "User List", navClass(active == usersync.ViewList))
		h.close("nav")
		h.close("header")
		return h.err
	})
}

func navClass(active bool) string {
	if active {
		return "contained"
	}
	return "outlined"
}

const stylesheet = `
body{margin:0;font-family:sans-serif}
.bar{display:flex;justify-content:space-between;align-items:center;background:#000;color:#fff;padding:0 1.5rem}
.bar nav{display:flex;gap:1rem}
.bar button{padding:.5rem 1rem;border:1px solid #fff;font-weight:bold;cursor:pointer}
.bar .contained{background:#fff;color:#000}
.bar .outlined{background:#000;color:#fff}
.content{max-width:900px;margin:2rem auto}
.banner{background:#fdecea;color:#611a15;padding:.75rem;margin-bottom:1rem}
.user-form{max-width:400px;margin:0 auto}
.field{display:flex;flex-direction:column;margin-bottom:1rem}
.field input{padding:.5rem}
.field .error{color:#d32f2f;font-size:.8rem;min-height:1rem}
.submit{width:100%;padding:.75rem;background:#000;color:#fff;font-weight:bold;border:0}
.submit:hover{background:#333}
table{width:100%;border-collapse:collapse}
th{background:#000;color:#fff;text-align:left;padding:1rem .5rem}
td{padding:.5rem;border-bottom:1px solid #ddd}
td form{display:inline}
.delete{color:#d32f2f;margin-left:.5rem}
`
