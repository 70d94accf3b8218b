package views

import (
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"

	dom "usermgmt/internal/domain/user"
)

var listColumns = []string{"First Name", "Last Name", "Phone", "Email", "Actions"}

// ListView renders the users table with Edit and Delete per row.
func ListView(users []dom.User) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.open("table")
		h.open("thead")
		h.open("tr")
		for _, col := range listColumns {
			h.element("th", col)
		}
		h.close("tr")
		h.close("thead")

		h.open("tbody")
		for _, u := range users {
			h.open("tr", attr{"id", "user-" + u.ID})
			for _, v := range []string{u.FirstName, u.LastName, u.Phone, u.Email} {
				h.element("td", v)
			}
			h.open("td")
			// nothing to target server-side without an id
			if u.Persisted() {
				base := "/users/" + url.PathEscape(u.ID)
				h.postButton(base+"/edit", "Edit", "edit")
				h.postButton(base+"/delete", "Delete", "delete")
			}
			h.close("td")
			h.close("tr")
		}
		h.close("tbody")
		h.close("table")
		return h.err
	})
}
