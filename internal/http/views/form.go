package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"usermgmt/internal/app/usersync"
	dom "usermgmt/internal/domain/user"
	"usermgmt/internal/validation"
)

// FormView renders one text input per rule. Each input reports input and
// blur events to /form/fields/{name}, which answers with FieldError.
func FormView(form *usersync.Form, rules []validation.Rule, editing bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.open("form",
			attr{"class", "user-form"},
			attr{"method", "post"},
			attr{"action", "/form"},
			attr{"novalidate", "novalidate"},
		)
		h.element("h2", "User Form")

		for _, r := range rules {
			label := r.Label
			if r.Required {
				label += " *"
			}
			inputType := "text"
			if r.Name == dom.FieldEmail {
				inputType = "email"
			}

			h.open("div", attr{"class", "field"})
			h.element("label", label, attr{"for", inputID(r.Name)})
			h.open("input",
				attr{"id", inputID(r.Name)},
				attr{"type", inputType},
				attr{"name", r.Name},
				attr{"value", form.Value(r.Name)},
				attr{"hx-post", "/form/fields/" + r.Name},
				attr{"hx-trigger", "input, blur"},
				attr{"hx-vals", `js:{event: event.type}`},
				attr{"hx-target", "#" + errorID(r.Name)},
				attr{"hx-swap", "outerHTML"},
			)
			h.render(ctx, FieldError(r.Name, form.VisibleError(r.Name)))
			h.close("div")
		}

		button := "Submit"
		if editing {
			button = "Update"
		}
		h.element("button", button, attr{"class", "submit"}, attr{"type", "submit"})
		h.close("form")
		return h.err
	})
}

// FieldError is the inline message slot under a field; empty when valid.
func FieldError(name, msg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.element("span", msg, attr{"id", errorID(name)}, attr{"class", "error"})
		return h.err
	})
}

func inputID(name string) string { return "in-" + name }
func errorID(name string) string { return "err-" + name }
