// Package views renders the user management pages as templ components.
package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// attr is one HTML attribute; the value is escaped on write.
type attr struct {
	name, value string
}

// htmlWriter keeps the first write error so components can emit markup
// without checking every call.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// open writes a start tag.
func (h *htmlWriter) open(tag string, attrs ...attr) {
	h.raw("<" + tag)
	for _, a := range attrs {
		h.raw(" " + a.name + `="`)
		h.text(a.value)
		h.raw(`"`)
	}
	h.raw(">")
}

func (h *htmlWriter) close(tag string) {
	h.raw("</" + tag + ">")
}

// element writes a start tag, escaped text and the end tag.
func (h *htmlWriter) element(tag, text string, attrs ...attr) {
	h.open(tag, attrs...)
	h.text(text)
	h.close(tag)
}

// render writes a child component in place.
func (h *htmlWriter) render(ctx context.Context, c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// postButton is a one-button form posting to action.
func (h *htmlWriter) postButton(action, label, class string) {
	h.open("form", attr{"method", "post"}, attr{"action", action})
	h.element("button", label, attr{"type", "submit"}, attr{"class", class})
	h.close("form")
}
