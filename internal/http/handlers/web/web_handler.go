package web

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"usermgmt/internal/app/usersync"
	"usermgmt/internal/http/views"
	"usermgmt/internal/logging"
	"usermgmt/internal/validation"
)

// Handler turns browser events into controller calls. Every mutating action
// saves the session and redirects back to the index.
type Handler struct {
	controller    *usersync.Controller
	validator     *validation.Validator
	sessions      *Sessions
	feed          *usersync.ChangeFeed
	surfaceErrors bool
	logger        logging.Logger
}

type Options struct {
	// SurfaceErrors shows the last remote failure as a banner.
	SurfaceErrors bool
}

func NewHandler(
	controller *usersync.Controller,
	validator *validation.Validator,
	sessions *Sessions,
	feed *usersync.ChangeFeed,
	opts Options,
	logger logging.Logger,
) *Handler {
	return &Handler{
		controller:    controller,
		validator:     validator,
		sessions:      sessions,
		feed:          feed,
		surfaceErrors: opts.SurfaceErrors,
		logger:        logger.With("component", "web_handler"),
	}
}

// Index GET /
// Loads the list on a session's first visit and after the change feed moves.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(w, r)

	// failures are already recorded on the state
	if err := h.controller.Sync(r.Context(), &sess.State, h.feed.Current()); err != nil {
		h.logger.Debug("sync failed", "error", err)
	}
	h.sessions.Save(r.Context(), sess)

	templ.Handler(views.Page(h.pageData(sess))).ServeHTTP(w, r)
}

// SwitchView POST /view/{view}
func (h *Handler) SwitchView(w http.ResponseWriter, r *http.Request) {
	view, ok := usersync.ParseView(chi.URLParam(r, "view"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	sess := h.sessions.Load(w, r)
	h.controller.SwitchView(&sess.State, view)
	sess.Form.Reset(nil)
	h.saveAndRedirect(w, r, sess)
}

// Edit POST /users/{id}/edit
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess := h.sessions.Load(w, r)

	for _, u := range sess.State.Users {
		if u.ID == id {
			h.controller.BeginEdit(&sess.State, u)
			sess.Form.Reset(sess.State.Editing)
			break
		}
	}
	h.saveAndRedirect(w, r, sess)
}

// Delete POST /users/{id}/delete
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(w, r)
	id := chi.URLParam(r, "id")
	if err := h.controller.Remove(r.Context(), &sess.State, id); err != nil {
		h.logger.Debug("remove failed", "id", id, "error", err)
	}
	h.saveAndRedirect(w, r, sess)
}

// FieldEvent POST /form/fields/{name}
// Receives input/blur events for one field and answers with its error slot.
func (h *Handler) FieldEvent(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	sess := h.sessions.Load(w, r)
	value := r.PostForm.Get(name)

	var known bool
	switch r.PostForm.Get("event") {
	case "blur", "focusout":
		known = sess.Form.Blur(h.validator, name, value)
	default:
		known = sess.Form.Change(h.validator, name, value)
	}
	if !known {
		http.NotFound(w, r)
		return
	}

	h.sessions.Save(r.Context(), sess)
	templ.Handler(views.FieldError(name, sess.Form.VisibleError(name))).ServeHTTP(w, r)
}

// Submit POST /form
// Validates the whole form; only a valid form reaches the remote API.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	sess := h.sessions.Load(w, r)
	for _, rule := range h.validator.Rules() {
		sess.Form.Change(h.validator, rule.Name, r.PostForm.Get(rule.Name))
	}

	if errs := sess.Form.Submit(h.validator); !errs.Valid() {
		h.logger.Debug("form rejected", "fields", len(errs))
		sess.State.View = usersync.ViewForm
		h.saveAndRedirect(w, r, sess)
		return
	}

	err := h.controller.Submit(r.Context(), &sess.State, sess.Form.Candidate(), sess.State.EditingID())
	if err != nil {
		h.logger.Debug("submit failed", "error", err)
	}
	if err == nil && sess.State.View == usersync.ViewList {
		sess.Form.Reset(nil)
	}
	h.saveAndRedirect(w, r, sess)
}

func (h *Handler) saveAndRedirect(w http.ResponseWriter, r *http.Request, sess *Session) {
	h.sessions.Save(r.Context(), sess)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) pageData(sess *Session) views.PageData {
	d := views.PageData{
		View:    sess.State.View,
		Users:   sess.State.Users,
		Form:    &sess.Form,
		Rules:   h.validator.Rules(),
		Editing: sess.State.Editing != nil,
	}
	if h.surfaceErrors {
		d.Banner = sess.State.LastError
	}
	return d
}
