package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"usermgmt/internal/http/handlers/health"
	"usermgmt/internal/http/handlers/web"
	"usermgmt/internal/logging"
)

// NewWebRouter serves the user management UI.
func NewWebRouter(
	logger logging.Logger,
	healthHandler *health.Handler,
	webHandler *web.Handler,
) chi.Router {
	r := chi.NewRouter()

	useBaseMiddlewares(r, logger)
	// pages reflect per-session state
	r.Use(middleware.NoCache)

	r.Get("/healthz", healthHandler.Check)

	r.Get("/", webHandler.Index)
	r.Post("/view/{view}", webHandler.SwitchView)
	r.Post("/form", webHandler.Submit)
	r.Post("/form/fields/{name}", webHandler.FieldEvent)
	r.Post("/users/{id}/edit", webHandler.Edit)
	r.Post("/users/{id}/delete", webHandler.Delete)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "page not found", http.StatusNotFound)
	})

	return r
}
