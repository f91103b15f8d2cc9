// Package router sets up all HTTP routes and middleware chains for the
// SlidePress API. Render and export endpoints get a tighter rate limit
// than the rest of the API, since each request can burn a CPU core for
// a while.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"slidepress/internal/handlers"
	"slidepress/internal/middleware"
)

const (
	// apiLimit is the per-IP request budget for plain API calls.
	apiLimit = 300
	// heavyLimit is the per-IP budget for render/export calls.
	heavyLimit = 30
	// limitWindow is the sliding window both limits share.
	limitWindow = 1 * time.Minute
)

// New creates and returns the configured Chi router with all
// middleware and route groups wired up. The returned stop function
// terminates the rate limiter goroutines.
func New(api *handlers.API) (chi.Router, func()) {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	apiLimiter := middleware.NewRateLimiter(middleware.Budget{
		Name: "api", Limit: apiLimit, Window: limitWindow,
	})
	heavyLimiter := middleware.NewRateLimiter(middleware.Budget{
		Name: "render-export", Limit: heavyLimit, Window: limitWindow,
	})

	// Health check.
	r.Get("/health", healthHandler)

	r.Route("/api/projects", func(r chi.Router) {
		r.Use(apiLimiter.Middleware)

		r.Post("/", api.ProjectCreate)
		r.Get("/", api.ProjectList)

		r.Route("/{projectID}", func(r chi.Router) {
			r.Get("/", api.ProjectGet)
			r.Delete("/", api.ProjectDelete)

			// Uploaded backgrounds for slide overrides.
			r.Route("/assets", func(r chi.Router) {
				r.Post("/", api.AssetUpload)
				r.Get("/", api.AssetList)
				r.Delete("/{assetID}", api.AssetDelete)
			})

			// Template import and listing live under the project.
			r.Route("/templates", func(r chi.Router) {
				r.Post("/", api.TemplateImport)
				r.Get("/", api.TemplateList)
			})

			// The project's single carousel.
			r.Route("/carousel", func(r chi.Router) {
				r.Post("/", api.CarouselCreate)
				r.Get("/", api.CarouselGet)
				r.Post("/slides", api.SlideAdd)
				r.Delete("/slides", api.SlideDelete)
				r.Post("/slides/reorder", api.SlideReorder)
				r.Patch("/slides", api.SlideEdit)
				r.Put("/slides/background", api.SlideBackground)
				r.Get("/slides/{slideID}/preview", api.SlidePreview)

				r.With(heavyLimiter.Middleware).Post("/render", api.CarouselRender)
			})

			r.With(heavyLimiter.Middleware).Get("/export", api.Export)
		})
	})

	// Template editing by id (zones, rename, delete).
	r.Route("/api/templates/{templateID}", func(r chi.Router) {
		r.Use(apiLimiter.Middleware)

		r.Get("/", api.TemplateGet)
		r.Patch("/", api.TemplateRename)
		r.Delete("/", api.TemplateDelete)
		r.Put("/slides/{slideID}/zones", api.TemplateZonesUpdate)
	})

	stop := func() {
		apiLimiter.Stop()
		heavyLimiter.Stop()
	}
	return r, stop
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
