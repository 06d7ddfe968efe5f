package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	apiMiddleware "github.com/phrazzld/sellwise/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	// HTML form flow
	r.Get("/", app.copyHandler.Index)
	r.Post("/product-copy", app.copyHandler.SubmitProductCopy)
	r.Post("/social-copy", app.copyHandler.SubmitSocialCopy)
	r.Post("/email-subjects", app.copyHandler.SubmitEmailSubjects)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/product-copy", app.copyHandler.ProductCopyAPI)
		r.Post("/social-copy", app.copyHandler.SocialCopyAPI)
		r.Post("/email-subjects", app.copyHandler.EmailSubjectsAPI)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
