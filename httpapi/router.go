// Package httpapi exposes a thin JSON admission facade over the duraq
// queue: create jobs, list jobs, fetch a single job. It does not expose
// claim or finalize operations — those belong to workers, not HTTP
// clients.
package httpapi

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mujahedk/duraq"
)

// NewRouter builds a chi.Mux exposing:
//
//	POST   /v1/jobs       create a job
//	GET    /v1/jobs       list jobs, filterable by ?status=&type=&limit=
//	GET    /v1/jobs/{id}  fetch a single job
func NewRouter(enqueuer duraq.Enqueuer, observer duraq.Observer, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Route("/v1/jobs", func(r chi.Router) {
		r.Post("/", handleCreateJob(enqueuer))
		r.Get("/", handleListJobs(observer))
		r.Get("/{id}", handleGetJob(observer))
	})

	return r
}
