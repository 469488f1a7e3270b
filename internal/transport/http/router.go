// Package http assembles the service's HTTP surface.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"person-service/internal/person/handler"
	"person-service/internal/platform/middleware"
)

// NewRouter mounts the person endpoints plus health and metrics.
func NewRouter(persons *handler.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)

	persons.Register(r)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
