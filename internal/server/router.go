package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pennygain/internal/calc"
	"pennygain/internal/chat"
	"pennygain/internal/handlers"
	"pennygain/internal/history"
	"pennygain/internal/observability"
)

// NewRouter wires the middleware stack and mounts every API domain under /api.
func NewRouter(calcH *calc.Handler, histH *history.Handler, chatH *chat.Handler) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	r.Route("/api", func(r chi.Router) {
		calcH.RegisterRoutes(r)
		histH.RegisterRoutes(r)
		chatH.RegisterRoutes(r)
	})

	return r
}
