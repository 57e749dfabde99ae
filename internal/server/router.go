package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"deskcalc/internal/calculator"
	"deskcalc/internal/handlers"
	"deskcalc/internal/observability"
)

func NewRouter() http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	calculator.RegisterRoutes(r, calculator.NewAPI(calculator.NewStore()))

	return r
}
