package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getmodels "service-calc/http-server/models/get"
	"service-calc/http-server/quote/calculate"
	"service-calc/http-server/quote/schedule"
	"service-calc/internal/config"
	"service-calc/internal/metrics"
	"service-calc/internal/service/quote"
)

func routes(cfg config.Config, log *slog.Logger, service *quote.QuoteService, m *metrics.Quotes) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/api/models", getmodels.GetModels(log, service))
	router.Get("/api/models/{model}", getmodels.GetModel(log, service))

	router.Post("/api/quote", calculate.CalculateQuote(log, service, m))
	router.Post("/api/quote/schedule", schedule.CostSchedule(log, service, m))

	router.Handle("/metrics", m.Handler())

	return router
}
