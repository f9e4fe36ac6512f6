package calculate

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"service-calc/http-server/common"
	"service-calc/internal/metrics"
	"service-calc/internal/storage"
)

type QuoteCalculator interface {
	Calculate(ctx context.Context, req storage.QuoteRequest) (storage.CostReport, error)
}

type Resp struct {
	QuoteID string             `json:"quote_id"`
	Report  storage.CostReport `json:"report"`
}

func CalculateQuote(log *slog.Logger, calc QuoteCalculator, m *metrics.Quotes) http.HandlerFunc {
	validate := common.NewValidator()

	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.quote.CalculateQuote"
		started := time.Now()

		var req storage.QuoteRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			m.Observe("quote", metrics.ResultConfigError, started)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		if err := validate.Struct(req); err != nil {
			m.Observe("quote", metrics.ResultConfigError, started)
			log.With(slog.String("op", op), slog.String("error", err.Error())).Warn("Invalid quote request")
			http.Error(w, common.ValidationMessage(err), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		report, err := calc.Calculate(ctx, req)
		if err != nil {
			status, result, msg := common.Status(err)
			m.Observe("quote", result, started)

			logger := log.With(
				slog.String("op", op),
				slog.String("model", req.Model),
				slog.String("cutoff", req.Cutoff),
				slog.String("error", err.Error()),
			)
			if status >= http.StatusInternalServerError {
				logger.Error("Failed to calculate quote")
			} else {
				logger.Warn("Quote rejected")
			}

			http.Error(w, msg, status)
			return
		}

		m.Observe("quote", metrics.ResultOK, started)

		id := uuid.NewString()
		log.Info("quote calculated",
			slog.String("quote_id", id),
			slog.String("model", req.Model),
			slog.Int("cutoff_hours", report.CutoffHours),
			slog.Float64("grand_total", report.GrandTotal),
		)

		render.JSON(w, r, Resp{QuoteID: id, Report: report})
	}
}
