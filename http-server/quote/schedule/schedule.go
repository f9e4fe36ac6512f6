package schedule

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"service-calc/http-server/common"
	"service-calc/internal/metrics"
	"service-calc/internal/storage"
)

type ScheduleCalculator interface {
	Schedule(ctx context.Context, req storage.QuoteRequest) ([]storage.CostReport, error)
}

type Resp struct {
	Model   string               `json:"model"`
	Reports []storage.CostReport `json:"reports"`
}

// scheduleRequest is a QuoteRequest without a cutoff; every interval is one.
type scheduleRequest struct {
	Model         string             `json:"model" validate:"required,excludesall=/\\"`
	PriceList     string             `json:"price_list"`
	MarkupPercent *float64           `json:"markup_percent" validate:"omitempty,gte=0,lte=100"`
	HourlyRate    *float64           `json:"hourly_rate" validate:"omitempty,gte=0"`
	MiscSurcharge *float64           `json:"misc_surcharge" validate:"omitempty,gte=0"`
	Boundary      string             `json:"boundary" validate:"omitempty,oneof=strict inclusive"`
	LaborHours    map[string]float64 `json:"labor_hours" validate:"omitempty,dive,gte=0"`
}

func CostSchedule(log *slog.Logger, calc ScheduleCalculator, m *metrics.Quotes) http.HandlerFunc {
	validate := common.NewValidator()

	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.quote.CostSchedule"
		started := time.Now()

		var req scheduleRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			m.Observe("schedule", metrics.ResultConfigError, started)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		if err := validate.Struct(req); err != nil {
			m.Observe("schedule", metrics.ResultConfigError, started)
			log.With(slog.String("op", op), slog.String("error", err.Error())).Warn("Invalid schedule request")
			http.Error(w, common.ValidationMessage(err), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		reports, err := calc.Schedule(ctx, storage.QuoteRequest{
			Model:         req.Model,
			PriceList:     req.PriceList,
			MarkupPercent: req.MarkupPercent,
			HourlyRate:    req.HourlyRate,
			MiscSurcharge: req.MiscSurcharge,
			Boundary:      req.Boundary,
			LaborHours:    req.LaborHours,
		})
		if err != nil {
			status, result, msg := common.Status(err)
			m.Observe("schedule", result, started)

			logger := log.With(slog.String("op", op), slog.String("model", req.Model), slog.String("error", err.Error()))
			if status >= http.StatusInternalServerError {
				logger.Error("Failed to build cost schedule")
			} else {
				logger.Warn("Schedule rejected")
			}

			http.Error(w, msg, status)
			return
		}

		m.Observe("schedule", metrics.ResultOK, started)

		render.JSON(w, r, Resp{Model: req.Model, Reports: reports})
	}
}
