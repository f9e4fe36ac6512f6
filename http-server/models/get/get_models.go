package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"service-calc/http-server/common"
	"service-calc/internal/storage"
)

type ModelProvider interface {
	Models(ctx context.Context) ([]string, error)
	DescribeModel(ctx context.Context, model string) (storage.ModelInfo, error)
}

func GetModels(log *slog.Logger, models ModelProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.models.GetModels"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := models.Models(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to list models")
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, list)
	}
}

func GetModel(log *slog.Logger, models ModelProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.models.GetModel"

		model := chi.URLParam(r, "model")
		if model == "" {
			http.Error(w, "Missing model", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		info, err := models.DescribeModel(ctx, model)
		if err != nil {
			status, _, msg := common.Status(err)
			logger := log.With(slog.String("op", op), slog.String("model", model), slog.String("error", err.Error()))
			if status >= http.StatusInternalServerError {
				logger.Error("Failed to describe model")
			} else {
				logger.Warn("Model rejected")
			}
			http.Error(w, msg, status)
			return
		}

		render.JSON(w, r, info)
	}
}
