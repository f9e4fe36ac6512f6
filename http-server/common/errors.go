package common

import (
	"errors"
	"io/fs"
	"net/http"

	"service-calc/internal/metrics"
	"service-calc/internal/storage"
)

// Status maps a service error to an HTTP status, a metrics result label and
// a message that is safe to show to the dashboard.
func Status(err error) (int, string, string) {
	var (
		loadErr   *storage.LoadError
		schemaErr *storage.SchemaError
		configErr *storage.ConfigError
	)

	switch {
	case errors.As(err, &loadErr):
		if errors.Is(err, fs.ErrNotExist) {
			return http.StatusNotFound, metrics.ResultLoadError, "Model sheet not found"
		}
		return http.StatusUnprocessableEntity, metrics.ResultLoadError, "Model sheet could not be read"
	case errors.As(err, &schemaErr):
		return http.StatusUnprocessableEntity, metrics.ResultSchemaError, schemaErr.Error()
	case errors.As(err, &configErr):
		return http.StatusBadRequest, metrics.ResultConfigError, configErr.Error()
	default:
		return http.StatusInternalServerError, metrics.ResultError, "Internal error"
	}
}
