package sheetfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"service-calc/internal/config"
	"service-calc/internal/storage"
)

var extensions = []string{".csv", ".xlsx"}

// Storage serves model sheets from a single directory, one file per model.
type Storage struct {
	dir  string
	opts Options
}

func New(cfg config.Config) (*Storage, error) {
	const op = "storage.sheetfile.New"

	info, err := os.Stat(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %s is not a directory", op, cfg.DataDir)
	}

	opts, err := NewOptions(cfg.Sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{dir: cfg.DataDir, opts: opts}, nil
}

func (s *Storage) LoadTable(ctx context.Context, model string) (*storage.Table, error) {
	const op = "storage.sheetfile.LoadTable"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := validModel(model); err != nil {
		return nil, err
	}

	path := filepath.Join(s.dir, model+extensions[0])
	for _, ext := range extensions {
		candidate := filepath.Join(s.dir, model+ext)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
			break
		}
	}

	// a missing file surfaces as LoadError from the loader itself
	return LoadTable(path, s.opts)
}

func (s *Storage) ListModels(ctx context.Context) ([]string, error) {
	const op = "storage.sheetfile.ListModels"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	seen := make(map[string]bool)
	models := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		if !isSheetExt(ext) {
			continue
		}
		model := strings.TrimSuffix(name, ext)
		if seen[model] {
			continue
		}
		seen[model] = true
		models = append(models, model)
	}

	sort.Strings(models)

	return models, nil
}

func isSheetExt(ext string) bool {
	for _, e := range extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

func validModel(model string) error {
	if strings.TrimSpace(model) == "" || model == "." || model == ".." ||
		strings.ContainsAny(model, `/\`) {
		return &storage.ConfigError{Field: "model", Value: model}
	}
	return nil
}
