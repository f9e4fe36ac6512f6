package sheetfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-calc/internal/config"
	"service-calc/internal/storage"
)

func newTestStorage(t *testing.T, files map[string]string) *Storage {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	s, err := New(config.Config{DataDir: dir, Sheet: config.Sheet{Delimiter: ";", Encoding: "latin-1"}})
	require.NoError(t, err)
	return s
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New(config.Config{DataDir: filepath.Join(t.TempDir(), "nope")})
	assert.Error(t, err)
}

func TestNew_BadEncoding(t *testing.T) {
	_, err := New(config.Config{DataDir: t.TempDir(), Sheet: config.Sheet{Encoding: "klingon"}})

	var cfgErr *storage.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestListModels(t *testing.T) {
	s := newTestStorage(t, map[string]string{
		"6185.csv":      "a;500 timer\n",
		"5105.CSV":      "a;500 timer\n",
		"agrotron.xlsx": "",
		"notes.txt":     "hello",
		"logo.png":      "",
	})
	require.NoError(t, os.Mkdir(filepath.Join(s.dir, "archive.csv"), 0755))

	models, err := s.ListModels(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"5105", "6185", "agrotron"}, models)
}

func TestListModels_Empty(t *testing.T) {
	s := newTestStorage(t, nil)

	models, err := s.ListModels(context.Background())
	require.NoError(t, err)
	assert.Empty(t, models)
	assert.NotNil(t, models)
}

func TestStorage_LoadTable(t *testing.T) {
	s := newTestStorage(t, map[string]string{
		"6185.csv": "Beskrivelse;Brutto;500 timer\nOliefilter;100;x\n",
	})

	table, err := s.LoadTable(context.Background(), "6185")
	require.NoError(t, err)
	assert.Equal(t, "Oliefilter", table.Description(0))
}

func TestStorage_LoadTable_UnknownModel(t *testing.T) {
	s := newTestStorage(t, nil)

	_, err := s.LoadTable(context.Background(), "9340")

	var loadErr *storage.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestStorage_LoadTable_RejectsPaths(t *testing.T) {
	s := newTestStorage(t, nil)

	for _, model := range []string{"", "..", "../etc/passwd", `..\x`, "a/b"} {
		_, err := s.LoadTable(context.Background(), model)

		var cfgErr *storage.ConfigError
		assert.True(t, errors.As(err, &cfgErr), "model %q", model)
	}
}

func TestStorage_LoadTable_CanceledContext(t *testing.T) {
	s := newTestStorage(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.LoadTable(ctx, "6185")
	assert.ErrorIs(t, err, context.Canceled)
}
