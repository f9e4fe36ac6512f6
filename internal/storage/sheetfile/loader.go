package sheetfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"service-calc/internal/config"
	"service-calc/internal/constants"
	"service-calc/internal/storage"
)

var errEmptySheet = errors.New("sheet has no rows")

// Options are fixed per deployment; nothing here is sniffed from the file
// except the header row.
type Options struct {
	Comma          rune
	Encoding       encoding.Encoding
	HeaderKeywords []string
}

func DefaultOptions() Options {
	return Options{
		Comma:          ';',
		Encoding:       charmap.ISO8859_1,
		HeaderKeywords: constants.HeaderKeywords,
	}
}

func NewOptions(cfg config.Sheet) (Options, error) {
	opts := DefaultOptions()

	if cfg.Delimiter != "" {
		if utf8.RuneCountInString(cfg.Delimiter) != 1 {
			return Options{}, &storage.ConfigError{Field: "delimiter", Value: cfg.Delimiter}
		}
		opts.Comma, _ = utf8.DecodeRuneInString(cfg.Delimiter)
	}

	enc, err := lookupEncoding(cfg.Encoding)
	if err != nil {
		return Options{}, err
	}
	opts.Encoding = enc

	if len(cfg.HeaderKeywords) > 0 {
		opts.HeaderKeywords = cfg.HeaderKeywords
	}

	return opts, nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "latin-1", "latin1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "utf-8", "utf8":
		return encoding.Nop, nil
	default:
		return nil, &storage.ConfigError{Field: "encoding", Value: name}
	}
}

// LoadTable reads one model sheet. Delimited text is the normal input;
// .xlsx workbooks are read from their first sheet.
//
// Delimited parsing is lenient: stray or unterminated quotes and ragged rows
// are read as they come, so for text input a LoadError means the file could
// not be opened or read, or held no rows at all.
func LoadTable(path string, opts Options) (*storage.Table, error) {
	var (
		records [][]string
		err     error
	)

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		records, err = readWorkbook(path)
	} else {
		records, err = readDelimited(path, opts)
	}
	if err != nil {
		return nil, &storage.LoadError{Path: path, Err: err}
	}

	if len(records) == 0 {
		return nil, &storage.LoadError{Path: path, Err: errEmptySheet}
	}

	h := headerRow(records, opts.HeaderKeywords)

	return storage.NewTable(records[h], records[h+1:]), nil
}

func readDelimited(path string, opts Options) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	enc := opts.Encoding
	if enc == nil {
		enc = encoding.Nop
	}

	reader := csv.NewReader(enc.NewDecoder().Reader(f))
	reader.Comma = opts.Comma
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var records [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(records)+1, err)
		}
		records = append(records, row)
	}

	return records, nil
}

func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}

	return rows, nil
}

// headerRow returns the first row with a cell containing one of the
// keywords, or 0 when no row qualifies.
func headerRow(records [][]string, keywords []string) int {
	for i, row := range records {
		for _, cell := range row {
			if containsAny(cell, keywords) {
				return i
			}
		}
	}
	return 0
}

func containsAny(s string, keywords []string) bool {
	s = strings.ToLower(s)
	for _, k := range keywords {
		if k != "" && strings.Contains(s, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
