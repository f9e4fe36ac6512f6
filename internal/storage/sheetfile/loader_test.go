package sheetfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"service-calc/internal/config"
	"service-calc/internal/storage"
)

func writeTempSheet(t *testing.T, name, content string) string {
	t.Helper()

	encoded, err := charmap.ISO8859_1.NewEncoder().String(content)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(encoded), 0644))
	return path
}

// Preamble rows above the header, as the dealer exports have them.
const modelCSV = `DEUTZ-FAHR 6185;;;;;
Serviceplan;;;;;
 Beskrivelse ; Varenr ;Brutto; Antal ;500 timer;1000 timer
Oliefilter;0441 1234;450,00;2;x;x
Væsker;;;;;
Motorolie;UNI-10;;10;x;x
`

func TestLoadTable_FindsHeaderBelowPreamble(t *testing.T) {
	path := writeTempSheet(t, "6185.csv", modelCSV)

	table, err := LoadTable(path, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"Beskrivelse", "Varenr", "Brutto", "Antal", "500 timer", "1000 timer"}, table.Columns)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, "Oliefilter", table.Description(0))
	assert.Equal(t, "450,00", table.Cell(0, "Brutto"))
	assert.Equal(t, "2", table.Cell(0, "Antal"))
	assert.Equal(t, "x", table.Cell(0, "1000 timer"))
}

func TestLoadTable_DecodesLatin1(t *testing.T) {
	path := writeTempSheet(t, "6185.csv", modelCSV)

	table, err := LoadTable(path, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "Væsker", table.Description(1))
}

func TestLoadTable_NoHeaderKeywordUsesFirstRow(t *testing.T) {
	path := writeTempSheet(t, "plain.csv", "Description;Price\nOil filter;100\n")

	table, err := LoadTable(path, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"Description", "Price"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "100", table.Cell(0, "Price"))
}

func TestLoadTable_RaggedRows(t *testing.T) {
	path := writeTempSheet(t, "ragged.csv", "Beskrivelse;Brutto;500 hours\nOil filter;100\nBelt;50;x;extra\n")

	table, err := LoadTable(path, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "", table.Cell(0, "500 hours"))
	assert.Equal(t, "x", table.Cell(1, "500 hours"))
}

func TestLoadTable_CustomDelimiterAndUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "utf8.csv")
	require.NoError(t, os.WriteFile(path, []byte("Beskrivelse,500 hours\nVæsker,x\n"), 0644))

	opts, err := NewOptions(config.Sheet{Delimiter: ",", Encoding: "utf-8"})
	require.NoError(t, err)

	table, err := LoadTable(path, opts)
	require.NoError(t, err)
	assert.Equal(t, "Væsker", table.Description(0))
}

func TestLoadTable_MissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "missing.csv"), DefaultOptions())

	var loadErr *storage.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadTable_EmptyFile(t *testing.T) {
	path := writeTempSheet(t, "empty.csv", "")

	_, err := LoadTable(path, DefaultOptions())

	var loadErr *storage.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.ErrorIs(t, err, errEmptySheet)
}

func TestLoadTable_LenientQuotes(t *testing.T) {
	path := writeTempSheet(t, "quotes.csv", "Beskrivelse;500 hours\nOil \"filter\";x\n\"Belt;x\n")

	table, err := LoadTable(path, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, `Oil "filter"`, table.Description(0))
	assert.Equal(t, "x", table.Cell(0, "500 hours"))
}

func TestLoadTable_UnreadableText(t *testing.T) {
	// a directory opens fine but fails on read
	path := filepath.Join(t.TempDir(), "6185.csv")
	require.NoError(t, os.Mkdir(path, 0755))

	_, err := LoadTable(path, DefaultOptions())

	var loadErr *storage.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, path, loadErr.Path)
	assert.False(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadTable_BrokenWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0644))

	_, err := LoadTable(path, DefaultOptions())

	var loadErr *storage.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, path, loadErr.Path)
}

func TestLoadTable_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "5105.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"DEUTZ-FAHR 5105"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Beskrivelse", "Varenr", "Brutto", "Antal", "500 timer"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"Oliefilter", "0441", "120,00", "1", "x"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := LoadTable(path, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"Beskrivelse", "Varenr", "Brutto", "Antal", "500 timer"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "120,00", table.Cell(0, "Brutto"))
	assert.Equal(t, "x", table.Cell(0, "500 timer"))
}

func TestNewOptions(t *testing.T) {
	opts, err := NewOptions(config.Sheet{Delimiter: "\t", Encoding: "windows-1252", HeaderKeywords: []string{"stunden"}})
	require.NoError(t, err)
	assert.Equal(t, '\t', opts.Comma)
	assert.Equal(t, charmap.Windows1252, opts.Encoding)
	assert.Equal(t, []string{"stunden"}, opts.HeaderKeywords)

	_, err = NewOptions(config.Sheet{Delimiter: ";;"})
	var cfgErr *storage.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "delimiter", cfgErr.Field)

	_, err = NewOptions(config.Sheet{Encoding: "ebcdic"})
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "encoding", cfgErr.Field)
}
