package quote

import (
	"math"
	"strings"

	"service-calc/internal/config"
	"service-calc/internal/constants"
	"service-calc/internal/storage"
)

type Markers struct {
	Fluids []string
	Misc   []string
	Labor  []string
	// MiscKeywords force a row into MISC wherever it sits.
	MiscKeywords []string
}

func DefaultMarkers() Markers {
	return Markers{
		Fluids: constants.FluidsMarkers,
		Misc:   constants.MiscMarkers,
		Labor:  constants.LaborMarkers,
	}
}

func MarkersFromConfig(cfg config.Sheet) Markers {
	m := DefaultMarkers()
	m.MiscKeywords = cfg.MiscKeywords
	return m
}

// Partition assigns every costed row of the table to a section. Marker rows
// and rows with an empty or placeholder description are left out.
//
// With v the fluids marker row and d the misc marker row (missing markers
// count as past the end): rows >= d are MISC, rows < v are PARTS, the rest
// FLUIDS. The labor row is LABOR wherever it is.
func Partition(table *storage.Table, markers Markers) map[int]storage.Section {
	v := findRow(table, markers.Fluids, -1, -1)
	d := findRow(table, markers.Misc, -1, -1)
	labor := findRow(table, markers.Labor, v, d)

	fluidsStart, miscStart := v, d
	if fluidsStart < 0 {
		fluidsStart = math.MaxInt
	}
	if miscStart < 0 {
		miscStart = math.MaxInt
	}

	sections := make(map[int]storage.Section, len(table.Rows))
	for i := range table.Rows {
		if i == v || i == d {
			continue
		}

		desc := strings.ToLower(table.Description(i))
		if constants.Placeholders[desc] {
			continue
		}

		switch {
		case i == labor:
			sections[i] = storage.SectionLabor
		case containsAny(desc, markers.MiscKeywords):
			sections[i] = storage.SectionMisc
		case i >= miscStart:
			sections[i] = storage.SectionMisc
		case i < fluidsStart:
			sections[i] = storage.SectionParts
		default:
			sections[i] = storage.SectionFluids
		}
	}

	return sections
}

// findRow returns the first row whose description contains one of the
// keywords, skipping the given row indexes, or -1.
func findRow(table *storage.Table, keywords []string, skip ...int) int {
	for i := range table.Rows {
		if isOneOf(i, skip) {
			continue
		}
		if containsAny(table.Description(i), keywords) {
			return i
		}
	}
	return -1
}

func isOneOf(i int, set []int) bool {
	for _, s := range set {
		if s == i {
			return true
		}
	}
	return false
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
