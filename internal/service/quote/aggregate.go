package quote

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"service-calc/internal/constants"
	"service-calc/internal/storage"
)

// Aggregate prices every active row of every selected interval and sums the
// sections. A row is active in an interval when its cell in that interval
// column is not blank.
//
// Per interval: PARTS use the price-list column with Markup, FLUIDS and MISC
// use the fixed price column with their own markups, MISC gets one
// MiscSurcharge, and labor is hours × HourlyRate where hours come from
// cfg.LaborHours or else the labor row.
func Aggregate(
	table *storage.Table,
	sections map[int]storage.Section,
	intervals []storage.Interval,
	cutoffHours int,
	cfg storage.PricingConfig,
) (storage.CostReport, error) {
	if err := checkColumns(table, intervals, cfg); err != nil {
		return storage.CostReport{}, err
	}

	rows := make([]int, 0, len(sections))
	laborRow := -1
	for idx, sec := range sections {
		if sec == storage.SectionLabor {
			laborRow = idx
			continue
		}
		rows = append(rows, idx)
	}
	sort.Ints(rows)

	var (
		subtotals storage.Subtotals
		items     []storage.LineItem
	)

	add := func(item storage.LineItem) {
		items = append(items, item)
		switch item.Section {
		case storage.SectionParts:
			subtotals.Parts += item.Total
		case storage.SectionFluids:
			subtotals.Fluids += item.Total
		case storage.SectionMisc:
			subtotals.Misc += item.Total
		case storage.SectionLabor:
			subtotals.Labor += item.Total
		}
	}

	for _, iv := range intervals {
		for _, idx := range rows {
			if !isActive(table.Cell(idx, iv.Column)) {
				continue
			}

			sec := sections[idx]
			column, markup := cfg.FixedPriceColumn, 0.0
			switch sec {
			case storage.SectionParts:
				column, markup = cfg.PriceListColumn, cfg.Markup
			case storage.SectionFluids:
				markup = cfg.FluidsMarkup
			case storage.SectionMisc:
				markup = cfg.MiscMarkup
			}

			price := ParseAmount(table.Cell(idx, column))
			qty := quantity(table.Cell(idx, cfg.QuantityColumn))

			add(storage.LineItem{
				Description: table.Description(idx),
				PartNumber:  table.PartNumber(idx),
				UnitPrice:   price,
				Quantity:    qty,
				Total:       qty * price * (1 + markup),
				Section:     sec,
				Interval:    iv.Column,
			})
		}

		if cfg.MiscSurcharge != 0 {
			add(storage.LineItem{
				Description: constants.SurchargeLabel,
				PartNumber:  "-",
				UnitPrice:   cfg.MiscSurcharge,
				Quantity:    1,
				Total:       cfg.MiscSurcharge,
				Section:     storage.SectionMisc,
				Interval:    iv.Column,
			})
		}

		hours := laborHours(table, laborRow, iv.Column, cfg.LaborHours)
		if hours != 0 {
			add(storage.LineItem{
				Description: constants.LaborLabel,
				UnitPrice:   cfg.HourlyRate,
				Quantity:    hours,
				Total:       hours * cfg.HourlyRate,
				Section:     storage.SectionLabor,
				Interval:    iv.Column,
			})
		}
	}

	report := storage.CostReport{
		Sections:          subtotals,
		GrandTotal:        subtotals.Sum(),
		CutoffHours:       cutoffHours,
		HourlyRate:        cfg.HourlyRate,
		IntervalsIncluded: append([]storage.Interval{}, intervals...),
		LineItems:         items,
	}
	if cutoffHours > 0 {
		report.CostPerHour = report.GrandTotal / float64(cutoffHours)
	}

	return report, nil
}

func checkColumns(table *storage.Table, intervals []storage.Interval, cfg storage.PricingConfig) error {
	required := map[string]string{
		"price_list_column":  cfg.PriceListColumn,
		"fixed_price_column": cfg.FixedPriceColumn,
		"quantity_column":    cfg.QuantityColumn,
	}
	for _, field := range []string{"price_list_column", "fixed_price_column", "quantity_column"} {
		name := required[field]
		if strings.TrimSpace(name) == "" {
			return &storage.ConfigError{Field: field, Value: name}
		}
		if !table.HasColumn(name) {
			return &storage.SchemaError{Column: name}
		}
	}

	for _, iv := range intervals {
		if !table.HasColumn(iv.Column) {
			return &storage.SchemaError{Column: iv.Column}
		}
	}

	return nil
}

// LaborHours is the number of workshop hours the sheet lists for an interval.
func LaborHours(table *storage.Table, sections map[int]storage.Section, column string) float64 {
	for idx, sec := range sections {
		if sec == storage.SectionLabor {
			return ParseAmount(table.Cell(idx, column))
		}
	}
	return 0
}

func laborHours(table *storage.Table, laborRow int, column string, overrides map[string]float64) float64 {
	if h, ok := overrides[column]; ok {
		return h
	}
	if laborRow < 0 {
		return 0
	}
	return ParseAmount(table.Cell(laborRow, column))
}

func isActive(cell string) bool {
	return !constants.Placeholders[strings.ToLower(strings.TrimSpace(cell))]
}

// quantity reads the quantity cell. A single letter mark such as "x"
// means one unit.
func quantity(cell string) float64 {
	s := strings.TrimSpace(cell)
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		if unicode.IsLetter(r) {
			return 1
		}
	}
	return ParseAmount(s)
}
