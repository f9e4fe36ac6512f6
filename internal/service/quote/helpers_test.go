package quote

import "service-calc/internal/storage"

// sheet builds a table with the usual column layout:
// description, part number, price lists, quantity, fixed price, intervals.
func sheet(intervals []string, rows ...[]string) *storage.Table {
	columns := append([]string{"Beskrivelse", "Varenr", "Brutto", "Haste", "Antal", "Enhed", "Note", "Pris"}, intervals...)
	return storage.NewTable(columns, rows)
}

// row fills a record for sheet(); marks are the interval cells in order.
func row(desc, partNo, brutto, qty, fixed string, marks ...string) []string {
	return append([]string{desc, partNo, brutto, "", qty, "stk", "", fixed}, marks...)
}

func baseConfig() storage.PricingConfig {
	return storage.PricingConfig{
		PriceListColumn:  "Brutto",
		FixedPriceColumn: "Pris",
		QuantityColumn:   "Antal",
		MiscSurcharge:    storage.DefaultMiscSurcharge,
		HourlyRate:       750,
		Boundary:         storage.BoundaryStrict,
	}
}
