package storage

type Section string

const (
	SectionParts  Section = "parts"
	SectionFluids Section = "fluids"
	SectionMisc   Section = "misc"
	SectionLabor  Section = "labor"
)

// Interval is one maintenance checkpoint column, e.g. "500 timer".
type Interval struct {
	Hours  int    `json:"hours"`
	Column string `json:"column"`
}

type LineItem struct {
	Description string  `json:"description"`
	PartNumber  string  `json:"part_number"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    float64 `json:"quantity"`
	Total       float64 `json:"total"`
	Section     Section `json:"section"`
	Interval    string  `json:"interval"`
}

type Subtotals struct {
	Parts  float64 `json:"parts"`
	Fluids float64 `json:"fluids"`
	Misc   float64 `json:"misc"`
	Labor  float64 `json:"labor"`
}

func (s Subtotals) Get(section Section) float64 {
	switch section {
	case SectionParts:
		return s.Parts
	case SectionFluids:
		return s.Fluids
	case SectionMisc:
		return s.Misc
	case SectionLabor:
		return s.Labor
	default:
		return 0
	}
}

func (s Subtotals) Sum() float64 {
	return s.Parts + s.Fluids + s.Misc + s.Labor
}

// CostReport is the result of a single quote calculation. It is built once
// by the aggregator and handed out by value.
type CostReport struct {
	Model             string     `json:"model,omitempty"`
	Sections          Subtotals  `json:"sections"`
	GrandTotal        float64    `json:"grand_total"`
	CostPerHour       float64    `json:"cost_per_hour"`
	CutoffHours       int        `json:"cutoff_hours"`
	HourlyRate        float64    `json:"hourly_rate"`
	IntervalsIncluded []Interval `json:"intervals_included"`
	LineItems         []LineItem `json:"line_items"`
}

// Items returns the line items of one section in the order they were produced.
func (r CostReport) Items(section Section) []LineItem {
	var items []LineItem
	for _, it := range r.LineItems {
		if it.Section == section {
			items = append(items, it)
		}
	}
	return items
}
