package storage

// BoundaryPolicy decides whether the cutoff interval itself belongs to the
// aggregated history.
type BoundaryPolicy string

const (
	// BoundaryStrict includes intervals with hours < cutoff.
	BoundaryStrict BoundaryPolicy = "strict"
	// BoundaryInclusive includes intervals with hours <= cutoff.
	BoundaryInclusive BoundaryPolicy = "inclusive"
)

func (p BoundaryPolicy) Includes(hours, cutoff int) bool {
	if p == BoundaryInclusive {
		return hours <= cutoff
	}
	return hours < cutoff
}

func ParseBoundaryPolicy(s string) (BoundaryPolicy, error) {
	switch BoundaryPolicy(s) {
	case BoundaryStrict, "":
		return BoundaryStrict, nil
	case BoundaryInclusive:
		return BoundaryInclusive, nil
	default:
		return "", &ConfigError{Field: "boundary", Value: s}
	}
}

const DefaultMiscSurcharge = 500.0

// PricingConfig is passed explicitly into every calculation; nothing is read
// from package state. Markups are fractions (0.10 == 10 %).
type PricingConfig struct {
	PriceListColumn  string             `json:"price_list_column"`
	FixedPriceColumn string             `json:"fixed_price_column"`
	QuantityColumn   string             `json:"quantity_column"`
	Markup           float64            `json:"markup"`
	FluidsMarkup     float64            `json:"fluids_markup"`
	MiscMarkup       float64            `json:"misc_markup"`
	MiscSurcharge    float64            `json:"misc_surcharge"`
	HourlyRate       float64            `json:"hourly_rate"`
	Boundary         BoundaryPolicy     `json:"boundary"`
	LaborHours       map[string]float64 `json:"labor_hours,omitempty"`
}

// QuoteRequest is what a dashboard sends to get a quote for one model.
// Pointer fields fall back to configured defaults when nil.
type QuoteRequest struct {
	Model         string             `json:"model" validate:"required,excludesall=/\\"`
	Cutoff        string             `json:"cutoff" validate:"required"`
	PriceList     string             `json:"price_list"`
	MarkupPercent *float64           `json:"markup_percent" validate:"omitempty,gte=0,lte=100"`
	HourlyRate    *float64           `json:"hourly_rate" validate:"omitempty,gte=0"`
	MiscSurcharge *float64           `json:"misc_surcharge" validate:"omitempty,gte=0"`
	Boundary      string             `json:"boundary" validate:"omitempty,oneof=strict inclusive"`
	LaborHours    map[string]float64 `json:"labor_hours" validate:"omitempty,dive,gte=0"`
}

type ModelInfo struct {
	Model        string             `json:"model"`
	Columns      []string           `json:"columns"`
	Intervals    []Interval         `json:"intervals"`
	PriceLists   []string           `json:"price_lists"`
	DefaultLabor map[string]float64 `json:"default_labor_hours"`
}
