package constants

// Keywords are matched case-insensitively as substrings of the first
// (description) column unless noted otherwise.
var (
	// row that starts the fluids block
	FluidsMarkers = []string{"fluids", "væsker"}

	// row that starts the miscellaneous block
	MiscMarkers = []string{"misc", "diverse"}

	// the single labor-hours row
	LaborMarkers = []string{"labor", "arbejd"}

	// any header cell containing one of these marks the header row and an interval column
	HeaderKeywords = []string{"hours", "timer"}

	// descriptions or interval cells that count as empty, compared after trim + lower-case
	Placeholders = map[string]bool{
		"":     true,
		"none": true,
		"nan":  true,
	}
)

const (
	QuantityColumn   = "Antal"
	FixedPriceIndex  = 7
	SurchargeLabel   = "Misc surcharge (fixed)"
	LaborLabel       = "Labor"
	DefaultPriceList = "Brutto"
)

var PriceLists = []string{"Brutto", "Haste", "Uge", "Måned"}
