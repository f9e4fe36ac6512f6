package quote

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"service-calc/internal/config"
	"service-calc/internal/constants"
	"service-calc/internal/storage"
)

type SheetStorage interface {
	LoadTable(ctx context.Context, model string) (*storage.Table, error)
	ListModels(ctx context.Context) ([]string, error)
}

// Defaults fill in whatever a QuoteRequest leaves out.
type Defaults struct {
	PriceList           string
	PriceLists          []string
	FixedPriceColumn    string
	FixedPriceIndex     int
	QuantityColumn      string
	HeaderKeywords      []string
	HourlyRate          float64
	MarkupPercent       float64
	FluidsMarkupPercent float64
	MiscMarkupPercent   float64
	MiscSurcharge       float64
	Boundary            storage.BoundaryPolicy
}

func DefaultsFromConfig(cfg config.Config) (Defaults, error) {
	const op = "service.quote.DefaultsFromConfig"

	boundary, err := storage.ParseBoundaryPolicy(cfg.Pricing.Boundary)
	if err != nil {
		return Defaults{}, fmt.Errorf("%s: %w", op, err)
	}

	d := Defaults{
		PriceList:           cfg.Pricing.PriceList,
		PriceLists:          cfg.Sheet.PriceLists,
		FixedPriceColumn:    cfg.Sheet.FixedPriceColumn,
		FixedPriceIndex:     cfg.Sheet.FixedPriceIndex,
		QuantityColumn:      cfg.Sheet.QuantityColumn,
		HeaderKeywords:      cfg.Sheet.HeaderKeywords,
		HourlyRate:          cfg.Pricing.HourlyRate,
		MarkupPercent:       cfg.Pricing.MarkupPercent,
		FluidsMarkupPercent: cfg.Pricing.FluidsMarkupPercent,
		MiscMarkupPercent:   cfg.Pricing.MiscMarkupPercent,
		MiscSurcharge:       cfg.Pricing.MiscSurcharge,
		Boundary:            boundary,
	}
	if d.PriceList == "" {
		d.PriceList = constants.DefaultPriceList
	}
	if len(d.PriceLists) == 0 {
		d.PriceLists = constants.PriceLists
	}
	if d.QuantityColumn == "" {
		d.QuantityColumn = constants.QuantityColumn
	}
	if len(d.HeaderKeywords) == 0 {
		d.HeaderKeywords = constants.HeaderKeywords
	}

	return d, nil
}

type QuoteService struct {
	storage  SheetStorage
	markers  Markers
	defaults Defaults
}

func NewQuoteService(storage SheetStorage, markers Markers, defaults Defaults) *QuoteService {
	return &QuoteService{storage: storage, markers: markers, defaults: defaults}
}

func (s *QuoteService) Models(ctx context.Context) ([]string, error) {
	const op = "service.quote.Models"

	models, err := s.storage.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return models, nil
}

// DescribeModel returns what a dashboard needs before asking for a quote:
// the interval columns and the labor hours the sheet suggests for each.
func (s *QuoteService) DescribeModel(ctx context.Context, model string) (storage.ModelInfo, error) {
	const op = "service.quote.DescribeModel"

	table, err := s.storage.LoadTable(ctx, model)
	if err != nil {
		return storage.ModelInfo{}, fmt.Errorf("%s: %w", op, err)
	}

	intervals := ParseIntervals(table.Columns, s.defaults.HeaderKeywords)
	sections := Partition(table, s.markers)

	labor := make(map[string]float64, len(intervals))
	for _, iv := range intervals {
		labor[iv.Column] = LaborHours(table, sections, iv.Column)
	}

	var priceLists []string
	for _, p := range s.defaults.PriceLists {
		if table.HasColumn(p) {
			priceLists = append(priceLists, p)
		}
	}

	return storage.ModelInfo{
		Model:        model,
		Columns:      table.Columns,
		Intervals:    intervals,
		PriceLists:   priceLists,
		DefaultLabor: labor,
	}, nil
}

func (s *QuoteService) Calculate(ctx context.Context, req storage.QuoteRequest) (storage.CostReport, error) {
	const op = "service.quote.Calculate"

	table, err := s.storage.LoadTable(ctx, req.Model)
	if err != nil {
		return storage.CostReport{}, fmt.Errorf("%s: %w", op, err)
	}

	all := ParseIntervals(table.Columns, s.defaults.HeaderKeywords)

	cfg, err := s.pricing(table, all, req)
	if err != nil {
		return storage.CostReport{}, fmt.Errorf("%s: %w", op, err)
	}

	cutoff, err := ResolveCutoff(all, req.Cutoff)
	if err != nil {
		return storage.CostReport{}, fmt.Errorf("%s: %w", op, err)
	}

	selected := SelectIntervals(all, cutoff.Hours, cfg.Boundary)
	sections := Partition(table, s.markers)

	report, err := Aggregate(table, sections, selected, cutoff.Hours, cfg)
	if err != nil {
		return storage.CostReport{}, fmt.Errorf("%s: %w", op, err)
	}
	report.Model = req.Model

	return report, nil
}

// Schedule computes one report per interval of the model, each as if that
// interval were the cutoff. req.Cutoff is ignored.
func (s *QuoteService) Schedule(ctx context.Context, req storage.QuoteRequest) ([]storage.CostReport, error) {
	const op = "service.quote.Schedule"

	table, err := s.storage.LoadTable(ctx, req.Model)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	all := ParseIntervals(table.Columns, s.defaults.HeaderKeywords)

	cfg, err := s.pricing(table, all, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sections := Partition(table, s.markers)

	// table, sections and cfg are only read from here on
	reports := make([]storage.CostReport, len(all))
	g, gCtx := errgroup.WithContext(ctx)
	for i, iv := range all {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			selected := SelectIntervals(all, iv.Hours, cfg.Boundary)
			report, err := Aggregate(table, sections, selected, iv.Hours, cfg)
			if err != nil {
				return fmt.Errorf("cutoff %s: %w", iv.Column, err)
			}
			report.Model = req.Model
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return reports, nil
}

// pricing merges the request with the defaults into a PricingConfig.
func (s *QuoteService) pricing(table *storage.Table, intervals []storage.Interval, req storage.QuoteRequest) (storage.PricingConfig, error) {
	d := s.defaults

	labor, err := laborOverrides(req.LaborHours, intervals)
	if err != nil {
		return storage.PricingConfig{}, err
	}

	cfg := storage.PricingConfig{
		PriceListColumn: d.PriceList,
		QuantityColumn:  d.QuantityColumn,
		Markup:          d.MarkupPercent / 100,
		FluidsMarkup:    d.FluidsMarkupPercent / 100,
		MiscMarkup:      d.MiscMarkupPercent / 100,
		MiscSurcharge:   d.MiscSurcharge,
		HourlyRate:      d.HourlyRate,
		Boundary:        d.Boundary,
		LaborHours:      labor,
	}

	if req.PriceList != "" {
		name := req.PriceList
		if len(d.PriceLists) > 0 {
			var ok bool
			if name, ok = lookupName(req.PriceList, d.PriceLists); !ok {
				return storage.PricingConfig{}, &storage.ConfigError{Field: "price_list", Value: req.PriceList}
			}
		}
		cfg.PriceListColumn = name
	}
	if req.MarkupPercent != nil {
		cfg.Markup = *req.MarkupPercent / 100
	}
	if req.HourlyRate != nil {
		cfg.HourlyRate = *req.HourlyRate
	}
	if req.MiscSurcharge != nil {
		cfg.MiscSurcharge = *req.MiscSurcharge
	}
	if req.Boundary != "" {
		b, err := storage.ParseBoundaryPolicy(req.Boundary)
		if err != nil {
			return storage.PricingConfig{}, err
		}
		cfg.Boundary = b
	}

	switch {
	case d.FixedPriceColumn != "":
		cfg.FixedPriceColumn = d.FixedPriceColumn
	case d.FixedPriceIndex >= 0 && d.FixedPriceIndex < len(table.Columns):
		cfg.FixedPriceColumn = table.Columns[d.FixedPriceIndex]
	default:
		return storage.PricingConfig{}, &storage.SchemaError{Column: fmt.Sprintf("#%d", d.FixedPriceIndex)}
	}

	return cfg, nil
}

// laborOverrides keys the requested labor hours by interval column; a key
// naming no interval of the sheet is a ConfigError.
func laborOverrides(hours map[string]float64, intervals []storage.Interval) (map[string]float64, error) {
	if len(hours) == 0 {
		return nil, nil
	}

	columns := make([]string, len(intervals))
	for i, iv := range intervals {
		columns[i] = iv.Column
	}

	keys := make([]string, 0, len(hours))
	for k := range hours {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]float64, len(hours))
	for _, k := range keys {
		column, ok := lookupName(k, columns)
		if !ok {
			return nil, &storage.ConfigError{Field: "labor_hours", Value: k, Err: errUnknownInterval}
		}
		out[column] = hours[k]
	}

	return out, nil
}

// lookupName matches name case-insensitively and returns the configured spelling.
func lookupName(name string, names []string) (string, bool) {
	for _, n := range names {
		if strings.EqualFold(strings.TrimSpace(n), strings.TrimSpace(name)) {
			return n, true
		}
	}
	return "", false
}
