package quote

import (
	"errors"
	"strconv"
	"strings"

	"service-calc/internal/storage"
)

var (
	errNoDigits        = errors.New("no hour count in label")
	errUnknownInterval = errors.New("no such interval in sheet")
)

// ParseIntervals lists the interval columns in sheet order. Columns whose
// name carries a keyword but no digits are not intervals.
func ParseIntervals(columns []string, keywords []string) []storage.Interval {
	var intervals []storage.Interval
	for _, c := range columns {
		if !containsAny(c, keywords) {
			continue
		}
		hours, err := HoursFromLabel(c)
		if err != nil {
			continue
		}
		intervals = append(intervals, storage.Interval{Hours: hours, Column: c})
	}
	return intervals
}

// HoursFromLabel reads the hour count out of a label such as "1.000 timer".
func HoursFromLabel(label string) (int, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, label)

	if digits == "" {
		return 0, &storage.ConfigError{Field: "cutoff", Value: label, Err: errNoDigits}
	}

	hours, err := strconv.Atoi(digits)
	if err != nil {
		return 0, &storage.ConfigError{Field: "cutoff", Value: label, Err: err}
	}

	return hours, nil
}

// ResolveCutoff finds the interval a cutoff label refers to, first by column
// name and then by hour count ("1000" picks "1.000 timer").
func ResolveCutoff(intervals []storage.Interval, label string) (storage.Interval, error) {
	name := strings.TrimSpace(label)
	for _, iv := range intervals {
		if strings.EqualFold(iv.Column, name) {
			return iv, nil
		}
	}

	hours, err := HoursFromLabel(label)
	if err != nil {
		return storage.Interval{}, err
	}
	for _, iv := range intervals {
		if iv.Hours == hours {
			return iv, nil
		}
	}

	return storage.Interval{}, &storage.ConfigError{Field: "cutoff", Value: label, Err: errUnknownInterval}
}

// SelectIntervals keeps, in input order, the intervals the boundary policy
// admits for the cutoff.
func SelectIntervals(all []storage.Interval, cutoff int, policy storage.BoundaryPolicy) []storage.Interval {
	selected := make([]storage.Interval, 0, len(all))
	for _, iv := range all {
		if policy.Includes(iv.Hours, cutoff) {
			selected = append(selected, iv)
		}
	}
	return selected
}
