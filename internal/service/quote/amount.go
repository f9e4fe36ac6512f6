package quote

import (
	"strconv"
	"strings"
)

// ParseAmount turns a price or quantity cell into a number. It never fails:
// blank or unreadable text is 0, so a mistyped price shows up as a zero-cost
// line rather than an error.
//
// Separator rules, applied after dropping everything but digits, '.' and ',':
//   - both '.' and ',' present: '.' groups thousands, ',' is the decimal point
//   - only ',' present: ',' is the decimal point
//   - only '.' present and exactly three digits after the last one: the dots
//     group thousands and are removed ("1.250" is 1250, "2.125" is 2125 too)
//
// Any remaining extra decimal points except the last are dropped.
func ParseAmount(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	s := b.String()

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")

	switch {
	case hasDot && hasComma:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	case hasDot:
		if len(s)-strings.LastIndex(s, ".")-1 == 3 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	if strings.Count(s, ".") > 1 {
		last := strings.LastIndex(s, ".")
		s = strings.ReplaceAll(s[:last], ".", "") + s[last:]
	}

	if s == "" || s == "." {
		return 0
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
