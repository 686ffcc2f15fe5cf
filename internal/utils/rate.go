package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseRate converts a stored rental rate to float64. The store hands numeric
// columns back as strings or numbers depending on the driver. Anything that
// does not parse yields 0.
func ParseRate(v any) float64 {
	var d decimal.Decimal
	var err error

	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		d = decimal.NewFromFloat(val)
	case float32:
		d = decimal.NewFromFloat32(val)
	case int64:
		d = decimal.NewFromInt(val)
	case int:
		d = decimal.NewFromInt(int64(val))
	case []byte:
		d, err = decimal.NewFromString(strings.TrimSpace(string(val)))
	case string:
		d, err = decimal.NewFromString(strings.TrimSpace(val))
	default:
		return 0
	}
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

// RateString renders a rate for the numeric column with at least two decimal
// places ("1200.00"). Finer precision is kept so a stored rate reads back as
// the same float.
func RateString(rate float64) string {
	d := decimal.NewFromFloat(rate)
	if d.Exponent() >= -2 {
		return d.StringFixed(2)
	}
	return d.String()
}

// FormatMonthlyRate renders a flat monthly rate for display, e.g. "$1,200.00/mo".
// A zero rate renders as an empty string.
func FormatMonthlyRate(rate float64) string {
	if rate == 0 {
		return ""
	}
	return fmt.Sprintf("$%s/mo", groupThousands(decimal.NewFromFloat(rate).StringFixed(2)))
}

func groupThousands(fixed string) string {
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	whole, frac, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + "." + frac
	if neg {
		return "-" + out
	}
	return out
}
