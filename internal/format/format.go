// Package format renders model values for German-speaking readers: '.' groups
// thousands and ',' separates decimals. Rounding is done in decimal so that
// half-way values round away from zero regardless of binary representation.
package format

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	million = 1_000_000
	billion = 1_000_000_000
)

// Euro formats an amount with Mrd./Mio. suffixes above one million, whole
// euros above one thousand and cents below.
func Euro(v float64) string {
	switch a := math.Abs(v); {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return special(v) + " €"
	case a >= billion:
		return grouped(v/billion, 2) + " Mrd. €"
	case a >= million:
		return grouped(v/million, 2) + " Mio. €"
	case a >= 1_000:
		return grouped(v, 0) + " €"
	default:
		return grouped(v, 2) + " €"
	}
}

// SignedEuro is Euro with an explicit '+' for positive amounts.
func SignedEuro(v float64) string {
	if v > 0 {
		return "+" + Euro(v)
	}
	return Euro(v)
}

// EuroCompact formats an amount in whole millions or thousands.
func EuroCompact(v float64) string {
	switch a := math.Abs(v); {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return special(v) + " €"
	case a >= million:
		return rounded(v/million, 0) + " Mio. €"
	case a >= 1_000:
		return rounded(v/1_000, 0) + "k €"
	default:
		return grouped(v, 2) + " €"
	}
}

// Number formats v as a grouped integer.
func Number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return special(v)
	}
	return grouped(v, 0)
}

// Percent formats a ratio with one decimal, e.g. 0.123 as "12.3%".
func Percent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return special(v) + "%"
	}
	return rounded(v*100, 1) + "%"
}

// ParamValue formats a parameter value according to its range key.
func ParamValue(key string, v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return special(v)
	}
	switch {
	case key == "errorRate":
		return rounded(v*100, 2) + "%"
	case key == "concentration":
		return rounded(v*100, 0) + "%"
	case key == "updatesPerYear":
		return rounded(v, 1)
	case strings.HasPrefix(key, "sectorMultipliers."):
		return rounded(v, 2)
	case key == "costs.perMessage":
		return grouped(v, 2) + " €"
	case strings.HasPrefix(key, "costs."):
		return EuroCompact(v)
	case key == "messageVolume":
		return Number(v/million) + " Mio."
	default:
		return Number(v)
	}
}

// grouped renders v with German separators and a fixed number of decimals.
func grouped(v float64, places int) string {
	r := decimal.NewFromFloat(v).Round(int32(places)).InexactFloat64()
	return humanize.FormatFloat("#.###,"+strings.Repeat("#", places), r)
}

// rounded renders v with a '.' decimal point and no grouping.
func rounded(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

func special(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	default:
		return "n/a"
	}
}
