package montecarlo

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultBins is the number of histogram bins used for result display.
const DefaultBins = 30

// Bin is a half-open interval [From, To) of simulated totals. The last bin
// also holds the maximum.
type Bin struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Count int     `json:"count"`
}

// Histogram distributes samples over equal-width bins between their minimum
// and maximum. If every sample is equal a single bin is returned.
func Histogram(samples []float64, bins int) []Bin {
	if len(samples) == 0 {
		return []Bin{}
	}
	if bins <= 0 {
		bins = DefaultBins
	}

	lo, hi := floats.Min(samples), floats.Max(samples)
	width := (hi - lo) / float64(bins)
	if width == 0 {
		return []Bin{{From: lo, To: lo, Count: len(samples)}}
	}

	out := make([]Bin, bins)
	for i := range out {
		out[i].From = lo + float64(i)*width
		out[i].To = out[i].From + width
	}
	for _, v := range samples {
		idx := int(math.Floor((v - lo) / width))
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}
