// Package sensitivity ranks model parameters by how far the total cost moves
// when each one is pushed to the ends of its range.
//
// The sweep is one-at-a-time: every other parameter stays at its current
// value, so interactions between parameters are not captured. The ranking
// describes local sensitivity around the given set, not a variance
// decomposition.
package sensitivity

import (
	"math"
	"sort"

	"github.com/Simplici0/mako-cost/internal/model"
)

// DefaultTopN is the number of entries returned when no limit is given.
const DefaultTopN = 10

// Result describes the cost swing of a single parameter.
type Result struct {
	Param      model.Param `json:"-"`
	Key        string      `json:"paramKey"`
	Label      string      `json:"label"`
	DeltaAtMin float64     `json:"deltaLow"`
	DeltaAtMax float64     `json:"deltaHigh"`
	Swing      float64     `json:"swing"`
}

// Analyze sweeps each active parameter to its range minimum and maximum and
// returns the topN entries with the largest swing, largest first.
// Parameters whose swing is zero are omitted. topN <= 0 selects DefaultTopN.
func Analyze(p model.ParameterSet, topN int) []Result {
	if topN <= 0 {
		topN = DefaultTopN
	}

	baseline := model.Calculate(p).Total
	results := make([]Result, 0, len(model.Ranges()))

	for _, r := range model.ActiveRanges(p.Scope) {
		low := p
		r.Set(&low, r.Min)
		deltaLow := model.Calculate(low).Total - baseline

		high := p
		r.Set(&high, r.Max)
		deltaHigh := model.Calculate(high).Total - baseline

		swing := math.Abs(deltaHigh - deltaLow)
		if swing == 0 {
			continue
		}

		results = append(results, Result{
			Param:      r.Param,
			Key:        r.Key,
			Label:      r.Label,
			DeltaAtMin: deltaLow,
			DeltaAtMax: deltaHigh,
			Swing:      swing,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Swing > results[j].Swing
	})

	if len(results) > topN {
		results = results[:topN]
	}
	return results
}
