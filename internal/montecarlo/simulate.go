// Package montecarlo propagates parameter uncertainty through the cost model.
//
// Every parameter of the range table is drawn from a triangular distribution
// over its range with the current value as mode. Parameters that share a
// cost driver are drawn through a Gaussian copula so they move together.
// Runs are sequential and seeded from the inputs, so identical inputs give
// identical results.
package montecarlo

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/Simplici0/mako-cost/internal/model"
)

// DefaultIterations is the iteration count used when the caller has no preference.
const DefaultIterations = 1_000

// IterationOptions are the iteration counts offered to users.
var IterationOptions = []int{500, 1_000, 5_000, 10_000}

// Percentiles holds nearest-rank percentiles of the simulated totals.
type Percentiles struct {
	P5  float64 `json:"P5"`
	P25 float64 `json:"P25"`
	P50 float64 `json:"P50"`
	P75 float64 `json:"P75"`
	P95 float64 `json:"P95"`
}

// Result is the aggregated outcome of a simulation run.
type Result struct {
	Iterations int    `json:"iterations"`
	Seed       uint32 `json:"seed"`
	// Samples holds every simulated total in ascending order.
	Samples            []float64        `json:"samples"`
	Percentiles        Percentiles      `json:"percentiles"`
	Mean               float64          `json:"mean"`
	StdDev             float64          `json:"stdDev"`
	ComponentBreakdown model.Components `json:"componentBreakdown"`
}

type sampler struct {
	param  model.Range
	dist   distuv.Triangle
	group  int
	rho    float64
	linked bool
}

func newSampler(r model.Range, current float64) sampler {
	mode := r.Clamp(current)
	lo, hi := r.Min, r.Max
	if r.Log {
		lo, hi, mode = math.Log(lo), math.Log(hi), math.Log(mode)
	}

	s := sampler{
		param: r,
		dist:  distuv.NewTriangle(lo, hi, mode, nil),
	}
	if m, ok := groupIndex[r.Param]; ok {
		s.group, s.rho, s.linked = m.group, m.rho, true
	}
	return s
}

// draw maps u through the triangular inverse CDF, in log space when the
// range is logarithmic.
func (s sampler) draw(u float64) float64 {
	v := s.dist.Quantile(math.Max(0, math.Min(1, u)))
	if s.param.Log {
		return math.Exp(v)
	}
	return v
}

// Simulate runs the cost model iterations times on perturbed copies of p.
//
// iterations <= 0 returns an empty result.
func Simulate(p model.ParameterSet, iterations int) Result {
	if iterations <= 0 {
		return Result{Samples: []float64{}}
	}

	seed := Seed(p, iterations)
	src := newSource(seed)

	active := model.ActiveRanges(p.Scope)
	samplers := make([]sampler, len(active))
	for i, r := range active {
		samplers[i] = newSampler(r, r.Get(p))
	}

	totals := make([]float64, iterations)
	shared := make([]float64, len(groups))
	var sums model.Components

	for i := 0; i < iterations; i++ {
		perturbed := p

		for g := range shared {
			shared[g] = src.Float64()
		}

		for _, s := range samplers {
			var u float64
			if s.linked {
				u = correlatedUniform(shared[s.group], src.Float64(), s.rho)
			} else {
				u = src.Float64()
			}
			s.param.Set(&perturbed, s.draw(u))
		}

		out := model.Calculate(perturbed)
		totals[i] = out.Total
		sums.Platform += out.Components.Platform
		sums.Operations += out.Components.Operations
		sums.SyncTax += out.Components.SyncTax
		sums.Friction += out.Components.Friction
	}

	mean, stdDev := stat.PopMeanStdDev(totals, nil)
	sort.Float64s(totals)

	n := float64(iterations)
	return Result{
		Iterations: iterations,
		Seed:       seed,
		Samples:    totals,
		Percentiles: Percentiles{
			P5:  percentile(totals, 0.05),
			P25: percentile(totals, 0.25),
			P50: percentile(totals, 0.50),
			P75: percentile(totals, 0.75),
			P95: percentile(totals, 0.95),
		},
		Mean:   mean,
		StdDev: stdDev,
		ComponentBreakdown: model.Components{
			Platform:   sums.Platform / n,
			Operations: sums.Operations / n,
			SyncTax:    sums.SyncTax / n,
			Friction:   sums.Friction / n,
		},
	}
}

// percentile returns the nearest-rank sample at floor(q*(n-1)) of sorted.
func percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[int(math.Floor(q*float64(len(sorted)-1)))]
}
