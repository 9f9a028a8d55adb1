package montecarlo

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"

	"github.com/Simplici0/mako-cost/internal/model"
)

func TestNormalCDF_KnownValues(t *testing.T) {
	tests := []struct {
		x    float64
		want float64
		tol  float64
	}{
		{0, 0.5, 1e-4},
		{1, 0.8413, 1e-3},
		{-1, 0.1587, 1e-3},
		{2, 0.9772, 1e-3},
		{-2, 0.0228, 1e-3},
	}
	for _, tc := range tests {
		if got := normalCDF(tc.x); math.Abs(got-tc.want) > tc.tol {
			t.Fatalf("normalCDF(%v) = %v, want %v", tc.x, got, tc.want)
		}
	}
}

func TestNormalQuantile_KnownValues(t *testing.T) {
	tests := []struct {
		u    float64
		want float64
		tol  float64
	}{
		{0.5, 0, 1e-2},
		{0.8413, 1, 1e-2},
		{0.1587, -1, 1e-2},
		{0.9772, 2, 5e-2},
	}
	for _, tc := range tests {
		if got := normalQuantile(tc.u); math.Abs(got-tc.want) > tc.tol {
			t.Fatalf("normalQuantile(%v) = %v, want %v", tc.u, got, tc.want)
		}
	}
}

func TestNormal_RoundTrip(t *testing.T) {
	for _, u := range []float64{0.05, 0.1, 0.25, 0.5, 0.75, 0.9, 0.95} {
		if got := normalCDF(normalQuantile(u)); math.Abs(got-u) > 0.01 {
			t.Fatalf("round trip of %v gave %v", u, got)
		}
	}
}

func TestNormalQuantile_FiniteAtBounds(t *testing.T) {
	for _, u := range []float64{0, 1} {
		if v := normalQuantile(u); math.IsInf(v, 0) || math.IsNaN(v) {
			t.Fatalf("normalQuantile(%v) = %v", u, v)
		}
	}
}

func TestCorrelatedUniform_PairwiseCorrelation(t *testing.T) {
	src := newSource(42)
	const n = 20_000
	const rho = 0.6

	a := make([]float64, n)
	b := make([]float64, n)
	for i := 0; i < n; i++ {
		shared := src.Float64()
		a[i] = normalQuantile(correlatedUniform(shared, src.Float64(), rho))
		b[i] = normalQuantile(correlatedUniform(shared, src.Float64(), rho))
	}

	if got := stat.Correlation(a, b, nil); math.Abs(got-rho) > 0.05 {
		t.Fatalf("correlation = %v, want about %v", got, rho)
	}
}

func TestCorrelatedUniform_StaysInUnitInterval(t *testing.T) {
	src := newSource(7)
	for i := 0; i < 10_000; i++ {
		u := correlatedUniform(src.Float64(), src.Float64(), 0.7)
		if u < 0 || u > 1 {
			t.Fatalf("u = %v outside [0, 1]", u)
		}
	}
}

func TestSource_DeterministicAndUniform(t *testing.T) {
	a := newSource(123)
	b := newSource(123)
	sum := 0.0
	for i := 0; i < 10_000; i++ {
		x, y := a.Float64(), b.Float64()
		if x != y {
			t.Fatalf("sequences diverged at %d", i)
		}
		if x < 0 || x >= 1 {
			t.Fatalf("value %v outside [0, 1)", x)
		}
		sum += x
	}
	if mean := sum / 10_000; math.Abs(mean-0.5) > 0.02 {
		t.Fatalf("mean = %v, want about 0.5", mean)
	}
	if newSource(1).Float64() == newSource(2).Float64() {
		t.Fatalf("different seeds produced the same first value")
	}
}

func TestToInt32_Wraps(t *testing.T) {
	tests := []struct {
		in   float64
		want int32
	}{
		{5_200_012_006.8, 905_044_710},
		{-5.7, -5},
		{1 << 31, math.MinInt32},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tc := range tests {
		if got := toInt32(tc.in); got != tc.want {
			t.Fatalf("toInt32(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestSeed_DependsOnInputsAndIterations(t *testing.T) {
	p := model.Defaults()
	if Seed(p, 100) != Seed(p, 100) {
		t.Fatalf("seed is not deterministic")
	}
	if Seed(p, 100) == Seed(p, 101) {
		t.Fatalf("seed ignores iteration count")
	}
	q := p
	q.Implementations = 80
	if Seed(p, 100) == Seed(q, 100) {
		t.Fatalf("seed ignores implementations")
	}
}

func TestSampler_TriangularBounds(t *testing.T) {
	for _, r := range model.Ranges() {
		mid := (r.Min + r.Max) / 2
		s := newSampler(r, mid)

		if got := s.draw(0); math.Abs(got-r.Min) > 1e-9*r.Max {
			t.Fatalf("%s: draw(0) = %v, want %v", r.Key, got, r.Min)
		}
		if got := s.draw(1); math.Abs(got-r.Max) > 1e-9*r.Max {
			t.Fatalf("%s: draw(1) = %v, want %v", r.Key, got, r.Max)
		}
		for _, u := range []float64{0.1, 0.5, 0.9} {
			if got := s.draw(u); got < r.Min || got > r.Max {
				t.Fatalf("%s: draw(%v) = %v outside range", r.Key, u, got)
			}
		}
	}
}

func TestSampler_ModeIsClamped(t *testing.T) {
	r, _ := model.RangeOf(model.ParamImplementations)
	s := newSampler(r, 1_000)
	// With mode at max the whole mass lies left of it; u below 1 never reaches max.
	if got := s.draw(0.5); got >= r.Max {
		t.Fatalf("draw(0.5) = %v, want below %v", got, r.Max)
	}
	if got := s.draw(1); math.Abs(got-r.Max) > 1e-9 {
		t.Fatalf("draw(1) = %v, want %v", got, r.Max)
	}
}

func TestSimulate_Structure(t *testing.T) {
	res := Simulate(model.Defaults(), 100)

	if len(res.Samples) != 100 {
		t.Fatalf("expected 100 samples, got %d", len(res.Samples))
	}
	if res.Iterations != 100 {
		t.Fatalf("iterations = %d", res.Iterations)
	}
	if res.Mean <= 0 || res.StdDev <= 0 {
		t.Fatalf("mean=%v stdDev=%v, want both positive", res.Mean, res.StdDev)
	}
}

func TestSimulate_SamplesSorted(t *testing.T) {
	res := Simulate(model.Defaults(), 200)
	for i := 1; i < len(res.Samples); i++ {
		if res.Samples[i] < res.Samples[i-1] {
			t.Fatalf("samples not sorted at %d", i)
		}
	}
}

func TestSimulate_PercentilesMonotonic(t *testing.T) {
	res := Simulate(model.Defaults(), 500)
	pc := res.Percentiles
	if !(pc.P5 <= pc.P25 && pc.P25 <= pc.P50 && pc.P50 <= pc.P75 && pc.P75 <= pc.P95) {
		t.Fatalf("percentiles not monotonic: %+v", pc)
	}
	if pc.P50 != res.Samples[int(math.Floor(0.5*499))] {
		t.Fatalf("P50 = %v is not the nearest-rank sample", pc.P50)
	}
}

func TestSimulate_Deterministic(t *testing.T) {
	a := Simulate(model.Defaults(), 100)
	b := Simulate(model.Defaults(), 100)
	if a.Mean != b.Mean || a.StdDev != b.StdDev {
		t.Fatalf("runs differ: %v/%v vs %v/%v", a.Mean, a.StdDev, b.Mean, b.StdDev)
	}
	for i := range a.Samples {
		if a.Samples[i] != b.Samples[i] {
			t.Fatalf("sample %d differs", i)
		}
	}
}

func TestSimulate_ComponentBreakdownReconciles(t *testing.T) {
	res := Simulate(model.Defaults(), 500)
	sum := res.ComponentBreakdown.Sum()
	if rel := math.Abs(sum-res.Mean) / res.Mean; rel >= 0.01 {
		t.Fatalf("component sum %v vs mean %v (rel %v)", sum, res.Mean, rel)
	}
}

func TestSimulate_PopulationStdDev(t *testing.T) {
	res := Simulate(model.Defaults(), 300)
	mean := 0.0
	for _, v := range res.Samples {
		mean += v
	}
	mean /= float64(len(res.Samples))
	variance := 0.0
	for _, v := range res.Samples {
		variance += (v - mean) * (v - mean)
	}
	want := math.Sqrt(variance / float64(len(res.Samples)))
	if math.Abs(res.StdDev-want)/want > 1e-9 {
		t.Fatalf("stdDev = %v, want population %v", res.StdDev, want)
	}
}

func TestSimulate_SamplesWithinModelBounds(t *testing.T) {
	p := model.Defaults()
	low, high := p, p
	for _, r := range model.Ranges() {
		r.Set(&low, r.Min)
		r.Set(&high, r.Max)
	}
	// Concentration lowers cost, so the extremes are bounded by swapping it.
	rc, _ := model.RangeOf(model.ParamConcentration)
	rc.Set(&low, rc.Max)
	rc.Set(&high, rc.Min)

	lo, hi := model.Calculate(low).Total, model.Calculate(high).Total
	res := Simulate(p, 500)
	if res.Samples[0] < lo || res.Samples[len(res.Samples)-1] > hi {
		t.Fatalf("samples [%v, %v] escape model bounds [%v, %v]",
			res.Samples[0], res.Samples[len(res.Samples)-1], lo, hi)
	}
}

func TestSimulate_PowerScopeIgnoresMultipliers(t *testing.T) {
	a := model.Defaults()
	a.Scope = model.ScopePower
	b := a
	b.SectorMultipliers = model.SectorMultipliers{Implementation: 1.3, Operations: 1.5, Update: 1.5, Friction: 1.6}

	ra, rb := Simulate(a, 200), Simulate(b, 200)
	if ra.Mean != rb.Mean || ra.StdDev != rb.StdDev {
		t.Fatalf("stored multipliers influenced power-only simulation")
	}
}

func TestSimulate_DoesNotMutateInput(t *testing.T) {
	p := model.Defaults()
	_ = Simulate(p, 50)
	if p != model.Defaults() {
		t.Fatalf("input mutated: %+v", p)
	}
}

func TestSimulate_NonPositiveIterations(t *testing.T) {
	res := Simulate(model.Defaults(), 0)
	if len(res.Samples) != 0 || res.Mean != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestHistogram(t *testing.T) {
	samples := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	bins := Histogram(samples, 5)

	if len(bins) != 5 {
		t.Fatalf("expected 5 bins, got %d", len(bins))
	}
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != len(samples) {
		t.Fatalf("bins hold %d samples, want %d", total, len(samples))
	}
	if bins[4].Count != 3 {
		t.Fatalf("last bin count = %d, want 3 (8, 9, 10)", bins[4].Count)
	}
	if bins[0].From != 0 || bins[4].To != 10 {
		t.Fatalf("bin edges %v..%v, want 0..10", bins[0].From, bins[4].To)
	}
}

func TestHistogram_Degenerate(t *testing.T) {
	if got := Histogram(nil, 10); len(got) != 0 {
		t.Fatalf("expected no bins for empty input, got %d", len(got))
	}
	got := Histogram([]float64{4, 4, 4}, 10)
	if len(got) != 1 || got[0].Count != 3 {
		t.Fatalf("expected one bin with 3 samples, got %+v", got)
	}
}

func TestGroups_CoverExpectedParams(t *testing.T) {
	gs := Groups()
	if len(gs) != 4 {
		t.Fatalf("expected 4 groups, got %d", len(gs))
	}
	seen := map[model.Param]bool{}
	for _, g := range gs {
		if g.Rho <= 0 || g.Rho >= 1 {
			t.Fatalf("group %s has rho %v", g.Name, g.Rho)
		}
		for _, p := range g.Params {
			if seen[p] {
				t.Fatalf("%v belongs to more than one group", p)
			}
			seen[p] = true
		}
	}
	if seen[model.ParamImplementations] || seen[model.ParamConcentration] {
		t.Fatalf("independent parameters must not be grouped")
	}
}
