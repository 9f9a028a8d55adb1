package montecarlo

import "math"

// Closed-form approximations of the standard normal distribution.
//
// Percentiles produced by Simulate depend on the error profile of these two
// functions, so they are fixed rather than delegated to an exact erf:
//
//   - normalCDF uses Abramowitz & Stegun 7.1.26 for erf (|error| < 1.5e-7)
//     evaluated at x/√2.
//   - normalQuantile uses the Hastings rational approximation of
//     Abramowitz & Stegun 26.2.23 (|error| < 4.5e-4), the tail formula
//     family also used by Beasley-Springer-Moro.
//
// normalCDF(normalQuantile(u)) stays within 0.01 of u on [0.05, 0.95].

const (
	asA1 = 0.254829592
	asA2 = -0.284496736
	asA3 = 1.421413741
	asA4 = -1.453152027
	asA5 = 1.061405429
	asP  = 0.3275911

	hC0 = 2.515517
	hC1 = 0.802853
	hC2 = 0.010328
	hD1 = 1.432788
	hD2 = 0.189269
	hD3 = 0.001308

	// quantileEpsilon keeps normalQuantile finite at 0 and 1.
	quantileEpsilon = 1e-10
)

func normalCDF(x float64) float64 {
	sign := 1.0
	if x < 0 {
		sign = -1
	}
	z := math.Abs(x) / math.Sqrt2
	t := 1 / (1 + asP*z)
	y := 1 - ((((asA5*t+asA4)*t+asA3)*t+asA2)*t+asA1)*t*math.Exp(-z*z)
	return 0.5 * (1 + sign*y)
}

func normalQuantile(u float64) float64 {
	p := math.Max(quantileEpsilon, math.Min(1-quantileEpsilon, u))
	t := p
	if p >= 0.5 {
		t = 1 - p
	}
	s := math.Sqrt(-2 * math.Log(t))
	r := s - (hC0+hC1*s+hC2*s*s)/(1+hD1*s+hD2*s*s+hD3*s*s*s)
	if p < 0.5 {
		return -r
	}
	return r
}

// correlatedUniform mixes a group-wide uniform with an independent one
// through a Gaussian copula. With loading √ρ on the shared factor, any two
// parameters of the group correlate with ρ while each keeps its own
// uniform marginal.
func correlatedUniform(shared, independent, rho float64) float64 {
	z := math.Sqrt(rho)*normalQuantile(shared) + math.Sqrt(1-rho)*normalQuantile(independent)
	return normalCDF(z)
}
