package montecarlo

import (
	"math"

	"github.com/Simplici0/mako-cost/internal/model"
)

// source is a 32-bit mulberry32 generator. The same seed always yields the
// same sequence, which keeps simulation results reproducible and cacheable.
type source struct {
	state uint32
}

func newSource(seed uint32) *source {
	return &source{state: seed}
}

// Float64 returns a uniform value in [0, 1).
func (s *source) Float64() float64 {
	s.state += 0x6d2b79f5
	t := s.state
	t = (t ^ t>>15) * (1 | t)
	t = (t + (t^t>>7)*(61|t)) ^ t
	return float64(t^t>>14) / 4294967296
}

// Seed derives the generator seed from the key numeric inputs and the
// iteration count. No clock or external entropy is involved.
func Seed(p model.ParameterSet, iterations int) uint32 {
	hash := toInt32(p.Implementations*97 +
		p.MessageVolume*13 +
		p.Participants.Large*37 +
		p.ErrorRate*1e6 +
		p.Concentration*53)
	return uint32(toInt32(float64(hash) + float64(iterations)))
}

// toInt32 truncates x and wraps it into the signed 32-bit range.
// Non-finite values map to zero.
func toInt32(x float64) int32 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	m := math.Mod(math.Trunc(x), 1<<32)
	return int32(uint32(int64(m)))
}
