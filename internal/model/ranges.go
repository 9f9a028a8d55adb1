package model

import "math"

// Param identifies a single tunable field of a ParameterSet.
type Param int

const (
	ParamImplementations Param = iota
	ParamParticipantsLarge
	ParamParticipantsMedium
	ParamParticipantsSmall
	ParamMessageVolume
	ParamUpdatesPerYear
	ParamErrorRate
	ParamConcentration
	ParamImplMaintenance
	ParamOpsLarge
	ParamOpsMedium
	ParamOpsSmall
	ParamPerMessage
	ParamUpdateImpl
	ParamUpdateLarge
	ParamUpdateMedium
	ParamUpdateSmall
	ParamFrictionResolution
	ParamSectorImplementation
	ParamSectorOperations
	ParamSectorUpdate
	ParamSectorFriction

	numParams
)

// Range describes the valid interval of a parameter together with typed
// access to the field it controls.
type Range struct {
	Param Param
	// Key is the dotted field path used by serialized configurations.
	Key   string
	Label string
	Min   float64
	Max   float64
	Step  float64
	// Log marks parameters spanning orders of magnitude; samplers work in log space.
	Log bool

	get func(*ParameterSet) float64
	set func(*ParameterSet, float64)
}

// Get reads the field from p.
func (r Range) Get(p ParameterSet) float64 {
	return r.get(&p)
}

// Set writes v into the field of p.
func (r Range) Set(p *ParameterSet, v float64) {
	r.set(p, v)
}

// Clamp limits v to [Min, Max].
func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

// IsSectorMultiplier reports whether the parameter only has an effect in the
// combined power and gas scope.
func (r Range) IsSectorMultiplier() bool {
	return r.Param.IsSectorMultiplier()
}

// IsSectorMultiplier reports whether p is one of the four sector multipliers.
func (p Param) IsSectorMultiplier() bool {
	return p >= ParamSectorImplementation && p <= ParamSectorFriction
}

// String returns the dotted field path of p.
func (p Param) String() string {
	if p < 0 || p >= numParams {
		return "unknown"
	}
	return ranges[p].Key
}

var ranges = [numParams]Range{
	{
		Param: ParamImplementations, Key: "implementations", Label: "Implementierungen (I)",
		Min: 30, Max: 150, Step: 1,
		get: func(p *ParameterSet) float64 { return p.Implementations },
		set: func(p *ParameterSet, v float64) { p.Implementations = v },
	},
	{
		Param: ParamParticipantsLarge, Key: "participants.large", Label: "Große Teilnehmer",
		Min: 50, Max: 150, Step: 5,
		get: func(p *ParameterSet) float64 { return p.Participants.Large },
		set: func(p *ParameterSet, v float64) { p.Participants.Large = v },
	},
	{
		Param: ParamParticipantsMedium, Key: "participants.medium", Label: "Mittlere Teilnehmer",
		Min: 200, Max: 600, Step: 10,
		get: func(p *ParameterSet) float64 { return p.Participants.Medium },
		set: func(p *ParameterSet, v float64) { p.Participants.Medium = v },
	},
	{
		Param: ParamParticipantsSmall, Key: "participants.small", Label: "Kleine Teilnehmer",
		Min: 1000, Max: 2500, Step: 50,
		get: func(p *ParameterSet) float64 { return p.Participants.Small },
		set: func(p *ParameterSet, v float64) { p.Participants.Small = v },
	},
	{
		Param: ParamMessageVolume, Key: "messageVolume", Label: "Transaktionen (V)",
		Min: 200e6, Max: 800e6, Step: 10_000_000, Log: true,
		get: func(p *ParameterSet) float64 { return p.MessageVolume },
		set: func(p *ParameterSet, v float64) { p.MessageVolume = v },
	},
	{
		Param: ParamUpdatesPerYear, Key: "updatesPerYear", Label: "Updates/Jahr (U)",
		Min: 0.5, Max: 3, Step: 0.1,
		get: func(p *ParameterSet) float64 { return p.UpdatesPerYear },
		set: func(p *ParameterSet, v float64) { p.UpdatesPerYear = v },
	},
	{
		Param: ParamErrorRate, Key: "errorRate", Label: "Fehlerrate (ε)",
		Min: 0.0001, Max: 0.01, Step: 0.0001, Log: true,
		get: func(p *ParameterSet) float64 { return p.ErrorRate },
		set: func(p *ParameterSet, v float64) { p.ErrorRate = v },
	},
	{
		Param: ParamConcentration, Key: "concentration", Label: "Konzentration (κ)",
		Min: 0.3, Max: 0.9, Step: 0.01,
		get: func(p *ParameterSet) float64 { return p.Concentration },
		set: func(p *ParameterSet, v float64) { p.Concentration = v },
	},
	{
		Param: ParamImplMaintenance, Key: "costs.implMaintenance", Label: "Impl. Wartung",
		Min: 400_000, Max: 1_500_000, Step: 50_000,
		get: func(p *ParameterSet) float64 { return p.Costs.ImplMaintenance },
		set: func(p *ParameterSet, v float64) { p.Costs.ImplMaintenance = v },
	},
	{
		Param: ParamOpsLarge, Key: "costs.opsLarge", Label: "Betrieb Groß",
		Min: 200_000, Max: 800_000, Step: 10_000,
		get: func(p *ParameterSet) float64 { return p.Costs.OpsLarge },
		set: func(p *ParameterSet, v float64) { p.Costs.OpsLarge = v },
	},
	{
		Param: ParamOpsMedium, Key: "costs.opsMedium", Label: "Betrieb Mittel",
		Min: 50_000, Max: 200_000, Step: 5_000,
		get: func(p *ParameterSet) float64 { return p.Costs.OpsMedium },
		set: func(p *ParameterSet, v float64) { p.Costs.OpsMedium = v },
	},
	{
		Param: ParamOpsSmall, Key: "costs.opsSmall", Label: "Betrieb Klein",
		Min: 10_000, Max: 50_000, Step: 1_000,
		get: func(p *ParameterSet) float64 { return p.Costs.OpsSmall },
		set: func(p *ParameterSet, v float64) { p.Costs.OpsSmall = v },
	},
	{
		Param: ParamPerMessage, Key: "costs.perMessage", Label: "Pro Transaktion",
		Min: 0.005, Max: 0.05, Step: 0.001,
		get: func(p *ParameterSet) float64 { return p.Costs.PerMessage },
		set: func(p *ParameterSet, v float64) { p.Costs.PerMessage = v },
	},
	{
		Param: ParamUpdateImpl, Key: "costs.updateImpl", Label: "Update/Impl",
		Min: 100_000, Max: 500_000, Step: 10_000,
		get: func(p *ParameterSet) float64 { return p.Costs.UpdateImpl },
		set: func(p *ParameterSet, v float64) { p.Costs.UpdateImpl = v },
	},
	{
		Param: ParamUpdateLarge, Key: "costs.updateLarge", Label: "Update Groß",
		Min: 20_000, Max: 100_000, Step: 5_000,
		get: func(p *ParameterSet) float64 { return p.Costs.UpdateLarge },
		set: func(p *ParameterSet, v float64) { p.Costs.UpdateLarge = v },
	},
	{
		Param: ParamUpdateMedium, Key: "costs.updateMedium", Label: "Update Mittel",
		Min: 5_000, Max: 30_000, Step: 1_000,
		get: func(p *ParameterSet) float64 { return p.Costs.UpdateMedium },
		set: func(p *ParameterSet, v float64) { p.Costs.UpdateMedium = v },
	},
	{
		Param: ParamUpdateSmall, Key: "costs.updateSmall", Label: "Update Klein",
		Min: 2_000, Max: 15_000, Step: 500,
		get: func(p *ParameterSet) float64 { return p.Costs.UpdateSmall },
		set: func(p *ParameterSet, v float64) { p.Costs.UpdateSmall = v },
	},
	{
		Param: ParamFrictionResolution, Key: "costs.frictionResolution", Label: "Klärfall-Kosten",
		Min: 50, Max: 500, Step: 10,
		get: func(p *ParameterSet) float64 { return p.Costs.FrictionResolution },
		set: func(p *ParameterSet, v float64) { p.Costs.FrictionResolution = v },
	},
	{
		Param: ParamSectorImplementation, Key: "sectorMultipliers.implementation", Label: "θ Implementierung",
		Min: 1.0, Max: 1.3, Step: 0.01,
		get: func(p *ParameterSet) float64 { return p.SectorMultipliers.Implementation },
		set: func(p *ParameterSet, v float64) { p.SectorMultipliers.Implementation = v },
	},
	{
		Param: ParamSectorOperations, Key: "sectorMultipliers.operations", Label: "θ Betrieb",
		Min: 1.0, Max: 1.5, Step: 0.01,
		get: func(p *ParameterSet) float64 { return p.SectorMultipliers.Operations },
		set: func(p *ParameterSet, v float64) { p.SectorMultipliers.Operations = v },
	},
	{
		Param: ParamSectorUpdate, Key: "sectorMultipliers.update", Label: "θ Updates",
		Min: 1.0, Max: 1.5, Step: 0.01,
		get: func(p *ParameterSet) float64 { return p.SectorMultipliers.Update },
		set: func(p *ParameterSet, v float64) { p.SectorMultipliers.Update = v },
	},
	{
		Param: ParamSectorFriction, Key: "sectorMultipliers.friction", Label: "θ Reibung",
		Min: 1.0, Max: 1.6, Step: 0.01,
		get: func(p *ParameterSet) float64 { return p.SectorMultipliers.Friction },
		set: func(p *ParameterSet, v float64) { p.SectorMultipliers.Friction = v },
	},
}

// Ranges returns the parameter range table in declaration order.
// The returned slice is a copy; callers may not alter the shared table.
func Ranges() []Range {
	out := make([]Range, len(ranges))
	copy(out, ranges[:])
	return out
}

// RangeOf returns the range entry for p.
func RangeOf(p Param) (Range, bool) {
	if p < 0 || p >= numParams {
		return Range{}, false
	}
	return ranges[p], true
}

// Lookup finds a range entry by its dotted key.
func Lookup(key string) (Range, bool) {
	for _, r := range ranges {
		if r.Key == key {
			return r, true
		}
	}
	return Range{}, false
}

// ActiveRanges returns the entries that influence the model under scope s.
// Sector multipliers are dropped for the power-only scope.
func ActiveRanges(s Scope) []Range {
	out := make([]Range, 0, len(ranges))
	for _, r := range ranges {
		if s == ScopePower && r.IsSectorMultiplier() {
			continue
		}
		out = append(out, r)
	}
	return out
}
