package model

// Scope selects the regulatory domain the model is evaluated for.
type Scope string

const (
	// ScopePower covers electricity market communication only.
	ScopePower Scope = "strom"
	// ScopePowerGas adds the gas sector and activates the sector multipliers.
	ScopePowerGas Scope = "strom_gas"
)

// Valid reports whether s is one of the two known scopes.
func (s Scope) Valid() bool {
	return s == ScopePower || s == ScopePowerGas
}

// Participants counts market participants per size tier.
type Participants struct {
	Large  float64 `json:"large" yaml:"large"`
	Medium float64 `json:"medium" yaml:"medium"`
	Small  float64 `json:"small" yaml:"small"`
}

// Total returns the number of participants across all tiers.
func (p Participants) Total() float64 {
	return p.Large + p.Medium + p.Small
}

// Costs holds the unit cost rates in EUR.
type Costs struct {
	ImplMaintenance    float64 `json:"implMaintenance" yaml:"implMaintenance"`
	OpsLarge           float64 `json:"opsLarge" yaml:"opsLarge"`
	OpsMedium          float64 `json:"opsMedium" yaml:"opsMedium"`
	OpsSmall           float64 `json:"opsSmall" yaml:"opsSmall"`
	PerMessage         float64 `json:"perMessage" yaml:"perMessage"`
	UpdateImpl         float64 `json:"updateImpl" yaml:"updateImpl"`
	UpdateLarge        float64 `json:"updateLarge" yaml:"updateLarge"`
	UpdateMedium       float64 `json:"updateMedium" yaml:"updateMedium"`
	UpdateSmall        float64 `json:"updateSmall" yaml:"updateSmall"`
	FrictionResolution float64 `json:"frictionResolution" yaml:"frictionResolution"`
}

// SectorMultipliers scale each cost component when gas is in scope.
type SectorMultipliers struct {
	Implementation float64 `json:"implementation" yaml:"implementation"`
	Operations     float64 `json:"operations" yaml:"operations"`
	Update         float64 `json:"update" yaml:"update"`
	Friction       float64 `json:"friction" yaml:"friction"`
}

// ParameterSet is the complete input of the cost model.
//
// It is a plain value: assigning it copies every nested bundle, so engines
// can work on a copy without touching the caller's set.
type ParameterSet struct {
	Scope             Scope             `json:"scope" yaml:"scope"`
	Implementations   float64           `json:"implementations" yaml:"implementations"`
	Participants      Participants      `json:"participants" yaml:"participants"`
	MessageVolume     float64           `json:"messageVolume" yaml:"messageVolume"`
	UpdatesPerYear    float64           `json:"updatesPerYear" yaml:"updatesPerYear"`
	ErrorRate         float64           `json:"errorRate" yaml:"errorRate"`
	Concentration     float64           `json:"concentration" yaml:"concentration"`
	Costs             Costs             `json:"costs" yaml:"costs"`
	SectorMultipliers SectorMultipliers `json:"sectorMultipliers" yaml:"sectorMultipliers"`
}

// Components splits the total cost into its four drivers.
type Components struct {
	Platform   float64 `json:"platform"`
	Operations float64 `json:"operations"`
	SyncTax    float64 `json:"syncTax"`
	Friction   float64 `json:"friction"`
}

// Sum returns platform + operations + syncTax + friction.
func (c Components) Sum() float64 {
	return c.Platform + c.Operations + c.SyncTax + c.Friction
}

// Derived contains per-unit metrics computed from the total.
type Derived struct {
	PerMeteringPoint                  float64 `json:"perMeteringPoint"`
	PerHousehold                      float64 `json:"perHousehold"`
	PerMessage                        float64 `json:"perMessage"`
	PerParticipant                    float64 `json:"perParticipant"`
	ImpliedFTEs                       float64 `json:"impliedFTEs"`
	LongTailCostShare                 float64 `json:"longTailCostShare"`
	EffectiveParticipantsPerTopVendor float64 `json:"effectiveParticipantsPerTopVendor"`
}

// Output is the result of a single model evaluation.
type Output struct {
	Total                    float64    `json:"total"`
	Components               Components `json:"components"`
	Derived                  Derived    `json:"derived"`
	EffectiveImplementations float64    `json:"effectiveImplementations"`
}

// ScopeConstants are the scale denominators used for derived metrics.
type ScopeConstants struct {
	MeteringPoints      float64
	MessageVolumeFactor float64
	ParticipantFactor   float64
}
