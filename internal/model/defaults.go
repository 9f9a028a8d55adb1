package model

const (
	// Households is the number of German households used for the per-household metric.
	Households = 42_000_000
	// CostPerFTE converts annual cost into full-time-equivalent staff.
	CostPerFTE = 100_000
	// TopVendors is the size of the dominant implementer group a concentrated market converges to.
	TopVendors = 5
)

// PowerOnlyMultipliers is the neutral multiplier bundle used whenever gas is out of scope.
var PowerOnlyMultipliers = SectorMultipliers{
	Implementation: 1.0,
	Operations:     1.0,
	Update:         1.0,
	Friction:       1.0,
}

// PowerGasMultipliers is the baseline multiplier bundle for the combined scope.
var PowerGasMultipliers = SectorMultipliers{
	Implementation: 1.1,
	Operations:     1.25,
	Update:         1.3,
	Friction:       1.4,
}

var scopeConstants = map[Scope]ScopeConstants{
	ScopePower: {
		MeteringPoints:      52_000_000,
		MessageVolumeFactor: 1.0,
		ParticipantFactor:   1.0,
	},
	ScopePowerGas: {
		MeteringPoints:      72_000_000,
		MessageVolumeFactor: 1.375,
		ParticipantFactor:   1.136,
	},
}

// ConstantsFor returns the scale constants of s. Unknown scopes fall back to
// the combined scope, matching how decoded configurations are repaired.
func ConstantsFor(s Scope) ScopeConstants {
	if sc, ok := scopeConstants[s]; ok {
		return sc
	}
	return scopeConstants[ScopePowerGas]
}

// Defaults returns the documented baseline parameter set.
func Defaults() ParameterSet {
	return ParameterSet{
		Scope:           ScopePowerGas,
		Implementations: 75,
		Participants:    Participants{Large: 100, Medium: 400, Small: 1700},
		MessageVolume:   400_000_000,
		UpdatesPerYear:  1.5,
		ErrorRate:       0.001,
		Concentration:   0.6,
		Costs: Costs{
			ImplMaintenance:    800_000,
			OpsLarge:           400_000,
			OpsMedium:          100_000,
			OpsSmall:           25_000,
			PerMessage:         0.01,
			UpdateImpl:         250_000,
			UpdateLarge:        50_000,
			UpdateMedium:       15_000,
			UpdateSmall:        5_000,
			FrictionResolution: 150,
		},
		SectorMultipliers: PowerGasMultipliers,
	}
}
