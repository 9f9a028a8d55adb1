package model

// Calculate evaluates the cost model for p.
//
// Inputs are assumed to satisfy the range table. Degenerate values such as a
// zero message volume are not guarded and surface as Inf or NaN in the
// derived metrics.
func Calculate(p ParameterSet) Output {
	participants := p.Participants.Total()

	theta := PowerOnlyMultipliers
	if p.Scope == ScopePowerGas {
		theta = p.SectorMultipliers
	}
	sc := ConstantsFor(p.Scope)

	// A concentrated market maintains roughly TopVendors implementations; the
	// long tail (1-κ) still maintains its own.
	kappa := p.Concentration
	effectiveImpl := kappa*TopVendors + (1-kappa)*p.Implementations

	platform := effectiveImpl * p.Costs.ImplMaintenance * theta.Implementation

	operations := (p.Participants.Large*p.Costs.OpsLarge +
		p.Participants.Medium*p.Costs.OpsMedium +
		p.Participants.Small*p.Costs.OpsSmall +
		p.MessageVolume*p.Costs.PerMessage) * theta.Operations

	// Every implementation takes part in each release, whatever its market share.
	syncTax := p.UpdatesPerYear *
		(p.Implementations*p.Costs.UpdateImpl +
			p.Participants.Large*p.Costs.UpdateLarge +
			p.Participants.Medium*p.Costs.UpdateMedium +
			p.Participants.Small*p.Costs.UpdateSmall) * theta.Update

	friction := p.MessageVolume * p.ErrorRate * p.Costs.FrictionResolution * theta.Friction

	components := Components{
		Platform:   platform,
		Operations: operations,
		SyncTax:    syncTax,
		Friction:   friction,
	}
	total := components.Sum()

	effectiveVolume := p.MessageVolume * sc.MessageVolumeFactor
	effectiveParticipants := participants * sc.ParticipantFactor

	return Output{
		Total:      total,
		Components: components,
		Derived: Derived{
			PerMeteringPoint:                  total / sc.MeteringPoints,
			PerHousehold:                      total / Households,
			PerMessage:                        total / effectiveVolume,
			PerParticipant:                    total / effectiveParticipants,
			ImpliedFTEs:                       total / CostPerFTE,
			LongTailCostShare:                 (1 - kappa) * p.Implementations * p.Costs.ImplMaintenance,
			EffectiveParticipantsPerTopVendor: kappa * participants / TopVendors,
		},
		EffectiveImplementations: effectiveImpl,
	}
}
