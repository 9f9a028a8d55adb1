package codec

import (
	"math"

	"github.com/Simplici0/mako-cost/internal/model"
)

// Partial is a parameter set in which every field may be absent. It is the
// shape of persisted, URL-encoded, and user-edited configurations before
// defaults are filled in.
type Partial struct {
	Scope             *model.Scope              `json:"scope,omitempty" yaml:"scope,omitempty"`
	Implementations   *float64                  `json:"implementations,omitempty" yaml:"implementations,omitempty"`
	Participants      *PartialParticipants      `json:"participants,omitempty" yaml:"participants,omitempty"`
	MessageVolume     *float64                  `json:"messageVolume,omitempty" yaml:"messageVolume,omitempty"`
	UpdatesPerYear    *float64                  `json:"updatesPerYear,omitempty" yaml:"updatesPerYear,omitempty"`
	ErrorRate         *float64                  `json:"errorRate,omitempty" yaml:"errorRate,omitempty"`
	Concentration     *float64                  `json:"concentration,omitempty" yaml:"concentration,omitempty"`
	Costs             *PartialCosts             `json:"costs,omitempty" yaml:"costs,omitempty"`
	SectorMultipliers *PartialSectorMultipliers `json:"sectorMultipliers,omitempty" yaml:"sectorMultipliers,omitempty"`
}

type PartialParticipants struct {
	Large  *float64 `json:"large,omitempty" yaml:"large,omitempty"`
	Medium *float64 `json:"medium,omitempty" yaml:"medium,omitempty"`
	Small  *float64 `json:"small,omitempty" yaml:"small,omitempty"`
}

type PartialCosts struct {
	ImplMaintenance    *float64 `json:"implMaintenance,omitempty" yaml:"implMaintenance,omitempty"`
	OpsLarge           *float64 `json:"opsLarge,omitempty" yaml:"opsLarge,omitempty"`
	OpsMedium          *float64 `json:"opsMedium,omitempty" yaml:"opsMedium,omitempty"`
	OpsSmall           *float64 `json:"opsSmall,omitempty" yaml:"opsSmall,omitempty"`
	PerMessage         *float64 `json:"perMessage,omitempty" yaml:"perMessage,omitempty"`
	UpdateImpl         *float64 `json:"updateImpl,omitempty" yaml:"updateImpl,omitempty"`
	UpdateLarge        *float64 `json:"updateLarge,omitempty" yaml:"updateLarge,omitempty"`
	UpdateMedium       *float64 `json:"updateMedium,omitempty" yaml:"updateMedium,omitempty"`
	UpdateSmall        *float64 `json:"updateSmall,omitempty" yaml:"updateSmall,omitempty"`
	FrictionResolution *float64 `json:"frictionResolution,omitempty" yaml:"frictionResolution,omitempty"`
}

type PartialSectorMultipliers struct {
	Implementation *float64 `json:"implementation,omitempty" yaml:"implementation,omitempty"`
	Operations     *float64 `json:"operations,omitempty" yaml:"operations,omitempty"`
	Update         *float64 `json:"update,omitempty" yaml:"update,omitempty"`
	Friction       *float64 `json:"friction,omitempty" yaml:"friction,omitempty"`
}

// Overlay writes every present field of o onto base and returns the result.
// base itself is not modified. Scope values that are not recognised are
// ignored.
func Overlay(base model.ParameterSet, o Partial) model.ParameterSet {
	out := base

	if o.Scope != nil && o.Scope.Valid() {
		out.Scope = *o.Scope
	}
	setIf(&out.Implementations, o.Implementations)
	setIf(&out.MessageVolume, o.MessageVolume)
	setIf(&out.UpdatesPerYear, o.UpdatesPerYear)
	setIf(&out.ErrorRate, o.ErrorRate)
	setIf(&out.Concentration, o.Concentration)

	if pp := o.Participants; pp != nil {
		setIf(&out.Participants.Large, pp.Large)
		setIf(&out.Participants.Medium, pp.Medium)
		setIf(&out.Participants.Small, pp.Small)
	}
	if c := o.Costs; c != nil {
		setIf(&out.Costs.ImplMaintenance, c.ImplMaintenance)
		setIf(&out.Costs.OpsLarge, c.OpsLarge)
		setIf(&out.Costs.OpsMedium, c.OpsMedium)
		setIf(&out.Costs.OpsSmall, c.OpsSmall)
		setIf(&out.Costs.PerMessage, c.PerMessage)
		setIf(&out.Costs.UpdateImpl, c.UpdateImpl)
		setIf(&out.Costs.UpdateLarge, c.UpdateLarge)
		setIf(&out.Costs.UpdateMedium, c.UpdateMedium)
		setIf(&out.Costs.UpdateSmall, c.UpdateSmall)
		setIf(&out.Costs.FrictionResolution, c.FrictionResolution)
	}
	if sm := o.SectorMultipliers; sm != nil {
		setIf(&out.SectorMultipliers.Implementation, sm.Implementation)
		setIf(&out.SectorMultipliers.Operations, sm.Operations)
		setIf(&out.SectorMultipliers.Update, sm.Update)
		setIf(&out.SectorMultipliers.Friction, sm.Friction)
	}

	return out
}

func setIf(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// Merge fills every absent field of o from the baseline parameter set.
func Merge(o Partial) model.ParameterSet {
	return Overlay(model.Defaults(), o)
}

// Clamp limits every ranged field of p to its declared bounds and repairs an
// unknown scope. A NaN field takes its baseline value. Applying Clamp twice
// gives the same result as applying it once.
func Clamp(p model.ParameterSet) model.ParameterSet {
	base := model.Defaults()
	out := p
	if !out.Scope.Valid() {
		out.Scope = base.Scope
	}
	for _, r := range model.Ranges() {
		v := r.Get(out)
		if math.IsNaN(v) {
			v = r.Get(base)
		}
		r.Set(&out, r.Clamp(v))
	}
	return out
}

// Normalize merges o with the baseline and clamps the result. This is the
// only form in which external configurations reach the model.
func Normalize(o Partial) model.ParameterSet {
	return Clamp(Merge(o))
}

// FromParameterSet returns a Partial with every field of p present.
func FromParameterSet(p model.ParameterSet) Partial {
	scope := p.Scope
	return Partial{
		Scope:           &scope,
		Implementations: ptr(p.Implementations),
		Participants: &PartialParticipants{
			Large:  ptr(p.Participants.Large),
			Medium: ptr(p.Participants.Medium),
			Small:  ptr(p.Participants.Small),
		},
		MessageVolume:  ptr(p.MessageVolume),
		UpdatesPerYear: ptr(p.UpdatesPerYear),
		ErrorRate:      ptr(p.ErrorRate),
		Concentration:  ptr(p.Concentration),
		Costs: &PartialCosts{
			ImplMaintenance:    ptr(p.Costs.ImplMaintenance),
			OpsLarge:           ptr(p.Costs.OpsLarge),
			OpsMedium:          ptr(p.Costs.OpsMedium),
			OpsSmall:           ptr(p.Costs.OpsSmall),
			PerMessage:         ptr(p.Costs.PerMessage),
			UpdateImpl:         ptr(p.Costs.UpdateImpl),
			UpdateLarge:        ptr(p.Costs.UpdateLarge),
			UpdateMedium:       ptr(p.Costs.UpdateMedium),
			UpdateSmall:        ptr(p.Costs.UpdateSmall),
			FrictionResolution: ptr(p.Costs.FrictionResolution),
		},
		SectorMultipliers: &PartialSectorMultipliers{
			Implementation: ptr(p.SectorMultipliers.Implementation),
			Operations:     ptr(p.SectorMultipliers.Operations),
			Update:         ptr(p.SectorMultipliers.Update),
			Friction:       ptr(p.SectorMultipliers.Friction),
		},
	}
}

func ptr(v float64) *float64 {
	return &v
}
