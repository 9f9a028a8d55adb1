package montecarlo

import "github.com/Simplici0/mako-cost/internal/model"

// Group is a set of parameters driven by a shared cost factor. Within a
// group every pair of sampled uniforms has Gaussian-copula correlation Rho.
type Group struct {
	Name   string
	Params []model.Param
	Rho    float64
}

var groups = []Group{
	{
		Name: "operating-rates",
		Params: []model.Param{
			model.ParamOpsLarge,
			model.ParamOpsMedium,
			model.ParamOpsSmall,
			model.ParamPerMessage,
		},
		Rho: 0.6,
	},
	{
		Name: "update-rates",
		Params: []model.Param{
			model.ParamUpdateImpl,
			model.ParamUpdateLarge,
			model.ParamUpdateMedium,
			model.ParamUpdateSmall,
		},
		Rho: 0.6,
	},
	{
		Name: "sector-multipliers",
		Params: []model.Param{
			model.ParamSectorImplementation,
			model.ParamSectorOperations,
			model.ParamSectorUpdate,
			model.ParamSectorFriction,
		},
		Rho: 0.7,
	},
	{
		Name: "participant-tiers",
		Params: []model.Param{
			model.ParamParticipantsLarge,
			model.ParamParticipantsMedium,
			model.ParamParticipantsSmall,
		},
		Rho: 0.5,
	},
}

type membership struct {
	group int
	rho   float64
}

var groupIndex = buildGroupIndex()

func buildGroupIndex() map[model.Param]membership {
	idx := make(map[model.Param]membership)
	for gi, g := range groups {
		for _, p := range g.Params {
			idx[p] = membership{group: gi, rho: g.Rho}
		}
	}
	return idx
}

// Groups returns a copy of the fixed correlation groups.
func Groups() []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = Group{Name: g.Name, Params: append([]model.Param(nil), g.Params...), Rho: g.Rho}
	}
	return out
}
