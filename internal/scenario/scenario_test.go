package scenario

import (
	"testing"

	"github.com/Simplici0/mako-cost/internal/model"
)

func TestApply_OverridesOnlyNamedFields(t *testing.T) {
	p, ok := PresetByID("consolidation")
	if !ok {
		t.Fatalf("consolidation preset missing")
	}

	base := model.Defaults()
	got := Apply(base, p.Overrides)

	if got.Implementations != 30 || got.Concentration != 0.8 {
		t.Fatalf("overrides not applied: %+v", got)
	}
	want := base
	want.Implementations = 30
	want.Concentration = 0.8
	if got != want {
		t.Fatalf("unexpected fields changed: %+v", got)
	}
	if base != model.Defaults() {
		t.Fatalf("base mutated")
	}
}

func TestCompare_AllPresetsReduceBaselineCost(t *testing.T) {
	comparisons := Compare(model.Defaults(), Presets())
	if len(comparisons) != 3 {
		t.Fatalf("expected 3 comparisons, got %d", len(comparisons))
	}

	baseline := model.Calculate(model.Defaults()).Total
	for _, c := range comparisons {
		if c.Delta >= 0 {
			t.Fatalf("%s: delta %v, want negative", c.Preset.ID, c.Delta)
		}
		if c.Output.Total-baseline != c.Delta {
			t.Fatalf("%s: delta %v inconsistent with totals", c.Preset.ID, c.Delta)
		}
	}
}

func TestPresets_ReturnsCopy(t *testing.T) {
	ps := Presets()
	ps[0].ID = "changed"
	if Presets()[0].ID != "consolidation" {
		t.Fatalf("Presets exposed the shared slice")
	}
	if _, ok := PresetByID("unknown"); ok {
		t.Fatalf("unknown preset found")
	}
}
