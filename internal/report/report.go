// Package report assembles the plain-text summary shared by the HTTP server
// and the command line tool.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Simplici0/mako-cost/internal/format"
	"github.com/Simplici0/mako-cost/internal/model"
	"github.com/Simplici0/mako-cost/internal/montecarlo"
	"github.com/Simplici0/mako-cost/internal/scenario"
	"github.com/Simplici0/mako-cost/internal/sensitivity"
)

// Report holds everything the text summary prints. Simulation is optional.
type Report struct {
	Title       string
	Params      model.ParameterSet
	Output      model.Output
	Sensitivity []sensitivity.Result
	Simulation  *montecarlo.Result
	Comparisons []scenario.Comparison
}

// New evaluates p and runs the sensitivity sweep and the preset comparison.
func New(title string, p model.ParameterSet, topN int) Report {
	return Report{
		Title:       title,
		Params:      p,
		Output:      model.Calculate(p),
		Sensitivity: sensitivity.Analyze(p, topN),
		Comparisons: scenario.Compare(p, scenario.Presets()),
	}
}

func scopeLabel(s model.Scope) string {
	if s == model.ScopePower {
		return "Strom"
	}
	return "Strom + Gas"
}

// WriteText renders r as aligned plain text.
func (r Report) WriteText(w io.Writer) error {
	title := r.Title
	if title == "" {
		title = "MaKo-Koordinationskosten"
	}
	heading := fmt.Sprintf("%s (%s)", title, scopeLabel(r.Params.Scope))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, heading)
	fmt.Fprintln(tw, strings.Repeat("=", len([]rune(heading))))
	fmt.Fprintf(tw, "Gesamtkosten pro Jahr:\t%s\n", format.Euro(r.Output.Total))
	fmt.Fprintf(tw, "Effektive Implementierungen:\t%s\n", format.Number(r.Output.EffectiveImplementations))

	c := r.Output.Components
	fmt.Fprintln(tw, "\nKomponenten:")
	for _, row := range []struct {
		label string
		value float64
	}{
		{"Plattform", c.Platform},
		{"Betrieb", c.Operations},
		{"Sync-Steuer", c.SyncTax},
		{"Reibung", c.Friction},
	} {
		share := 0.0
		if r.Output.Total != 0 {
			share = row.value / r.Output.Total
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", row.label, format.Euro(row.value), format.Percent(share))
	}

	d := r.Output.Derived
	fmt.Fprintln(tw, "\nKennzahlen:")
	fmt.Fprintf(tw, "  pro Messlokation\t%s\n", format.Euro(d.PerMeteringPoint))
	fmt.Fprintf(tw, "  pro Haushalt\t%s\n", format.Euro(d.PerHousehold))
	fmt.Fprintf(tw, "  pro Nachricht\t%s\n", format.Euro(d.PerMessage))
	fmt.Fprintf(tw, "  pro Marktteilnehmer\t%s\n", format.Euro(d.PerParticipant))
	fmt.Fprintf(tw, "  Implizite Vollzeitstellen\t%s\n", format.Number(d.ImpliedFTEs))
	fmt.Fprintf(tw, "  Long-Tail-Kosten\t%s\n", format.Euro(d.LongTailCostShare))
	fmt.Fprintf(tw, "  Teilnehmer je Top-Anbieter\t%s\n", format.Number(d.EffectiveParticipantsPerTopVendor))

	if len(r.Sensitivity) > 0 {
		fmt.Fprintf(tw, "\nSensitivität (Top %d):\n", len(r.Sensitivity))
		for _, s := range r.Sensitivity {
			rng, _ := model.Lookup(s.Key)
			fmt.Fprintf(tw, "  %s\t%s … %s\t%s\t%s\t%s\n",
				s.Label,
				format.ParamValue(s.Key, rng.Min),
				format.ParamValue(s.Key, rng.Max),
				format.SignedEuro(s.DeltaAtMin),
				format.SignedEuro(s.DeltaAtMax),
				format.Euro(s.Swing),
			)
		}
	}

	if sim := r.Simulation; sim != nil && sim.Iterations > 0 {
		pc := sim.Percentiles
		fmt.Fprintf(tw, "\nMonte Carlo (%s Iterationen, Seed %d):\n", format.Number(float64(sim.Iterations)), sim.Seed)
		fmt.Fprintf(tw, "  P5\t%s\n", format.Euro(pc.P5))
		fmt.Fprintf(tw, "  P25\t%s\n", format.Euro(pc.P25))
		fmt.Fprintf(tw, "  Median\t%s\n", format.Euro(pc.P50))
		fmt.Fprintf(tw, "  P75\t%s\n", format.Euro(pc.P75))
		fmt.Fprintf(tw, "  P95\t%s\n", format.Euro(pc.P95))
		fmt.Fprintf(tw, "  Mittelwert\t%s\n", format.Euro(sim.Mean))
		fmt.Fprintf(tw, "  Standardabweichung\t%s\n", format.Euro(sim.StdDev))
	}

	if len(r.Comparisons) > 0 {
		fmt.Fprintln(tw, "\nSzenarien:")
		for _, cmp := range r.Comparisons {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", cmp.Preset.Name, format.Euro(cmp.Output.Total), format.SignedEuro(cmp.Delta))
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
