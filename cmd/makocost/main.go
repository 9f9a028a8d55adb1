// Package main evaluates a parameter file and prints the cost report.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Simplici0/mako-cost/internal/codec"
	"github.com/Simplici0/mako-cost/internal/model"
	"github.com/Simplici0/mako-cost/internal/montecarlo"
	"github.com/Simplici0/mako-cost/internal/report"
	"github.com/Simplici0/mako-cost/internal/scenario"
	"github.com/Simplici0/mako-cost/internal/sensitivity"
)

// cliConfig holds the parsed command line.
type cliConfig struct {
	ParamsPath string
	Iterations int
	TopN       int
	Scenario   string
	List       bool
	Dump       bool
}

func parseConfig(fs *flag.FlagSet, args []string) (cliConfig, error) {
	var cfg cliConfig
	fs.StringVar(&cfg.ParamsPath, "params", "", "YAML parameter file (default: baseline)")
	fs.IntVar(&cfg.Iterations, "iterations", montecarlo.DefaultIterations, "Monte Carlo iterations (0 = skip simulation)")
	fs.IntVar(&cfg.TopN, "top", sensitivity.DefaultTopN, "number of sensitivity rows")
	fs.StringVar(&cfg.Scenario, "scenario", "", "apply a built-in scenario ("+strings.Join(presetIDs(), ", ")+")")
	fs.BoolVar(&cfg.List, "list", false, "list built-in scenarios")
	fs.BoolVar(&cfg.Dump, "dump", false, "print the effective parameter set as YAML")
	if err := fs.Parse(args); err != nil {
		return cliConfig{}, err
	}
	if cfg.Iterations < 0 {
		return cliConfig{}, fmt.Errorf("-iterations must not be negative, got %d", cfg.Iterations)
	}
	if fs.NArg() > 0 {
		return cliConfig{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return cfg, nil
}

func presetIDs() []string {
	ids := make([]string, 0, 3)
	for _, p := range scenario.Presets() {
		ids = append(ids, p.ID)
	}
	return ids
}

func loadParams(path string) (model.ParameterSet, error) {
	if path == "" {
		return model.Defaults(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return model.ParameterSet{}, fmt.Errorf("open parameter file: %w", err)
	}
	defer f.Close()

	p, err := codec.ReadYAML(f)
	if errors.Is(err, codec.ErrEmptyDocument) {
		return model.Defaults(), nil
	}
	if err != nil {
		return model.ParameterSet{}, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return p, nil
}

func run(cfg cliConfig, out io.Writer) error {
	if cfg.List {
		for _, p := range scenario.Presets() {
			fmt.Fprintf(out, "%-14s %s: %s\n", p.ID, p.Name, p.Description)
		}
		return nil
	}

	params, err := loadParams(cfg.ParamsPath)
	if err != nil {
		return err
	}

	title := ""
	if cfg.Scenario != "" {
		preset, ok := scenario.PresetByID(cfg.Scenario)
		if !ok {
			return fmt.Errorf("unknown scenario %q", cfg.Scenario)
		}
		params = scenario.Apply(params, preset.Overrides)
		title = preset.Name
	}

	if cfg.Dump {
		return codec.WriteYAML(out, params)
	}

	rep := report.New(title, params, cfg.TopN)
	if cfg.Iterations > 0 {
		sim := montecarlo.Simulate(params, cfg.Iterations)
		rep.Simulation = &sim
	}
	return rep.WriteText(out)
}

func main() {
	fs := flag.NewFlagSet("makocost", flag.ExitOnError)
	cfg, err := parseConfig(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if err := run(cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
