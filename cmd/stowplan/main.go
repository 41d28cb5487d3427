// StowPlan — Container Load Planner
//
// A command-line tool that packs a declared cargo manifest into standard
// intermodal containers under warehouse-realistic constraints (forklift
// access, stacking support, door fit, weight caps) and exports the
// resulting load plans.
//
// Build:
//   go build -o stowplan ./cmd/stowplan
//
// Usage:
//   stowplan -manifest cargo.json
//   stowplan -manifest cargo.csv -strategy 40HQ -pdf plan.pdf
//   stowplan -manifest cargo.xlsx -strategy plan -containers 40GP,40HQ

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/piwi3910/StowPlan/internal/engine"
	"github.com/piwi3910/StowPlan/internal/export"
	"github.com/piwi3910/StowPlan/internal/manifest"
	"github.com/piwi3910/StowPlan/internal/model"
	"github.com/piwi3910/StowPlan/internal/project"
)

func main() {
	manifestPath := flag.String("manifest", "", "cargo manifest file (.json, .csv, .xlsx)")
	strategy := flag.String("strategy", "smart", "container strategy: smart, 20GP, 40GP, 40HQ, or plan")
	containers := flag.String("containers", "", "comma-separated container sequence for -strategy plan")
	pdfPath := flag.String("pdf", "", "write a load-plan PDF to this path")
	labelsPath := flag.String("labels", "", "write QR loading labels PDF to this path")
	xlsxPath := flag.String("xlsx", "", "write a shipment workbook to this path")
	dxfPath := flag.String("dxf", "", "write per-container plan DXFs next to this base path")
	savePath := flag.String("save", "", "save the planned shipment as JSON")
	estimate := flag.Bool("estimate", false, "print a volumetric container estimate before packing")
	compare := flag.Bool("compare", false, "compare the standard strategies side by side")
	quiet := flag.Bool("quiet", false, "suppress progress output")
	flag.Parse()

	if *manifestPath == "" {
		fmt.Fprintln(os.Stderr, "stowplan: -manifest is required")
		flag.Usage()
		os.Exit(2)
	}

	imported := manifest.ImportFile(*manifestPath)
	for _, w := range imported.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	for _, e := range imported.Errors {
		fmt.Fprintf(os.Stderr, "error: %s\n", e)
	}
	if len(imported.Specs) == 0 {
		fmt.Fprintln(os.Stderr, "stowplan: no usable cargo in manifest")
		os.Exit(1)
	}

	settings := model.DefaultSettings()

	if *estimate {
		printEstimate(imported.Specs)
	}

	if *compare {
		runComparison(imported.Specs, settings)
		return
	}

	strat, err := parseStrategy(*strategy, *containers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stowplan: %v\n", err)
		os.Exit(2)
	}

	planner := engine.New(settings)
	if !*quiet {
		planner.Monitor = &engine.Monitor{OnStage: func(stage string) {
			fmt.Println(stage)
		}}
	}

	shipment, err := planner.Plan(imported.Specs, strat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stowplan: %v\n", err)
		os.Exit(1)
	}

	printShipment(shipment)

	exports := []struct {
		path string
		run  func(string) error
		kind string
	}{
		{*pdfPath, func(p string) error { return export.ExportPDF(p, shipment) }, "PDF"},
		{*labelsPath, func(p string) error { return export.ExportLabels(p, shipment) }, "labels"},
		{*xlsxPath, func(p string) error { return export.ExportWorkbook(p, imported.Specs, shipment) }, "workbook"},
		{*dxfPath, func(p string) error { return export.ExportShipmentDXF(p, shipment) }, "DXF"},
		{*savePath, func(p string) error { return project.SaveShipment(p, shipment) }, "shipment file"},
	}
	for _, e := range exports {
		if e.path == "" {
			continue
		}
		if err := e.run(e.path); err != nil {
			fmt.Fprintf(os.Stderr, "stowplan: %s export failed: %v\n", e.kind, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s: %s\n", e.kind, e.path)
	}
}

func parseStrategy(name, containers string) (model.Strategy, error) {
	switch name {
	case "smart", "smart_mix", "SMART_MIX":
		return model.SmartMix(), nil
	case "plan":
		if containers == "" {
			return model.Strategy{}, fmt.Errorf("-strategy plan requires -containers")
		}
		var plan []string
		for _, t := range strings.Split(containers, ",") {
			plan = append(plan, strings.TrimSpace(t))
		}
		return model.FixedPlan(plan...), nil
	default:
		if _, ok := model.GetContainer(name); !ok {
			return model.Strategy{}, fmt.Errorf("unknown strategy or container type %q", name)
		}
		return model.Uniform(name), nil
	}
}

func printEstimate(specs []model.CargoSpec) {
	fmt.Println("Volumetric estimate (15% broken stowage):")
	for _, t := range model.ContainerTypes() {
		c, _ := model.GetContainer(t)
		est := model.EstimateContainers(specs, c, 15)
		note := ""
		if est.WeightLimited {
			note = " (weight limited)"
		}
		fmt.Printf("  %-5s %.2f m3 cargo -> %d container(s)%s\n", t, est.TotalVolume, est.ContainersMin, note)
	}
	fmt.Println()
}

func runComparison(specs []model.CargoSpec, settings model.PackSettings) {
	results := engine.CompareStrategies(engine.BuildDefaultScenarios(settings), specs)
	fmt.Printf("%-14s %-11s %-8s %-10s %-9s\n", "Scenario", "Containers", "Placed", "Unplaced", "Volume %")
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("%-14s error: %v\n", r.Scenario.Name, r.Err)
			continue
		}
		fmt.Printf("%-14s %-11d %-8d %-10d %8.1f\n",
			r.Scenario.Name, r.ContainersUsed, r.PlacedCount, r.UnplacedCount, r.VolumeUtilization)
	}
}

func printShipment(sh model.Shipment) {
	if len(sh.Results) == 0 {
		fmt.Println("Nothing to pack.")
		return
	}
	for i, r := range sh.Results {
		fmt.Printf("Container %d (%s): %d items, %.2f m3 (%.1f%%), %.0f kg (%.1f%%)\n",
			i+1, r.Container.Type, len(r.Placements), r.UsedVolume, r.VolumeUtilization,
			r.TotalWeight, r.WeightUtilization)
		for _, p := range r.Placements {
			rot := ""
			if p.Rotated {
				rot = " rotated"
			}
			fmt.Printf("  #%-3d %-24s at (%d, %d, %d) %dx%dx%d%s\n",
				p.Sequence, p.Name, p.X, p.Y, p.Z, p.Length, p.Width, p.Height, rot)
		}
	}
	if residual := sh.Residual(); len(residual) > 0 {
		fmt.Printf("Unplaced: %d item(s)\n", len(residual))
		for _, b := range residual {
			fmt.Printf("  %s (%dx%dx%d cm, %.0f kg)\n", b.Name, b.Length, b.Width, b.Height, b.Weight)
		}
	}
}
