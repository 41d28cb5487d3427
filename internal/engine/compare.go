package engine

import (
	"fmt"

	"github.com/piwi3910/StowPlan/internal/model"
)

// ComparisonScenario defines a named strategy/settings pair to compare.
type ComparisonScenario struct {
	Name     string
	Strategy model.Strategy
	Settings model.PackSettings
}

// ComparisonResult holds the shipment and computed statistics for a single
// scenario.
type ComparisonResult struct {
	Scenario          ComparisonScenario
	Shipment          model.Shipment
	ContainersUsed    int
	PlacedCount       int
	UnplacedCount     int
	VolumeUtilization float64
	TotalWeight       float64
	Err               error
}

// CompareStrategies plans the same manifest under each scenario and
// returns the results in scenario order, enabling side-by-side comparison
// of container-selection strategies and tuning thresholds.
func CompareStrategies(scenarios []ComparisonScenario, specs []model.CargoSpec) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		pl := New(scenario.Settings)
		sh, err := pl.Plan(specs, scenario.Strategy)

		results = append(results, ComparisonResult{
			Scenario:          scenario,
			Shipment:          sh,
			ContainersUsed:    len(sh.Results),
			PlacedCount:       sh.PlacedCount(),
			UnplacedCount:     len(sh.Residual()),
			VolumeUtilization: sh.TotalVolumeUtilization(),
			TotalWeight:       sh.TotalWeight(),
			Err:               err,
		})
	}

	return results
}

// BuildDefaultScenarios generates the standard what-if set: the mixed
// strategy plus one uniform scenario per catalogue type, all on the given
// settings.
func BuildDefaultScenarios(baseSettings model.PackSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Smart mix",
			Strategy: model.SmartMix(),
			Settings: baseSettings,
		},
	}
	for _, t := range model.ContainerTypes() {
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Uniform %s", t),
			Strategy: model.Uniform(t),
			Settings: baseSettings,
		})
	}
	return scenarios
}
