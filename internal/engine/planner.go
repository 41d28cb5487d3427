package engine

import (
	"fmt"
	"sort"

	"github.com/piwi3910/StowPlan/internal/model"
)

// Sort epsilons: near-equal keys are treated as ties so the next criterion
// decides.
const (
	baseAreaEpsilon = 50 // cm²
	quantityEpsilon = 10
)

// Planner runs the multi-container shipment planning loop.
type Planner struct {
	Settings model.PackSettings
	Monitor  *Monitor
}

func New(settings model.PackSettings) *Planner {
	return &Planner{Settings: settings}
}

// Plan expands the cargo specs into unit boxes, pre-sorts them, and packs
// container after container according to the strategy. Operational
// shortfalls (items that fit nowhere, exhausted plans, cancellation) are
// reported through the shipment's residual; an error means the caller
// passed invalid input.
func (pl *Planner) Plan(specs []model.CargoSpec, strat model.Strategy) (model.Shipment, error) {
	for _, s := range specs {
		if err := s.Validate(); err != nil {
			return model.Shipment{}, err
		}
	}

	boxes := model.ExpandBoxes(specs)
	sortBoxes(boxes, specs)

	switch strat.Mode {
	case model.ModeSmartMix:
		return pl.planSmartMix(boxes)
	case model.ModeUniform:
		spec, ok := model.GetContainer(strat.ContainerType)
		if !ok {
			return model.Shipment{}, fmt.Errorf("unknown container type %q", strat.ContainerType)
		}
		return pl.planUniform(boxes, spec)
	case model.ModePlan:
		if len(strat.Plan) == 0 {
			return model.Shipment{}, fmt.Errorf("empty container plan")
		}
		plan := make([]model.ContainerSpec, len(strat.Plan))
		for i, t := range strat.Plan {
			spec, ok := model.GetContainer(t)
			if !ok {
				return model.Shipment{}, fmt.Errorf("unknown container type %q in plan", t)
			}
			plan[i] = spec
		}
		return pl.planFixed(boxes, plan)
	default:
		return model.Shipment{}, fmt.Errorf("unknown strategy mode %q", strat.Mode)
	}
}

// sortBoxes orders the pool: stackable before unstackable, then base area
// descending, quantity descending, weight descending — each with its tie
// epsilon. The sort is stable, so expansion order breaks remaining ties.
func sortBoxes(boxes []model.Box, specs []model.CargoSpec) {
	qty := make(map[string]int, len(specs))
	for _, s := range specs {
		qty[s.ID] = s.Quantity
	}
	sort.SliceStable(boxes, func(i, j int) bool {
		a, b := boxes[i], boxes[j]
		if a.Unstackable != b.Unstackable {
			return !a.Unstackable
		}
		if d := a.BaseArea() - b.BaseArea(); d > baseAreaEpsilon || d < -baseAreaEpsilon {
			return d > 0
		}
		if d := qty[a.SpecID] - qty[b.SpecID]; d > quantityEpsilon || d < -quantityEpsilon {
			return d > 0
		}
		return a.Weight > b.Weight
	})
}

// planUniform packs the same container type until the pool drains or a
// container comes back empty.
func (pl *Planner) planUniform(boxes []model.Box, spec model.ContainerSpec) (model.Shipment, error) {
	var sh model.Shipment
	remaining := boxes
	for len(remaining) > 0 {
		if pl.Monitor.cancelled() {
			break
		}
		pl.Monitor.stage("Packing container %d (%s)…", len(sh.Results)+1, spec.Type)
		result, residual := packContainer(spec, pl.Settings, remaining, len(sh.Results), pl.Monitor)
		if len(result.Placements) == 0 && len(sh.Results) > 0 {
			break
		}
		sh.Results = append(sh.Results, result)
		remaining = residual
		if len(result.Placements) == 0 {
			break
		}
	}
	attachResidual(&sh, spec, remaining)
	return sh, nil
}

// planFixed packs the caller's explicit container sequence, piping the
// residual forward. Containers that place nothing are still reported: the
// caller asked for them.
func (pl *Planner) planFixed(boxes []model.Box, plan []model.ContainerSpec) (model.Shipment, error) {
	var sh model.Shipment
	remaining := boxes
	for _, spec := range plan {
		if len(remaining) == 0 || pl.Monitor.cancelled() {
			break
		}
		pl.Monitor.stage("Packing container %d (%s)…", len(sh.Results)+1, spec.Type)
		result, residual := packContainer(spec, pl.Settings, remaining, len(sh.Results), pl.Monitor)
		sh.Results = append(sh.Results, result)
		remaining = residual
	}
	attachResidual(&sh, plan[0], remaining)
	return sh, nil
}

// planSmartMix decides the container type per iteration by comparative
// simulation: a 20GP when it finishes the manifest outright, a forced
// 40HQ when over-height cargo remains, otherwise whichever of 40GP and
// 40HQ simulates better on the current residual.
func (pl *Planner) planSmartMix(boxes []model.Box) (model.Shipment, error) {
	small, _ := model.GetContainer("20GP")
	standard, _ := model.GetContainer("40GP")
	highCube, _ := model.GetContainer("40HQ")

	var sh model.Shipment
	remaining := boxes
	for len(remaining) > 0 {
		if pl.Monitor.cancelled() {
			break
		}
		idx := len(sh.Results)

		pl.Monitor.stage("Simulating %s for container %d…", small.Type, idx+1)
		smallResult, smallResidual := packContainer(small, pl.Settings, remaining, idx, pl.Monitor)
		if len(smallResidual) == 0 && len(smallResult.Placements) > 0 {
			pl.Monitor.stage("Packing container %d (%s)…", idx+1, small.Type)
			sh.Results = append(sh.Results, smallResult)
			remaining = nil
			break
		}

		var result model.PackResult
		var residual []model.Box
		if hasExtraTall(remaining, standard, pl.Settings) {
			pl.Monitor.stage("Packing container %d (%s)…", idx+1, highCube.Type)
			result, residual = packContainer(highCube, pl.Settings, remaining, idx, pl.Monitor)
		} else {
			pl.Monitor.stage("Simulating %s and %s for container %d…", standard.Type, highCube.Type, idx+1)
			stdResult, stdResidual := packContainer(standard, pl.Settings, remaining, idx, pl.Monitor)
			hqResult, hqResidual := packContainer(highCube, pl.Settings, remaining, idx, pl.Monitor)

			if pickHighCube(stdResult, stdResidual, hqResult, hqResidual) {
				result, residual = hqResult, hqResidual
			} else {
				result, residual = stdResult, stdResidual
			}
			pl.Monitor.stage("Packing container %d (%s)…", idx+1, result.Container.Type)
		}

		if len(result.Placements) == 0 {
			if len(sh.Results) == 0 {
				sh.Results = append(sh.Results, result)
			}
			break
		}
		sh.Results = append(sh.Results, result)
		remaining = residual
	}
	attachResidual(&sh, highCube, remaining)
	return sh, nil
}

// pickHighCube applies the 40GP/40HQ tie-break: strictly more items, or —
// at equal count — a completed manifest, or at least 2 m³ more volume.
func pickHighCube(stdResult model.PackResult, stdResidual []model.Box, hqResult model.PackResult, hqResidual []model.Box) bool {
	if len(hqResult.Placements) > len(stdResult.Placements) {
		return true
	}
	if len(hqResult.Placements) < len(stdResult.Placements) {
		return false
	}
	if len(hqResidual) == 0 && len(stdResidual) > 0 {
		return true
	}
	return hqResult.UsedVolume >= stdResult.UsedVolume+2.0
}

// hasExtraTall reports cargo taller than the given container can load once
// buffers and the lift margin are taken off.
func hasExtraTall(boxes []model.Box, spec model.ContainerSpec, set model.PackSettings) bool {
	usable := spec.Height - set.OperationBuffer - set.ForkliftLiftMargin
	for _, b := range boxes {
		if b.Height > usable {
			return true
		}
	}
	return false
}

// attachResidual enforces the shipment invariant: all unplaced boxes ride
// on the last result. Intermediate results keep empty residuals. When
// nothing could be placed at all, an empty result carries the residual so
// the invariant still holds for non-empty input.
func attachResidual(sh *model.Shipment, fallback model.ContainerSpec, remaining []model.Box) {
	for i := range sh.Results {
		sh.Results[i].Unplaced = nil
	}
	if len(sh.Results) == 0 {
		if len(remaining) == 0 {
			return
		}
		empty := model.PackResult{Container: fallback, Unplaced: remaining}
		empty.ComputeStats()
		sh.Results = append(sh.Results, empty)
		return
	}
	sh.Results[len(sh.Results)-1].Unplaced = remaining
}
