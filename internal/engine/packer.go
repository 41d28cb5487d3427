package engine

import "github.com/piwi3910/StowPlan/internal/model"

// packState is the per-container workspace: committed placements, the
// spatial index over them, and the running payload weight. It is owned by
// one packContainer call; nothing is shared across containers.
type packState struct {
	spec   model.ContainerSpec
	set    model.PackSettings
	placed []model.Placement
	grid   *spatialGrid
	weight float64
}

func newPackState(spec model.ContainerSpec, set model.PackSettings) *packState {
	return &packState{
		spec: spec,
		set:  set,
		grid: newSpatialGrid(spec.Length, set.GridSize),
	}
}

// moveCandidate is one scored (box, position, orientation) triple.
type moveCandidate struct {
	box     model.Box
	c       cuboid
	rotated bool
	score   float64
}

// packContainer loads boxes into a single container. Each pass scores the
// feasible moves of one representative box per cargo spec against every
// anchor and both orientations, commits the best, and repeats until no
// admissible move remains. The input slice is not modified.
func packContainer(spec model.ContainerSpec, set model.PackSettings, boxes []model.Box, containerIdx int, mon *Monitor) (model.PackResult, []model.Box) {
	result := model.PackResult{Container: spec}

	// Door admission first: a box that cannot pass the opening in either
	// planar orientation goes straight to the residual.
	var pool, doorRejects []model.Box
	for _, b := range boxes {
		if fitsDoor(b, spec) {
			pool = append(pool, b)
		} else {
			doorRejects = append(doorRejects, b)
		}
	}

	state := newPackState(spec, set)
	anchors := seedAnchors()

	for len(pool) > 0 {
		best, bestIdx := state.bestMove(pool, anchors)
		if bestIdx < 0 {
			break // no admissible move; close the container
		}

		seq := len(state.placed) + 1
		p := model.Placement{
			BoxID:       best.box.ID,
			SpecID:      best.box.SpecID,
			Name:        best.box.Name,
			X:           best.c.x,
			Y:           best.c.y,
			Z:           best.c.z,
			Length:      best.c.l,
			Width:       best.c.w,
			Height:      best.c.h,
			Rotated:     best.rotated,
			Sequence:    seq,
			Container:   containerIdx,
			Weight:      best.box.Weight,
			Unstackable: best.box.Unstackable,
		}
		state.placed = append(state.placed, p)
		state.grid.insert(len(state.placed)-1, p.X, p.X+p.Length)
		state.weight += p.Weight
		anchors = state.updateAnchors(anchors, p)
		pool = append(pool[:bestIdx], pool[bestIdx+1:]...)

		if seq%set.YieldInterval == 0 && mon.yield() {
			break
		}
	}

	result.Placements = state.placed
	result.Unplaced = append(pool, doorRejects...)
	result.ComputeStats()
	return result, result.Unplaced
}

// bestMove scores every feasible candidate of the current pass and returns
// the winner plus the pool index of its box, or -1 when nothing fits.
// Only the first box of each cargo spec is evaluated: all copies of a spec
// are interchangeable, so one representative suffices. Iteration order —
// spec first-occurrence, then anchor, then orientation — is stable, and
// ties keep the earliest candidate, so results reproduce bit for bit.
func (s *packState) bestMove(pool []model.Box, anchors []anchor) (moveCandidate, int) {
	stats := collectPoolStats(pool)

	var best moveCandidate
	bestIdx := -1
	seenSpec := make(map[string]bool)

	for i, b := range pool {
		if seenSpec[b.SpecID] {
			continue
		}
		seenSpec[b.SpecID] = true

		// Weight gate: never score a move that would breach the payload cap.
		if s.weight+b.Weight > s.spec.MaxWeight {
			continue
		}

		for _, a := range anchors {
			for orient, lw := range orientations(b) {
				c := cuboid{x: a.x, y: a.y, z: a.z, l: lw[0], w: lw[1], h: b.Height}
				if !s.isValid(c) {
					continue
				}
				c = s.slideZ(c)
				score := s.scoreCandidate(b, c, stats)
				if bestIdx < 0 || score < best.score {
					best = moveCandidate{box: b, c: c, rotated: orient == 1, score: score}
					bestIdx = i
				}
			}
		}
	}
	return best, bestIdx
}
