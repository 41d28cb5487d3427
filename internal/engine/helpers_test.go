package engine

import (
	"fmt"
	"testing"

	"github.com/piwi3910/StowPlan/internal/model"
	"github.com/stretchr/testify/require"
)

// mkSpec builds a cargo spec with a fixed ID so tests are reproducible
// without uuid involvement.
func mkSpec(id, name string, l, w, h int, weight float64, qty int, unstackable bool) model.CargoSpec {
	return model.CargoSpec{
		ID:          id,
		Name:        name,
		Length:      l,
		Width:       w,
		Height:      h,
		Weight:      weight,
		Quantity:    qty,
		Unstackable: unstackable,
	}
}

// checkPackResult asserts the per-container invariants: monotone
// sequences, disjoint interiors, bounds, support, weight cap, door fit,
// and a sequence-ordered forklift replay.
func checkPackResult(t *testing.T, pr model.PackResult, set model.PackSettings) {
	t.Helper()
	c := pr.Container

	// Sequence numbers are 1..n in commit order.
	for i, p := range pr.Placements {
		require.Equal(t, i+1, p.Sequence, "sequence must be monotone")
	}

	// Pairwise disjoint interiors.
	for i := range pr.Placements {
		for j := i + 1; j < len(pr.Placements); j++ {
			require.False(t, cuboidOf(pr.Placements[i]).intersects(pr.Placements[j]),
				"placements %d and %d overlap", i+1, j+1)
		}
	}

	var weight float64
	for _, p := range pr.Placements {
		require.GreaterOrEqual(t, p.X, 0)
		require.GreaterOrEqual(t, p.Y, 0)
		require.GreaterOrEqual(t, p.Z, 0)
		require.LessOrEqual(t, p.X+p.Length, c.Length-set.OperationBuffer)
		require.LessOrEqual(t, p.Z+p.Width, c.Width-set.OperationBuffer)
		require.LessOrEqual(t, p.Y+p.Height, c.Height-set.OperationBuffer-set.ForkliftLiftMargin)
		weight += p.Weight

		// Door predicate on the unrotated spec dims.
		l, w := p.Length, p.Width
		if p.Rotated {
			l, w = w, l
		}
		require.True(t, fitsDoor(model.Box{Length: l, Width: w, Height: p.Height}, c),
			"placement %d fails the door predicate", p.Sequence)
	}
	require.LessOrEqual(t, weight, c.MaxWeight, "payload cap exceeded")

	// Sequence-ordered replay: every commit must have been feasible
	// against the placements before it, including forklift access and
	// support. This covers overlap, bounds, support, and access in one
	// pass through the oracle itself.
	state := newPackState(c, set)
	for _, p := range pr.Placements {
		require.True(t, state.isValid(cuboidOf(p)),
			"placement %d (%s at %d,%d,%d) not feasible on replay", p.Sequence, p.Name, p.X, p.Y, p.Z)
		state.placed = append(state.placed, p)
		state.grid.insert(len(state.placed)-1, p.X, p.X+p.Length)
	}

	// Unstackable items never carry anything.
	for _, p := range pr.Placements {
		if !p.Unstackable {
			continue
		}
		for _, q := range pr.Placements {
			if q.Y == p.Top() && cuboidOf(q).footprintOverlap(p) > 0 {
				t.Fatalf("placement %d rests on unstackable placement %d", q.Sequence, p.Sequence)
			}
		}
	}
}

// checkShipment asserts mass conservation plus the per-container
// invariants of every result.
func checkShipment(t *testing.T, sh model.Shipment, specs []model.CargoSpec, set model.PackSettings) {
	t.Helper()

	want := make(map[string]int)
	var total int
	for _, s := range specs {
		want[s.ID] += s.Quantity
		total += s.Quantity
	}

	got := make(map[string]int)
	count := 0
	for _, r := range sh.Results {
		checkPackResult(t, r, set)
		for _, p := range r.Placements {
			got[p.SpecID]++
			count++
		}
	}
	for _, b := range sh.Residual() {
		got[b.SpecID]++
		count++
	}

	require.Equal(t, total, count, "box count not conserved")
	for id, n := range want {
		require.Equal(t, n, got[id], "count mismatch for spec %s", id)
	}
}

// findPlacement returns the placement of the given sequence number.
func findPlacement(t *testing.T, pr model.PackResult, seq int) model.Placement {
	t.Helper()
	for _, p := range pr.Placements {
		if p.Sequence == seq {
			return p
		}
	}
	t.Fatalf("no placement with sequence %d", seq)
	return model.Placement{}
}

// specClusterConnected reports whether all placements of one spec form a
// single component under face/edge contact (within 1 cm).
func specClusterConnected(pr model.PackResult, specID string) bool {
	var group []model.Placement
	for _, p := range pr.Placements {
		if p.SpecID == specID {
			group = append(group, p)
		}
	}
	if len(group) <= 1 {
		return true
	}

	touching := func(a, b model.Placement) bool {
		return axisSep(a.X, a.X+a.Length, b.X, b.X+b.Length) <= 1 &&
			axisSep(a.Y, a.Y+a.Height, b.Y, b.Y+b.Height) <= 1 &&
			axisSep(a.Z, a.Z+a.Width, b.Z, b.Z+b.Width) <= 1
	}

	visited := map[int]bool{0: true}
	queue := []int{0}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for i := range group {
			if !visited[i] && touching(group[cur], group[i]) {
				visited[i] = true
				queue = append(queue, i)
			}
		}
	}
	return len(visited) == len(group)
}

// dumpPlacements formats a result for failure messages.
func dumpPlacements(pr model.PackResult) string {
	s := ""
	for _, p := range pr.Placements {
		s += fmt.Sprintf("#%d %s (%d,%d,%d) %dx%dx%d\n", p.Sequence, p.Name, p.X, p.Y, p.Z, p.Length, p.Width, p.Height)
	}
	return s
}
