package engine

import (
	"sort"

	"github.com/piwi3910/StowPlan/internal/model"
)

// anchor is a candidate lower-rear corner for the next placement.
type anchor struct {
	x, y, z int
}

func seedAnchors() []anchor {
	return []anchor{{0, 0, 0}}
}

// updateAnchors grows the anchor set with the three corners exposed by a
// committed placement, then prunes, dedupes, and re-sorts by (x, y, z) so
// candidate iteration order stays stable across runs.
func (s *packState) updateAnchors(anchors []anchor, p model.Placement) []anchor {
	anchors = append(anchors,
		anchor{p.X, p.Y + p.Height, p.Z}, // top corner
		anchor{p.X, p.Y, p.Z + p.Width},  // far side
		anchor{p.X + p.Length, p.Y, p.Z}, // far front
	)

	kept := anchors[:0]
	for _, a := range anchors {
		if s.pruneAnchor(a) {
			continue
		}
		kept = append(kept, a)
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].x != kept[j].x {
			return kept[i].x < kept[j].x
		}
		if kept[i].y != kept[j].y {
			return kept[i].y < kept[j].y
		}
		return kept[i].z < kept[j].z
	})

	// Drop duplicates exposed by adjoining placements.
	out := kept[:0]
	for i, a := range kept {
		if i > 0 && a == kept[i-1] {
			continue
		}
		out = append(out, a)
	}
	return out
}

// pruneAnchor drops anchors strictly inside a committed box or beyond the
// usable interior; nothing can ever be placed there.
func (s *packState) pruneAnchor(a anchor) bool {
	if a.x >= s.usableLength() || a.y >= s.usableHeight() || a.z >= s.usableWidth() {
		return true
	}
	for _, p := range s.placed {
		if a.x > p.X && a.x < p.X+p.Length &&
			a.y > p.Y && a.y < p.Y+p.Height &&
			a.z > p.Z && a.z < p.Z+p.Width {
			return true
		}
	}
	return false
}

// slideZ pushes a floor candidate toward smaller z in 1 cm steps while it
// stays feasible. Stacked candidates are never slid: sliding would
// introduce overhangs that bypass the support check.
func (s *packState) slideZ(c cuboid) cuboid {
	if c.y != 0 {
		return c
	}
	for c.z > 0 {
		next := c
		next.z--
		if !s.isValid(next) {
			break
		}
		c = next
	}
	return c
}

// orientations enumerates the oriented (l, w) extents of a box: identity
// and the vertical-axis swap. Square footprints yield one entry.
func orientations(b model.Box) [][2]int {
	if b.Length == b.Width {
		return [][2]int{{b.Length, b.Width}}
	}
	return [][2]int{{b.Length, b.Width}, {b.Width, b.Length}}
}
