package engine

import "github.com/piwi3910/StowPlan/internal/model"

// usableLength returns the loadable x extent: the interior less the
// operation buffer kept clear at the door end.
func (s *packState) usableLength() int {
	return s.spec.Length - s.set.OperationBuffer
}

func (s *packState) usableWidth() int {
	return s.spec.Width - s.set.OperationBuffer
}

// usableHeight keeps the operation buffer plus the clearance the forklift
// needs to lower an item onto the top layer.
func (s *packState) usableHeight() int {
	return s.spec.Height - s.set.OperationBuffer - s.set.ForkliftLiftMargin
}

// fitsDoor reports whether a cargo spec passes the door opening in either
// planar orientation. Checked for every box before anchor enumeration.
func fitsDoor(b model.Box, c model.ContainerSpec) bool {
	if b.Height > c.DoorHeight {
		return false
	}
	return b.Width <= c.DoorWidth || b.Length <= c.DoorWidth
}

// supportStats aggregates the placements whose top face is exactly at a
// candidate's bottom and whose footprints project under it.
type supportStats struct {
	area         int  // aggregate overlap area, cm²
	maxFootprint int  // largest single supporter's own footprint area, cm²
	unstackable  bool // some supporter is a top-only item
}

// supportAt gathers support statistics for a candidate resting at c.y.
// Coordinates are integers, so top equality is exact.
func (s *packState) supportAt(c cuboid) supportStats {
	var st supportStats
	for _, idx := range s.grid.query(c.x, c.x+c.l) {
		p := s.placed[idx]
		if p.Top() != c.y {
			continue
		}
		overlap := c.footprintOverlap(p)
		if overlap == 0 {
			continue
		}
		st.area += overlap
		if p.FootprintArea() > st.maxFootprint {
			st.maxFootprint = p.FootprintArea()
		}
		if p.Unstackable {
			st.unstackable = true
		}
	}
	return st
}

// isValid composes the feasibility checks, cheapest first: boundary,
// non-overlap, forklift access, then support.
func (s *packState) isValid(c cuboid) bool {
	// Boundary, with overhead margin.
	if c.x < 0 || c.y < 0 || c.z < 0 {
		return false
	}
	if c.x+c.l > s.usableLength() || c.z+c.w > s.usableWidth() || c.y+c.h > s.usableHeight() {
		return false
	}

	// Non-overlap against committed placements.
	for _, idx := range s.grid.query(c.x, c.x+c.l) {
		if c.intersects(s.placed[idx]) {
			return false
		}
	}

	// A chassis path from the door must survive the side-shift envelope.
	if !s.hasForkliftAccess(c) {
		return false
	}

	// Support, only above the floor.
	if c.y > 0 {
		st := s.supportAt(c)
		if st.unstackable {
			return false
		}
		if float64(st.area) < s.set.SupportThreshold*float64(c.baseArea()) {
			return false
		}
	}
	return true
}

// span is a closed interval of admissible chassis centre positions.
type span struct {
	lo, hi float64
}

// subtractSpan removes a forbidden range from a disjoint interval list.
func subtractSpan(spans []span, cut span) []span {
	var out []span
	for _, sp := range spans {
		if cut.hi <= sp.lo || cut.lo >= sp.hi {
			out = append(out, sp)
			continue
		}
		if cut.lo > sp.lo {
			out = append(out, span{sp.lo, cut.lo})
		}
		if cut.hi < sp.hi {
			out = append(out, span{cut.hi, sp.hi})
		}
	}
	return out
}

// chassisIntervals computes the admissible forklift chassis centre
// positions for loading a box at c. The chassis drives in from the door
// along decreasing x and stops at the candidate's loading face, so every
// item between that face and the door that sits below chassis height
// subtracts its widened z extent from the interval set.
func (s *packState) chassisIntervals(c cuboid) []span {
	halfF := float64(s.set.ForkliftWidth) / 2

	wall := span{
		lo: halfF + float64(s.set.WallBuffer),
		hi: float64(s.spec.Width) - halfF - float64(s.set.WallBuffer),
	}
	zTarget := float64(c.z) + float64(c.w)/2
	reach := span{
		lo: zTarget - float64(s.set.SideShift),
		hi: zTarget + float64(s.set.SideShift),
	}

	lo := max(wall.lo, reach.lo)
	hi := min(wall.hi, reach.hi)
	if hi < lo {
		return nil
	}
	spans := []span{{lo, hi}}

	face := c.x + c.l
	for _, idx := range s.grid.query(face, s.spec.Length) {
		p := s.placed[idx]
		if p.X+p.Length <= face {
			continue
		}
		if p.Y >= s.set.ForkliftChassisHeight {
			continue // clears the chassis; visual only
		}
		if p.Y >= s.set.ForkliftMastHeight {
			continue
		}
		spans = subtractSpan(spans, span{
			lo: float64(p.Z) - halfF,
			hi: float64(p.Z+p.Width) + halfF,
		})
		if len(spans) == 0 {
			return nil
		}
	}
	return spans
}

func (s *packState) hasForkliftAccess(c cuboid) bool {
	return len(s.chassisIntervals(c)) > 0
}
