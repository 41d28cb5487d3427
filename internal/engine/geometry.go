package engine

import "github.com/piwi3910/StowPlan/internal/model"

// cuboid is a candidate or placed axis-aligned box: minimum corner plus
// oriented extents. x runs toward the door, y up, z laterally.
type cuboid struct {
	x, y, z int
	l, w, h int // extents along x, z swapped into l/w by orientation; h fixed
}

func cuboidOf(p model.Placement) cuboid {
	return cuboid{x: p.X, y: p.Y, z: p.Z, l: p.Length, w: p.Width, h: p.Height}
}

// overlapSpan returns the overlap length of [aMin,aMax] and [bMin,bMax]
// on a single axis, or 0 when they are disjoint.
func overlapSpan(aMin, aMax, bMin, bMax int) int {
	lo := max(aMin, bMin)
	hi := min(aMax, bMax)
	if hi > lo {
		return hi - lo
	}
	return 0
}

// axisSep returns the separation between [aMin,aMax] and [bMin,bMax] on a
// single axis; 0 when the spans overlap or touch.
func axisSep(aMin, aMax, bMin, bMax int) int {
	if bMin > aMax {
		return bMin - aMax
	}
	if aMin > bMax {
		return aMin - bMax
	}
	return 0
}

// intersects reports strict interior overlap between two boxes. Boxes
// sharing a face do not overlap.
func (c cuboid) intersects(p model.Placement) bool {
	return c.x < p.X+p.Length && c.x+c.l > p.X &&
		c.y < p.Y+p.Height && c.y+c.h > p.Y &&
		c.z < p.Z+p.Width && c.z+c.w > p.Z
}

// footprintOverlap returns the (x, z) projection overlap area with a
// placement, in square centimetres.
func (c cuboid) footprintOverlap(p model.Placement) int {
	dx := overlapSpan(c.x, c.x+c.l, p.X, p.X+p.Length)
	dz := overlapSpan(c.z, c.z+c.w, p.Z, p.Z+p.Width)
	return dx * dz
}

// baseArea returns the candidate's own footprint area in square centimetres.
func (c cuboid) baseArea() int {
	return c.l * c.w
}
