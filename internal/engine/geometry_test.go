package engine

import (
	"testing"

	"github.com/piwi3910/StowPlan/internal/model"
)

func TestOverlapSpan(t *testing.T) {
	tests := []struct {
		name                       string
		aMin, aMax, bMin, bMax int
		want                       int
	}{
		{"full overlap", 0, 100, 0, 100, 100},
		{"partial overlap", 0, 100, 50, 150, 50},
		{"contained", 0, 100, 25, 75, 50},
		{"touching", 0, 100, 100, 200, 0},
		{"disjoint", 0, 100, 150, 250, 0},
		{"reversed order", 50, 150, 0, 100, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overlapSpan(tt.aMin, tt.aMax, tt.bMin, tt.bMax); got != tt.want {
				t.Errorf("overlapSpan(%d,%d,%d,%d) = %d, want %d", tt.aMin, tt.aMax, tt.bMin, tt.bMax, got, tt.want)
			}
		})
	}
}

func TestAxisSep(t *testing.T) {
	tests := []struct {
		name                       string
		aMin, aMax, bMin, bMax int
		want                       int
	}{
		{"overlapping", 0, 100, 50, 150, 0},
		{"touching", 0, 100, 100, 200, 0},
		{"one apart", 0, 100, 101, 200, 1},
		{"far apart", 0, 100, 150, 250, 50},
		{"b before a", 150, 250, 0, 100, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := axisSep(tt.aMin, tt.aMax, tt.bMin, tt.bMax); got != tt.want {
				t.Errorf("axisSep(%d,%d,%d,%d) = %d, want %d", tt.aMin, tt.aMax, tt.bMin, tt.bMax, got, tt.want)
			}
		})
	}
}

func TestCuboidIntersects(t *testing.T) {
	base := model.Placement{X: 100, Y: 0, Z: 100, Length: 100, Width: 100, Height: 100}

	tests := []struct {
		name string
		c    cuboid
		want bool
	}{
		{"identical", cuboid{100, 0, 100, 100, 100, 100}, true},
		{"interior overlap", cuboid{150, 50, 150, 100, 100, 100}, true},
		{"face contact x", cuboid{200, 0, 100, 100, 100, 100}, false},
		{"face contact y", cuboid{100, 100, 100, 100, 100, 100}, false},
		{"face contact z", cuboid{100, 0, 200, 100, 100, 100}, false},
		{"disjoint", cuboid{400, 0, 100, 50, 50, 50}, false},
		{"edge contact", cuboid{200, 0, 200, 100, 100, 100}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.intersects(base); got != tt.want {
				t.Errorf("intersects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFootprintOverlap(t *testing.T) {
	p := model.Placement{X: 0, Y: 0, Z: 0, Length: 100, Width: 100, Height: 50}

	c := cuboid{x: 50, y: 50, z: 50, l: 100, w: 100, h: 50}
	if got := c.footprintOverlap(p); got != 2500 {
		t.Errorf("footprintOverlap = %d, want 2500", got)
	}

	// The y coordinate plays no role in footprints.
	c.y = 999
	if got := c.footprintOverlap(p); got != 2500 {
		t.Errorf("footprintOverlap ignoring y = %d, want 2500", got)
	}

	c = cuboid{x: 100, y: 0, z: 0, l: 100, w: 100, h: 50}
	if got := c.footprintOverlap(p); got != 0 {
		t.Errorf("touching footprints should not overlap, got %d", got)
	}
}
