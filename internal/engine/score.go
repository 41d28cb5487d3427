package engine

import "github.com/piwi3910/StowPlan/internal/model"

// Score term magnitudes. Terms share a unit (roughly centimetres) so they
// compose by addition; lower scores win.
const (
	weightX = 10000 // place deep first
	weightY = 10    // then low

	backHalfBonus   = 5000    // fill the rear half before the door half
	terracePerZoneY = 50      // per zone index per cm of height
	overhangPenalty = 500000  // aggregate support below the scoring threshold
	singleSupPen    = 200000  // no single supporter close to the candidate's base
	platformBonus   = 20000   // top lands exactly where a cap item fits
	killZonePenalty = 100000  // leaves vertical slack no cap item can use
	capBuryPenalty  = 1000000 // unstackable buried under open airspace
	capTopBonus     = 500000  // unstackable consuming near-ceiling airspace
	capGapLimit     = 40      // cm of tolerated airspace above a cap item
	platformTol     = 5       // cm tolerance on a perfect cap slot
)

// poolStats carries the remaining-pool figures the scorer needs: the
// heights of unstackable boxes still waiting for a slot.
type poolStats struct {
	minUnstackableH    int   // 0 when no unstackable boxes remain
	unstackableHeights []int // distinct, in pool order
}

func collectPoolStats(pool []model.Box) poolStats {
	var ps poolStats
	seen := make(map[int]bool)
	for _, b := range pool {
		if !b.Unstackable {
			continue
		}
		if ps.minUnstackableH == 0 || b.Height < ps.minUnstackableH {
			ps.minUnstackableH = b.Height
		}
		if !seen[b.Height] {
			seen[b.Height] = true
			ps.unstackableHeights = append(ps.unstackableHeights, b.Height)
		}
	}
	return ps
}

// scoreCandidate computes the composite score of a feasible candidate.
func (s *packState) scoreCandidate(b model.Box, c cuboid, pool poolStats) float64 {
	score := float64(weightX*c.x) + float64(weightY*c.y) + float64(c.z)

	if b.Unstackable {
		// Top-only strategy: reward near-ceiling slots, push everything
		// else away. The stackable-first sort builds the columns before
		// any cap item is scored.
		topGap := s.spec.Height - (c.y + c.h)
		if topGap > capGapLimit {
			score += capBuryPenalty
		} else {
			score -= capTopBonus
		}
	} else {
		if c.x < s.spec.Length/2 {
			score -= backHalfBonus
		}

		// Terraced stacking: rear zones may grow tall, front zones stay low.
		zone := c.z / s.set.ZoneSize
		score += float64(zone * c.y * terracePerZoneY)

		if c.y > 0 {
			st := s.supportAt(c)
			base := float64(c.baseArea())
			if float64(st.area) < s.set.OverhangThreshold*base {
				score += overhangPenalty
			}
			if float64(st.maxFootprint) < s.set.SingleSupportMin*base {
				score += singleSupPen
			}
		}

		top := c.y + c.h
		for _, hu := range pool.unstackableHeights {
			if abs(top-(s.spec.Height-hu)) <= platformTol {
				score -= platformBonus
				break
			}
		}
		if pool.minUnstackableH > 0 {
			topGap := s.spec.Height - top
			if topGap < pool.minUnstackableH && topGap > 5 {
				score += killZonePenalty
			}
		}
	}

	if s.hasAdjacent(b, c) {
		score -= s.set.AdhesionBonus
	}
	if s.hasFlushNeighbor(c) {
		score -= s.set.FlushBonus
	}
	return score
}

// hasAdjacent reports a touching neighbour within 1 cm on every axis. On
// the floor only same-spec neighbours count (strict clustering); above the
// base any neighbour does, since stability and density outweigh purity.
func (s *packState) hasAdjacent(b model.Box, c cuboid) bool {
	ground := c.y == 0
	for _, idx := range s.grid.query(c.x-2, c.x+c.l+2) {
		p := s.placed[idx]
		if ground && p.SpecID != b.SpecID {
			continue
		}
		if axisSep(c.x, c.x+c.l, p.X, p.X+p.Length) <= 1 &&
			axisSep(c.y, c.y+c.h, p.Y, p.Y+p.Height) <= 1 &&
			axisSep(c.z, c.z+c.w, p.Z, p.Z+p.Width) <= 1 {
			return true
		}
	}
	return false
}

// hasFlushNeighbor reports a lateral neighbour whose top face matches the
// candidate's and whose projection touches within 1 cm. Shoulder-to-
// shoulder tops build flat layers.
func (s *packState) hasFlushNeighbor(c cuboid) bool {
	top := c.y + c.h
	for _, idx := range s.grid.query(c.x-2, c.x+c.l+2) {
		p := s.placed[idx]
		if p.Top() != top {
			continue
		}
		if axisSep(c.x, c.x+c.l, p.X, p.X+p.Length) <= 1 &&
			axisSep(c.z, c.z+c.w, p.Z, p.Z+p.Width) <= 1 {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
