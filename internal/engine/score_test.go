package engine

import (
	"testing"

	"github.com/piwi3910/StowPlan/internal/model"
	"github.com/stretchr/testify/assert"
)

func unstackableBox(h int) model.Box {
	return model.Box{ID: "u-1", SpecID: "u", Length: 100, Width: 100, Height: h, Unstackable: true}
}

func stackableBox() model.Box {
	return model.Box{ID: "s-1", SpecID: "s", Length: 100, Width: 100, Height: 100}
}

func TestScore_UnstackableTopGapRule(t *testing.T) {
	s := testState("40GP") // interior height 239

	// Top at 220 leaves a 19 cm gap: rewarded.
	nearCeiling := s.scoreCandidate(unstackableBox(60), cuboid{0, 160, 0, 100, 100, 60}, poolStats{})

	// Top at 60 leaves a 179 cm gap: buried under open airspace.
	buried := s.scoreCandidate(unstackableBox(60), cuboid{0, 0, 0, 100, 100, 60}, poolStats{})

	assert.Less(t, nearCeiling, buried)
	assert.Less(t, nearCeiling, 0.0, "near-ceiling slots carry the cap bonus")
	assert.Greater(t, buried, float64(capBuryPenalty)/2, "floor slots carry the bury penalty")
}

func TestScore_BaseTermPrefersDeepLowNear(t *testing.T) {
	s := testState("40GP")
	b := stackableBox()

	rear := s.scoreCandidate(b, cuboid{0, 0, 0, 100, 100, 100}, poolStats{})
	forward := s.scoreCandidate(b, cuboid{100, 0, 0, 100, 100, 100}, poolStats{})
	aside := s.scoreCandidate(b, cuboid{0, 0, 100, 100, 100, 100}, poolStats{})

	assert.Less(t, rear, forward, "x dominates the base term")
	assert.Less(t, rear, aside, "z breaks the x tie")
	assert.Less(t, aside, forward, "a z step is cheaper than an x step")
}

func TestScore_BackHalfBonus(t *testing.T) {
	s := testState("40GP") // length 1185, half at 592
	b := stackableBox()

	nearSeam := s.scoreCandidate(b, cuboid{500, 0, 0, 100, 100, 100}, poolStats{})
	pastSeam := s.scoreCandidate(b, cuboid{600, 0, 0, 100, 100, 100}, poolStats{})

	// 100 cm of x costs 1,000,000; crossing the seam also forfeits the
	// 5,000 back-half bonus.
	assert.InDelta(t, float64(100*weightX+backHalfBonus), pastSeam-nearSeam, 1e-9)
}

func TestScore_OverhangAndSingleSupporterPenalties(t *testing.T) {
	s := testState("40GP")
	s.place(0, 0, 0, 100, 100, 100, false)
	s.place(100, 0, 0, 100, 100, 100, false)
	b := stackableBox()

	// Fully on one supporter: no stability penalties.
	clean := s.scoreCandidate(b, cuboid{0, 100, 0, 100, 100, 100}, poolStats{})
	assert.Less(t, clean, float64(singleSupPen))

	// Bridging two supporters laterally: each covers half the base, but
	// both have full-size footprints of their own, so no penalty either.
	s3 := testState("40GP")
	s3.place(0, 0, 0, 100, 100, 100, false)
	s3.place(0, 0, 100, 100, 100, 100, false)
	bridge := s3.scoreCandidate(b, cuboid{0, 100, 50, 100, 100, 100}, poolStats{})
	assert.Less(t, bridge, float64(singleSupPen))

	// 80 of 100 cm supported: above the 70% hard floor but below the 85%
	// scoring threshold.
	s2 := testState("40GP")
	s2.place(0, 0, 0, 80, 100, 100, false)
	overhang := s2.scoreCandidate(b, cuboid{0, 100, 0, 100, 100, 100}, poolStats{})
	assert.Greater(t, overhang, float64(overhangPenalty), "80%% support draws the overhang penalty")
}

func TestScore_PlatformPreparationBonus(t *testing.T) {
	s := testState("40GP") // height 239
	s.place(0, 0, 0, 100, 100, 99, false)
	b := stackableBox()
	pool := poolStats{minUnstackableH: 40, unstackableHeights: []int{40}}

	// Top at 199 with a 40 cm cap pending is a perfect slot: the cap's
	// own top would land exactly on the interior ceiling, so no kill-zone
	// slack is created either.
	withSlot := s.scoreCandidate(b, cuboid{0, 99, 0, 100, 100, 100}, pool)
	without := s.scoreCandidate(b, cuboid{0, 99, 0, 100, 100, 100}, poolStats{})

	assert.InDelta(t, float64(platformBonus), without-withSlot, 1e-9)
}

func TestScore_KillZonePenalty(t *testing.T) {
	s := testState("40GP")
	s.place(0, 0, 0, 100, 130, 100, false)
	b := model.Box{ID: "s-1", SpecID: "s", Length: 100, Width: 130, Height: 100}
	pool := poolStats{minUnstackableH: 60, unstackableHeights: []int{60}}

	// Top at 200 leaves 39 cm: below every remaining cap height and more
	// than 5 cm — unusable slack.
	killZone := s.scoreCandidate(b, cuboid{0, 100, 0, 100, 130, 100}, pool)
	noCaps := s.scoreCandidate(b, cuboid{0, 100, 0, 100, 130, 100}, poolStats{})

	assert.InDelta(t, float64(killZonePenalty), killZone-noCaps, 1e-9)
}

func TestScore_GroundAdhesionIsSpecStrict(t *testing.T) {
	s := testState("40GP")
	s.placed = append(s.placed, model.Placement{SpecID: "other", X: 0, Y: 0, Z: 0, Length: 100, Width: 100, Height: 100})
	s.grid.insert(0, 0, 100)
	b := stackableBox() // spec "s"

	// Ground level: a foreign neighbour earns nothing.
	foreign := s.scoreCandidate(b, cuboid{0, 0, 100, 100, 100, 100}, poolStats{})

	s2 := testState("40GP")
	s2.placed = append(s2.placed, model.Placement{SpecID: "s", X: 0, Y: 0, Z: 0, Length: 100, Width: 100, Height: 100})
	s2.grid.insert(0, 0, 100)
	same := s2.scoreCandidate(b, cuboid{0, 0, 100, 100, 100, 100}, poolStats{})

	assert.InDelta(t, s.set.AdhesionBonus, foreign-same, 1e-9)
}

func TestScore_FlushBonusForLevelTops(t *testing.T) {
	s := testState("40GP")
	s.place(0, 0, 0, 100, 100, 100, false)

	flush := s.hasFlushNeighbor(cuboid{0, 0, 100, 100, 100, 100})
	assert.True(t, flush, "equal tops shoulder to shoulder")

	assert.False(t, s.hasFlushNeighbor(cuboid{0, 0, 100, 100, 100, 80}),
		"different top heights are not flush")

	assert.False(t, s.hasFlushNeighbor(cuboid{0, 0, 210, 100, 100, 100}),
		"projections further than 1 cm apart are not flush")
}

func TestCollectPoolStats(t *testing.T) {
	pool := []model.Box{
		{SpecID: "a", Height: 100},
		{SpecID: "u1", Height: 60, Unstackable: true},
		{SpecID: "u2", Height: 45, Unstackable: true},
		{SpecID: "u1", Height: 60, Unstackable: true},
	}

	ps := collectPoolStats(pool)
	assert.Equal(t, 45, ps.minUnstackableH)
	assert.Equal(t, []int{60, 45}, ps.unstackableHeights, "distinct heights in pool order")

	assert.Zero(t, collectPoolStats(nil).minUnstackableH)
}
