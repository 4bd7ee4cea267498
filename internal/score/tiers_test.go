package score

import "testing"

// TestTierBoundaries verifies the fixed band edges.
func TestTierBoundaries(t *testing.T) {
	cases := []struct {
		score int64
		want  string
	}{
		{0, "Bronze"},
		{99, "Bronze"},
		{100, "Silver"},
		{499, "Silver"},
		{500, "Gold"},
		{999, "Gold"},
		{1000, "Platinum"},
		{250000, "Platinum"},
	}

	for _, c := range cases {
		if got := TierFor(c.score).Name; got != c.want {
			t.Errorf("TierFor(%d) = %s, want %s", c.score, got, c.want)
		}
	}
}

// TestTierForNegativeClamps verifies negative drift lands in the lowest band.
func TestTierForNegativeClamps(t *testing.T) {
	if got := TierFor(-12).Name; got != "Bronze" {
		t.Errorf("TierFor(-12) = %s, want Bronze", got)
	}
}

// TestTierForIsTotal verifies every non-negative score maps to exactly one
// tier whose band contains it.
func TestTierForIsTotal(t *testing.T) {
	for s := int64(0); s <= 2000; s++ {
		tier := TierFor(s)
		if tier.Min > s {
			t.Fatalf("TierFor(%d).Min = %d, band does not contain score", s, tier.Min)
		}
		if next, ok := NextTier(s); ok && s >= next.Min {
			t.Fatalf("TierFor(%d) = %s but score already qualifies for %s", s, tier.Name, next.Name)
		}
	}
}

// TestProgressMonotonicWithinBand verifies progress never decreases inside a
// tier band and approaches 100 at the top of the band.
func TestProgressMonotonicWithinBand(t *testing.T) {
	prev := float64(-1)
	for s := int64(100); s < 500; s++ {
		p := ProgressToNextTier(s)
		if p < prev {
			t.Fatalf("progress decreased within Silver: score %d gave %f after %f", s, p, prev)
		}
		prev = p
	}
	if p := ProgressToNextTier(499); p < 99 {
		t.Errorf("ProgressToNextTier(499) = %f, want near 100", p)
	}
}

func TestProgressAtBandStart(t *testing.T) {
	for _, s := range []int64{0, 100, 500} {
		if p := ProgressToNextTier(s); p != 0 {
			t.Errorf("ProgressToNextTier(%d) = %f, want 0 at band start", s, p)
		}
	}
}

func TestProgressAtTopTier(t *testing.T) {
	if p := ProgressToNextTier(1000); p != 100 {
		t.Errorf("ProgressToNextTier(1000) = %f, want 100", p)
	}
	if p := ProgressToNextTier(5000); p != 100 {
		t.Errorf("ProgressToNextTier(5000) = %f, want 100", p)
	}
}

// TestJoinLeaveSymmetry verifies a collaboration round trip nets zero.
func TestJoinLeaveSymmetry(t *testing.T) {
	if Points(ReasonJoinCollaboration)+Points(ReasonLeaveCollaboration) != 0 {
		t.Error("join and leave collaboration amounts are not symmetric")
	}
}

func TestKnownReason(t *testing.T) {
	if !KnownReason(ReasonCreatePost) {
		t.Error("create_post should be a known reason")
	}
	if KnownReason(Reason("bogus")) {
		t.Error("bogus should not be a known reason")
	}
	if Points(Reason("bogus")) != 0 {
		t.Error("unknown reason should carry zero points")
	}
}
