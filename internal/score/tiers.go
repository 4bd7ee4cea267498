package score

// Tier is a named band of score values used for display and status.
type Tier struct {
	Name string `json:"name"`
	Min  int64  `json:"min"`
}

// Reputation tiers, ascending by minimum. The bands are contiguous and
// exhaustive over [0, inf): every non-negative score maps to exactly one
// tier. Negative scores (possible through repeated collaboration leaves)
// clamp to the lowest tier rather than erroring.
var tiers = []Tier{
	{Name: "Bronze", Min: 0},
	{Name: "Silver", Min: 100},
	{Name: "Gold", Min: 500},
	{Name: "Platinum", Min: 1000},
}

// Tiers returns the tier table, ascending.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// TierFor returns the tier whose band contains s, using highest-qualifying-
// minimum semantics: scan from the top tier down and return the first tier
// whose Min <= s.
func TierFor(s int64) Tier {
	for i := len(tiers) - 1; i > 0; i-- {
		if s >= tiers[i].Min {
			return tiers[i]
		}
	}
	return tiers[0]
}

// NextTier returns the tier above the one containing s, and false when s is
// already in the top band.
func NextTier(s int64) (Tier, bool) {
	current := TierFor(s)
	for i, t := range tiers {
		if t.Min == current.Min && i+1 < len(tiers) {
			return tiers[i+1], true
		}
	}
	return Tier{}, false
}

// ProgressToNextTier returns how far s has advanced through its tier band,
// as a percentage in [0,100]. The top tier always reports 100.
func ProgressToNextTier(s int64) float64 {
	current := TierFor(s)
	next, ok := NextTier(s)
	if !ok {
		return 100
	}
	if s < current.Min {
		return 0
	}
	pct := float64(s-current.Min) / float64(next.Min-current.Min) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
