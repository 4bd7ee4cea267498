package score

import (
	"sort"

	"github.com/momentumafrica/momentum-api/internal/models"
)

// EvaluateOptions controls filtering and ordering of the opportunity catalog.
type EvaluateOptions struct {
	// Category filters the catalog; models.CategoryAll (or "") keeps everything.
	Category string
	// ShowLocked keeps items the viewer has not yet unlocked in the result.
	ShowLocked bool
	// Descending orders by RequiredScore high-to-low instead of low-to-high.
	Descending bool
}

// EvaluatedOpportunity is a catalog item tagged with the viewer's computed
// lock state and progress toward unlocking it.
type EvaluatedOpportunity struct {
	models.Opportunity
	Locked bool `json:"locked"`
	// Progress is min(userScore/requiredScore, 1) * 100. A zero threshold
	// counts as fully unlocked. Admin viewers always report 100.
	Progress float64 `json:"progress"`
}

// Evaluate decides which catalog items are visible to a viewer and in what
// order. Privileged viewers see everything unlocked. Locked items are
// excluded entirely when ShowLocked is off. The sort is stable: items with
// equal thresholds keep their catalog order.
func Evaluate(items []models.Opportunity, userScore int64, isPrivileged bool, opts EvaluateOptions) []EvaluatedOpportunity {
	result := make([]EvaluatedOpportunity, 0, len(items))

	for _, item := range items {
		if opts.Category != "" && opts.Category != models.CategoryAll && item.Category != opts.Category {
			continue
		}

		locked := !isPrivileged && userScore < item.RequiredScore
		if locked && !opts.ShowLocked {
			continue
		}

		result = append(result, EvaluatedOpportunity{
			Opportunity: item,
			Locked:      locked,
			Progress:    progressFor(userScore, item.RequiredScore, isPrivileged),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		if opts.Descending {
			return result[i].RequiredScore > result[j].RequiredScore
		}
		return result[i].RequiredScore < result[j].RequiredScore
	})

	return result
}

func progressFor(userScore, requiredScore int64, isPrivileged bool) float64 {
	if isPrivileged || requiredScore <= 0 {
		return 100
	}
	if userScore <= 0 {
		return 0
	}
	pct := float64(userScore) / float64(requiredScore) * 100
	if pct > 100 {
		return 100
	}
	return pct
}
