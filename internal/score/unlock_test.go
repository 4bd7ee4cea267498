package score

import (
	"testing"

	"github.com/momentumafrica/momentum-api/internal/models"
)

func catalog() []models.Opportunity {
	return []models.Opportunity{
		{ID: "a", Title: "Open Internship", RequiredScore: 0, Category: models.CategoryInternship},
		{ID: "b", Title: "Seed Funding", RequiredScore: 100, Category: models.CategoryFunding},
		{ID: "c", Title: "Executive Mentorship", RequiredScore: 500, Category: models.CategoryMentorship},
	}
}

// TestEvaluateExcludesLocked mirrors the default viewer experience: locked
// items disappear entirely when ShowLocked is off.
func TestEvaluateExcludesLocked(t *testing.T) {
	result := Evaluate(catalog(), 100, false, EvaluateOptions{ShowLocked: false})

	if len(result) != 2 {
		t.Fatalf("expected 2 unlocked items, got %d", len(result))
	}
	for _, item := range result {
		if item.Locked {
			t.Errorf("item %s marked locked in a ShowLocked=false result", item.ID)
		}
		if item.ID == "c" {
			t.Error("req:500 item should have been excluded for score 100")
		}
	}
}

func TestEvaluateShowLockedTagsState(t *testing.T) {
	result := Evaluate(catalog(), 100, false, EvaluateOptions{ShowLocked: true})

	if len(result) != 3 {
		t.Fatalf("expected full catalog, got %d items", len(result))
	}
	for _, item := range result {
		wantLocked := item.ID == "c"
		if item.Locked != wantLocked {
			t.Errorf("item %s locked = %v, want %v", item.ID, item.Locked, wantLocked)
		}
	}
}

// TestEvaluatePrivilegedUnlocksAll covers the administrative override.
func TestEvaluatePrivilegedUnlocksAll(t *testing.T) {
	result := Evaluate(catalog(), 0, true, EvaluateOptions{ShowLocked: false})

	if len(result) != 3 {
		t.Fatalf("privileged viewer should see all items, got %d", len(result))
	}
	for _, item := range result {
		if item.Locked {
			t.Errorf("item %s locked for privileged viewer", item.ID)
		}
		if item.Progress != 100 {
			t.Errorf("item %s progress = %f for privileged viewer, want 100", item.ID, item.Progress)
		}
	}
}

func TestEvaluateCategoryFilter(t *testing.T) {
	result := Evaluate(catalog(), 1000, false, EvaluateOptions{Category: models.CategoryFunding, ShowLocked: true})
	if len(result) != 1 || result[0].ID != "b" {
		t.Fatalf("category filter returned %d items", len(result))
	}

	all := Evaluate(catalog(), 1000, false, EvaluateOptions{Category: models.CategoryAll, ShowLocked: true})
	if len(all) != 3 {
		t.Fatalf("category All should keep everything, got %d", len(all))
	}
}

// TestEvaluateStableSort verifies equal thresholds keep catalog order in
// both directions.
func TestEvaluateStableSort(t *testing.T) {
	items := []models.Opportunity{
		{ID: "first", RequiredScore: 50, Category: models.CategoryCommunity},
		{ID: "second", RequiredScore: 50, Category: models.CategoryCommunity},
		{ID: "third", RequiredScore: 10, Category: models.CategoryCommunity},
	}

	asc := Evaluate(items, 1000, false, EvaluateOptions{ShowLocked: true})
	if asc[0].ID != "third" || asc[1].ID != "first" || asc[2].ID != "second" {
		t.Errorf("ascending order wrong: %s, %s, %s", asc[0].ID, asc[1].ID, asc[2].ID)
	}

	desc := Evaluate(items, 1000, false, EvaluateOptions{ShowLocked: true, Descending: true})
	if desc[0].ID != "first" || desc[1].ID != "second" || desc[2].ID != "third" {
		t.Errorf("descending order wrong: %s, %s, %s", desc[0].ID, desc[1].ID, desc[2].ID)
	}
}

func TestEvaluateProgress(t *testing.T) {
	result := Evaluate(catalog(), 50, false, EvaluateOptions{ShowLocked: true})

	for _, item := range result {
		switch item.ID {
		case "a":
			// Zero threshold guards divide-by-zero and counts as unlocked.
			if item.Progress != 100 {
				t.Errorf("zero-threshold progress = %f, want 100", item.Progress)
			}
		case "b":
			if item.Progress != 50 {
				t.Errorf("progress for 50/100 = %f, want 50", item.Progress)
			}
		case "c":
			if item.Progress != 10 {
				t.Errorf("progress for 50/500 = %f, want 10", item.Progress)
			}
		}
	}
}
