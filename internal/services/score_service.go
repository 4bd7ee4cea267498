package services

import (
	"gorm.io/gorm"

	"github.com/momentumafrica/momentum-api/internal/logger"
	"github.com/momentumafrica/momentum-api/internal/models"
	"github.com/momentumafrica/momentum-api/internal/score"
	"github.com/momentumafrica/momentum-api/internal/types"
)

// ApplyScoreDelta applies the signed point amount for reason against the
// user's stored score as a single atomic increment. It never reads the score
// first: concurrent deltas for the same user must not lose updates, so the
// write is an UPDATE ... SET score = score + ? expression evaluated by the
// store.
//
// Returns NotFound when no profile row matches userID and StoreUnavailable
// when the store rejects the write. No write-time floor is applied; a score
// may drift negative and is clamped at tier lookup only.
func ApplyScoreDelta(db *gorm.DB, userID string, reason score.Reason) error {
	amount := score.Points(reason)
	if userID == "" || amount == 0 {
		return nil
	}

	result := db.Model(&models.UserProfile{}).
		Where("id = ?", userID).
		UpdateColumn("score", gorm.Expr("score + ?", amount))

	if result.Error != nil {
		return types.StoreUnavailable(result.Error)
	}
	if result.RowsAffected == 0 {
		return types.NotFound("user profile not found")
	}
	return nil
}

// AwardScore is the fire-and-forget variant used by content paths: the
// originating action (post created, reply added, idea refined) has already
// succeeded and is never rolled back, so a failed score update is logged
// and swallowed. Score and activity can drift apart under persistent store
// faults; there is no reconciliation mechanism.
func AwardScore(log *logger.Logger, db *gorm.DB, userID string, reason score.Reason) {
	if err := ApplyScoreDelta(db, userID, reason); err != nil {
		log.Warn("score update dropped",
			"userId", userID,
			"reason", string(reason),
			"amount", score.Points(reason),
			"error", err,
		)
	}
}

// ScoreStanding is the derived reputation view for a profile.
type ScoreStanding struct {
	Score    int64      `json:"score"`
	Tier     score.Tier `json:"tier"`
	Progress float64    `json:"progressToNextTier"`
}

// StandingFor computes the tier view for a raw score.
func StandingFor(s int64) ScoreStanding {
	return ScoreStanding{
		Score:    s,
		Tier:     score.TierFor(s),
		Progress: score.ProgressToNextTier(s),
	}
}
