package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/momentumafrica/momentum-api/internal/models"
	"github.com/momentumafrica/momentum-api/internal/score"
	"github.com/momentumafrica/momentum-api/internal/types"
)

// ToggleResult reports the outcome of a collaboration toggle.
type ToggleResult struct {
	Joined            bool  `json:"joined"`
	CollaboratorCount int64 `json:"collaborators"`
	// Reason is the score delta the caller should apply after commit.
	Reason score.Reason `json:"-"`
}

// ToggleCollaboration flips userID's membership in the post's collaborator
// set. The set mutation and the counter move are one transaction over a
// row-locked post, so two concurrent toggles cannot corrupt the counter and
// a failure leaves both untouched. The composite unique key on
// post_collaborators makes a duplicate join structurally impossible: the
// counter moves exactly once per state change.
//
// The score delta is NOT part of the transaction; callers apply it after
// commit using the returned Reason (membership is all-or-nothing, scoring is
// best-effort).
func ToggleCollaboration(db *gorm.DB, postID, userID string) (ToggleResult, error) {
	var result ToggleResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := lockForUpdate(tx).
			Where("id = ?", postID).
			First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("post not found")
			}
			return err
		}

		var member models.PostCollaborator
		err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&member).Error

		switch {
		case err == nil:
			// Leaving.
			if err := tx.Where("post_id = ? AND user_id = ?", postID, userID).
				Delete(&models.PostCollaborator{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&post).
				UpdateColumn("collaborator_count", gorm.Expr("collaborator_count - ?", 1)).Error; err != nil {
				return err
			}
			result = ToggleResult{
				Joined:            false,
				CollaboratorCount: post.CollaboratorCount - 1,
				Reason:            score.ReasonLeaveCollaboration,
			}

		case errors.Is(err, gorm.ErrRecordNotFound):
			// Joining.
			if err := tx.Create(&models.PostCollaborator{PostID: postID, UserID: userID}).Error; err != nil {
				return err
			}
			if err := tx.Model(&post).
				UpdateColumn("collaborator_count", gorm.Expr("collaborator_count + ?", 1)).Error; err != nil {
				return err
			}
			result = ToggleResult{
				Joined:            true,
				CollaboratorCount: post.CollaboratorCount + 1,
				Reason:            score.ReasonJoinCollaboration,
			}

		default:
			return err
		}

		return nil
	})

	if err != nil {
		var ce *types.CustomError
		if errors.As(err, &ce) {
			return ToggleResult{}, ce
		}
		return ToggleResult{}, types.StoreUnavailable(err)
	}

	return result, nil
}
