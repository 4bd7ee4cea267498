package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/momentumafrica/momentum-api/internal/models"
	"github.com/momentumafrica/momentum-api/internal/types"
)

// titleLength is how much of an idea becomes the derived post title.
const titleLength = 40

// NewPost is the caller-supplied part of a post; author fields are filled
// from the submitting profile.
type NewPost struct {
	Idea     string `json:"idea"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// CreatePost stores a new idea in a community. The title is derived from the
// first 40 characters of the idea, the way the original hub client did it.
// The associated score award is the caller's concern (fire-and-forget).
func CreatePost(db *gorm.DB, communityID string, author models.UserProfile, in NewPost) (models.Post, error) {
	idea := strings.TrimSpace(in.Idea)
	if idea == "" {
		return models.Post{}, &types.CustomError{
			Code:    400,
			Message: "idea text is required",
			Type:    "validation",
		}
	}

	if _, err := GetCommunity(db, communityID); err != nil {
		return models.Post{}, err
	}

	post := models.Post{
		ID:           uuid.NewString(),
		CommunityID:  communityID,
		AuthorID:     author.ID,
		AuthorName:   author.DisplayName,
		AuthorAvatar: author.AvatarURL,
		Title:        deriveTitle(idea),
		Idea:         idea,
		ImageURL:     in.ImageURL,
	}

	if err := db.Create(&post).Error; err != nil {
		return models.Post{}, types.StoreUnavailable(err)
	}
	return post, nil
}

// ListCommunityPosts returns a community's feed, newest first.
func ListCommunityPosts(db *gorm.DB, communityID string) ([]models.Post, error) {
	var posts []models.Post
	if err := db.Where("community_id = ?", communityID).
		Order("created_at desc").
		Find(&posts).Error; err != nil {
		return nil, types.StoreUnavailable(err)
	}
	return posts, nil
}

// GetPost fetches one post by id.
func GetPost(db *gorm.DB, id string) (models.Post, error) {
	var post models.Post
	if err := db.Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Post{}, types.NotFound("post not found")
		}
		return models.Post{}, types.StoreUnavailable(err)
	}
	return post, nil
}

// AddReply appends a reply to a post. Returns NotFound when the post does
// not exist.
func AddReply(db *gorm.DB, postID string, author models.UserProfile, text string) (models.Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Reply{}, &types.CustomError{
			Code:    400,
			Message: "reply text is required",
			Type:    "validation",
		}
	}

	if _, err := GetPost(db, postID); err != nil {
		return models.Reply{}, err
	}

	reply := models.Reply{
		ID:           uuid.NewString(),
		PostID:       postID,
		AuthorID:     author.ID,
		AuthorName:   author.DisplayName,
		AuthorAvatar: author.AvatarURL,
		Text:         text,
	}

	if err := db.Create(&reply).Error; err != nil {
		return models.Reply{}, types.StoreUnavailable(err)
	}
	return reply, nil
}

// ListReplies returns a post's replies oldest first, the thread order.
func ListReplies(db *gorm.DB, postID string) ([]models.Reply, error) {
	var replies []models.Reply
	if err := db.Where("post_id = ?", postID).
		Order("created_at asc").
		Find(&replies).Error; err != nil {
		return nil, types.StoreUnavailable(err)
	}
	return replies, nil
}

// ListPostCollaborators returns the user ids in a post's collaborator set.
func ListPostCollaborators(db *gorm.DB, postID string) ([]string, error) {
	var ids []string
	if err := db.Model(&models.PostCollaborator{}).
		Where("post_id = ?", postID).
		Order("created_at asc").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, types.StoreUnavailable(err)
	}
	return ids, nil
}

func deriveTitle(idea string) string {
	runes := []rune(idea)
	if len(runes) <= titleLength {
		return idea
	}
	return string(runes[:titleLength]) + "..."
}
