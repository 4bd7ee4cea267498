package models

import "time"

// Post is an idea shared in a community. Author name/avatar are denormalized
// at write time the way the original feed stored them, so feed reads never
// join user_profiles.
//
// Invariant: CollaboratorCount mirrors the number of PostCollaborator rows
// for this post. Every mutation path goes through the membership toggle
// transaction; nothing else touches the counter.
type Post struct {
	ID                string             `gorm:"type:char(36);primaryKey" json:"id"`
	CommunityID       string             `gorm:"type:char(36);not null;index" json:"communityId"`
	AuthorID          string             `gorm:"type:char(36);not null;index" json:"authorId"`
	AuthorName        string             `gorm:"size:255" json:"authorName"`
	AuthorAvatar      string             `gorm:"size:512" json:"authorAvatar"`
	Title             string             `gorm:"size:255" json:"title"`
	Idea              string             `gorm:"type:text;not null" json:"idea"`
	ImageURL          string             `gorm:"size:512" json:"imageUrl,omitempty"`
	CollaboratorCount int64              `gorm:"not null;default:0" json:"collaborators"`
	Likes             int64              `gorm:"not null;default:0" json:"likes"`
	CreatedAt         time.Time          `gorm:"index" json:"timestamp"`
	Collaborators     []PostCollaborator `gorm:"foreignKey:PostID" json:"-"`
}

// TableName overrides the table name for Post
func (Post) TableName() string {
	return "posts"
}

// PostCollaborator is one membership row of a post's collaborator set. The
// composite unique index keeps a user in the set at most once, which is what
// makes a duplicate join a no-op instead of a double count.
type PostCollaborator struct {
	PostID    string    `gorm:"type:char(36);not null;uniqueIndex:idx_post_collaborator" json:"postId"`
	UserID    string    `gorm:"type:char(36);not null;uniqueIndex:idx_post_collaborator" json:"userId"`
	CreatedAt time.Time `json:"joinedAt"`
}

// TableName overrides the table name for PostCollaborator
func (PostCollaborator) TableName() string {
	return "post_collaborators"
}

// Reply belongs to exactly one post.
type Reply struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id"`
	PostID       string    `gorm:"type:char(36);not null;index" json:"postId"`
	AuthorID     string    `gorm:"type:char(36);not null" json:"authorId"`
	AuthorName   string    `gorm:"size:255" json:"authorName"`
	AuthorAvatar string    `gorm:"size:512" json:"authorAvatar"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	CreatedAt    time.Time `gorm:"index" json:"timestamp"`
}

// TableName overrides the table name for Reply
func (Reply) TableName() string {
	return "replies"
}
