package models

import (
	"time"
)

// User roles. The external Authorizer instance is the source of truth for
// authentication; the role stored here controls platform privileges.
const (
	RoleStudent = "student"
	RoleTutor   = "tutor"
	RoleAdmin   = "admin"
)

// ValidRole reports whether role is one of the platform roles.
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleTutor, RoleAdmin:
		return true
	}
	return false
}

// UserProfile is the platform-side record for an authenticated user. ID is
// the stable identifier issued by the identity provider. Score is the
// cumulative Initiative Vetting Score; it is only ever mutated through
// atomic increments (see services.ApplyScoreDelta).
type UserProfile struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	Email       string    `gorm:"size:255;index" json:"email"`
	DisplayName string    `gorm:"size:255;not null" json:"displayName"`
	Role        string    `gorm:"size:32;not null;default:student" json:"role"`
	Score       int64     `gorm:"not null;default:0;index" json:"score"`
	AvatarURL   string    `gorm:"size:512" json:"avatarUrl"`
	ResumeURL   string    `gorm:"size:512" json:"resumeUrl,omitempty"`
	Socials     JSON      `json:"socials,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the profile holds the administrative role.
func (u *UserProfile) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// TableName overrides the table name for UserProfile
func (UserProfile) TableName() string {
	return "user_profiles"
}

// ActivationCode is a single-use sign-up bonus voucher. Redemption is
// transactional with profile creation so a code cannot be spent twice.
type ActivationCode struct {
	Code       string     `gorm:"size:64;primaryKey" json:"code"`
	Bonus      int64      `gorm:"not null" json:"bonus"`
	RedeemedBy *string    `gorm:"type:char(36)" json:"redeemedBy,omitempty"`
	RedeemedAt *time.Time `json:"redeemedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Redeemed reports whether the code has already been spent.
func (a *ActivationCode) Redeemed() bool {
	return a.RedeemedBy != nil
}

// TableName overrides the table name for ActivationCode
func (ActivationCode) TableName() string {
	return "activation_codes"
}
