// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account in the Travel Tales application.
//
// FollowerCount, FollowingCount, IsFollowing and IsFollowedBy are never
// stored on the row; they are recomputed from the follow table on every read
// so the profile is always consistent with the latest follow state.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email,omitempty"`
	Password  string    `gorm:"not null" json:"-"`
	Username  string    `gorm:"unique;not null" json:"username"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	AvatarURL string    `json:"avatar_url"`
	Active    bool      `gorm:"not null;default:true;index" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Viewer-relative social annotations, filled at read time.
	FollowerCount  int  `gorm:"-" json:"follower_count"`
	FollowingCount int  `gorm:"-" json:"following_count"`
	IsFollowing    bool `gorm:"-" json:"is_following"`
	IsFollowedBy   bool `gorm:"-" json:"is_followed_by"`

	Posts []Post `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}
