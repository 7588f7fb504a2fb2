package models

import "time"

// Like records a single user's like on a single post. The (post_id, user_id)
// pair is unique; liking again flips Active back on instead of inserting a
// second row, so a like can never be double counted.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_post_user" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_post_user" json:"user_id"`
	Active    bool      `gorm:"not null;default:true;index" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
