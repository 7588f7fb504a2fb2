package models

import "time"

// Follow is a directed edge in the social graph: FollowerID follows
// FollowingID. The pair is unique and soft deleted like everything else, so
// refollowing reactivates the original edge.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"not null;uniqueIndex:idx_follows_pair" json:"follower_id"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follows_pair" json:"following_id"`
	Active      bool      `gorm:"not null;default:true;index" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
