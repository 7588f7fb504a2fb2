package models

import "time"

// Tag is a free-form label attached to posts. Names are stored lowercase and
// deduplicated on write.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"unique;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`

	Posts []Post `gorm:"many2many:post_tags;" json:"-"`
}

// PostTag is the join row between posts and tags. Declared explicitly so the
// association table carries the same soft-delete flag as the rest of the
// schema.
type PostTag struct {
	PostID    uint      `gorm:"primaryKey" json:"post_id"`
	TagID     uint      `gorm:"primaryKey" json:"tag_id"`
	Active    bool      `gorm:"not null;default:true;index" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
