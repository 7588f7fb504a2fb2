// Package models contains data structures for the application's domain models.
package models

import "time"

// Post represents a travel story published by a user.
//
// Active is a soft-delete flag: rows are never physically deleted by normal
// application flow, and every read query filters active = true.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Author      User      `gorm:"foreignKey:AuthorID" json:"author"`
	Title       string    `gorm:"not null" json:"title"`
	Slug        string    `gorm:"unique;not null" json:"slug"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Excerpt     string    `json:"excerpt"`
	ImageURL    string    `json:"image_url"`
	CountryName string    `gorm:"not null;index" json:"country_name"`
	Active      bool      `gorm:"not null;default:true;index" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// LikeCount is not persisted; computed over active like rows at query time.
	LikeCount int `gorm:"->" json:"like_count"`
	// CommentCount is not persisted; computed over active comment rows at query time.
	CommentCount int `gorm:"->" json:"comment_count"`
	// Liked indicates whether the requesting viewer has an active like on this post.
	Liked bool `gorm:"->" json:"liked"`

	// Author-relative social aliases scanned from the aggregate feed query.
	// The repository copies them onto Author before the post leaves the data
	// layer; they are hidden from JSON.
	AuthorFollowerCount  int  `gorm:"->" json:"-"`
	AuthorFollowingCount int  `gorm:"->" json:"-"`
	AuthorIsFollowing    bool `gorm:"->" json:"-"`
	AuthorIsFollowedBy   bool `gorm:"->" json:"-"`

	// CommentRecords holds the full ordered comment list on the detail view only.
	CommentRecords []Comment `gorm:"-" json:"comment_records,omitempty"`

	Tags []Tag `gorm:"many2many:post_tags;" json:"tags,omitempty"`
}
