// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a user's post in the Meridian application.
// Coordinates are optional and only filled in when a location name could be
// geocoded at creation time.
type Post struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Text         string      `gorm:"type:text;not null" json:"text"`
	ImageURL     string      `json:"image_url"`
	UserID       uint        `gorm:"not null;index" json:"user_id"`
	User         User        `gorm:"foreignKey:UserID" json:"user"`
	Images       []PostImage `gorm:"foreignKey:PostID" json:"images,omitempty"`
	Latitude     *float64    `json:"latitude,omitempty"`
	Longitude    *float64    `json:"longitude,omitempty"`
	LocationName string      `json:"location_name,omitempty"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// DislikesCount is not persisted; computed at query time
	DislikesCount int `gorm:"->" json:"dislikes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// UserReaction is the requesting user's reaction kind, "" when none (computed)
	UserReaction string         `gorm:"->" json:"user_reaction,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// PostImage is an additional image attached to a post, displayed in Order.
type PostImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	ImageURL  string    `gorm:"not null" json:"image_url"`
	Order     int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

// PostStats is a point-in-time snapshot of engagement counts for a post.
// TotalReactions equals LikesCount + DislikesCount; no other kinds exist.
type PostStats struct {
	LikesCount     int64 `json:"likes_count"`
	DislikesCount  int64 `json:"dislikes_count"`
	CommentsCount  int64 `json:"comments_count"`
	TotalReactions int64 `json:"total_reactions"`
}
