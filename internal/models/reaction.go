package models

import "time"

// ReactionKind is the type of a user's reaction to a post.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// ParseReactionKind validates a raw reaction value from a request body.
func ParseReactionKind(raw string) (ReactionKind, error) {
	switch ReactionKind(raw) {
	case ReactionLike, ReactionDislike:
		return ReactionKind(raw), nil
	default:
		return "", NewInvalidReactionError(raw)
	}
}

// Reaction is a user's like or dislike on a post.
// The combination of UserID and PostID is unique: a user holds at most one
// reaction per post at any time. Rows are hard-deleted on toggle-off so the
// unique index stays authoritative; there is no soft delete here.
type Reaction struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	UserID    uint         `gorm:"not null;uniqueIndex:idx_reactions_user_post" json:"user_id"`
	PostID    uint         `gorm:"not null;uniqueIndex:idx_reactions_user_post" json:"post_id"`
	Kind      ReactionKind `gorm:"type:varchar(7);not null" json:"kind"`
	CreatedAt time.Time    `json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
	Post Post `gorm:"foreignKey:PostID" json:"-"`
}
