package models

import "time"

// LikedPost is the Postgres side of the like relationship, mirroring the
// likes array on the Mongo post document. The two sides are updated
// independently without a cross-store transaction; the unique index keeps
// each row write idempotent under concurrent toggles.
type LikedPost struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_post_like"`
	PostID    string    `json:"post_id" gorm:"index;uniqueIndex:idx_user_post_like"` // MongoDB ObjectID as string
	CreatedAt time.Time `json:"created_at"`
}
