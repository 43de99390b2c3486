package models

import "time"

// Notification types emitted by the social-action coordinator
const (
	NotificationTypeLike   = "like"
	NotificationTypeFollow = "follow"
)

// Notification represents a fanned-out user notification (PostgreSQL).
// Created only as a side effect of like and follow actions; a deleted post
// leaves its notifications behind.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"` // like, follow
	ActorID     uint      `json:"actor_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	PostID      string    `json:"post_id,omitempty"` // MongoDB ObjectID as string, set for like notifications
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
