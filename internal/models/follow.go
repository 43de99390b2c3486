package models

import "time"

// Follow represents a directed follow edge. The composite unique index makes
// the edge the single authoritative record of the relationship: the
// followers and following sets of both users are computed joins over it, so
// they can never disagree.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}
