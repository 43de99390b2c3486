package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a social media post stored in MongoDB. The document owns
// its likes array and embedded comments sequence; both are mutated with
// conditional updates ($addToSet/$pull/$push) so each write is idempotent.
type Post struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID  uint               `json:"author_id" bson:"author_id"` // immutable after creation
	Text      string             `json:"text" bson:"text"`
	ImageURL  string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Likes     []uint             `json:"likes" bson:"likes"`
	Comments  []Comment          `json:"comments" bson:"comments"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// Comment is a single entry in a post's embedded comments sequence
type Comment struct {
	AuthorID  uint      `json:"author_id" bson:"author_id"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// HasLike reports whether the given user is in the post's like set
func (p *Post) HasLike(userID uint) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// CreatePostRequest defines the request body for creating a new post.
// Image carries the raw payload (data URI) handed to the media host.
type CreatePostRequest struct {
	Text  string `json:"text" validate:"omitempty,max=500"`
	Image string `json:"image,omitempty"`
}

// CreateCommentRequest defines the request body for commenting on a post
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}
