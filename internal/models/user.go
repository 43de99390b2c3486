package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User represents a registered account (PostgreSQL)
type User struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Username        string    `json:"username" gorm:"uniqueIndex;size:30"`
	Email           string    `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password        string    `json:"-"`                        // Store hashed password, ignore for JSON serialization
	FullName        string    `json:"full_name"`
	Bio             string    `json:"bio"`
	Link            string    `json:"link"`
	ProfileImageURL string    `json:"profile_image_url"`
	CoverImageURL   string    `json:"cover_image_url"`
	FirebaseUID     string    `json:"firebase_uid,omitempty" gorm:"uniqueIndex"` // Link to Firebase User UID, empty for local accounts
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UserCompact is the trimmed user shape embedded in enriched responses
type UserCompact struct {
	ID              uint   `json:"id"`
	Username        string `json:"username"`
	FullName        string `json:"full_name"`
	ProfileImageURL string `json:"profile_image_url"`
}

// ToCompact converts a User to its compact representation
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:              u.ID,
		Username:        u.Username,
		FullName:        u.FullName,
		ProfileImageURL: u.ProfileImageURL,
	}
}

// SignupRequest defines the request body for local registration
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=2,max=30"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required,min=2,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

// SigninRequest defines the request body for local authentication
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for updating the caller's profile.
// Image fields carry raw payloads (data URIs) handed to the media host, not URLs.
type UpdateProfileRequest struct {
	FullName        string `json:"full_name,omitempty" validate:"omitempty,min=2,max=50"`
	Email           string `json:"email,omitempty" validate:"omitempty,email"`
	Username        string `json:"username,omitempty" validate:"omitempty,min=2,max=30"`
	Bio             string `json:"bio,omitempty" validate:"omitempty,max=200"`
	Link            string `json:"link,omitempty" validate:"omitempty,url"`
	CurrentPassword string `json:"current_password,omitempty"`
	NewPassword     string `json:"new_password,omitempty"`
	ProfileImage    string `json:"profile_image,omitempty"`
	CoverImage      string `json:"cover_image,omitempty"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
