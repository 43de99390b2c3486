package repositories

import (
	"github.com/finchwork/finch/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikedPostRepository defines the interface for the Postgres side of the
// like relationship (the user -> liked posts direction)
type LikedPostRepository interface {
	Create(likedPost *models.LikedPost) error
	Delete(userID uint, postID string) error
	GetPostIDsByUserID(userID uint) ([]string, error)
	HasUserLikedPost(userID uint, postID string) (bool, error)
}

// PostgresLikedPostRepository implements LikedPostRepository for PostgreSQL
type PostgresLikedPostRepository struct {
	db *gorm.DB
}

// NewPostgresLikedPostRepository creates a new PostgresLikedPostRepository
func NewPostgresLikedPostRepository(db *gorm.DB) *PostgresLikedPostRepository {
	return &PostgresLikedPostRepository{db: db}
}

// Create inserts a liked-post row, add-if-absent via the composite unique index
func (r *PostgresLikedPostRepository) Create(likedPost *models.LikedPost) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(likedPost).Error
}

// Delete removes a liked-post row if present
func (r *PostgresLikedPostRepository) Delete(userID uint, postID string) error {
	return r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.LikedPost{}).Error
}

// GetPostIDsByUserID returns the IDs of all posts the user has liked
func (r *PostgresLikedPostRepository) GetPostIDsByUserID(userID uint) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.LikedPost{}).Where("user_id = ?", userID).Order("created_at DESC").Pluck("post_id", &ids).Error
	return ids, err
}

// HasUserLikedPost checks if a user has liked a specific post
func (r *PostgresLikedPostRepository) HasUserLikedPost(userID uint, postID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.LikedPost{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
