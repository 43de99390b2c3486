package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finchwork/finch/backend/internal/cache"
	"github.com/finchwork/finch/backend/internal/models"
	"github.com/finchwork/finch/backend/internal/repositories"
	"github.com/finchwork/finch/backend/pkg/media"
	"gorm.io/gorm"
)

const (
	// mediaTimeout bounds every media-host call: one synchronous attempt, no retries
	mediaTimeout = 15 * time.Second

	// suggestedUsersLimit caps the suggested-users projection
	suggestedUsersLimit = 4

	feedCachePrefix = "feed:all:"
	feedCacheTTL    = 30 * time.Second
)

// SocialService is the social-action coordinator. Each operation takes the
// acting user's identifier explicitly and sequences the reads and writes
// across the user directory, the post store and the notification feed.
//
// Multi-write operations are not wrapped in a cross-store transaction. Each
// individual write is idempotent (conditional add/remove), but a failure
// after the first write leaves the system partially applied; the error is
// surfaced, never compensated.
type SocialService interface {
	ToggleLike(ctx context.Context, actorID uint, postID string) (liked bool, err error)
	ToggleFollow(actorID, targetID uint) (following bool, err error)
	CreatePost(ctx context.Context, authorID uint, text, image string) (*models.Post, error)
	DeletePost(ctx context.Context, actorID uint, postID string) error
	CommentOnPost(ctx context.Context, actorID uint, postID, text string) (*models.Post, error)

	GetPost(ctx context.Context, postID string) (*models.Post, error)
	GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, error)
	GetFollowingPosts(ctx context.Context, userID uint, skip, limit int64) ([]models.Post, error)
	GetLikedPosts(ctx context.Context, userID uint) ([]models.Post, error)
	GetUserPosts(ctx context.Context, username string, skip, limit int64) ([]models.Post, error)
	SuggestUsers(userID uint) ([]models.User, error)

	GetProfile(username string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, req *models.UpdateProfileRequest) (*models.User, error)
}

type socialService struct {
	userRepository      repositories.UserRepository
	postRepository      repositories.PostRepository
	followRepository    repositories.FollowRepository
	likedPostRepository repositories.LikedPostRepository
	notificationRepo    repositories.NotificationRepository
	mediaHost           media.Host
}

// NewSocialService creates the coordinator over the given stores and media host
func NewSocialService(
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	followRepo repositories.FollowRepository,
	likedPostRepo repositories.LikedPostRepository,
	notificationRepo repositories.NotificationRepository,
	mediaHost media.Host,
) SocialService {
	return &socialService{
		userRepository:      userRepo,
		postRepository:      postRepo,
		followRepository:    followRepo,
		likedPostRepository: likedPostRepo,
		notificationRepo:    notificationRepo,
		mediaHost:           mediaHost,
	}
}

// ToggleLike likes the post if the actor is not in its like set, unlikes it
// otherwise. A like touches three records in order: the post's likes array,
// the actor's liked-post row, the notification append. The author is
// notified even when liking their own post.
func (s *socialService) ToggleLike(ctx context.Context, actorID uint, postID string) (bool, error) {
	if _, err := s.userRepository.GetUserByID(actorID); err != nil {
		return false, wrapUserLookup(err)
	}
	post, err := s.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		return false, wrapPostLookup(err)
	}

	if post.HasLike(actorID) {
		if err := s.postRepository.RemoveLike(ctx, postID, actorID); err != nil {
			return true, wrapPostLookup(err)
		}
		if err := s.likedPostRepository.Delete(actorID, postID); err != nil {
			return true, err
		}
		return false, nil
	}

	if err := s.postRepository.AddLike(ctx, postID, actorID); err != nil {
		return false, wrapPostLookup(err)
	}
	if err := s.likedPostRepository.Create(&models.LikedPost{UserID: actorID, PostID: postID}); err != nil {
		return false, err
	}
	notification := &models.Notification{
		Type:        models.NotificationTypeLike,
		ActorID:     actorID,
		RecipientID: post.AuthorID,
		PostID:      postID,
	}
	if err := s.notificationRepo.CreateNotification(notification); err != nil {
		return false, err
	}
	return true, nil
}

// ToggleFollow follows the target if no edge exists, unfollows otherwise.
// The single follow edge keeps both users' follower/following sets
// consistent by construction.
func (s *socialService) ToggleFollow(actorID, targetID uint) (bool, error) {
	if actorID == targetID {
		return false, fmt.Errorf("%w: cannot follow yourself", ErrInvalidArgument)
	}
	if _, err := s.userRepository.GetUserByID(actorID); err != nil {
		return false, wrapUserLookup(err)
	}
	if _, err := s.userRepository.GetUserByID(targetID); err != nil {
		return false, wrapUserLookup(err)
	}

	isFollowing, err := s.followRepository.IsFollowing(actorID, targetID)
	if err != nil {
		return false, err
	}

	if isFollowing {
		if err := s.followRepository.DeleteFollow(actorID, targetID); err != nil {
			return true, err
		}
		return false, nil
	}

	if err := s.followRepository.CreateFollow(&models.Follow{FollowerID: actorID, FollowingID: targetID}); err != nil {
		return false, err
	}
	notification := &models.Notification{
		Type:        models.NotificationTypeFollow,
		ActorID:     actorID,
		RecipientID: targetID,
	}
	if err := s.notificationRepo.CreateNotification(notification); err != nil {
		return true, err
	}
	return true, nil
}

// CreatePost creates a post for the author. A media payload is uploaded to
// the media host before the document is persisted; upload failure aborts the
// action and nothing is written.
func (s *socialService) CreatePost(ctx context.Context, authorID uint, text, image string) (*models.Post, error) {
	if _, err := s.userRepository.GetUserByID(authorID); err != nil {
		return nil, wrapUserLookup(err)
	}
	if text == "" && image == "" {
		return nil, fmt.Errorf("%w: text or image is required", ErrInvalidArgument)
	}

	imageURL := ""
	if image != "" {
		url, err := s.uploadMedia(ctx, image)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	post := &models.Post{
		AuthorID: authorID,
		Text:     text,
		ImageURL: imageURL,
	}
	if err := s.postRepository.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	s.invalidateFeedCache(ctx)
	return post, nil
}

// DeletePost deletes a post owned by the actor. The media-host asset is
// removed first; notifications generated from likes on the post are left
// behind.
func (s *socialService) DeletePost(ctx context.Context, actorID uint, postID string) error {
	post, err := s.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		return wrapPostLookup(err)
	}
	if post.AuthorID != actorID {
		return fmt.Errorf("%w: only the author can delete a post", ErrUnauthorized)
	}

	if post.ImageURL != "" {
		if err := s.deleteMedia(ctx, post.ImageURL); err != nil {
			return err
		}
	}
	if err := s.postRepository.DeletePost(ctx, postID); err != nil {
		return wrapPostLookup(err)
	}
	s.invalidateFeedCache(ctx)
	return nil
}

// CommentOnPost appends a comment to the post's embedded sequence. Comments
// do not generate notifications.
func (s *socialService) CommentOnPost(ctx context.Context, actorID uint, postID, text string) (*models.Post, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", ErrInvalidArgument)
	}
	if _, err := s.userRepository.GetUserByID(actorID); err != nil {
		return nil, wrapUserLookup(err)
	}
	if _, err := s.postRepository.GetPostByID(ctx, postID); err != nil {
		return nil, wrapPostLookup(err)
	}

	comment := models.Comment{
		AuthorID:  actorID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := s.postRepository.AddComment(ctx, postID, comment); err != nil {
		return nil, wrapPostLookup(err)
	}
	return s.postRepository.GetPostByID(ctx, postID)
}

// GetPost retrieves a single post by ID
func (s *socialService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		return nil, wrapPostLookup(err)
	}
	return post, nil
}

// GetAllPosts returns every post, newest first, through the feed cache
func (s *socialService) GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	posts := []models.Post{}
	key := fmt.Sprintf("%s%d:%d", feedCachePrefix, skip, limit)
	err := cache.CacheAside(ctx, key, &posts, feedCacheTTL, func() error {
		fetched, err := s.postRepository.GetAllPosts(ctx, skip, limit)
		if err != nil {
			return err
		}
		posts = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetFollowingPosts returns posts authored by users the caller follows,
// newest first. Following nobody yields an empty slice, not an error.
func (s *socialService) GetFollowingPosts(ctx context.Context, userID uint, skip, limit int64) ([]models.Post, error) {
	if _, err := s.userRepository.GetUserByID(userID); err != nil {
		return nil, wrapUserLookup(err)
	}
	followingIDs, err := s.followRepository.GetFollowingIDs(userID)
	if err != nil {
		return nil, err
	}
	return s.postRepository.GetPostsByAuthorIDs(ctx, followingIDs, skip, limit)
}

// GetLikedPosts returns the posts a user has liked. Liked posts that were
// deleted since are skipped.
func (s *socialService) GetLikedPosts(ctx context.Context, userID uint) ([]models.Post, error) {
	if _, err := s.userRepository.GetUserByID(userID); err != nil {
		return nil, wrapUserLookup(err)
	}
	postIDs, err := s.likedPostRepository.GetPostIDsByUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.postRepository.GetPostsByIDs(ctx, postIDs)
}

// GetUserPosts returns the posts authored by the user with the given
// username, newest first
func (s *socialService) GetUserPosts(ctx context.Context, username string, skip, limit int64) ([]models.Post, error) {
	user, err := s.userRepository.GetUserByUsername(username)
	if err != nil {
		return nil, wrapUserLookup(err)
	}
	return s.postRepository.GetPostsByAuthorID(ctx, user.ID, skip, limit)
}

// SuggestUsers returns a small random sample of users the caller is not
// connected to. The sample may be smaller than the cap.
func (s *socialService) SuggestUsers(userID uint) ([]models.User, error) {
	if _, err := s.userRepository.GetUserByID(userID); err != nil {
		return nil, wrapUserLookup(err)
	}
	return s.userRepository.SuggestUsers(userID, suggestedUsersLimit)
}

func (s *socialService) uploadMedia(ctx context.Context, payload string) (string, error) {
	if s.mediaHost == nil {
		return "", fmt.Errorf("media host not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, mediaTimeout)
	defer cancel()
	return s.mediaHost.Upload(ctx, payload)
}

func (s *socialService) deleteMedia(ctx context.Context, url string) error {
	if s.mediaHost == nil {
		return fmt.Errorf("media host not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, mediaTimeout)
	defer cancel()
	return s.mediaHost.Delete(ctx, url)
}

func (s *socialService) invalidateFeedCache(ctx context.Context) {
	_ = cache.DeleteByPrefix(ctx, feedCachePrefix)
}

func wrapUserLookup(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: user", ErrNotFound)
	}
	return err
}

func wrapPostLookup(err error) error {
	if errors.Is(err, repositories.ErrPostNotFound) {
		return fmt.Errorf("%w: post", ErrNotFound)
	}
	return err
}
