// Package seed creates demo data for development databases. The multi-store
// actions (posts, likes, follows) go through the social coordinator so the
// document store, the relational rows and the notification feed stay
// consistent with each other.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/finchwork/finch/backend/internal/models"
	"github.com/finchwork/finch/backend/internal/repositories"
	"github.com/finchwork/finch/backend/internal/service"
	"golang.org/x/crypto/bcrypt"
)

// Factory builds demo entities and persists them through the repositories
// and the coordinator.
type Factory struct {
	userRepo repositories.UserRepository
	social   service.SocialService
	rand     *rand.Rand
}

// NewFactory creates a Factory over the given user repository and coordinator.
func NewFactory(userRepo repositories.UserRepository, social service.SocialService) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		userRepo: userRepo,
		social:   social,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a sample user. All seeded accounts share the password
// "password123" so they can be signed into during development.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		FullName: gofakeit.Name(),
		Bio:      gofakeit.Sentence(10),
		Password: string(hashedPassword),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.userRepo.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost creates a text post for the given user through the coordinator.
func (f *Factory) CreatePost(ctx context.Context, user *models.User) (*models.Post, error) {
	return f.social.CreatePost(ctx, user.ID, gofakeit.Paragraph(1, 2, 8, " "), "")
}

// CreateLike toggles a like from the user on the post. Seeding only ever
// likes once per (user, post) pair, so the toggle always lands on "liked".
func (f *Factory) CreateLike(ctx context.Context, user *models.User, post *models.Post) error {
	_, err := f.social.ToggleLike(ctx, user.ID, post.ID.Hex())
	return err
}

// CreateFollow makes follower follow target.
func (f *Factory) CreateFollow(follower, target *models.User) error {
	_, err := f.social.ToggleFollow(follower.ID, target.ID)
	return err
}

// CreateComment appends a comment from the user on the post.
func (f *Factory) CreateComment(ctx context.Context, user *models.User, post *models.Post) error {
	_, err := f.social.CommentOnPost(ctx, user.ID, post.ID.Hex(), gofakeit.Sentence(8))
	return err
}

// Pick returns a random element of users.
func (f *Factory) Pick(users []*models.User) *models.User {
	return users[f.rand.Intn(len(users))]
}
