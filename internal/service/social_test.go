package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/finchwork/finch/backend/internal/models"
	"github.com/finchwork/finch/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// --- in-memory fakes ---

type memUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[uint]*models.User{}, nextID: 1}
}

func (r *memUserRepo) CreateUser(user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) GetUserByID(id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) GetUserByUsername(username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	for _, u := range r.users {
		if u.FirebaseUID == firebaseUID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) GetUsersByIDs(ids []uint) ([]models.User, error) {
	out := []models.User{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *memUserRepo) UpdateUser(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) SuggestUsers(forUserID uint, limit int) ([]models.User, error) {
	out := []models.User{}
	for _, u := range r.users {
		if u.ID == forUserID {
			continue
		}
		out = append(out, *u)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *memUserRepo) SearchUsers(query string) ([]models.User, error) {
	return nil, nil
}

type memPostRepo struct {
	posts map[string]*models.Post
	order []string
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: map[string]*models.Post{}}
}

func (r *memPostRepo) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	if post.Likes == nil {
		post.Likes = []uint{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	r.posts[post.ID.Hex()] = post
	r.order = append(r.order, post.ID.Hex())
	return nil
}

func (r *memPostRepo) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	if p, ok := r.posts[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, repositories.ErrPostNotFound
}

func (r *memPostRepo) GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	out := []models.Post{}
	for i := len(r.order) - 1; i >= 0; i-- {
		out = append(out, *r.posts[r.order[i]])
	}
	return out, nil
}

func (r *memPostRepo) GetPostsByAuthorID(ctx context.Context, authorID uint, skip, limit int64) ([]models.Post, error) {
	out := []models.Post{}
	for i := len(r.order) - 1; i >= 0; i-- {
		if p := r.posts[r.order[i]]; p.AuthorID == authorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memPostRepo) GetPostsByAuthorIDs(ctx context.Context, authorIDs []uint, skip, limit int64) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, nil
	}
	wanted := map[uint]bool{}
	for _, id := range authorIDs {
		wanted[id] = true
	}
	out := []models.Post{}
	for i := len(r.order) - 1; i >= 0; i-- {
		if p := r.posts[r.order[i]]; wanted[p.AuthorID] {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memPostRepo) GetPostsByIDs(ctx context.Context, ids []string) ([]models.Post, error) {
	out := []models.Post{}
	for _, id := range ids {
		if p, ok := r.posts[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memPostRepo) DeletePost(ctx context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return repositories.ErrPostNotFound
	}
	delete(r.posts, id)
	for i, hex := range r.order {
		if hex == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memPostRepo) AddLike(ctx context.Context, postID string, userID uint) error {
	p, ok := r.posts[postID]
	if !ok {
		return repositories.ErrPostNotFound
	}
	if !p.HasLike(userID) {
		p.Likes = append(p.Likes, userID)
	}
	return nil
}

func (r *memPostRepo) RemoveLike(ctx context.Context, postID string, userID uint) error {
	p, ok := r.posts[postID]
	if !ok {
		return repositories.ErrPostNotFound
	}
	for i, id := range p.Likes {
		if id == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memPostRepo) AddComment(ctx context.Context, postID string, comment models.Comment) error {
	p, ok := r.posts[postID]
	if !ok {
		return repositories.ErrPostNotFound
	}
	p.Comments = append(p.Comments, comment)
	return nil
}

type memFollowRepo struct {
	edges map[[2]uint]bool
}

func newMemFollowRepo() *memFollowRepo {
	return &memFollowRepo{edges: map[[2]uint]bool{}}
}

func (r *memFollowRepo) CreateFollow(follow *models.Follow) error {
	r.edges[[2]uint{follow.FollowerID, follow.FollowingID}] = true
	return nil
}

func (r *memFollowRepo) DeleteFollow(followerID, followingID uint) error {
	delete(r.edges, [2]uint{followerID, followingID})
	return nil
}

func (r *memFollowRepo) IsFollowing(followerID, followingID uint) (bool, error) {
	return r.edges[[2]uint{followerID, followingID}], nil
}

func (r *memFollowRepo) GetFollowers(userID uint) ([]models.User, error) { return nil, nil }
func (r *memFollowRepo) GetFollowing(userID uint) ([]models.User, error) { return nil, nil }

func (r *memFollowRepo) GetFollowingIDs(userID uint) ([]uint, error) {
	out := []uint{}
	for edge := range r.edges {
		if edge[0] == userID {
			out = append(out, edge[1])
		}
	}
	return out, nil
}

func (r *memFollowRepo) GetFollowersCount(userID uint) (int64, error) {
	var n int64
	for edge := range r.edges {
		if edge[1] == userID {
			n++
		}
	}
	return n, nil
}

func (r *memFollowRepo) GetFollowingCount(userID uint) (int64, error) {
	var n int64
	for edge := range r.edges {
		if edge[0] == userID {
			n++
		}
	}
	return n, nil
}

type likedKey struct {
	userID uint
	postID string
}

type memLikedPostRepo struct {
	rows       map[likedKey]bool
	order      []likedKey
	failCreate error
}

func newMemLikedPostRepo() *memLikedPostRepo {
	return &memLikedPostRepo{rows: map[likedKey]bool{}}
}

func (r *memLikedPostRepo) Create(likedPost *models.LikedPost) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	key := likedKey{likedPost.UserID, likedPost.PostID}
	if !r.rows[key] {
		r.rows[key] = true
		r.order = append(r.order, key)
	}
	return nil
}

func (r *memLikedPostRepo) Delete(userID uint, postID string) error {
	key := likedKey{userID, postID}
	delete(r.rows, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memLikedPostRepo) GetPostIDsByUserID(userID uint) ([]string, error) {
	out := []string{}
	for i := len(r.order) - 1; i >= 0; i-- {
		if r.order[i].userID == userID {
			out = append(out, r.order[i].postID)
		}
	}
	return out, nil
}

func (r *memLikedPostRepo) HasUserLikedPost(userID uint, postID string) (bool, error) {
	return r.rows[likedKey{userID, postID}], nil
}

type memNotificationRepo struct {
	notifications []models.Notification
	nextID        uint
}

func newMemNotificationRepo() *memNotificationRepo {
	return &memNotificationRepo{nextID: 1}
}

func (r *memNotificationRepo) CreateNotification(notification *models.Notification) error {
	notification.ID = r.nextID
	r.nextID++
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *memNotificationRepo) GetByID(notificationID uint) (*models.Notification, error) {
	for i := range r.notifications {
		if r.notifications[i].ID == notificationID {
			return &r.notifications[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memNotificationRepo) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	out := []models.Notification{}
	for _, n := range r.notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memNotificationRepo) GetUnreadCount(recipientID uint) (int64, error) {
	var n int64
	for _, notif := range r.notifications {
		if notif.RecipientID == recipientID && !notif.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *memNotificationRepo) MarkAllAsRead(recipientID uint) error {
	for i := range r.notifications {
		if r.notifications[i].RecipientID == recipientID {
			r.notifications[i].IsRead = true
		}
	}
	return nil
}

func (r *memNotificationRepo) DeleteByID(notificationID uint) error {
	for i := range r.notifications {
		if r.notifications[i].ID == notificationID {
			r.notifications = append(r.notifications[:i], r.notifications[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memNotificationRepo) DeleteAllForRecipient(recipientID uint) error {
	kept := r.notifications[:0]
	for _, n := range r.notifications {
		if n.RecipientID != recipientID {
			kept = append(kept, n)
		}
	}
	r.notifications = kept
	return nil
}

type fakeMediaHost struct {
	uploads    int
	deleted    []string
	failUpload error
}

func (h *fakeMediaHost) Upload(ctx context.Context, payload string) (string, error) {
	if h.failUpload != nil {
		return "", h.failUpload
	}
	h.uploads++
	return fmt.Sprintf("https://media.example.com/asset-%d.jpg", h.uploads), nil
}

func (h *fakeMediaHost) Delete(ctx context.Context, url string) error {
	h.deleted = append(h.deleted, url)
	return nil
}

type testEnv struct {
	users         *memUserRepo
	posts         *memPostRepo
	follows       *memFollowRepo
	likedPosts    *memLikedPostRepo
	notifications *memNotificationRepo
	media         *fakeMediaHost
	svc           SocialService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		users:         newMemUserRepo(),
		posts:         newMemPostRepo(),
		follows:       newMemFollowRepo(),
		likedPosts:    newMemLikedPostRepo(),
		notifications: newMemNotificationRepo(),
		media:         &fakeMediaHost{},
	}
	env.svc = NewSocialService(env.users, env.posts, env.follows, env.likedPosts, env.notifications, env.media)
	return env
}

func (e *testEnv) addUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, e.users.CreateUser(user))
	return user
}

func (e *testEnv) addPost(t *testing.T, authorID uint, text string) *models.Post {
	t.Helper()
	post, err := e.svc.CreatePost(context.Background(), authorID, text, "")
	require.NoError(t, err)
	return post
}

// --- likes ---

func TestToggleLikeThenUnlike(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.addUser(t, "author")
	liker := env.addUser(t, "liker")
	post := env.addPost(t, author.ID, "hello")

	liked, err := env.svc.ToggleLike(ctx, liker.ID, post.ID.Hex())
	require.NoError(t, err)
	assert.True(t, liked)

	got, err := env.posts.GetPostByID(ctx, post.ID.Hex())
	require.NoError(t, err)
	assert.True(t, got.HasLike(liker.ID))

	hasRow, err := env.likedPosts.HasUserLikedPost(liker.ID, post.ID.Hex())
	require.NoError(t, err)
	assert.True(t, hasRow)

	require.Len(t, env.notifications.notifications, 1)
	notif := env.notifications.notifications[0]
	assert.Equal(t, models.NotificationTypeLike, notif.Type)
	assert.Equal(t, liker.ID, notif.ActorID)
	assert.Equal(t, author.ID, notif.RecipientID)
	assert.Equal(t, post.ID.Hex(), notif.PostID)

	liked, err = env.svc.ToggleLike(ctx, liker.ID, post.ID.Hex())
	require.NoError(t, err)
	assert.False(t, liked)

	got, err = env.posts.GetPostByID(ctx, post.ID.Hex())
	require.NoError(t, err)
	assert.False(t, got.HasLike(liker.ID))

	hasRow, err = env.likedPosts.HasUserLikedPost(liker.ID, post.ID.Hex())
	require.NoError(t, err)
	assert.False(t, hasRow)

	// unliking does not retract or add notifications
	assert.Len(t, env.notifications.notifications, 1)
}

func TestToggleLikeOwnPostStillNotifies(t *testing.T) {
	env := newTestEnv(t)
	author := env.addUser(t, "author")
	post := env.addPost(t, author.ID, "my own post")

	liked, err := env.svc.ToggleLike(context.Background(), author.ID, post.ID.Hex())
	require.NoError(t, err)
	assert.True(t, liked)

	require.Len(t, env.notifications.notifications, 1)
	assert.Equal(t, author.ID, env.notifications.notifications[0].ActorID)
	assert.Equal(t, author.ID, env.notifications.notifications[0].RecipientID)
}

func TestToggleLikeMissingActorOrPost(t *testing.T) {
	env := newTestEnv(t)
	author := env.addUser(t, "author")
	post := env.addPost(t, author.ID, "hello")

	_, err := env.svc.ToggleLike(context.Background(), 999, post.ID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.svc.ToggleLike(context.Background(), author.ID, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleLikePartialFailureLeavesFirstWrite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.addUser(t, "author")
	liker := env.addUser(t, "liker")
	post := env.addPost(t, author.ID, "hello")

	env.likedPosts.failCreate = errors.New("connection reset")

	_, err := env.svc.ToggleLike(ctx, liker.ID, post.ID.Hex())
	require.Error(t, err)

	// the document-store write stays applied; nothing is compensated
	got, err := env.posts.GetPostByID(ctx, post.ID.Hex())
	require.NoError(t, err)
	assert.True(t, got.HasLike(liker.ID))
	assert.Empty(t, env.notifications.notifications)
}

// --- follows ---

func TestToggleFollowThenUnfollow(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "alice")
	bob := env.addUser(t, "bob")

	following, err := env.svc.ToggleFollow(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	isFollowing, err := env.follows.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, isFollowing)

	// the edge is single-sided by construction: bob does not follow alice
	reverse, err := env.follows.IsFollowing(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, reverse)

	require.Len(t, env.notifications.notifications, 1)
	assert.Equal(t, models.NotificationTypeFollow, env.notifications.notifications[0].Type)
	assert.Equal(t, bob.ID, env.notifications.notifications[0].RecipientID)

	following, err = env.svc.ToggleFollow(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)

	isFollowing, err = env.follows.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, isFollowing)
	assert.Len(t, env.notifications.notifications, 1)
}

func TestToggleFollowSelfRejected(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "alice")

	_, err := env.svc.ToggleFollow(alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestToggleFollowMissingTarget(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "alice")

	_, err := env.svc.ToggleFollow(alice.ID, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

// --- posts ---

func TestCreatePostRequiresTextOrImage(t *testing.T) {
	env := newTestEnv(t)
	author := env.addUser(t, "author")

	_, err := env.svc.CreatePost(context.Background(), author.ID, "", "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCreatePostUploadsMediaFirst(t *testing.T) {
	env := newTestEnv(t)
	author := env.addUser(t, "author")

	post, err := env.svc.CreatePost(context.Background(), author.ID, "with picture", "data:image/jpeg;base64,xyz")
	require.NoError(t, err)
	assert.Equal(t, "https://media.example.com/asset-1.jpg", post.ImageURL)
	assert.Equal(t, 1, env.media.uploads)
}

func TestCreatePostUploadFailureWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	author := env.addUser(t, "author")
	env.media.failUpload = errors.New("host unreachable")

	_, err := env.svc.CreatePost(context.Background(), author.ID, "with picture", "data:image/jpeg;base64,xyz")
	require.Error(t, err)
	assert.Empty(t, env.posts.posts)
}

func TestDeletePostOnlyByAuthor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.addUser(t, "author")
	other := env.addUser(t, "other")
	post := env.addPost(t, author.ID, "mine")

	err := env.svc.DeletePost(ctx, other.ID, post.ID.Hex())
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, env.svc.DeletePost(ctx, author.ID, post.ID.Hex()))
	_, err = env.posts.GetPostByID(ctx, post.ID.Hex())
	assert.ErrorIs(t, err, repositories.ErrPostNotFound)
}

func TestDeletePostRemovesMediaAsset(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.addUser(t, "author")

	post, err := env.svc.CreatePost(ctx, author.ID, "with picture", "data:image/jpeg;base64,xyz")
	require.NoError(t, err)

	require.NoError(t, env.svc.DeletePost(ctx, author.ID, post.ID.Hex()))
	require.Len(t, env.media.deleted, 1)
	assert.Equal(t, post.ImageURL, env.media.deleted[0])
}

func TestDeletePostLeavesLikeNotificationsBehind(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.addUser(t, "author")
	liker := env.addUser(t, "liker")
	post := env.addPost(t, author.ID, "soon gone")

	_, err := env.svc.ToggleLike(ctx, liker.ID, post.ID.Hex())
	require.NoError(t, err)
	require.NoError(t, env.svc.DeletePost(ctx, author.ID, post.ID.Hex()))

	// the like notification still references the deleted post
	require.Len(t, env.notifications.notifications, 1)
	assert.Equal(t, post.ID.Hex(), env.notifications.notifications[0].PostID)
}

// --- comments ---

func TestCommentOnPost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.addUser(t, "author")
	commenter := env.addUser(t, "commenter")
	post := env.addPost(t, author.ID, "discuss")

	updated, err := env.svc.CommentOnPost(ctx, commenter.ID, post.ID.Hex(), "nice one")
	require.NoError(t, err)
	require.Len(t, updated.Comments, 1)
	assert.Equal(t, commenter.ID, updated.Comments[0].AuthorID)
	assert.Equal(t, "nice one", updated.Comments[0].Text)

	// comments never notify
	assert.Empty(t, env.notifications.notifications)
}

func TestCommentOnPostRequiresText(t *testing.T) {
	env := newTestEnv(t)
	author := env.addUser(t, "author")
	post := env.addPost(t, author.ID, "discuss")

	_, err := env.svc.CommentOnPost(context.Background(), author.ID, post.ID.Hex(), "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// --- feeds ---

func TestGetFollowingPostsEmptyWhenFollowingNobody(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "alice")
	bob := env.addUser(t, "bob")
	env.addPost(t, bob.ID, "unseen")

	posts, err := env.svc.GetFollowingPosts(context.Background(), alice.ID, 0, 20)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestGetFollowingPostsOnlyFollowedAuthors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.addUser(t, "alice")
	bob := env.addUser(t, "bob")
	carol := env.addUser(t, "carol")
	env.addPost(t, bob.ID, "from bob")
	env.addPost(t, carol.ID, "from carol")

	_, err := env.svc.ToggleFollow(alice.ID, bob.ID)
	require.NoError(t, err)

	posts, err := env.svc.GetFollowingPosts(ctx, alice.ID, 0, 20)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, bob.ID, posts[0].AuthorID)
}

func TestGetLikedPostsSkipsDeleted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.addUser(t, "author")
	liker := env.addUser(t, "liker")
	kept := env.addPost(t, author.ID, "kept")
	doomed := env.addPost(t, author.ID, "doomed")

	_, err := env.svc.ToggleLike(ctx, liker.ID, kept.ID.Hex())
	require.NoError(t, err)
	_, err = env.svc.ToggleLike(ctx, liker.ID, doomed.ID.Hex())
	require.NoError(t, err)
	require.NoError(t, env.svc.DeletePost(ctx, author.ID, doomed.ID.Hex()))

	posts, err := env.svc.GetLikedPosts(ctx, liker.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, kept.ID, posts[0].ID)
}

// --- suggestions ---

func TestSuggestUsersCapped(t *testing.T) {
	env := newTestEnv(t)
	me := env.addUser(t, "me")
	for i := 0; i < 10; i++ {
		env.addUser(t, fmt.Sprintf("stranger%d", i))
	}

	suggested, err := env.svc.SuggestUsers(me.ID)
	require.NoError(t, err)
	assert.Len(t, suggested, suggestedUsersLimit)
	for _, u := range suggested {
		assert.NotEqual(t, me.ID, u.ID)
	}
}

// --- profile ---

func TestUpdateProfilePasswordChange(t *testing.T) {
	env := newTestEnv(t)
	hashed, err := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Username: "alice", Email: "alice@example.com", Password: string(hashed)}
	require.NoError(t, env.users.CreateUser(user))
	ctx := context.Background()

	// only one of the pair provided
	_, err = env.svc.UpdateProfile(ctx, user.ID, &models.UpdateProfileRequest{NewPassword: "newpassword"})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// wrong current password
	_, err = env.svc.UpdateProfile(ctx, user.ID, &models.UpdateProfileRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newpassword",
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// too short
	_, err = env.svc.UpdateProfile(ctx, user.ID, &models.UpdateProfileRequest{
		CurrentPassword: "oldpassword",
		NewPassword:     "abc",
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	updated, err := env.svc.UpdateProfile(ctx, user.ID, &models.UpdateProfileRequest{
		CurrentPassword: "oldpassword",
		NewPassword:     "newpassword",
	})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("newpassword")))
}

func TestUpdateProfileReplacesProfileImage(t *testing.T) {
	env := newTestEnv(t)
	user := &models.User{
		Username:        "alice",
		Email:           "alice@example.com",
		ProfileImageURL: "https://media.example.com/old.jpg",
	}
	require.NoError(t, env.users.CreateUser(user))

	updated, err := env.svc.UpdateProfile(context.Background(), user.ID, &models.UpdateProfileRequest{
		ProfileImage: "data:image/jpeg;base64,xyz",
	})
	require.NoError(t, err)

	// the old asset is deleted before the new payload is uploaded
	require.Len(t, env.media.deleted, 1)
	assert.Equal(t, "https://media.example.com/old.jpg", env.media.deleted[0])
	assert.Equal(t, "https://media.example.com/asset-1.jpg", updated.ProfileImageURL)
}

func TestUpdateProfilePartialFields(t *testing.T) {
	env := newTestEnv(t)
	user := &models.User{Username: "alice", Email: "alice@example.com", Bio: "old bio", FullName: "Alice A"}
	require.NoError(t, env.users.CreateUser(user))

	updated, err := env.svc.UpdateProfile(context.Background(), user.ID, &models.UpdateProfileRequest{Bio: "new bio"})
	require.NoError(t, err)
	assert.Equal(t, "new bio", updated.Bio)
	assert.Equal(t, "Alice A", updated.FullName)
}
