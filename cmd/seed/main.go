package main

import (
	"context"
	"flag"
	"log"

	"github.com/finchwork/finch/backend/internal/models"
	"github.com/finchwork/finch/backend/internal/repositories"
	"github.com/finchwork/finch/backend/internal/seed"
	"github.com/finchwork/finch/backend/internal/service"
	"github.com/finchwork/finch/backend/pkg/config"
)

func main() {
	users := flag.Int("users", 10, "number of users to create")
	posts := flag.Int("posts", 30, "number of posts to create")
	likes := flag.Int("likes", 60, "number of likes to attempt")
	follows := flag.Int("follows", 20, "number of follow edges to attempt")
	comments := flag.Int("comments", 40, "number of comments to create")
	flag.Parse()

	cfg := config.Load()
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	if err := db.Postgres.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.LikedPost{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	postRepo := repositories.NewMongoPostRepository(db.Mongo.Database("finch"))
	followRepo := repositories.NewPostgresFollowRepository(db.Postgres)
	likedPostRepo := repositories.NewPostgresLikedPostRepository(db.Postgres)
	notificationRepo := repositories.NewPostgresNotificationRepository(db.Postgres)

	// Seed posts carry no media, so no media host is needed.
	social := service.NewSocialService(userRepo, postRepo, followRepo, likedPostRepo, notificationRepo, nil)
	factory := seed.NewFactory(userRepo, social)
	ctx := context.Background()

	seededUsers := make([]*models.User, 0, *users)
	for i := 0; i < *users; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			log.Fatalf("Failed to create user: %v", err)
		}
		seededUsers = append(seededUsers, user)
	}
	log.Printf("Created %d users.", len(seededUsers))

	seededPosts := make([]*models.Post, 0, *posts)
	for i := 0; i < *posts; i++ {
		post, err := factory.CreatePost(ctx, factory.Pick(seededUsers))
		if err != nil {
			log.Fatalf("Failed to create post: %v", err)
		}
		seededPosts = append(seededPosts, post)
	}
	log.Printf("Created %d posts.", len(seededPosts))

	// Following is a toggle, so a repeated (follower, target) pair would undo itself.
	followedPairs := make(map[[2]uint]bool)
	for i := 0; i < *follows; i++ {
		follower, target := factory.Pick(seededUsers), factory.Pick(seededUsers)
		pair := [2]uint{follower.ID, target.ID}
		if follower.ID == target.ID || followedPairs[pair] {
			continue
		}
		followedPairs[pair] = true
		if err := factory.CreateFollow(follower, target); err != nil {
			log.Fatalf("Failed to create follow: %v", err)
		}
	}
	log.Println("Follow edges created.")

	// Liking is a toggle, so a repeated (user, post) pair would undo itself.
	likedPairs := make(map[[2]uint]bool)
	for i := 0; i < *likes; i++ {
		user := factory.Pick(seededUsers)
		post := seededPosts[i%len(seededPosts)]
		pair := [2]uint{user.ID, uint(i % len(seededPosts))}
		if likedPairs[pair] {
			continue
		}
		likedPairs[pair] = true
		if err := factory.CreateLike(ctx, user, post); err != nil {
			log.Fatalf("Failed to create like: %v", err)
		}
	}
	log.Println("Likes created.")

	for i := 0; i < *comments; i++ {
		if err := factory.CreateComment(ctx, factory.Pick(seededUsers), seededPosts[i%len(seededPosts)]); err != nil {
			log.Fatalf("Failed to create comment: %v", err)
		}
	}
	log.Println("Comments created. Seeding complete.")
}
