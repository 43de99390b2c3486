package handlers

import (
	"net/http"
	"strconv"

	"github.com/finchwork/finch/backend/internal/models"
	"github.com/finchwork/finch/backend/internal/repositories"
	"github.com/finchwork/finch/backend/internal/service"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts and feeds
type PostHandler struct {
	socialService  service.SocialService
	userRepository repositories.UserRepository // To enrich feed posts with author details
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(socialService service.SocialService, userRepo repositories.UserRepository) *PostHandler {
	return &PostHandler{
		socialService:  socialService,
		userRepository: userRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/like", h.LikePost)
	g.POST("/posts/:id/comments", h.CommentOnPost)
	g.GET("/posts/feed/all", h.GetAllPosts)
	g.GET("/posts/feed/following", h.GetFollowingPosts)
	g.GET("/posts/feed/liked/:user_id", h.GetLikedPosts)
	g.GET("/posts/feed/user/:username", h.GetUserPosts)
}

// CreatePost creates a new post for the authenticated user
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.socialService.CreatePost(c.Request().Context(), userID, req.Text, req.Image)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.socialService.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post owned by the authenticated user
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.socialService.DeletePost(c.Request().Context(), userID, c.Param("id")); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted"})
}

// LikePost toggles the authenticated user's like on a post
func (h *PostHandler) LikePost(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	liked, err := h.socialService.ToggleLike(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return serviceError(err)
	}
	if liked {
		return c.JSON(http.StatusOK, echo.Map{"message": "Post liked"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post unliked"})
}

// CommentOnPost appends a comment to a post
func (h *PostHandler) CommentOnPost(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.socialService.CommentOnPost(c.Request().Context(), userID, c.Param("id"), req.Text)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// EnrichedPost is a post with its author attached
type EnrichedPost struct {
	models.Post
	Author models.UserCompact `json:"author"`
}

// GetAllPosts returns the global feed, newest first
func (h *PostHandler) GetAllPosts(c echo.Context) error {
	skip, limit := pagination(c)
	posts, err := h.socialService.GetAllPosts(c.Request().Context(), skip, limit)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, h.enrichPosts(posts))
}

// GetFollowingPosts returns posts authored by users the caller follows
func (h *PostHandler) GetFollowingPosts(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	skip, limit := pagination(c)
	posts, err := h.socialService.GetFollowingPosts(c.Request().Context(), userID, skip, limit)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, h.enrichPosts(posts))
}

// GetLikedPosts returns the posts liked by the given user
func (h *PostHandler) GetLikedPosts(c echo.Context) error {
	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	posts, err := h.socialService.GetLikedPosts(c.Request().Context(), uint(targetID))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, h.enrichPosts(posts))
}

// GetUserPosts returns the posts authored by the named user
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	skip, limit := pagination(c)
	posts, err := h.socialService.GetUserPosts(c.Request().Context(), c.Param("username"), skip, limit)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, h.enrichPosts(posts))
}

// enrichPosts attaches compact author records to a page of posts
func (h *PostHandler) enrichPosts(posts []models.Post) []EnrichedPost {
	authorIDs := make([]uint, 0, len(posts))
	seen := make(map[uint]bool)
	for _, p := range posts {
		if !seen[p.AuthorID] {
			seen[p.AuthorID] = true
			authorIDs = append(authorIDs, p.AuthorID)
		}
	}

	authorMap := make(map[uint]models.UserCompact)
	if authors, err := h.userRepository.GetUsersByIDs(authorIDs); err == nil {
		for i := range authors {
			authorMap[authors[i].ID] = authors[i].ToCompact()
		}
	}

	enriched := make([]EnrichedPost, len(posts))
	for i, p := range posts {
		enriched[i] = EnrichedPost{Post: p, Author: authorMap[p.AuthorID]}
	}
	return enriched
}

func pagination(c echo.Context) (skip, limit int64) {
	skip, _ = strconv.ParseInt(c.QueryParam("skip"), 10, 64)
	limit, _ = strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return skip, limit
}
