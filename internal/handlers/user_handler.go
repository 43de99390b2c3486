package handlers

import (
	"net/http"
	"strconv"

	"github.com/finchwork/finch/backend/internal/models"
	"github.com/finchwork/finch/backend/internal/repositories"
	"github.com/finchwork/finch/backend/internal/service"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to user profiles and follows
type UserHandler struct {
	socialService    service.SocialService
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(socialService service.SocialService, userRepo repositories.UserRepository, followRepo repositories.FollowRepository) *UserHandler {
	return &UserHandler{
		socialService:    socialService,
		userRepository:   userRepo,
		followRepository: followRepo,
	}
}

// RegisterUserRoutes registers user profile and follow routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/profile/:username", h.GetProfile)
	g.PUT("/users/profile", h.UpdateProfile)
	g.GET("/users/suggested", h.GetSuggestedUsers)
	g.POST("/users/:id/follow", h.FollowUser)
	g.GET("/users/search", h.SearchUsers)
}

// GetProfile retrieves a user's public profile by username
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.socialService.GetProfile(c.Param("username"))
	if err != nil {
		return serviceError(err)
	}

	followersCount, _ := h.followRepository.GetFollowersCount(user.ID)
	followingCount, _ := h.followRepository.GetFollowingCount(user.ID)

	return c.JSON(http.StatusOK, echo.Map{
		"user":            user,
		"followers_count": followersCount,
		"following_count": followingCount,
	})
}

// UpdateProfile updates the authenticated user's own profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.socialService.UpdateProfile(c.Request().Context(), userID, &req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetSuggestedUsers returns a small random sample of unconnected users
func (h *UserHandler) GetSuggestedUsers(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	users, err := h.socialService.SuggestUsers(userID)
	if err != nil {
		return serviceError(err)
	}

	suggested := make([]models.UserCompact, len(users))
	for i := range users {
		suggested[i] = users[i].ToCompact()
	}
	return c.JSON(http.StatusOK, suggested)
}

// FollowUser toggles the authenticated user's follow on the target user
func (h *UserHandler) FollowUser(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	following, err := h.socialService.ToggleFollow(userID, uint(targetID))
	if err != nil {
		return serviceError(err)
	}
	if following {
		return c.JSON(http.StatusOK, echo.Map{"message": "User followed successfully"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User unfollowed successfully"})
}

// SearchUsers searches for users by a query string (username or full name)
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query 'q' is required")
	}

	users, err := h.userRepository.SearchUsers(query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	results := make([]models.UserCompact, len(users))
	for i := range users {
		results[i] = users[i].ToCompact()
	}
	return c.JSON(http.StatusOK, results)
}
