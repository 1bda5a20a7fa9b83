package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stackmoneyup/backend/internal/middleware"
	"github.com/stackmoneyup/backend/internal/models"
	"github.com/stackmoneyup/backend/internal/permissions"
	"github.com/stackmoneyup/backend/internal/repositories"
	"gorm.io/gorm"
)

// UserHandler handles profile and user administration requests
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterUserRoutes registers profile and admin routes. All of them
// require authentication.
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/me", h.GetMyProfile)
	g.PUT("/me", h.UpdateMyProfile)
	g.GET("/users", h.GetUsers)
	g.GET("/users/stats", h.GetUserStats)
	g.PUT("/users/:id/role", h.UpdateUserRole)
}

// GetMyProfile returns the caller's profile
func (h *UserHandler) GetMyProfile(c echo.Context) error {
	actor := middleware.ActorFromContext(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	profile, err := h.userRepository.GetProfileByID(actor.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateMyProfile updates the caller's display name or avatar
func (h *UserHandler) UpdateMyProfile(c echo.Context) error {
	actor := middleware.ActorFromContext(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.userRepository.GetProfileByID(actor.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Name != "" {
		profile.Name = req.Name
	}
	if req.AvatarURL != "" {
		profile.AvatarURL = req.AvatarURL
	}

	if err := h.userRepository.UpdateProfile(profile); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, profile)
}

// GetUsers lists all registered users. Admin only.
func (h *UserHandler) GetUsers(c echo.Context) error {
	actor := middleware.ActorFromContext(c)
	if !permissions.Can(actor, permissions.ManageUsers, "") {
		return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to manage users")
	}

	profiles, err := h.userRepository.GetProfiles()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, profiles)
}

// GetUserStats returns user counts by role. Admin only.
func (h *UserHandler) GetUserStats(c echo.Context) error {
	actor := middleware.ActorFromContext(c)
	if !permissions.Can(actor, permissions.ManageUsers, "") {
		return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to manage users")
	}

	stats, err := h.userRepository.GetUserStats()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}

// UpdateUserRole changes another user's role. Admin only. An admin
// cannot demote themselves, so there is always at least one admin left.
func (h *UserHandler) UpdateUserRole(c echo.Context) error {
	actor := middleware.ActorFromContext(c)
	if !permissions.Can(actor, permissions.ManageUsers, "") {
		return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to manage users")
	}
	userID := c.Param("id")
	if userID == actor.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "You cannot change your own role")
	}

	var req models.UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userRepository.UpdateRole(userID, req.Role); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	profile, err := h.userRepository.GetProfileByID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, profile)
}
