package handlers

import (
	"net/http"

	userRepo "healthhub/database/repository/user"
	"healthhub/middleware"
	"healthhub/models"
	"healthhub/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes profile and account management endpoints.
type UserHandler struct {
	Svc user.UserService
}

// NewUserHandler wires the user endpoints to the user service.
func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{Svc: svc}
}

// GetProfile returns the authenticated user's profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	profile, err := h.Svc.GetByID(userID)
	if err != nil {
		getLogger(c).Error("failed to get profile", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile updates the authenticated user's profile fields.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString(middleware.ContextUserID)

	var req models.User
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.ID = userID

	updated, err := h.Svc.UpdateProfile(req)
	if err != nil {
		logger.Error("failed to update profile", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// RegisterDevice stores the caller's push notification token.
func (h *UserHandler) RegisterDevice(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req struct {
		FCMToken string `json:"fcmToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Svc.SetFCMToken(userID, req.FCMToken); err != nil {
		getLogger(c).Error("failed to store device token", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register device"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device registered"})
}

// ListUsers returns users matching the filter. Admin only.
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, limit := pageParams(c)
	filter := userRepo.UserFilter{
		Role:   c.Query("role"),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}

	users, total, err := h.Svc.List(filter)
	if err != nil {
		getLogger(c).Error("failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       users,
		"pagination": paginate(page, limit, total),
	})
}

// GetUser returns one account by ID. Admin only.
func (h *UserHandler) GetUser(c *gin.Context) {
	targetID := c.Param("userId")

	u, err := h.Svc.GetByID(targetID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateUser changes an account's role or active flag. Admin only.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	targetID := c.Param("userId")

	var req struct {
		Role     string `json:"role"`
		IsActive *bool  `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.Svc.AdminUpdate(targetID, req.Role, req.IsActive)
	if err != nil {
		getLogger(c).Warn("failed to update user", zap.String("userId", targetID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UserStats returns aggregate account numbers. Admin only.
func (h *UserHandler) UserStats(c *gin.Context) {
	stats, err := h.Svc.Stats()
	if err != nil {
		getLogger(c).Error("failed to compute user stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// DeactivateUser disables an account. Admin only.
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	targetID := c.Param("userId")
	if err := h.Svc.Deactivate(targetID); err != nil {
		getLogger(c).Error("failed to deactivate user", zap.String("userId", targetID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deactivated"})
}
