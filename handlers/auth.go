package handlers

import (
	"net/http"

	"healthhub/middleware"
	"healthhub/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes registration, login and token lifecycle endpoints.
type AuthHandler struct {
	Svc user.UserService
}

// NewAuthHandler wires the auth endpoints to the user service.
func NewAuthHandler(svc user.UserService) *AuthHandler {
	return &AuthHandler{Svc: svc}
}

// Register creates a new account and returns the token pair.
func (h *AuthHandler) Register(c *gin.Context) {
	logger := getLogger(c)

	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Svc.Register(req)
	if err != nil {
		logger.Warn("registration failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login authenticates credentials and returns the token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Svc.Authenticate(req.Email, req.Password)
	if err != nil {
		logger.Warn("login failed", zap.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh exchanges a refresh token for a new token pair.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Svc.Refresh(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout revokes the authenticated user's active token.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	if err := h.Svc.Logout(userID); err != nil {
		getLogger(c).Error("logout failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
