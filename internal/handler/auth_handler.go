package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yaseenferoz/virl-backend/internal/service"
)

// AuthHandler registration, login and session endpoints
type AuthHandler struct {
	authSvc    *service.AuthService
	accountSvc *service.AccountService
}

func NewAuthHandler(authSvc *service.AuthService, accountSvc *service.AccountService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, accountSvc: accountSvc}
}

// Register creates a pending account
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}

	Created(c, gin.H{
		"userId":  user.ID,
		"message": "Registration successful. Awaiting approval.",
	})
}

// Login verifies credentials and issues tokens
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, tokens, err := h.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{
		"token":        tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
		"expiresIn":    tokens.ExpiresIn,
		"user": gin.H{
			"userId": user.ID,
			"name":   user.Name,
			"email":  user.Email,
			"role":   user.Role,
		},
	})
}

type refreshReq struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Refresh exchanges a refresh token for a new pair
// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	tokens, err := h.authSvc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, tokens)
}

// Logout revokes the refresh token
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{"message": "Logged out"})
}

type approveUserReq struct {
	UserID string `json:"userId" binding:"required"`
}

// ApproveUser activates a pending account (superAdmin only)
// POST /api/auth/approve-user
func (h *AuthHandler) ApproveUser(c *gin.Context) {
	var req approveUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.accountSvc.Approve(c.Request.Context(), req.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{
		"userId":   user.ID,
		"isActive": user.IsActive,
		"message":  "User approved successfully",
	})
}

// Me returns the authenticated user's account
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authSvc.GetCurrentUser(c.Request.Context(), GetUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{
		"userId":   user.ID,
		"name":     user.Name,
		"email":    user.Email,
		"phone":    user.Phone,
		"role":     user.Role,
		"isActive": user.IsActive,
	})
}
