package handlers

import (
	"github.com/vinothini113/spa-application/internal/http/response"
	"github.com/vinothini113/spa-application/internal/logger"
	"github.com/vinothini113/spa-application/internal/service"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required"`
	FullName string `json:"fullName" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// Login 登录：用户名+角色定位账号，密码校验通过后签发 Token
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Username, password and role are required")
		return
	}

	result, err := h.accounts.Login(req.Username, req.Password, req.Role)
	if err != nil {
		logger.Warnw("login_failed",
			"username", req.Username,
			"role", req.Role,
			"error", err,
		)
		respondServiceError(c, err)
		return
	}

	logger.Infow("login_success",
		"user_id", result.User.ID,
		"username", result.User.Username,
		"role", result.User.Role,
	)
	response.OK(c, result.Message, gin.H{
		"token":     result.Token,
		"expiresAt": result.ExpiresAt,
		"user":      result.User,
	})
}

// Register 注册新用户
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "All fields are required")
		return
	}

	user, err := h.accounts.Register(service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Infow("user_registered",
		"user_id", user.ID,
		"username", user.Username,
		"role", user.Role,
	)
	response.Created(c, "User registered successfully", gin.H{"user": user})
}

// Logout 登出。Token 无服务端状态，这里只是给前端一个确定的收尾。
func (h *Handler) Logout(c *gin.Context) {
	response.OK(c, "Logged out successfully", nil)
}
