package handlers

import (
	"fmt"
	"strconv"

	"github.com/vinothini113/spa-application/internal/http/response"
	"github.com/vinothini113/spa-application/internal/logger"
	"github.com/vinothini113/spa-application/internal/service"

	"github.com/gin-gonic/gin"
)

type updateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	FullName *string `json:"fullName"`
	Role     *string `json:"role"`
}

// ListUsers 管理员查看全部用户
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.accounts.ListAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, "Users retrieved successfully", gin.H{
		"users": users,
		"total": len(users),
	})
}

// GetRecords 按当前身份的角色下发记录列表
func (h *Handler) GetRecords(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Unauthorized(c, "Access token required")
		return
	}
	records := h.records.ForRole(claims.Role)
	response.OK(c, fmt.Sprintf("Records retrieved for %s", claims.Role), gin.H{
		"records": records,
		"role":    claims.Role,
		"total":   len(records),
	})
}

// GetProfile 返回当前登录用户的资料
func (h *Handler) GetProfile(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Unauthorized(c, "Access token required")
		return
	}
	user, err := h.accounts.GetProfile(claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, "", gin.H{"user": user})
}

// UpdateUser 管理员更新用户；缺省字段保持原值
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request")
		return
	}

	user, err := h.accounts.Update(id, service.UpdateInput{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Infow("user_updated", "user_id", user.ID)
	response.OK(c, "User updated successfully", gin.H{"user": user})
}

// DeleteUser 管理员删除用户；最后一名管理员受保护
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	if err := h.accounts.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Infow("user_deleted", "user_id", id)
	response.OK(c, "User deleted successfully", nil)
}

func parseUserID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "Invalid user id")
		return 0, false
	}
	return uint(id), true
}
