package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Respond 统一响应：真实 HTTP 状态码 + 扁平 JSON 负载。
// 成功时 payload 的键直接并入顶层（token、user、users……），与存量前端约定一致。
func respond(c *gin.Context, status int, success bool, message string, payload gin.H) {
	body := gin.H{"success": success}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	if !success {
		attachRequestID(c, body)
	}
	c.JSON(status, body)
}

// OK 200 成功响应
func OK(c *gin.Context, message string, payload gin.H) {
	respond(c, http.StatusOK, true, message, payload)
}

// Created 201 成功响应
func Created(c *gin.Context, message string, payload gin.H) {
	respond(c, http.StatusCreated, true, message, payload)
}

// Error 错误响应
func Error(c *gin.Context, status int, message string) {
	respond(c, status, false, message, nil)
}

// BadRequest 400 响应
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401 响应
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden 403 响应
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound 404 响应
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Conflict 409 响应
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// Internal 500 响应
func Internal(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

func attachRequestID(c *gin.Context, body gin.H) {
	if c == nil {
		return
	}
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok && id != "" {
			body["request_id"] = id
		}
	}
}
