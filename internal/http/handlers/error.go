package handlers

import (
	"errors"
	"net/http"

	"github.com/vinothini113/spa-application/internal/http/response"
	"github.com/vinothini113/spa-application/internal/logger"
	"github.com/vinothini113/spa-application/internal/service"
	"github.com/vinothini113/spa-application/internal/store"

	"github.com/gin-gonic/gin"
)

// respondServiceError 把业务错误翻译成 HTTP 响应。
// 哨兵错误各有固定状态码与文案；未识别的错误一律 500，细节只进日志。
func respondServiceError(c *gin.Context, err error) {
	appErr := classifyServiceError(err)
	if appErr.Status >= http.StatusInternalServerError {
		logger.Errorw("service_error",
			"path", c.Request.URL.Path,
			"error", appErr.Error(),
		)
	}
	response.Error(c, appErr.Status, appErr.Message)
}

// classifyServiceError 哨兵错误到状态码的映射。
// 最后管理员保护按请求非法处理（400），与存量前端约定一致。
func classifyServiceError(err error) *response.AppError {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return response.WrapError(http.StatusBadRequest, "Invalid request", err)
	case errors.Is(err, service.ErrInvalidCredentials):
		return response.WrapError(http.StatusUnauthorized, "Invalid credentials", err)
	case errors.Is(err, service.ErrUsernameExists):
		return response.WrapError(http.StatusConflict, "Username already exists", err)
	case errors.Is(err, service.ErrEmailExists):
		return response.WrapError(http.StatusConflict, "Email already exists", err)
	case errors.Is(err, service.ErrNotFound):
		return response.WrapError(http.StatusNotFound, "User not found", err)
	case errors.Is(err, service.ErrLastAdmin):
		return response.WrapError(http.StatusBadRequest, "Cannot remove the last admin user", err)
	case errors.Is(err, service.ErrCorruptRecord):
		return response.WrapError(http.StatusInternalServerError, "Internal server error", err)
	case errors.Is(err, store.ErrStoreUnavailable):
		return response.WrapError(http.StatusInternalServerError, "Internal server error", err)
	default:
		return response.WrapError(http.StatusInternalServerError, "Internal server error", err)
	}
}
