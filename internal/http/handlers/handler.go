package handlers

import (
	"github.com/vinothini113/spa-application/internal/provider"
	"github.com/vinothini113/spa-application/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler HTTP 处理器集合
type Handler struct {
	accounts *service.AccountService
	records  *service.RecordService
}

// New 创建处理器
func New(container *provider.Container) *Handler {
	return &Handler{
		accounts: container.AccountService,
		records:  container.RecordService,
	}
}

// currentClaims 取出鉴权中间件挂上的身份；只在受保护路由内调用
func currentClaims(c *gin.Context) (*service.UserClaims, bool) {
	value, ok := c.Get("identity")
	if !ok {
		return nil, false
	}
	claims, ok := value.(*service.UserClaims)
	return claims, ok
}
