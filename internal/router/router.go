package router

import (
	"github.com/vinothini113/spa-application/internal/config"
	"github.com/vinothini113/spa-application/internal/constants"
	"github.com/vinothini113/spa-application/internal/http/handlers"
	"github.com/vinothini113/spa-application/internal/http/response"
	"github.com/vinothini113/spa-application/internal/provider"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter 注册全部路由与中间件
func SetupRouter(cfg *config.Config, container *provider.Container) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(zap.L()))
	r.Use(CORSMiddleware(cfg.CORS))
	if cfg.Server.SimulatedDelayMS > 0 {
		r.Use(SimulatedLatencyMiddleware(cfg.Server.SimulatedDelayMS))
	}

	h := handlers.New(container)
	authRequired := AuthMiddleware(container.TokenService)
	adminOnly := RequireRole(constants.RoleAdmin)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Login)
			auth.POST("/register", h.Register)
			auth.POST("/logout", h.Logout)
		}

		users := api.Group("/users")
		users.Use(authRequired)
		{
			users.GET("", adminOnly, h.ListUsers)
			users.GET("/records", h.GetRecords)
			users.GET("/profile", h.GetProfile)
			users.PUT("/:id", adminOnly, h.UpdateUser)
			users.DELETE("/:id", adminOnly, h.DeleteUser)
		}

		api.GET("/health", func(c *gin.Context) {
			response.OK(c, "Server is running", gin.H{"status": "ok"})
		})
	}

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})

	return r
}
