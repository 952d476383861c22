package routes

import (
	"github.com/Juantrevi/next-match/internal/handlers"
	"github.com/Juantrevi/next-match/internal/logger"
	"github.com/Juantrevi/next-match/internal/middleware"
	"github.com/Juantrevi/next-match/internal/storage"
	"github.com/Juantrevi/next-match/ws"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes wires every HTTP and WebSocket route.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
	store storage.Storage,
) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.Auth.RegisterRoutes(api)
		appHandlers.Member.RegisterRoutes(api)
		appHandlers.Like.RegisterRoutes(api)
		appHandlers.Message.RegisterRoutes(api)
		appHandlers.Admin.RegisterRoutes(api)
	}

	// Local storage serves the uploaded photos directly.
	if local, ok := store.(*storage.LocalStorage); ok {
		ginRouter.Static("/files", local.BasePath())
	}

	api.GET("/presence", middleware.AuthMiddleware(), wsHandler.Presence)

	wsGroup := ginRouter.Group("/ws")
	wsGroup.Use(middleware.AuthMiddleware())
	{
		wsGroup.GET("", wsHandler.ServeWS)
	}

	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	logger.Info("Routes registered")
}
