package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/mindmend/internal/domain/auth"
	"github.com/yanqian/mindmend/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, authSvc auth.Service, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	logger = logger.With("component", "http.router")

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, logger),
	)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/auth/register", handler.Register)
		api.POST("/auth/login", handler.Login)
		api.POST("/auth/refresh", handler.Refresh)
		api.GET("/auth/google/login", handler.GoogleLogin)
		api.GET("/auth/google/callback", handler.GoogleCallback)
		api.GET("/support/quote", handler.Quote)
		api.GET("/support/crisis", handler.Crisis)
	}

	secured := api.Group("")
	secured.Use(requireAuth(authSvc))
	{
		secured.GET("/auth/me", handler.Me)
		secured.POST("/auth/logout", handler.Logout)

		secured.POST("/profile/sync", handler.SyncProfile)
		secured.GET("/profile", handler.GetProfile)
		secured.PUT("/profile/avatar", handler.UploadAvatar)
		secured.GET("/profile/avatar", handler.GetAvatar)

		secured.POST("/logs", handler.CreateLog)
		secured.GET("/logs", handler.ListLogs)
		secured.GET("/logs/streak", handler.Streak)
		secured.GET("/logs/insights", handler.Insights)
		secured.GET("/moods", handler.Moods)
		secured.GET("/dashboard", handler.Dashboard)

		secured.POST("/advice", handler.Advice)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
