package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rssdeck/app/database"
	"rssdeck/app/feed"
	"rssdeck/app/tasks"
)

func NewHandler(feedRepo database.FeedRepository, storyRepo database.StoryRepository,
	bookmarkRepo database.BookmarkRepository, pipeline *feed.Pipeline,
	scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		feedRepo:     feedRepo,
		storyRepo:    storyRepo,
		bookmarkRepo: bookmarkRepo,
		pipeline:     pipeline,
		scheduler:    scheduler,
	}
}

// NewServer configures the gin engine serving the browser client. CORS
// is wide open: the UI is a static page talking to this API from any
// origin.
func NewServer(handler *Handler, apiAccessKey string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-API-Key")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, apiAccessKey)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler, apiAccessKey string) {
	r.GET("/health", handler.GetHealth)

	api := r.Group("/api")
	api.GET("/feeds", handler.ListFeeds)
	api.GET("/feeds/:name", handler.GetFeed)
	api.GET("/bookmarks", handler.ListBookmarks)

	mutating := r.Group("/api")
	if apiAccessKey != "" {
		mutating.Use(authMiddleware(apiAccessKey))
		slog.Info("Mutating API endpoints protected with API key")
	}
	mutating.POST("/feeds", handler.AddFeed)
	mutating.DELETE("/feeds/:name", handler.DeleteFeed)
	mutating.POST("/feeds/:name/refresh", handler.RefreshFeed)
	mutating.POST("/bookmarks", handler.AddBookmark)
	mutating.DELETE("/bookmarks", handler.RemoveBookmarks)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":     "rss-deck",
			"description": "RSS/Atom reader backend with proxy-chain fetching and feed normalization",
			"endpoints": map[string]string{
				"feeds":     "/api/feeds",
				"feed":      "/api/feeds/<name>",
				"refresh":   "/api/feeds/<name>/refresh (POST)",
				"bookmarks": "/api/bookmarks",
				"health":    "/health",
			},
		})
	})

	// Return 204 to avoid 404 noise from browsers
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
}

func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-API-Key") != apiAccessKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing API key"})
			return
		}
		c.Next()
	}
}
