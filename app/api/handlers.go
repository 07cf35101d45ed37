package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"rssdeck/app/feed"
	"rssdeck/app/tasks"
)

func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"timestamp": time.Now().Format(time.RFC3339),
	}

	if feedCount, err := h.feedRepo.GetFeedCount(); err == nil {
		health["feeds"] = feedCount
	}
	if bookmarkCount, err := h.bookmarkRepo.GetCount(); err == nil {
		health["bookmarks"] = bookmarkCount
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) ListFeeds(c *gin.Context) {
	feeds, err := h.feedRepo.GetAllFeeds()
	if err != nil {
		slog.Error("Database error", "operation", "list_feeds", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	statuses := make([]FeedStatus, 0, len(feeds))
	for _, f := range feeds {
		status := FeedStatus{
			Name:          f.Name,
			URL:           f.URL,
			Title:         f.Title,
			Enabled:       f.Enabled,
			LastError:     f.LastError,
			LastErrorKind: f.LastErrorKind,
			LastFetchedAt: f.LastFetchedAt,
			LastSuccessAt: f.LastSuccessAt,
			NextFetchAt:   f.NextFetchAt,
		}
		if count, err := h.storyRepo.GetStoryCount(f.Name); err == nil {
			status.StoryCount = count
		}
		statuses = append(statuses, status)
	}

	c.JSON(http.StatusOK, gin.H{
		"feeds": statuses,
		"total": len(statuses),
	})
}

func (h *Handler) GetFeed(c *gin.Context) {
	name := c.Param("name")

	dbFeed, err := h.feedRepo.GetFeed(name)
	if err != nil {
		slog.Error("Database error", "operation", "get_feed", "feed", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if dbFeed == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feed not found"})
		return
	}

	stories, err := h.storyRepo.GetStories(name, dbFeed.MaxItems)
	if err != nil {
		slog.Error("Database error", "operation", "get_stories", "feed", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if stories == nil {
		stories = []feed.Story{}
	}

	c.JSON(http.StatusOK, FeedResponse{
		Name:          dbFeed.Name,
		URL:           dbFeed.URL,
		Title:         dbFeed.Title,
		Description:   dbFeed.Description,
		Link:          dbFeed.Link,
		LastError:     dbFeed.LastError,
		LastErrorKind: dbFeed.LastErrorKind,
		LastSuccessAt: dbFeed.LastSuccessAt,
		Items:         stories,
	})
}

func (h *Handler) AddFeed(c *gin.Context) {
	var req AddFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and url are required"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name must not be blank"})
		return
	}

	parsed, err := url.Parse(req.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url must be an absolute http(s) URL"})
		return
	}

	if err := h.feedRepo.UpsertFeed(req.Name, req.URL, true, 1800, 50); err != nil {
		slog.Error("Database error", "operation", "add_feed", "feed", req.Name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	h.enqueueRefresh(c, req.Name)
}

func (h *Handler) DeleteFeed(c *gin.Context) {
	name := c.Param("name")

	deleted, err := h.feedRepo.DeleteFeed(name)
	if err != nil {
		slog.Error("Database error", "operation", "delete_feed", "feed", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feed not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": name})
}

// RefreshFeed enqueues an immediate refresh. This is the manual retry
// affordance for a feed stuck in an error state.
func (h *Handler) RefreshFeed(c *gin.Context) {
	name := c.Param("name")

	dbFeed, err := h.feedRepo.GetFeed(name)
	if err != nil {
		slog.Error("Database error", "operation", "refresh_feed", "feed", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if dbFeed == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feed not found"})
		return
	}

	h.enqueueRefresh(c, name)
}

func (h *Handler) enqueueRefresh(c *gin.Context, name string) {
	dbFeed, err := h.feedRepo.GetFeed(name)
	if err != nil || dbFeed == nil {
		slog.Error("Failed to load feed for refresh", "feed", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feed"})
		return
	}

	task := tasks.NewRefreshFeedTask(*dbFeed, h.pipeline, h.feedRepo, h.storyRepo)
	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Failed to enqueue refresh task", "feed", name, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Refresh queue is full"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"feed": name, "status": "refresh scheduled"})
}

func (h *Handler) ListBookmarks(c *gin.Context) {
	bookmarks, err := h.bookmarkRepo.GetAll()
	if err != nil {
		slog.Error("Database error", "operation", "list_bookmarks", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookmarks": bookmarks,
		"total":     len(bookmarks),
	})
}

// AddBookmark stores a story snapshot under its GUID. Feeds may omit
// guid/id/link entirely, so an empty GUID is accepted and overwrites any
// previous empty-GUID bookmark.
func (h *Handler) AddBookmark(c *gin.Context) {
	var story feed.Story
	if err := c.ShouldBindJSON(&story); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid story payload"})
		return
	}

	if err := h.bookmarkRepo.Add(story); err != nil {
		slog.Error("Database error", "operation", "add_bookmark", "guid", story.GUID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"guid": story.GUID})
}

// RemoveBookmarks deletes one bookmark when a guid query parameter is
// present (guids are often URLs, so a path parameter would not survive
// routing) and clears all bookmarks otherwise.
func (h *Handler) RemoveBookmarks(c *gin.Context) {
	guid, hasGUID := c.GetQuery("guid")

	if !hasGUID {
		if err := h.bookmarkRepo.Clear(); err != nil {
			slog.Error("Database error", "operation", "clear_bookmarks", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cleared": true})
		return
	}

	removed, err := h.bookmarkRepo.Remove(guid)
	if err != nil {
		slog.Error("Database error", "operation", "remove_bookmark", "guid", guid, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bookmark not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": guid})
}
