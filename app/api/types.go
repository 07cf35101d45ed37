package api

import (
	"time"

	"rssdeck/app/database"
	"rssdeck/app/feed"
	"rssdeck/app/tasks"
)

type Handler struct {
	feedRepo     database.FeedRepository
	storyRepo    database.StoryRepository
	bookmarkRepo database.BookmarkRepository
	pipeline     *feed.Pipeline
	scheduler    tasks.TaskSchedulerInterface
}

// AddFeedRequest is the payload for subscribing to a feed at runtime.
type AddFeedRequest struct {
	Name string `json:"name" binding:"required"`
	URL  string `json:"url" binding:"required"`
}

// FeedStatus is one subscription with its refresh/error state, shaped
// for the browser client's feed selector.
type FeedStatus struct {
	Name          string     `json:"name"`
	URL           string     `json:"url"`
	Title         string     `json:"title"`
	Enabled       bool       `json:"enabled"`
	StoryCount    int        `json:"story_count"`
	LastError     string     `json:"last_error,omitempty"`
	LastErrorKind string     `json:"last_error_kind,omitempty"`
	LastFetchedAt *time.Time `json:"last_fetched_at"`
	LastSuccessAt *time.Time `json:"last_success_at"`
	NextFetchAt   *time.Time `json:"next_fetch_at"`
}

// FeedResponse is the cached normalization of one subscription.
type FeedResponse struct {
	Name          string       `json:"name"`
	URL           string       `json:"url"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Link          string       `json:"link"`
	LastError     string       `json:"last_error,omitempty"`
	LastErrorKind string       `json:"last_error_kind,omitempty"`
	LastSuccessAt *time.Time   `json:"last_success_at"`
	Items         []feed.Story `json:"items"`
}
