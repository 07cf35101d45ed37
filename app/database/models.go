package database

import (
	"time"

	"rssdeck/app/feed"
)

// Feed is a subscription record. LastError/LastErrorKind hold the most
// recent pipeline failure so one broken feed surfaces its own state
// without affecting any other.
type Feed struct {
	Name            string     `json:"name"`
	URL             string     `json:"url"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Link            string     `json:"link"`
	Enabled         bool       `json:"enabled"`
	RefreshInterval int        `json:"refresh_interval"`
	MaxItems        int        `json:"max_items"`
	LastError       string     `json:"last_error"`
	LastErrorKind   string     `json:"last_error_kind"`
	LastFetchedAt   *time.Time `json:"last_fetched_at"`
	LastSuccessAt   *time.Time `json:"last_success_at"`
	NextFetchAt     *time.Time `json:"next_fetch_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Bookmark is a saved story snapshot. The story's GUID is the key, so a
// feed that omits guid/id/link yields the empty key and a later bookmark
// with an empty key overwrites it (last write wins).
type Bookmark struct {
	feed.Story
	BookmarkedAt time.Time `json:"bookmarkedAt"`
}
