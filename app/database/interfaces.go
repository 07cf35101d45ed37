package database

import (
	"time"

	"rssdeck/app/feed"
)

type FeedRepository interface {
	GetFeed(name string) (*Feed, error)
	GetAllFeeds() ([]Feed, error)
	GetFeedsDueForRefresh() ([]Feed, error)
	GetFeedCount() (int, error)

	UpsertFeed(name, url string, enabled bool, refreshInterval, maxItems int) error
	DeleteFeed(name string) (bool, error)

	UpdateFeedMetadata(name, title, description, link string, nextFetch time.Time) error
	RecordFeedError(name, kind, message string, nextFetch time.Time) error
}

type StoryRepository interface {
	GetStories(feedName string, limit int) ([]feed.Story, error)
	GetStoryCount(feedName string) (int, error)

	ReplaceAll(feedName string, stories []feed.Story) error
}

type BookmarkRepository interface {
	GetAll() ([]Bookmark, error)
	GetCount() (int, error)
	IsBookmarked(guid string) (bool, error)

	Add(story feed.Story) error
	Remove(guid string) (bool, error)
	Clear() error
}
