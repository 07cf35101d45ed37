package database

import (
	"database/sql"
	"fmt"
	"time"
)

// FeedRepositoryImpl handles database operations for feed subscriptions.
type FeedRepositoryImpl struct {
	db *DB
}

var _ FeedRepository = (*FeedRepositoryImpl)(nil)

func NewFeedRepository(db *DB) *FeedRepositoryImpl {
	return &FeedRepositoryImpl{db: db}
}

const feedColumns = `name, url, title, description, link, enabled,
	refresh_interval, max_items, last_error, last_error_kind,
	last_fetched_at, last_success_at, next_fetch_at, created_at, updated_at`

func (r *FeedRepositoryImpl) GetFeed(name string) (*Feed, error) {
	row := r.db.QueryRow(`SELECT `+feedColumns+` FROM feeds WHERE name = ?`, name)

	feed, err := scanFeed(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get feed: %w", err)
	}
	return feed, nil
}

func (r *FeedRepositoryImpl) GetAllFeeds() ([]Feed, error) {
	rows, err := r.db.Query(`SELECT ` + feedColumns + ` FROM feeds ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list feeds: %w", err)
	}
	defer rows.Close()

	return collectFeeds(rows)
}

// GetFeedsDueForRefresh returns enabled feeds whose next fetch time has
// passed or was never set.
func (r *FeedRepositoryImpl) GetFeedsDueForRefresh() ([]Feed, error) {
	rows, err := r.db.Query(`
		SELECT `+feedColumns+`
		FROM feeds
		WHERE enabled = 1 AND (next_fetch_at IS NULL OR next_fetch_at <= ?)
		ORDER BY name
	`, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list due feeds: %w", err)
	}
	defer rows.Close()

	return collectFeeds(rows)
}

func (r *FeedRepositoryImpl) GetFeedCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM feeds`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count feeds: %w", err)
	}
	return count, nil
}

func (r *FeedRepositoryImpl) UpsertFeed(name, url string, enabled bool, refreshInterval, maxItems int) error {
	_, err := r.db.Exec(`
		INSERT INTO feeds (name, url, enabled, refresh_interval, max_items)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			url = excluded.url,
			enabled = excluded.enabled,
			refresh_interval = excluded.refresh_interval,
			max_items = excluded.max_items,
			updated_at = CURRENT_TIMESTAMP
	`, name, url, enabled, refreshInterval, maxItems)

	if err != nil {
		return fmt.Errorf("failed to upsert feed: %w", err)
	}
	return nil
}

func (r *FeedRepositoryImpl) DeleteFeed(name string) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM feeds WHERE name = ?`, name)
	if err != nil {
		return false, fmt.Errorf("failed to delete feed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete feed: %w", err)
	}
	return affected > 0, nil
}

// UpdateFeedMetadata records a successful refresh: feed-level fields from
// the normalizer plus cleared error state.
func (r *FeedRepositoryImpl) UpdateFeedMetadata(name, title, description, link string, nextFetch time.Time) error {
	_, err := r.db.Exec(`
		UPDATE feeds
		SET title = ?, description = ?, link = ?,
			last_error = '', last_error_kind = '',
			last_fetched_at = CURRENT_TIMESTAMP,
			last_success_at = CURRENT_TIMESTAMP,
			next_fetch_at = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE name = ?
	`, title, description, link, nextFetch.UTC(), name)

	if err != nil {
		return fmt.Errorf("failed to update feed metadata: %w", err)
	}
	return nil
}

// RecordFeedError marks a failed refresh on this feed only. Cached
// stories from the last success stay untouched.
func (r *FeedRepositoryImpl) RecordFeedError(name, kind, message string, nextFetch time.Time) error {
	_, err := r.db.Exec(`
		UPDATE feeds
		SET last_error = ?, last_error_kind = ?,
			last_fetched_at = CURRENT_TIMESTAMP,
			next_fetch_at = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE name = ?
	`, message, kind, nextFetch.UTC(), name)

	if err != nil {
		return fmt.Errorf("failed to record feed error: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFeed(row rowScanner) (*Feed, error) {
	var feed Feed
	var lastFetched, lastSuccess, nextFetch sql.NullTime

	err := row.Scan(&feed.Name, &feed.URL, &feed.Title, &feed.Description,
		&feed.Link, &feed.Enabled, &feed.RefreshInterval, &feed.MaxItems,
		&feed.LastError, &feed.LastErrorKind,
		&lastFetched, &lastSuccess, &nextFetch,
		&feed.CreatedAt, &feed.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if lastFetched.Valid {
		feed.LastFetchedAt = &lastFetched.Time
	}
	if lastSuccess.Valid {
		feed.LastSuccessAt = &lastSuccess.Time
	}
	if nextFetch.Valid {
		feed.NextFetchAt = &nextFetch.Time
	}

	return &feed, nil
}

func collectFeeds(rows *sql.Rows) ([]Feed, error) {
	var feeds []Feed
	for rows.Next() {
		feed, err := scanFeed(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feed: %w", err)
		}
		feeds = append(feeds, *feed)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feeds: %w", err)
	}
	return feeds, nil
}
