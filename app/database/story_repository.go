package database

import (
	"fmt"

	"rssdeck/app/feed"
)

// StoryRepositoryImpl caches the latest normalization result per feed.
// The cache is replaced wholesale on every successful refresh; there is
// no incremental merge and no deduplication, mirroring the pipeline's
// Feed lifecycle.
type StoryRepositoryImpl struct {
	db *DB
}

var _ StoryRepository = (*StoryRepositoryImpl)(nil)

func NewStoryRepository(db *DB) *StoryRepositoryImpl {
	return &StoryRepositoryImpl{db: db}
}

// GetStories returns the cached stories in document order. limit <= 0
// means no limit.
func (r *StoryRepositoryImpl) GetStories(feedName string, limit int) ([]feed.Story, error) {
	query := `
		SELECT guid, title, link, description, pub_date, author, content, thumbnail
		FROM stories
		WHERE feed_name = ?
		ORDER BY position
	`
	args := []any{feedName}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get stories: %w", err)
	}
	defer rows.Close()

	var stories []feed.Story
	for rows.Next() {
		story := feed.Story{FeedName: feedName}
		err := rows.Scan(&story.GUID, &story.Title, &story.Link,
			&story.Description, &story.PubDate, &story.Author,
			&story.Content, &story.Thumbnail)
		if err != nil {
			return nil, fmt.Errorf("failed to scan story: %w", err)
		}
		stories = append(stories, story)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stories: %w", err)
	}

	return stories, nil
}

func (r *StoryRepositoryImpl) GetStoryCount(feedName string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM stories WHERE feed_name = ?`, feedName).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count stories: %w", err)
	}
	return count, nil
}

// ReplaceAll swaps the cached stories for a feed in one transaction,
// preserving document order through the position column.
func (r *StoryRepositoryImpl) ReplaceAll(feedName string, stories []feed.Story) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM stories WHERE feed_name = ?`, feedName); err != nil {
		return fmt.Errorf("failed to clear stories: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO stories (feed_name, position, guid, title, link, description, pub_date, author, content, thumbnail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, story := range stories {
		_, err := stmt.Exec(feedName, i, story.GUID, story.Title, story.Link,
			story.Description, story.PubDate, story.Author, story.Content, story.Thumbnail)
		if err != nil {
			return fmt.Errorf("failed to insert story %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit stories: %w", err)
	}
	return nil
}
