package database

import (
	"database/sql"
	"fmt"

	"rssdeck/app/feed"
)

// BookmarkRepositoryImpl persists saved stories across feeds, keyed by
// the story GUID the normalizer resolved.
type BookmarkRepositoryImpl struct {
	db *DB
}

var _ BookmarkRepository = (*BookmarkRepositoryImpl)(nil)

func NewBookmarkRepository(db *DB) *BookmarkRepositoryImpl {
	return &BookmarkRepositoryImpl{db: db}
}

func (r *BookmarkRepositoryImpl) GetAll() ([]Bookmark, error) {
	rows, err := r.db.Query(`
		SELECT guid, feed_name, title, link, description, pub_date, author, content, thumbnail, bookmarked_at
		FROM bookmarks
		ORDER BY bookmarked_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []Bookmark
	for rows.Next() {
		var b Bookmark
		err := rows.Scan(&b.GUID, &b.FeedName, &b.Title, &b.Link,
			&b.Description, &b.PubDate, &b.Author, &b.Content,
			&b.Thumbnail, &b.BookmarkedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookmarks: %w", err)
	}

	return bookmarks, nil
}

func (r *BookmarkRepositoryImpl) GetCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM bookmarks`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count bookmarks: %w", err)
	}
	return count, nil
}

func (r *BookmarkRepositoryImpl) IsBookmarked(guid string) (bool, error) {
	var one int
	err := r.db.QueryRow(`SELECT 1 FROM bookmarks WHERE guid = ? LIMIT 1`, guid).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check bookmark: %w", err)
	}
	return true, nil
}

// Add stores a story snapshot under its GUID. GUIDs are taken as-is: a
// story whose feed omitted guid, id and link bookmarks under the empty
// key and a later empty-key bookmark replaces it.
func (r *BookmarkRepositoryImpl) Add(story feed.Story) error {
	_, err := r.db.Exec(`
		INSERT INTO bookmarks (guid, feed_name, title, link, description, pub_date, author, content, thumbnail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (guid) DO UPDATE SET
			feed_name = excluded.feed_name,
			title = excluded.title,
			link = excluded.link,
			description = excluded.description,
			pub_date = excluded.pub_date,
			author = excluded.author,
			content = excluded.content,
			thumbnail = excluded.thumbnail
	`, story.GUID, story.FeedName, story.Title, story.Link,
		story.Description, story.PubDate, story.Author, story.Content, story.Thumbnail)

	if err != nil {
		return fmt.Errorf("failed to add bookmark: %w", err)
	}
	return nil
}

func (r *BookmarkRepositoryImpl) Remove(guid string) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM bookmarks WHERE guid = ?`, guid)
	if err != nil {
		return false, fmt.Errorf("failed to remove bookmark: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to remove bookmark: %w", err)
	}
	return affected > 0, nil
}

func (r *BookmarkRepositoryImpl) Clear() error {
	if _, err := r.db.Exec(`DELETE FROM bookmarks`); err != nil {
		return fmt.Errorf("failed to clear bookmarks: %w", err)
	}
	return nil
}
