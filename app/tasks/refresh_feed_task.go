package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"rssdeck/app/database"
	"rssdeck/app/feed"
)

// RefreshFeedTask runs the fetch-and-normalize pipeline for one feed and
// swaps its cached stories. A pipeline failure is recorded on the feed
// row and not returned: content errors reflect the document, not a
// transient fault, so the scheduler must not retry them. The stored error
// state is the API's per-feed retry affordance.
type RefreshFeedTask struct {
	Task
	Feed      database.Feed
	pipeline  *feed.Pipeline
	feedRepo  database.FeedRepository
	storyRepo database.StoryRepository
}

func NewRefreshFeedTask(dbFeed database.Feed, pipeline *feed.Pipeline,
	feedRepo database.FeedRepository, storyRepo database.StoryRepository) *RefreshFeedTask {
	return &RefreshFeedTask{
		Task:      NewTask(TaskTypeRefreshFeed, dbFeed.Name),
		Feed:      dbFeed,
		pipeline:  pipeline,
		feedRepo:  feedRepo,
		storyRepo: storyRepo,
	}
}

func (t *RefreshFeedTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	nextFetch := time.Now().Add(time.Duration(t.Feed.RefreshInterval) * time.Second)

	result, err := t.pipeline.Run(ctx, t.Feed.URL)
	if err != nil {
		kind := feed.ErrorKind(err)
		slog.Warn("Feed refresh failed",
			"feed", t.FeedName,
			"url", t.Feed.URL,
			"kind", kind,
			"error", err)

		if dbErr := t.feedRepo.RecordFeedError(t.FeedName, kind, err.Error(), nextFetch); dbErr != nil {
			return fmt.Errorf("failed to record feed error: %w", dbErr)
		}
		return nil
	}

	stories := result.Stories
	if t.Feed.MaxItems > 0 && len(stories) > t.Feed.MaxItems {
		stories = stories[:t.Feed.MaxItems]
	}

	if err := t.storyRepo.ReplaceAll(t.FeedName, stories); err != nil {
		return fmt.Errorf("failed to store stories: %w", err)
	}

	err = t.feedRepo.UpdateFeedMetadata(t.FeedName, result.Title, result.Description, result.Link, nextFetch)
	if err != nil {
		return fmt.Errorf("failed to update feed metadata: %w", err)
	}

	slog.Info("Task completed",
		"type", "RefreshFeed",
		"feed", t.FeedName,
		"duration", t.GetDuration(),
		"stories", len(stories))

	return nil
}
