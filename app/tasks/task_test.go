package tasks

import (
	"testing"
	"time"
)

func TestNewTask(t *testing.T) {
	task := NewTask(TaskTypeRefreshFeed, "technews")

	if task.Type != TaskTypeRefreshFeed {
		t.Errorf("Expected type %q, got %q", TaskTypeRefreshFeed, task.Type)
	}
	if task.FeedName != "technews" {
		t.Errorf("Expected feed name 'technews', got %q", task.FeedName)
	}
	if task.ID == "" {
		t.Error("Expected non-empty task ID")
	}
	if task.MaxRetries != DefaultMaxRetries {
		t.Errorf("Expected max retries %d, got %d", DefaultMaxRetries, task.MaxRetries)
	}
}

func TestTaskRetryBookkeeping(t *testing.T) {
	task := NewTask(TaskTypeRefreshFeed, "technews")

	for i := 0; i < DefaultMaxRetries; i++ {
		if !task.CanRetry() {
			t.Fatalf("Expected retry %d to be allowed", i+1)
		}
		task.IncrementRetryCount()
	}

	if task.CanRetry() {
		t.Error("Expected retries exhausted")
	}
	if task.RetryCount != DefaultMaxRetries {
		t.Errorf("Expected retry count %d, got %d", DefaultMaxRetries, task.RetryCount)
	}
}

func TestTaskDuration(t *testing.T) {
	task := NewTask(TaskTypeRefreshFeed, "technews")

	if task.GetDuration() != 0 {
		t.Error("Expected zero duration before start")
	}

	task.Start()
	time.Sleep(time.Millisecond)

	if task.GetDuration() <= 0 {
		t.Error("Expected positive duration after start")
	}
}
