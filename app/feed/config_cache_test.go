package feed

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func TestConfigCacheRun(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "technews.yml", `url: https://technews.example.com/rss.xml
settings:
  refresh_interval: 600
  max_items: 20
`)
	writeConfigFile(t, dir, "journal.yml", `url: https://journal.example.com/atom.xml
`)

	cc := NewConfigCache(dir)
	if err := cc.Run(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if count := cc.GetConfigCount(); count != 2 {
		t.Errorf("Expected 2 configs, got %d", count)
	}

	config, err := cc.GetConfig("technews")
	if err != nil {
		t.Fatalf("Expected config, got error: %v", err)
	}
	if config.Name != "technews" {
		t.Errorf("Expected name from filename, got %q", config.Name)
	}
	if config.URL != "https://technews.example.com/rss.xml" {
		t.Errorf("Expected URL from file, got %q", config.URL)
	}
	if config.Settings.RefreshInterval != 600 {
		t.Errorf("Expected refresh interval 600, got %d", config.Settings.RefreshInterval)
	}
	if config.Settings.MaxItems != 20 {
		t.Errorf("Expected max items 20, got %d", config.Settings.MaxItems)
	}
}

func TestConfigCacheDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "minimal.yml", `url: https://minimal.example.com/rss.xml
`)

	cc := NewConfigCache(dir)
	if err := cc.Run(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	config, err := cc.GetConfig("minimal")
	if err != nil {
		t.Fatalf("Expected config, got error: %v", err)
	}
	if !config.Settings.Enabled {
		t.Error("Expected enabled by default")
	}
	if config.Settings.RefreshInterval != 1800 {
		t.Errorf("Expected default refresh interval 1800, got %d", config.Settings.RefreshInterval)
	}
	if config.Settings.MaxItems != 50 {
		t.Errorf("Expected default max items 50, got %d", config.Settings.MaxItems)
	}
}

func TestConfigCacheMissingURL(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "nourl.yml", `settings:
  max_items: 10
`)

	cc := NewConfigCache(dir)
	if err := cc.Run(); err == nil {
		t.Error("Expected error for config without URL")
	}
}

func TestConfigCacheInvalidValues(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "negative.yml", `url: https://example.com/rss.xml
settings:
  refresh_interval: -60
`)

	cc := NewConfigCache(dir)
	if err := cc.Run(); err == nil {
		t.Error("Expected error for negative refresh interval")
	}
}

func TestConfigCacheMissingDir(t *testing.T) {
	cc := NewConfigCache(filepath.Join(t.TempDir(), "does-not-exist"))
	if err := cc.Run(); err != nil {
		t.Errorf("Expected missing directory to be tolerated, got %v", err)
	}
	if count := cc.GetConfigCount(); count != 0 {
		t.Errorf("Expected 0 configs, got %d", count)
	}
}

func TestConfigCacheGetConfigsCopy(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "one.yml", `url: https://one.example.com/rss.xml
`)

	cc := NewConfigCache(dir)
	if err := cc.Run(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	configs := cc.GetConfigs()
	delete(configs, "one")

	if count := cc.GetConfigCount(); count != 1 {
		t.Errorf("Expected cache unaffected by mutating the copy, got %d configs", count)
	}
}
