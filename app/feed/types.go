package feed

// Placeholders applied when a feed omits the corresponding field.
const (
	DefaultStoryTitle = "Untitled"
	DefaultFeedTitle  = "Unknown Feed"
)

// Story is the canonical unit of content produced by the normalizer.
// Content keeps the markup the feed supplied and is untrusted HTML;
// Description is the tag-stripped preview text. PubDate preserves the
// source format (RFC 822 or ISO 8601), formatting is left to the client.
type Story struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	PubDate     string `json:"pubDate"`
	Author      string `json:"author"`
	Content     string `json:"content"`
	Thumbnail   string `json:"thumbnail"`
	GUID        string `json:"guid"`
	FeedName    string `json:"feedName"`
}

// Feed is the normalized form of one RSS/Atom document. Stories keep
// document order and the value is replaced wholesale on refetch, never
// merged incrementally.
type Feed struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Link        string  `json:"link"`
	Stories     []Story `json:"items"`
}

// Configuration types for file-based subscriptions

type Config struct {
	Name     string         // Derived from filename (without .yml extension)
	URL      string         `yaml:"url"`
	Settings ConfigSettings `yaml:"settings"`
}

type ConfigSettings struct {
	Enabled         bool `yaml:"enabled"`
	RefreshInterval int  `yaml:"refresh_interval"` // seconds
	MaxItems        int  `yaml:"max_items"`
}
