package feed

import "testing"

func TestExtractTextString(t *testing.T) {
	if got := extractText("hello"); got != "hello" {
		t.Errorf("Expected 'hello', got %q", got)
	}
}

func TestExtractTextIdempotentOnStrings(t *testing.T) {
	inputs := []string{"plain", "  padded  ", "<p>markup stays</p>", ""}
	for _, in := range inputs {
		once := extractText(in)
		if once != in {
			t.Errorf("Expected string input to pass through verbatim, got %q from %q", once, in)
		}
		if twice := extractText(once); twice != once {
			t.Errorf("Expected extractText to be idempotent, got %q then %q", once, twice)
		}
	}
}

func TestExtractTextMixedContent(t *testing.T) {
	node := map[string]any{
		"-isPermaLink": "false",
		"#text":        "item-guid-1",
	}
	if got := extractText(node); got != "item-guid-1" {
		t.Errorf("Expected text sentinel value, got %q", got)
	}
}

func TestExtractTextList(t *testing.T) {
	node := []any{"tech", "news"}
	if got := extractText(node); got != "tech, news" {
		t.Errorf("Expected joined list text, got %q", got)
	}
}

func TestExtractTextNonText(t *testing.T) {
	if got := extractText(nil); got != "" {
		t.Errorf("Expected empty string for nil, got %q", got)
	}
	if got := extractText(map[string]any{"-href": "https://example.com"}); got != "" {
		t.Errorf("Expected empty string for attribute-only element, got %q", got)
	}
}

func TestExtractLinkString(t *testing.T) {
	item := map[string]any{"link": "https://example.com/post/1"}
	if got := extractLink(item); got != "https://example.com/post/1" {
		t.Errorf("Expected plain string link, got %q", got)
	}
}

func TestExtractLinkHrefAttribute(t *testing.T) {
	item := map[string]any{
		"link": map[string]any{"-href": "https://example.com/entry/1", "-rel": "alternate"},
	}
	if got := extractLink(item); got != "https://example.com/entry/1" {
		t.Errorf("Expected href attribute value, got %q", got)
	}
}

func TestExtractLinkRepeatedElements(t *testing.T) {
	item := map[string]any{
		"link": []any{
			map[string]any{"-rel": "self"},
			map[string]any{"-href": "https://example.com/alt", "-rel": "alternate"},
		},
	}
	if got := extractLink(item); got != "https://example.com/alt" {
		t.Errorf("Expected first link with an href, got %q", got)
	}
}

func TestExtractLinkMissing(t *testing.T) {
	if got := extractLink(map[string]any{"title": "no link here"}); got != "" {
		t.Errorf("Expected empty link, got %q", got)
	}
}

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"<p>Hello <b>World</b></p>", "Hello World"},
		{"no markup at all", "no markup at all"},
		{"  <div>\n  spaced\t out  </div>  ", "spaced out"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := cleanHTML(tt.input); got != tt.expected {
			t.Errorf("cleanHTML(%q): expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestExtractFirstImage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare URL passes through", "https://example.com/pic.jpg", "https://example.com/pic.jpg"},
		{"img tag src", `<p>intro</p><img alt="x" src="https://example.com/a.png"><img src="https://example.com/b.png">`, "https://example.com/a.png"},
		{"no image", "<p>text only</p>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractFirstImage(tt.input); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestExtractContentFallback(t *testing.T) {
	item := map[string]any{
		"description": "<p>summary</p>",
	}
	if got := extractContent(item); got != "<p>summary</p>" {
		t.Errorf("Expected description fallback with markup intact, got %q", got)
	}

	item["content:encoded"] = "<p>full body</p>"
	if got := extractContent(item); got != "<p>full body</p>" {
		t.Errorf("Expected encoded content to win, got %q", got)
	}
}

func TestExtractContentSkipsEmptyCandidates(t *testing.T) {
	// A media enclosure decodes to an attribute-only element under the
	// content key; it coerces to "" and must not shadow the description.
	item := map[string]any{
		"content":     map[string]any{"-url": "https://example.com/video.mp4"},
		"description": "real text",
	}
	if got := extractContent(item); got != "real text" {
		t.Errorf("Expected fallthrough past attribute-only content, got %q", got)
	}
}

func TestExtractAuthor(t *testing.T) {
	atom := map[string]any{
		"author": map[string]any{"name": "Jane Doe", "email": "jane@example.com"},
	}
	if got := extractAuthor(atom); got != "Jane Doe" {
		t.Errorf("Expected nested author name, got %q", got)
	}

	rss := map[string]any{"dc:creator": "John Smith"}
	if got := extractAuthor(rss); got != "John Smith" {
		t.Errorf("Expected dc:creator, got %q", got)
	}

	bare := map[string]any{"creator": "Alex"}
	if got := extractAuthor(bare); got != "Alex" {
		t.Errorf("Expected bare creator, got %q", got)
	}

	if got := extractAuthor(map[string]any{}); got != "" {
		t.Errorf("Expected empty author, got %q", got)
	}
}

func TestExtractGUIDFallbackChain(t *testing.T) {
	full := map[string]any{
		"guid": "guid-1",
		"id":   "id-1",
		"link": "https://example.com/1",
	}
	if got := extractGUID(full); got != "guid-1" {
		t.Errorf("Expected guid to win, got %q", got)
	}

	atom := map[string]any{"id": "id-2", "link": "https://example.com/2"}
	if got := extractGUID(atom); got != "id-2" {
		t.Errorf("Expected id fallback, got %q", got)
	}

	linkOnly := map[string]any{"link": "https://example.com/3"}
	if got := extractGUID(linkOnly); got != "https://example.com/3" {
		t.Errorf("Expected link fallback, got %q", got)
	}

	if got := extractGUID(map[string]any{"title": "identityless"}); got != "" {
		t.Errorf("Expected empty guid when all sources are missing, got %q", got)
	}
}

func TestExtractThumbnail(t *testing.T) {
	item := map[string]any{
		"media:content": map[string]any{"-url": "https://example.com/media.jpg"},
	}

	// Embedded image beats the media enclosure.
	content := `<img src="https://example.com/inline.png">`
	if got := extractThumbnail(item, content); got != "https://example.com/inline.png" {
		t.Errorf("Expected inline image, got %q", got)
	}

	if got := extractThumbnail(item, "<p>no images</p>"); got != "https://example.com/media.jpg" {
		t.Errorf("Expected media url fallback, got %q", got)
	}

	if got := extractThumbnail(map[string]any{}, ""); got != "" {
		t.Errorf("Expected empty thumbnail, got %q", got)
	}
}
