package feed

import (
	"regexp"
	"strings"
)

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	imgSrcRe     = regexp.MustCompile(`(?i)<img[^>]+src=["']([^"']+)["']`)
)

// Namespaced fields are matched under both the verbatim prefixed tag and
// the bare local name: the XML decoder resolves declared namespace
// prefixes away, while feeds that use a prefix without declaring it keep
// it in the key. Both classes exist in the wild.

// extractText coerces a tree node to its text content. Strings pass
// through verbatim, mixed-content elements yield their text sentinel,
// lists join each element's text with ", ". Anything else is "".
func extractText(n Node) string {
	switch v := n.(type) {
	case string:
		return v
	case map[string]any:
		if s, ok := v[textKey].(string); ok {
			return s
		}
	case []any:
		parts := make([]string, len(v))
		for i, el := range v {
			parts[i] = extractText(el)
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

// extractLink resolves the link of an item or channel node. RSS uses a
// plain string <link>, Atom an attributed element that may repeat per
// rel; some hybrid feeds only populate a namespaced atom:link even in an
// RSS-shaped document.
func extractLink(n Node) string {
	if href := linkValue(child(n, "link")); href != "" {
		return href
	}
	if href := attr(child(n, "atom:link"), "href"); href != "" {
		return href
	}
	return ""
}

func linkValue(link Node) string {
	switch v := link.(type) {
	case string:
		return v
	case map[string]any:
		if href, ok := v[attrPrefix+"href"].(string); ok && href != "" {
			return href
		}
		if txt, ok := v[textKey].(string); ok && txt != "" {
			return txt
		}
	case []any:
		for _, el := range v {
			if href := linkValue(el); href != "" {
				return href
			}
		}
	}
	return ""
}

// cleanHTML strips tag-delimited substrings and collapses whitespace runs,
// producing the plain-text preview used for story descriptions.
func cleanHTML(html string) string {
	text := htmlTagRe.ReplaceAllString(html, "")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// extractFirstImage returns a thumbnail URL for an HTML fragment. A value
// that is already a bare URL passes through unchanged, covering feeds that
// supply a direct media URL attribute instead of embedded markup.
func extractFirstImage(html string) string {
	if strings.HasPrefix(html, "http") {
		return html
	}
	if m := imgSrcRe.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	return ""
}

// firstText returns the text of the first listed child that coerces to a
// non-empty string.
func firstText(n Node, keys ...string) string {
	for _, key := range keys {
		if s := extractText(child(n, key)); s != "" {
			return s
		}
	}
	return ""
}

// extractContent resolves the story body: the namespaced encoded content
// wins, then a generic content element, then the description. The body
// keeps its markup; stripping happens only for the preview text.
func extractContent(item Node) string {
	return firstText(item, "content:encoded", "encoded", "content", "description")
}

// extractAuthor resolves the author name: Atom's nested author/name, then
// the Dublin Core creator, then a bare creator element.
func extractAuthor(item Node) string {
	if s := extractText(child(child(item, "author"), "name")); s != "" {
		return s
	}
	return firstText(item, "dc:creator", "creator")
}

// extractGUID resolves the story identity key: explicit guid, Atom id,
// then the resolved link. Feeds may omit all three, which yields "" and
// makes collisions possible; the pipeline does not deduplicate.
func extractGUID(item Node) string {
	if s := firstText(item, "guid", "id"); s != "" {
		return s
	}
	return extractLink(item)
}

// extractThumbnail prefers the first image embedded in the story body and
// falls back to a media:content url attribute. An Atom content element is
// harmless here: it carries no url attribute.
func extractThumbnail(item Node, content string) string {
	if thumb := extractFirstImage(content); thumb != "" {
		return thumb
	}
	for _, key := range []string{"media:content", "content"} {
		if url := attr(child(item, key), "url"); url != "" {
			return extractFirstImage(url)
		}
	}
	return ""
}
