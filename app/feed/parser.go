package feed

import (
	"sync"

	"github.com/clbanning/mxj/v2"
)

// Parser normalizes raw RSS 2.0 / Atom XML into a canonical Feed. It is a
// stateless single-pass transformation: the same input always yields a
// structurally equal Feed and a failure never returns a partial one.
type Parser struct{}

var charsetHookOnce sync.Once

func NewParser() *Parser {
	charsetHookOnce.Do(func() {
		mxj.XmlCharsetReader = decodeCharset
	})
	return &Parser{}
}

// Run parses the XML text and walks the generic tree into a Feed.
// Malformed XML yields *ParseError; well-formed XML without a recognizable
// channel or feed root yields *FormatError.
func (p *Parser) Run(data []byte) (*Feed, error) {
	tree, err := mxj.NewMapXml(data)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	channel := locateChannel(map[string]any(tree))
	if channel == nil {
		return nil, &FormatError{Msg: "invalid feed format: missing channel or feed element"}
	}

	title := extractText(child(channel, "title"))
	if title == "" {
		title = DefaultFeedTitle
	}

	// RSS carries channel.item, Atom feed.entry. A single item arrives as
	// a bare element and is re-wrapped into a one-element list.
	items := child(channel, "item")
	if items == nil {
		items = child(channel, "entry")
	}

	itemList := asList(items)
	stories := make([]Story, 0, len(itemList))
	for _, item := range itemList {
		stories = append(stories, normalizeStory(item, title))
	}

	return &Feed{
		Title:       title,
		Description: firstText(channel, "description", "subtitle"),
		Link:        extractLink(channel),
		Stories:     stories,
	}, nil
}

// locateChannel accepts an RSS root (rss.channel) or an Atom root (feed),
// treating the Atom root itself as the channel-equivalent.
func locateChannel(doc map[string]any) Node {
	for _, key := range []string{"rss", "feed"} {
		root, ok := doc[key]
		if !ok {
			continue
		}
		channel := child(root, "channel")
		if channel == nil {
			channel = root
		}
		if _, ok := channel.(map[string]any); ok {
			return channel
		}
	}
	return nil
}

// normalizeStory populates one Story from an item or entry node. feedName
// is the already-resolved feed title, attached so the story displays
// correctly outside its feed context (e.g. an aggregated bookmark list).
func normalizeStory(item Node, feedName string) Story {
	content := extractContent(item)

	title := extractText(child(item, "title"))
	if title == "" {
		title = DefaultStoryTitle
	}

	return Story{
		Title:       title,
		Link:        extractLink(item),
		Description: cleanHTML(extractText(child(item, "description"))),
		PubDate:     firstText(item, "pubDate", "published", "updated"),
		Author:      extractAuthor(item),
		Content:     content,
		Thumbnail:   extractThumbnail(item, content),
		GUID:        extractGUID(item),
		FeedName:    feedName,
	}
}
