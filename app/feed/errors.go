package feed

import "fmt"

// FetchError reports that every configured proxy failed to return a usable
// response. Err holds the failure seen on the last proxy attempted.
type FetchError struct {
	URL       string
	LastProxy string
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s after trying all proxies, last error via %s: %v",
		e.URL, e.LastProxy, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// BlockedContentError reports a proxy that answered with an HTML document
// instead of feed XML, typically an interstitial or firewall block page.
// The origin was reachable, so this is kept distinct from FetchError.
type BlockedContentError struct {
	URL   string
	Proxy string
}

func (e *BlockedContentError) Error() string {
	return fmt.Sprintf("%s returned a webpage instead of a feed via %s (likely blocked by CORS/firewall)",
		e.URL, e.Proxy)
}

// ParseError wraps an XML decoder failure on malformed feed content.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed feed XML: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FormatError reports well-formed XML that lacks a recognizable RSS
// channel or Atom feed structure.
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string { return e.Msg }

// ErrorKind classifies a pipeline failure for per-feed status reporting.
func ErrorKind(err error) string {
	switch err.(type) {
	case *FetchError:
		return "fetch"
	case *BlockedContentError:
		return "blocked"
	case *ParseError:
		return "parse"
	case *FormatError:
		return "format"
	}
	return "unknown"
}
