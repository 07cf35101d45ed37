package feed

import "context"

// Pipeline ties the proxy fetcher and the normalizer into the single
// fetch-and-parse operation callers consume. Every call is independent:
// no caching, no shared state, and a failure never yields a partial Feed.
type Pipeline struct {
	fetcher *Fetcher
	parser  *Parser
}

func NewPipeline(fetcher *Fetcher, parser *Parser) *Pipeline {
	return &Pipeline{fetcher: fetcher, parser: parser}
}

// Run fetches the feed at url through the relay chain and normalizes it.
// Errors are one of *FetchError, *BlockedContentError, *ParseError or
// *FormatError; all propagate to the caller unrecovered. Content errors
// are never retried here since they reflect the document, not the network.
func (p *Pipeline) Run(ctx context.Context, url string) (*Feed, error) {
	data, _, err := p.fetcher.Run(ctx, url)
	if err != nil {
		return nil, err
	}
	return p.parser.Run(data)
}
