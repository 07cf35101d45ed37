package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Proxy describes one CORS relay. Template holds a single %s verb which
// receives the query-escaped target URL.
type Proxy struct {
	Name     string
	Template string
}

func (p Proxy) BuildURL(target string) string {
	return fmt.Sprintf(p.Template, url.QueryEscape(target))
}

// ParseProxies builds the relay chain from a comma-separated list of URL
// templates. Order is preserved: relays are attempted strictly first to
// last. Each proxy is named after its host for diagnostics.
func ParseProxies(templates string) ([]Proxy, error) {
	var proxies []Proxy
	for _, tmpl := range strings.Split(templates, ",") {
		tmpl = strings.TrimSpace(tmpl)
		if tmpl == "" {
			continue
		}
		if strings.Count(tmpl, "%s") != 1 {
			return nil, fmt.Errorf("proxy template %q must contain exactly one %%s placeholder", tmpl)
		}
		u, err := url.Parse(fmt.Sprintf(tmpl, ""))
		if err != nil {
			return nil, fmt.Errorf("invalid proxy template %q: %w", tmpl, err)
		}
		proxies = append(proxies, Proxy{Name: u.Host, Template: tmpl})
	}
	if len(proxies) == 0 {
		return nil, fmt.Errorf("no proxies configured")
	}
	return proxies, nil
}

// Fetcher retrieves raw feed bytes through an ordered chain of CORS
// relays. The chain is an explicit configuration value so tests can
// substitute a short list without network access.
type Fetcher struct {
	proxies   []Proxy
	client    *http.Client
	userAgent string
}

func NewFetcher(proxies []Proxy, timeout time.Duration, userAgent string) *Fetcher {
	return &Fetcher{
		proxies: proxies,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				MaxIdleConnsPerHost: 5,
			},
		},
		userAgent: userAgent,
	}
}

// Run fetches the feed at target through the relay chain and returns the
// body plus the name of the relay that served it. Relays are tried
// sequentially; the first 2xx response wins regardless of latency and
// every other outcome moves on to the next relay. When the chain is
// exhausted the result is *FetchError carrying the last failure. A winning
// body that is structurally an HTML document yields *BlockedContentError
// instead of being handed to the XML parser.
func (f *Fetcher) Run(ctx context.Context, target string) ([]byte, string, error) {
	var lastErr error
	var lastProxy string

	for _, proxy := range f.proxies {
		data, err := f.attempt(ctx, proxy, target)
		if err != nil {
			slog.Debug("Proxy attempt failed", "proxy", proxy.Name, "url", target, "error", err)
			lastErr = err
			lastProxy = proxy.Name
			if ctx.Err() != nil {
				break
			}
			continue
		}

		if looksLikeHTML(data) {
			return nil, "", &BlockedContentError{URL: target, Proxy: proxy.Name}
		}

		return data, proxy.Name, nil
	}

	return nil, "", &FetchError{URL: target, LastProxy: lastProxy, Err: lastErr}
}

func (f *Fetcher) attempt(ctx context.Context, proxy Proxy, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, proxy.BuildURL(target), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, */*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("proxy request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("proxy error: HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty response body")
	}

	return data, nil
}

// looksLikeHTML detects interstitial/block pages served in place of feed
// XML. Strict firewalls and some proxies answer 200 with a webpage.
func looksLikeHTML(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	text := strings.ToLower(strings.TrimSpace(string(head)))
	return strings.HasPrefix(text, "<!doctype html") || strings.HasPrefix(text, "<html")
}
