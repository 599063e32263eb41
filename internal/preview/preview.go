// Package preview fetches a URL locally and derives what a saved item would show:
// title, description, thumbnail and source type.
package preview

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"curate/internal/service"
)

const (
	// DefaultTimeout bounds a whole fetch, redirects included.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxSize is the largest body read, in bytes.
	DefaultMaxSize = 5 << 20

	defaultUserAgent = "curate-preview/1.0"
	maxRedirects     = 5
)

// Preview is what a URL looks like once saved.
type Preview struct {
	URL         string // final URL after redirects
	Title       string
	Description string
	Image       string
	SourceType  string
	ContentType string
	Markdown    string // only when requested
}

// Fetcher retrieves pages for previews.
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxSize   int64
	log       zerolog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the HTTP client. Redirect limits are the caller's concern.
func WithHTTPClient(hc *http.Client) Option {
	return func(f *Fetcher) { f.client = hc }
}

// WithMaxSize sets the body size limit.
func WithMaxSize(n int64) Option {
	return func(f *Fetcher) { f.maxSize = n }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(f *Fetcher) { f.log = log }
}

// NewFetcher creates a Fetcher with DefaultTimeout and DefaultMaxSize.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects (max %d)", maxRedirects)
				}
				return service.ValidateItemURL(req.URL.String())
			},
		},
		userAgent: defaultUserAgent,
		maxSize:   DefaultMaxSize,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves rawURL and builds its preview. With withContent the page
// body is also converted to markdown.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, withContent bool) (*Preview, error) {
	rawURL = strings.TrimSpace(rawURL)
	if err := service.ValidateItemURL(rawURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: HTTP %d %s", rawURL, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	final := resp.Request.URL
	p := &Preview{
		URL:         final.String(),
		ContentType: resp.Header.Get("Content-Type"),
	}
	p.SourceType = classifyContentType(Classify(p.URL), p.ContentType)
	f.log.Debug().Str("url", p.URL).Str("content_type", p.ContentType).Str("source_type", p.SourceType).Msg("fetched")

	if p.SourceType == service.SourceImage {
		p.Image = p.URL
		return p, nil
	}
	if !isHTML(p.ContentType) {
		return p, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > f.maxSize {
		return nil, fmt.Errorf("content too large (exceeds %d bytes)", f.maxSize)
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	m := extractMeta(doc)
	p.Title = m.title
	p.Description = m.description
	p.Image = resolve(final, m.image)

	if withContent {
		domain := (&url.URL{Scheme: final.Scheme, Host: final.Host}).String()
		p.Markdown, err = toMarkdown(mainContent(doc), domain)
		if err != nil {
			return nil, fmt.Errorf("convert to markdown: %w", err)
		}
	}
	return p, nil
}

func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "text/html" || mt == "application/xhtml+xml"
}
