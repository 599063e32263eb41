package preview_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curate/internal/preview"
	"curate/internal/service"
)

const page = `<!doctype html>
<html>
<head>
  <title>Plain title</title>
  <meta name="description" content="Plain description">
  <meta property="og:title" content="OG title">
  <meta property="og:image" content="/img/cover.png">
</head>
<body>
  <nav>Menu</nav>
  <main>
    <h1>Hello</h1>
    <p>World <a href="/about">about us</a></p>
  </main>
  <script>alert(1)</script>
</body>
</html>`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/article", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, page)
	})
	mux.HandleFunc("/moved", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/article", http.StatusFound)
	})
	mux.HandleFunc("/photo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch_ExtractsMetadata(t *testing.T) {
	srv := newServer(t)
	f := preview.NewFetcher()

	p, err := f.Fetch(context.Background(), srv.URL+"/article", false)
	require.NoError(t, err)

	assert.Equal(t, "OG title", p.Title)
	assert.Equal(t, "Plain description", p.Description)
	assert.Equal(t, srv.URL+"/img/cover.png", p.Image)
	assert.Equal(t, service.SourceWebsite, p.SourceType)
	assert.Empty(t, p.Markdown)
}

func TestFetch_FollowsRedirects(t *testing.T) {
	srv := newServer(t)
	f := preview.NewFetcher()

	p, err := f.Fetch(context.Background(), srv.URL+"/moved", false)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/article", p.URL)
	assert.Equal(t, "OG title", p.Title)
}

func TestFetch_Markdown(t *testing.T) {
	srv := newServer(t)
	f := preview.NewFetcher()

	p, err := f.Fetch(context.Background(), srv.URL+"/article", true)
	require.NoError(t, err)

	assert.Contains(t, p.Markdown, "Hello")
	assert.Contains(t, p.Markdown, "World")
	assert.Contains(t, p.Markdown, "[about us]")
	assert.NotContains(t, p.Markdown, "Menu")
	assert.NotContains(t, p.Markdown, "alert")
}

func TestFetch_ImageByContentType(t *testing.T) {
	srv := newServer(t)
	f := preview.NewFetcher()

	p, err := f.Fetch(context.Background(), srv.URL+"/photo", true)
	require.NoError(t, err)
	assert.Equal(t, service.SourceImage, p.SourceType)
	assert.Equal(t, p.URL, p.Image)
	assert.Empty(t, p.Markdown)
}

func TestFetch_Errors(t *testing.T) {
	srv := newServer(t)
	f := preview.NewFetcher()

	_, err := f.Fetch(context.Background(), srv.URL+"/gone", false)
	assert.ErrorContains(t, err, "404")

	_, err = f.Fetch(context.Background(), "mailto:someone@example.com", false)
	assert.ErrorIs(t, err, service.ErrInvalidURL)
}

func TestFetch_SizeLimit(t *testing.T) {
	srv := newServer(t)
	f := preview.NewFetcher(preview.WithMaxSize(16))

	_, err := f.Fetch(context.Background(), srv.URL+"/article", false)
	assert.ErrorContains(t, err, "too large")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=abc", service.SourceYouTube},
		{"https://youtu.be/abc", service.SourceYouTube},
		{"https://example.com/cat.JPG", service.SourceImage},
		{"https://example.com/photos/1.webp?w=200", service.SourceImage},
		{"https://example.com/blog/post", service.SourceWebsite},
		{"https://notyoutube.com/watch", service.SourceWebsite},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, preview.Classify(tt.url))
		})
	}
}
