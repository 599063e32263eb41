package preview

import (
	"bytes"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"golang.org/x/net/html"
)

// meta holds what the page says about itself.
type meta struct {
	title       string
	description string
	image       string
}

// extractMeta reads <title> and the description/image meta tags.
// Open Graph values win over plain ones.
func extractMeta(doc *html.Node) meta {
	var m meta
	var plainTitle, plainDesc string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if plainTitle == "" && n.FirstChild != nil {
					plainTitle = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				key := strings.ToLower(attr(n, "property"))
				if key == "" {
					key = strings.ToLower(attr(n, "name"))
				}
				content := strings.TrimSpace(attr(n, "content"))
				switch key {
				case "og:title":
					if m.title == "" {
						m.title = content
					}
				case "og:description":
					if m.description == "" {
						m.description = content
					}
				case "description":
					if plainDesc == "" {
						plainDesc = content
					}
				case "og:image", "og:image:url", "twitter:image":
					if m.image == "" {
						m.image = content
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if m.title == "" {
		m.title = plainTitle
	}
	if m.description == "" {
		m.description = plainDesc
	}
	return m
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// resolve makes ref absolute against base. Unparseable refs are dropped.
func resolve(base *url.URL, ref string) string {
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}

// mainContent returns the first <main> or <article> element, else <body>,
// with non-content elements removed.
func mainContent(doc *html.Node) *html.Node {
	removeElements(doc, "script", "style", "noscript", "nav", "header", "footer", "aside", "form", "iframe")
	for _, tag := range []string{"main", "article", "body"} {
		if n := findElement(doc, tag); n != nil {
			return n
		}
	}
	return doc
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func removeElements(n *html.Node, tags ...string) {
	drop := make(map[string]bool, len(tags))
	for _, t := range tags {
		drop[t] = true
	}
	var doomed []*html.Node
	var collect func(*html.Node)
	collect = func(node *html.Node) {
		if node.Type == html.ElementNode && drop[node.Data] {
			doomed = append(doomed, node)
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	for _, node := range doomed {
		if node.Parent != nil {
			node.Parent.RemoveChild(node)
		}
	}
}

// toMarkdown renders n as GitHub-flavored markdown. Relative links are
// resolved against domain.
func toMarkdown(n *html.Node, domain string) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	conv := md.NewConverter(domain, true, nil)
	conv.Use(plugin.GitHubFlavored())
	out, err := conv.ConvertString(buf.String())
	if err != nil {
		return "", err
	}
	return tidy(out), nil
}

// tidy collapses runs of blank lines and trims trailing spaces.
func tidy(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	blank := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
