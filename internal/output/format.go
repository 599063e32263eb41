// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"curate/internal/preview"
	"curate/internal/service"
)

const (
	// BoardSeparator is the separator line around a board header.
	BoardSeparator = "------------"

	// dateLayout is used for created/updated timestamps.
	dateLayout = "2006-01-02"
)

// FormatBoard formats a board line for the boards command.
// Format: "{ID:>4}  {TITLE}  ({N} items)[ public]\n"
func FormatBoard(w io.Writer, b service.Board) {
	line := fmt.Sprintf("%4d  %s  (%s)", b.ID, normalizeTitle(b.Title), ItemCount(b.Count()))
	if b.IsPublic {
		line += " [public]"
	}
	fmt.Fprintln(w, line)
}

// FormatBoardHeader formats a board section header, followed by the
// description when there is one.
func FormatBoardHeader(w io.Writer, b service.Board) {
	title := normalizeTitle(b.Title)
	if b.IsPublic {
		title += " [public]"
	}
	fmt.Fprintln(w, BoardSeparator)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, BoardSeparator)
	if desc := deref(b.Description); strings.TrimSpace(desc) != "" {
		fmt.Fprintln(w, singleLine(desc))
	}
	if covers := b.CoverImages(); len(covers) > 0 {
		fmt.Fprintf(w, "cover: %s\n", strings.Join(covers, " "))
	}
}

// FormatItem formats an item line inside a board section.
// Format: "    {N:>4}  {SOURCE:<7}  {TITLE or URL}\n"
func FormatItem(w io.Writer, num int, it service.Item) {
	fmt.Fprintf(w, "    %4d  %-7s  %s\n", num, sourceLabel(it.Source()), itemTitle(it))
}

// FormatItemDetail formats a single item as key/value lines.
func FormatItemDetail(w io.Writer, it service.Item) {
	fmt.Fprintf(w, "id:          %d\n", it.ID)
	fmt.Fprintf(w, "board:       %d\n", it.ListID)
	fmt.Fprintf(w, "url:         %s\n", it.URL)
	if t := deref(it.Title); t != "" {
		fmt.Fprintf(w, "title:       %s\n", singleLine(t))
	}
	if d := deref(it.Description); d != "" {
		fmt.Fprintf(w, "description: %s\n", singleLine(d))
	}
	if th := deref(it.ThumbnailURL); th != "" {
		fmt.Fprintf(w, "thumbnail:   %s\n", th)
	}
	fmt.Fprintf(w, "source:      %s\n", sourceLabel(it.Source()))
	fmt.Fprintf(w, "position:    %d\n", it.Position)
	fmt.Fprintf(w, "created:     %s\n", formatDate(it.CreatedAt))
}

// FormatUser formats a backend profile.
func FormatUser(w io.Writer, u service.BackendUser) {
	fmt.Fprintf(w, "id:     %s\n", u.ID)
	fmt.Fprintf(w, "email:  %s\n", u.Email)
	if name := deref(u.DisplayName); name != "" {
		fmt.Fprintf(w, "name:   %s\n", name)
	}
	if photo := deref(u.PhotoURL); photo != "" {
		fmt.Fprintf(w, "photo:  %s\n", photo)
	}
	fmt.Fprintf(w, "since:  %s\n", formatDate(u.CreatedAt))
}

// FormatPreview formats a fetched preview. Markdown content, when present,
// follows after a separator.
func FormatPreview(w io.Writer, p *preview.Preview) {
	fmt.Fprintf(w, "url:         %s\n", p.URL)
	fmt.Fprintf(w, "source:      %s\n", sourceLabel(p.SourceType))
	if p.Title != "" {
		fmt.Fprintf(w, "title:       %s\n", singleLine(p.Title))
	}
	if p.Description != "" {
		fmt.Fprintf(w, "description: %s\n", singleLine(p.Description))
	}
	if p.Image != "" {
		fmt.Fprintf(w, "image:       %s\n", p.Image)
	}
	if p.Markdown != "" {
		fmt.Fprintln(w, BoardSeparator)
		fmt.Fprintln(w, p.Markdown)
	}
}

// ItemCount renders "1 item" or "N items".
func ItemCount(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}

// sourceLabel names a source type for display. Unclassified items are links.
func sourceLabel(source string) string {
	if source == "" {
		return "link"
	}
	return source
}

// itemTitle returns the item's title, or its URL when it has none.
func itemTitle(it service.Item) string {
	if t := strings.TrimSpace(deref(it.Title)); t != "" {
		return singleLine(t)
	}
	return it.URL
}

// normalizeTitle normalizes a board title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = singleLine(title)
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}
