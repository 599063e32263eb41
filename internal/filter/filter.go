// Package filter selects boards and items for display.
package filter

import (
	"fmt"
	"strings"
	"time"

	"curate/internal/service"
)

// RecentWindow is how far back a board's creation counts as recent.
const RecentWindow = 7 * 24 * time.Hour

// Board selects boards.
type Board string

const (
	BoardAll       Board = "all"
	BoardRecent    Board = "recent"
	BoardFavorites Board = "favorites"
)

// Item selects items by source type.
type Item string

const (
	ItemAll    Item = "all"
	ItemVideos Item = "videos"
	ItemImages Item = "images"
	ItemLinks  Item = "links"
)

// ParseBoardFilter parses s case-insensitively. Empty means all.
func ParseBoardFilter(s string) (Board, error) {
	switch f := Board(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return BoardAll, nil
	case BoardAll, BoardRecent, BoardFavorites:
		return f, nil
	}
	return "", fmt.Errorf("unknown board filter %q (want all, recent or favorites)", s)
}

// ParseItemFilter parses s case-insensitively. Empty means all.
func ParseItemFilter(s string) (Item, error) {
	switch f := Item(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return ItemAll, nil
	case ItemAll, ItemVideos, ItemImages, ItemLinks:
		return f, nil
	}
	return "", fmt.Errorf("unknown item filter %q (want all, videos, images or links)", s)
}

// Boards returns the boards matching f, in input order. now anchors the
// recent window.
func Boards(boards []service.Board, f Board, now time.Time) []service.Board {
	switch f {
	case BoardAll, "":
		return boards
	case BoardRecent:
		cutoff := now.Add(-RecentWindow)
		var out []service.Board
		for _, b := range boards {
			if b.CreatedAt.After(cutoff) {
				out = append(out, b)
			}
		}
		return out
	default:
		// Favorites are not tracked by the backend yet.
		return nil
	}
}

// Items returns the items matching f, in input order. Items with an unknown
// or missing source type only appear under ItemAll.
func Items(items []service.Item, f Item) []service.Item {
	want := sourceFor(f)
	if want == "" {
		return items
	}
	var out []service.Item
	for _, it := range items {
		if it.Source() == want {
			out = append(out, it)
		}
	}
	return out
}

func sourceFor(f Item) string {
	switch f {
	case ItemVideos:
		return service.SourceYouTube
	case ItemImages:
		return service.SourceImage
	case ItemLinks:
		return service.SourceWebsite
	}
	return ""
}
