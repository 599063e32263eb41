package state

import (
	"context"
	"sort"

	"curate/internal/service"
)

// Items is one board's items in display order: position ascending, ties by ID.
type Items struct {
	BoardID int64
	items   []service.Item
}

// LoadItems fetches the items of boardID.
func LoadItems(ctx context.Context, svc service.Service, boardID int64) (*Items, error) {
	items, err := svc.ListItems(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return NewItems(boardID, items), nil
}

// NewItems orders items for display.
func NewItems(boardID int64, items []service.Item) *Items {
	s := &Items{BoardID: boardID, items: append([]service.Item(nil), items...)}
	s.sort()
	return s
}

func (s *Items) sort() {
	sort.SliceStable(s.items, func(i, j int) bool {
		a, b := s.items[i], s.items[j]
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.ID < b.ID
	})
}

// All returns the items in display order.
func (s *Items) All() []service.Item {
	return append([]service.Item(nil), s.items...)
}

// Len returns the number of items.
func (s *Items) Len() int {
	return len(s.items)
}

// At returns the n-th item, 1-based, in display order.
func (s *Items) At(n int) (service.Item, bool) {
	if n < 1 || n > len(s.items) {
		return service.Item{}, false
	}
	return s.items[n-1], true
}

// Add inserts it and restores display order.
func (s *Items) Add(it service.Item) {
	s.items = append(s.items, it)
	s.sort()
}

// Remove drops the item with id. It reports whether anything was removed.
func (s *Items) Remove(id int64) bool {
	for i, it := range s.items {
		if it.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}
