// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"curate/internal/preview"
	"curate/internal/service"
)

// Epoch is the fixed clock FakeService starts from.
var Epoch = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.RWMutex
	boards []service.Board
	items  map[int64][]service.Item // board ID -> items
	nextID int64
	user   service.BackendUser

	// Now is the clock used for created_at/updated_at. Defaults to Epoch.
	Now func() time.Time

	// Calls counts invocations by method name.
	Calls map[string]int

	// Error injection for testing
	ListBoardsErr  error
	GetBoardErr    error
	CreateBoardErr error
	UpdateBoardErr error
	DeleteBoardErr error
	ListItemsErr   map[int64]error // board ID -> error
	GetItemErr     error
	AddItemErr     error
	DeleteItemErr  error
	SyncProfileErr error
	ProfileErr     error
}

// NewFakeService creates an empty FakeService signed in as user "user-1".
func NewFakeService() *FakeService {
	return &FakeService{
		items:        make(map[int64][]service.Item),
		nextID:       1,
		Now:          func() time.Time { return Epoch },
		Calls:        make(map[string]int),
		ListItemsErr: make(map[int64]error),
		user: service.BackendUser{
			ID:        "user-1",
			Email:     "user@example.com",
			CreatedAt: Epoch,
			UpdatedAt: Epoch,
		},
	}
}

func (f *FakeService) call(name string) {
	f.mu.Lock()
	f.Calls[name]++
	f.mu.Unlock()
}

func (f *FakeService) id() int64 {
	id := f.nextID
	f.nextID++
	return id
}

// AddBoard adds a board with the given title and returns its ID.
func (f *FakeService) AddBoard(title string) int64 {
	return f.AddBoardAt(title, f.Now())
}

// AddBoardAt adds a board created at the given time and returns its ID.
func (f *FakeService) AddBoardAt(title string, created time.Time) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := service.Board{
		ID:        f.id(),
		UserID:    f.user.ID,
		Title:     title,
		CreatedAt: created,
		UpdatedAt: created,
	}
	f.boards = append(f.boards, b)
	f.items[b.ID] = nil
	return b.ID
}

// AddURL adds an item to a board and returns its ID. The source type is
// derived from the URL.
func (f *FakeService) AddURL(boardID int64, rawURL string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.appendItem(boardID, rawURL).ID
}

func (f *FakeService) appendItem(boardID int64, rawURL string) service.Item {
	source := preview.Classify(rawURL)
	now := f.Now()
	it := service.Item{
		ID:         f.id(),
		ListID:     boardID,
		URL:        rawURL,
		SourceType: &source,
		Position:   len(f.items[boardID]),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.items[boardID] = append(f.items[boardID], it)
	return it
}

// withCount returns b with item_count filled from the stored items.
func (f *FakeService) withCount(b service.Board) service.Board {
	n := len(f.items[b.ID])
	b.ItemCount = &n
	return b
}

func (f *FakeService) findBoard(id int64) (int, bool) {
	for i, b := range f.boards {
		if b.ID == id {
			return i, true
		}
	}
	return -1, false
}

// ListBoards implements service.Service.
func (f *FakeService) ListBoards(ctx context.Context) ([]service.Board, error) {
	f.call("ListBoards")
	if f.ListBoardsErr != nil {
		return nil, f.ListBoardsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Board, len(f.boards))
	for i, b := range f.boards {
		result[i] = f.withCount(b)
	}
	return result, nil
}

// GetBoard implements service.Service.
func (f *FakeService) GetBoard(ctx context.Context, id int64) (service.Board, error) {
	f.call("GetBoard")
	if f.GetBoardErr != nil {
		return service.Board{}, f.GetBoardErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	i, ok := f.findBoard(id)
	if !ok {
		return service.Board{}, service.ErrNotFound
	}
	return f.withCount(f.boards[i]), nil
}

// CreateBoard implements service.Service.
func (f *FakeService) CreateBoard(ctx context.Context, req service.CreateBoardRequest) (service.Board, error) {
	f.call("CreateBoard")
	if err := req.Validate(); err != nil {
		return service.Board{}, err
	}
	if f.CreateBoardErr != nil {
		return service.Board{}, f.CreateBoardErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.Now()
	b := service.Board{
		ID:          f.id(),
		UserID:      f.user.ID,
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.IsPublic != nil {
		b.IsPublic = *req.IsPublic
	}
	f.boards = append(f.boards, b)
	f.items[b.ID] = nil
	return f.withCount(b), nil
}

// UpdateBoard implements service.Service.
func (f *FakeService) UpdateBoard(ctx context.Context, id int64, req service.UpdateBoardRequest) (service.Board, error) {
	f.call("UpdateBoard")
	if err := req.Validate(); err != nil {
		return service.Board{}, err
	}
	if f.UpdateBoardErr != nil {
		return service.Board{}, f.UpdateBoardErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.findBoard(id)
	if !ok {
		return service.Board{}, service.ErrNotFound
	}
	b := &f.boards[i]
	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Description != nil {
		b.Description = req.Description
	}
	if req.IsPublic != nil {
		b.IsPublic = *req.IsPublic
	}
	b.UpdatedAt = f.Now()
	return f.withCount(*b), nil
}

// DeleteBoard implements service.Service. Items go with the board.
func (f *FakeService) DeleteBoard(ctx context.Context, id int64) error {
	f.call("DeleteBoard")
	if f.DeleteBoardErr != nil {
		return f.DeleteBoardErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.findBoard(id)
	if !ok {
		return service.ErrNotFound
	}
	f.boards = append(f.boards[:i], f.boards[i+1:]...)
	delete(f.items, id)
	return nil
}

// ListItems implements service.Service. Items come back in reverse insertion
// order so callers cannot rely on API order matching position.
func (f *FakeService) ListItems(ctx context.Context, boardID int64) ([]service.Item, error) {
	f.call("ListItems")
	if err, ok := f.ListItemsErr[boardID]; ok && err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	items, ok := f.items[boardID]
	if !ok {
		return nil, service.ErrNotFound
	}
	result := make([]service.Item, len(items))
	copy(result, items)
	sort.SliceStable(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

// GetItem implements service.Service.
func (f *FakeService) GetItem(ctx context.Context, id int64) (service.Item, error) {
	f.call("GetItem")
	if f.GetItemErr != nil {
		return service.Item{}, f.GetItemErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, items := range f.items {
		for _, it := range items {
			if it.ID == id {
				return it, nil
			}
		}
	}
	return service.Item{}, service.ErrNotFound
}

// AddItem implements service.Service.
func (f *FakeService) AddItem(ctx context.Context, req service.AddItemRequest) (service.Item, error) {
	f.call("AddItem")
	if err := req.Validate(); err != nil {
		return service.Item{}, err
	}
	if f.AddItemErr != nil {
		return service.Item{}, f.AddItemErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[req.ListID]; !ok {
		return service.Item{}, service.ErrNotFound
	}
	return f.appendItem(req.ListID, req.URL), nil
}

// DeleteItem implements service.Service.
func (f *FakeService) DeleteItem(ctx context.Context, id int64) error {
	f.call("DeleteItem")
	if f.DeleteItemErr != nil {
		return f.DeleteItemErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for boardID, items := range f.items {
		for i, it := range items {
			if it.ID == id {
				f.items[boardID] = append(items[:i], items[i+1:]...)
				return nil
			}
		}
	}
	return service.ErrNotFound
}

// SyncProfile implements service.Service.
func (f *FakeService) SyncProfile(ctx context.Context, req service.SyncProfileRequest) (service.BackendUser, error) {
	f.call("SyncProfile")
	if f.SyncProfileErr != nil {
		return service.BackendUser{}, f.SyncProfileErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		f.user.DisplayName = &name
	}
	if req.PhotoURL != nil {
		f.user.PhotoURL = req.PhotoURL
	}
	f.user.UpdatedAt = f.Now()
	return f.user, nil
}

// Profile implements service.Service.
func (f *FakeService) Profile(ctx context.Context) (service.BackendUser, error) {
	f.call("Profile")
	if f.ProfileErr != nil {
		return service.BackendUser{}, f.ProfileErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.user, nil
}

var _ service.Service = (*FakeService)(nil)
