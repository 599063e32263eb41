// Package state keeps the locally displayed boards and items in step with the
// backend when mutations are applied optimistically.
package state

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"curate/internal/service"
)

// Boards is the last fetched board collection plus local, unconfirmed changes.
// The backend stays authoritative: any failed mutation is followed by a refetch.
type Boards struct {
	svc service.Service
	log zerolog.Logger

	mu      sync.Mutex
	boards  []service.Board
	pending map[int64]bool
	loaded  bool
}

// NewBoards creates an empty collection backed by svc.
func NewBoards(svc service.Service, log zerolog.Logger) *Boards {
	return &Boards{
		svc:     svc,
		log:     log,
		pending: make(map[int64]bool),
	}
}

// Refresh replaces the collection with the backend's view. Pending marks are
// kept; they belong to mutations still in flight.
func (s *Boards) Refresh(ctx context.Context) error {
	boards, err := s.svc.ListBoards(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.boards = boards
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// ensure loads the collection once.
func (s *Boards) ensure(ctx context.Context) error {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()
	if loaded {
		return nil
	}
	return s.Refresh(ctx)
}

// List returns a copy of the boards in backend order.
func (s *Boards) List() []service.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]service.Board, len(s.boards))
	copy(out, s.boards)
	return out
}

// Get returns the board with id from the local collection.
func (s *Boards) Get(id int64) (service.Board, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.boards {
		if b.ID == id {
			return b, true
		}
	}
	return service.Board{}, false
}

// Pending reports whether board id has an unconfirmed local change.
func (s *Boards) Pending(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending[id]
}

// AddItem bumps the board's item count locally, then saves the item.
func (s *Boards) AddItem(ctx context.Context, req service.AddItemRequest) (service.Item, error) {
	if err := req.Validate(); err != nil {
		return service.Item{}, err
	}
	if err := s.ensure(ctx); err != nil {
		return service.Item{}, err
	}
	s.apply(req.ListID, +1)
	item, err := s.svc.AddItem(ctx, req)
	if err != nil {
		s.rollback(ctx, req.ListID)
		return service.Item{}, err
	}
	s.confirm(req.ListID)
	return item, nil
}

// DeleteItem lowers the board's item count locally, then deletes the item.
func (s *Boards) DeleteItem(ctx context.Context, boardID, itemID int64) error {
	if err := s.ensure(ctx); err != nil {
		return err
	}
	s.apply(boardID, -1)
	if err := s.svc.DeleteItem(ctx, itemID); err != nil {
		s.rollback(ctx, boardID)
		return err
	}
	s.confirm(boardID)
	return nil
}

// DeleteBoard removes the board locally, then deletes it on the backend.
func (s *Boards) DeleteBoard(ctx context.Context, id int64) error {
	if err := s.ensure(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	for i, b := range s.boards {
		if b.ID == id {
			s.boards = append(s.boards[:i:i], s.boards[i+1:]...)
			break
		}
	}
	s.pending[id] = true
	s.mu.Unlock()

	if err := s.svc.DeleteBoard(ctx, id); err != nil {
		s.rollback(ctx, id)
		return err
	}
	s.confirm(id)
	return nil
}

// apply adds delta to the board's item count and marks it pending.
// The count never goes below zero.
func (s *Boards) apply(id int64, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.boards {
		if s.boards[i].ID != id {
			continue
		}
		n := s.boards[i].Count() + delta
		if n < 0 {
			n = 0
		}
		s.boards[i].ItemCount = &n
	}
	s.pending[id] = true
}

func (s *Boards) confirm(id int64) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
}

// rollback clears the pending mark and rebuilds the collection from the
// backend. A failed refetch is logged; the caller still sees the original error.
func (s *Boards) rollback(ctx context.Context, id int64) {
	s.confirm(id)
	if err := s.Refresh(ctx); err != nil {
		s.log.Warn().Err(err).Int64("board_id", id).Msg("refetch after failed mutation")
	}
}
