// Package service defines the backend-agnostic interface for board and item operations.
package service

import "context"

// Service defines the interface for Curate backend operations.
// All REST calls go through this interface.
// Commands never build HTTP requests directly.
type Service interface {
	// ListBoards returns the user's boards in API order.
	ListBoards(ctx context.Context) ([]Board, error)

	// GetBoard returns a single board by ID.
	GetBoard(ctx context.Context, id int64) (Board, error)

	// CreateBoard creates a new board and returns it as stored.
	CreateBoard(ctx context.Context, req CreateBoardRequest) (Board, error)

	// UpdateBoard applies a partial update to a board.
	UpdateBoard(ctx context.Context, id int64, req UpdateBoardRequest) (Board, error)

	// DeleteBoard deletes a board. The backend cascades to its items.
	DeleteBoard(ctx context.Context, id int64) error

	// ListItems returns the items of a board in API order.
	ListItems(ctx context.Context, boardID int64) ([]Item, error)

	// GetItem returns a single item by ID.
	GetItem(ctx context.Context, id int64) (Item, error)

	// AddItem saves a URL into a board.
	AddItem(ctx context.Context, req AddItemRequest) (Item, error)

	// DeleteItem deletes an item.
	DeleteItem(ctx context.Context, id int64) error

	// SyncProfile pushes profile fields from the auth identity to the backend.
	SyncProfile(ctx context.Context, req SyncProfileRequest) (BackendUser, error)

	// Profile returns the backend's profile record for the current user.
	Profile(ctx context.Context) (BackendUser, error)
}
