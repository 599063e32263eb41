package curateapi

import (
	"context"
	"fmt"
	"net/http"

	"curate/internal/service"
)

// Response envelopes. Every payload is wrapped in a single named key.
type (
	boardsEnvelope struct {
		Lists []service.Board `json:"lists"`
	}
	boardEnvelope struct {
		List *service.Board `json:"list"`
	}
	itemsEnvelope struct {
		Items []service.Item `json:"items"`
	}
	itemEnvelope struct {
		Item *service.Item `json:"item"`
	}
	userEnvelope struct {
		User *service.BackendUser `json:"user"`
	}
)

var _ service.Service = (*Client)(nil)

func missing(key, method, path string) error {
	return fmt.Errorf("response to %s %s has no %q", method, path, key)
}

// ListBoards returns all boards of the current user.
func (c *Client) ListBoards(ctx context.Context) ([]service.Board, error) {
	var env boardsEnvelope
	if err := c.do(ctx, http.MethodGet, "/lists", nil, &env); err != nil {
		return nil, err
	}
	return env.Lists, nil
}

// GetBoard returns a single board.
func (c *Client) GetBoard(ctx context.Context, id int64) (service.Board, error) {
	path := fmt.Sprintf("/lists/%d", id)
	var env boardEnvelope
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return service.Board{}, err
	}
	if env.List == nil {
		return service.Board{}, missing("list", http.MethodGet, path)
	}
	return *env.List, nil
}

// CreateBoard creates a board. The title is validated before any request is made.
func (c *Client) CreateBoard(ctx context.Context, req service.CreateBoardRequest) (service.Board, error) {
	if err := req.Validate(); err != nil {
		return service.Board{}, err
	}
	var env boardEnvelope
	if err := c.do(ctx, http.MethodPost, "/lists", req, &env); err != nil {
		return service.Board{}, err
	}
	if env.List == nil {
		return service.Board{}, missing("list", http.MethodPost, "/lists")
	}
	return *env.List, nil
}

// UpdateBoard sends a partial update.
func (c *Client) UpdateBoard(ctx context.Context, id int64, req service.UpdateBoardRequest) (service.Board, error) {
	if err := req.Validate(); err != nil {
		return service.Board{}, err
	}
	path := fmt.Sprintf("/lists/%d", id)
	var env boardEnvelope
	if err := c.do(ctx, http.MethodPut, path, req, &env); err != nil {
		return service.Board{}, err
	}
	if env.List == nil {
		return service.Board{}, missing("list", http.MethodPut, path)
	}
	return *env.List, nil
}

// DeleteBoard deletes a board and, on the backend, its items.
func (c *Client) DeleteBoard(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/lists/%d", id), nil, nil)
}

// ListItems returns the items of a board.
func (c *Client) ListItems(ctx context.Context, boardID int64) ([]service.Item, error) {
	var env itemsEnvelope
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/items/list/%d", boardID), nil, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

// GetItem returns a single item.
func (c *Client) GetItem(ctx context.Context, id int64) (service.Item, error) {
	path := fmt.Sprintf("/items/%d", id)
	var env itemEnvelope
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return service.Item{}, err
	}
	if env.Item == nil {
		return service.Item{}, missing("item", http.MethodGet, path)
	}
	return *env.Item, nil
}

// AddItem saves a URL into a board. The URL is validated before any request is made.
func (c *Client) AddItem(ctx context.Context, req service.AddItemRequest) (service.Item, error) {
	if err := req.Validate(); err != nil {
		return service.Item{}, err
	}
	var env itemEnvelope
	if err := c.do(ctx, http.MethodPost, "/items", req, &env); err != nil {
		return service.Item{}, err
	}
	if env.Item == nil {
		return service.Item{}, missing("item", http.MethodPost, "/items")
	}
	return *env.Item, nil
}

// DeleteItem deletes an item.
func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/items/%d", id), nil, nil)
}

// SyncProfile pushes display name and photo to the backend profile.
func (c *Client) SyncProfile(ctx context.Context, req service.SyncProfileRequest) (service.BackendUser, error) {
	var env userEnvelope
	if err := c.do(ctx, http.MethodPost, "/auth/sync", req, &env); err != nil {
		return service.BackendUser{}, err
	}
	if env.User == nil {
		return service.BackendUser{}, missing("user", http.MethodPost, "/auth/sync")
	}
	return *env.User, nil
}

// Profile returns the backend profile of the current user.
func (c *Client) Profile(ctx context.Context) (service.BackendUser, error) {
	var env userEnvelope
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &env); err != nil {
		return service.BackendUser{}, err
	}
	if env.User == nil {
		return service.BackendUser{}, missing("user", http.MethodGet, "/auth/me")
	}
	return *env.User, nil
}
