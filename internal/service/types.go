// Package service defines the backend-agnostic interface for board and item operations.
package service

import (
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a board or item reference matches nothing.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous is returned when a board name matches more than one board.
	ErrAmbiguous = errors.New("ambiguous")

	// ErrTitleRequired is returned when a board title is empty after trimming.
	ErrTitleRequired = errors.New("title required")

	// ErrInvalidURL is returned when an item URL is not an absolute http/https URL.
	ErrInvalidURL = errors.New("enter a valid URL with http or https")

	// ErrUnauthorized is matched by backend errors for HTTP 401.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnreachable is matched by backend errors where no response arrived.
	ErrUnreachable = errors.New("backend unreachable")
)

// Source types assigned by the backend to items.
const (
	SourceYouTube = "youtube"
	SourceImage   = "image"
	SourceWebsite = "website"
)

// Board is a named collection ("list") of saved items.
type Board struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	IsPublic    bool      `json:"is_public"`
	CoverImage  *string   `json:"cover_image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ItemCount   *int      `json:"item_count,omitempty"`
}

// Count returns the server-computed item count, or 0 when absent.
func (b Board) Count() int {
	if b.ItemCount == nil {
		return 0
	}
	return *b.ItemCount
}

// CoverImages splits the comma-joined cover_image field into URLs.
// Blank entries are dropped.
func (b Board) CoverImages() []string {
	if b.CoverImage == nil {
		return nil
	}
	var urls []string
	for _, part := range strings.Split(*b.CoverImage, ",") {
		if part = strings.TrimSpace(part); part != "" {
			urls = append(urls, part)
		}
	}
	return urls
}

// Item is a saved URL with derived metadata, belonging to exactly one board.
type Item struct {
	ID           int64           `json:"id"`
	ListID       int64           `json:"list_id"`
	URL          string          `json:"url"`
	Title        *string         `json:"title,omitempty"`
	Description  *string         `json:"description,omitempty"`
	ThumbnailURL *string         `json:"thumbnail_url,omitempty"`
	SourceType   *string         `json:"source_type,omitempty"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
	Position     int             `json:"position"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Source returns the item's source type, or "" when the backend did not classify it.
func (i Item) Source() string {
	if i.SourceType == nil {
		return ""
	}
	return *i.SourceType
}

// BackendUser is the profile record synced from the external auth identity.
type BackendUser struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"display_name,omitempty"`
	PhotoURL    *string   `json:"photo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateBoardRequest is the body of POST /lists.
type CreateBoardRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	IsPublic    *bool   `json:"isPublic,omitempty"`
}

// Validate trims the title and rejects an empty one.
func (r *CreateBoardRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return ErrTitleRequired
	}
	r.Description = trimOptional(r.Description)
	return nil
}

// UpdateBoardRequest is the body of PUT /lists/{id}. Nil fields are left unchanged.
type UpdateBoardRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	IsPublic    *bool   `json:"isPublic,omitempty"`
}

// Validate rejects a title that is present but blank.
func (r *UpdateBoardRequest) Validate() error {
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" {
			return ErrTitleRequired
		}
		r.Title = &title
	}
	return nil
}

// Empty reports whether the update would change nothing.
func (r UpdateBoardRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.IsPublic == nil
}

// AddItemRequest is the body of POST /items.
type AddItemRequest struct {
	ListID int64  `json:"listId"`
	URL    string `json:"url"`
}

// Validate trims the URL and checks it is a well-formed http/https URL.
func (r *AddItemRequest) Validate() error {
	r.URL = strings.TrimSpace(r.URL)
	return ValidateItemURL(r.URL)
}

// SyncProfileRequest is the body of POST /auth/sync.
type SyncProfileRequest struct {
	DisplayName *string `json:"displayName,omitempty"`
	PhotoURL    *string `json:"photoUrl,omitempty"`
}

// ValidateItemURL checks that raw is an absolute http or https URL with a host.
func ValidateItemURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return ErrInvalidURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidURL
	}
	if u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
