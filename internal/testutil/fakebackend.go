package testutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"curate/internal/service"
)

// FakeBackend serves the Curate REST API over HTTP from a FakeService.
type FakeBackend struct {
	Service *FakeService
	Server  *httptest.Server

	mu         sync.Mutex
	token      string
	rejectNext int
	seen       []string
}

// NewFakeBackend starts a server backed by svc. It is closed when the test ends.
func NewFakeBackend(t *testing.T, svc *FakeService) *FakeBackend {
	t.Helper()
	b := &FakeBackend{Service: svc}
	b.Server = httptest.NewServer(b.router())
	t.Cleanup(b.Server.Close)
	return b
}

// URL returns the base URL of the server.
func (b *FakeBackend) URL() string {
	return b.Server.URL
}

// RequireToken makes the backend accept only "Bearer <token>".
// An empty token accepts any bearer credential.
func (b *FakeBackend) RequireToken(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.token = token
}

// RejectNext answers the next n requests with 401 regardless of credentials.
func (b *FakeBackend) RejectNext(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rejectNext = n
}

// Authorizations returns the Authorization header of every request received.
func (b *FakeBackend) Authorizations() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.seen...)
}

func (b *FakeBackend) router() *mux.Router {
	r := mux.NewRouter()
	r.Use(b.authenticate)

	r.HandleFunc("/lists", b.listBoards).Methods(http.MethodGet)
	r.HandleFunc("/lists", b.createBoard).Methods(http.MethodPost)
	r.HandleFunc("/lists/{id:[0-9]+}", b.getBoard).Methods(http.MethodGet)
	r.HandleFunc("/lists/{id:[0-9]+}", b.updateBoard).Methods(http.MethodPut)
	r.HandleFunc("/lists/{id:[0-9]+}", b.deleteBoard).Methods(http.MethodDelete)
	r.HandleFunc("/items/list/{id:[0-9]+}", b.listItems).Methods(http.MethodGet)
	r.HandleFunc("/items", b.addItem).Methods(http.MethodPost)
	r.HandleFunc("/items/{id:[0-9]+}", b.getItem).Methods(http.MethodGet)
	r.HandleFunc("/items/{id:[0-9]+}", b.deleteItem).Methods(http.MethodDelete)
	r.HandleFunc("/auth/sync", b.syncProfile).Methods(http.MethodPost)
	r.HandleFunc("/auth/me", b.profile).Methods(http.MethodGet)
	return r
}

func (b *FakeBackend) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := r.Header.Get("Authorization")

		b.mu.Lock()
		b.seen = append(b.seen, got)
		reject := b.rejectNext > 0
		if reject {
			b.rejectNext--
		}
		want := b.token
		b.mu.Unlock()

		switch {
		case reject, got == "":
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		case want != "" && got != "Bearer "+want:
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *FakeBackend) listBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := b.Service.ListBoards(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if boards == nil {
		boards = []service.Board{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"lists": boards})
}

func (b *FakeBackend) createBoard(w http.ResponseWriter, r *http.Request) {
	var req service.CreateBoardRequest
	if !decode(w, r, &req) {
		return
	}
	board, err := b.Service.CreateBoard(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"list": board})
}

func (b *FakeBackend) getBoard(w http.ResponseWriter, r *http.Request) {
	board, err := b.Service.GetBoard(r.Context(), pathID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"list": board})
}

func (b *FakeBackend) updateBoard(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateBoardRequest
	if !decode(w, r, &req) {
		return
	}
	board, err := b.Service.UpdateBoard(r.Context(), pathID(r), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"list": board})
}

func (b *FakeBackend) deleteBoard(w http.ResponseWriter, r *http.Request) {
	if err := b.Service.DeleteBoard(r.Context(), pathID(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "List deleted"})
}

func (b *FakeBackend) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := b.Service.ListItems(r.Context(), pathID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []service.Item{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (b *FakeBackend) addItem(w http.ResponseWriter, r *http.Request) {
	var req service.AddItemRequest
	if !decode(w, r, &req) {
		return
	}
	item, err := b.Service.AddItem(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"item": item})
}

func (b *FakeBackend) getItem(w http.ResponseWriter, r *http.Request) {
	item, err := b.Service.GetItem(r.Context(), pathID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"item": item})
}

func (b *FakeBackend) deleteItem(w http.ResponseWriter, r *http.Request) {
	if err := b.Service.DeleteItem(r.Context(), pathID(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Item deleted"})
}

func (b *FakeBackend) syncProfile(w http.ResponseWriter, r *http.Request) {
	var req service.SyncProfileRequest
	if !decode(w, r, &req) {
		return
	}
	user, err := b.Service.SyncProfile(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (b *FakeBackend) profile(w http.ResponseWriter, r *http.Request) {
	user, err := b.Service.Profile(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// pathID reads the {id} route variable; the route pattern guarantees digits.
func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrTitleRequired), errors.Is(err, service.ErrInvalidURL):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
