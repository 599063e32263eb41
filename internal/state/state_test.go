package state_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curate/internal/service"
	"curate/internal/state"
	"curate/internal/testutil"
)

var errBackend = errors.New("backend exploded")

func setup(t *testing.T) (*testutil.FakeService, *state.Boards, int64) {
	t.Helper()
	svc := testutil.NewFakeService()
	id := svc.AddBoard("Recipes")
	svc.AddURL(id, "https://example.com/a")
	s := state.NewBoards(svc, zerolog.Nop())
	require.NoError(t, s.Refresh(context.Background()))
	return svc, s, id
}

func TestBoards_AddItemConfirmed(t *testing.T) {
	svc, s, id := setup(t)

	item, err := s.AddItem(context.Background(), service.AddItemRequest{ListID: id, URL: "https://youtu.be/x"})
	require.NoError(t, err)
	assert.Equal(t, service.SourceYouTube, item.Source())

	b, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, 2, b.Count())
	assert.False(t, s.Pending(id))
	assert.Equal(t, 1, svc.Calls["ListBoards"])
}

func TestBoards_AddItemRollsBack(t *testing.T) {
	svc, s, id := setup(t)
	svc.AddItemErr = errBackend

	_, err := s.AddItem(context.Background(), service.AddItemRequest{ListID: id, URL: "https://example.com/b"})
	assert.ErrorIs(t, err, errBackend)

	b, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, 1, b.Count())
	assert.False(t, s.Pending(id))
	assert.Equal(t, 2, svc.Calls["ListBoards"])
}

func TestBoards_AddItemInvalidURL(t *testing.T) {
	svc, s, id := setup(t)

	_, err := s.AddItem(context.Background(), service.AddItemRequest{ListID: id, URL: "not a url"})
	assert.ErrorIs(t, err, service.ErrInvalidURL)
	assert.Zero(t, svc.Calls["AddItem"])
	assert.False(t, s.Pending(id))
}

func TestBoards_DeleteItem(t *testing.T) {
	svc, s, id := setup(t)
	items, err := svc.ListItems(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, s.DeleteItem(context.Background(), id, items[0].ID))
	b, _ := s.Get(id)
	assert.Equal(t, 0, b.Count())
}

func TestBoards_DeleteItemRollsBack(t *testing.T) {
	svc, s, id := setup(t)
	svc.DeleteItemErr = errBackend

	err := s.DeleteItem(context.Background(), id, 999)
	assert.ErrorIs(t, err, errBackend)
	b, _ := s.Get(id)
	assert.Equal(t, 1, b.Count())
	assert.False(t, s.Pending(id))
}

func TestBoards_RollbackRefetchFailureKeepsOriginalError(t *testing.T) {
	svc, s, id := setup(t)
	svc.AddItemErr = errBackend
	svc.ListBoardsErr = errors.New("still down")

	_, err := s.AddItem(context.Background(), service.AddItemRequest{ListID: id, URL: "https://example.com/b"})
	assert.ErrorIs(t, err, errBackend)
	assert.False(t, s.Pending(id))
}

func TestBoards_DeleteBoard(t *testing.T) {
	svc, s, id := setup(t)
	other := svc.AddBoard("Travel")
	require.NoError(t, s.Refresh(context.Background()))

	require.NoError(t, s.DeleteBoard(context.Background(), id))
	boards := s.List()
	require.Len(t, boards, 1)
	assert.Equal(t, other, boards[0].ID)
}

func TestBoards_DeleteBoardRollsBack(t *testing.T) {
	svc, s, id := setup(t)
	svc.DeleteBoardErr = errBackend

	err := s.DeleteBoard(context.Background(), id)
	assert.ErrorIs(t, err, errBackend)
	_, ok := s.Get(id)
	assert.True(t, ok)
}

func TestBoards_LoadsLazily(t *testing.T) {
	svc := testutil.NewFakeService()
	id := svc.AddBoard("Lazy")
	s := state.NewBoards(svc, zerolog.Nop())

	_, err := s.AddItem(context.Background(), service.AddItemRequest{ListID: id, URL: "https://example.com"})
	require.NoError(t, err)
	b, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, 1, b.Count())
}

func TestItems_Order(t *testing.T) {
	items := state.NewItems(1, []service.Item{
		{ID: 3, Position: 2},
		{ID: 1, Position: 0},
		{ID: 4, Position: 1},
		{ID: 2, Position: 1},
	})

	var ids []int64
	for _, it := range items.All() {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []int64{1, 2, 4, 3}, ids)

	items.Add(service.Item{ID: 5, Position: 0})
	first, ok := items.At(2)
	require.True(t, ok)
	assert.Equal(t, int64(5), first.ID)

	assert.True(t, items.Remove(4))
	assert.False(t, items.Remove(4))
	assert.Equal(t, 4, items.Len())

	_, ok = items.At(0)
	assert.False(t, ok)
	_, ok = items.At(5)
	assert.False(t, ok)
}

func TestLoadItems(t *testing.T) {
	svc := testutil.NewFakeService()
	id := svc.AddBoard("Board")
	a := svc.AddURL(id, "https://example.com/1")
	b := svc.AddURL(id, "https://example.com/2")

	items, err := state.LoadItems(context.Background(), svc, id)
	require.NoError(t, err)
	all := items.All()
	require.Len(t, all, 2)
	assert.Equal(t, a, all[0].ID)
	assert.Equal(t, b, all[1].ID)
}
