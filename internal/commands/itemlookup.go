package commands

import (
	"context"
	"errors"
	"fmt"

	"curate/internal/service"
	"curate/internal/state"
)

var errItemOutOfRange = errors.New("item number out of range")

// findItemByNumber finds an item by its 1-based number in the board's
// display order (position ascending).
func findItemByNumber(ctx context.Context, svc service.Service, boardID int64, num int) (service.Item, error) {
	items, err := state.LoadItems(ctx, svc, boardID)
	if err != nil {
		return service.Item{}, err
	}
	it, ok := items.At(num)
	if !ok {
		return service.Item{}, fmt.Errorf("%w: %d", errItemOutOfRange, num)
	}
	return it, nil
}
