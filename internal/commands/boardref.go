package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"curate/internal/exitcode"
	"curate/internal/service"
)

// ErrBoardRefRequired indicates no board reference was provided.
var ErrBoardRefRequired = errors.New("board reference required")

// ResolveBoard finds the board named by ref.
//
// Resolution rules:
// 1. All digits → board ID, fetched directly
// 2. Otherwise → case-insensitive match on the trimmed title
//
// No match returns service.ErrNotFound, several return service.ErrAmbiguous.
func ResolveBoard(ctx context.Context, svc service.Service, ref string) (service.Board, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return service.Board{}, ErrBoardRefRequired
	}

	if isAllDigits(ref) {
		id, err := strconv.ParseInt(ref, 10, 64)
		if err != nil {
			return service.Board{}, fmt.Errorf("invalid board id: %s", ref)
		}
		return svc.GetBoard(ctx, id)
	}

	boards, err := svc.ListBoards(ctx)
	if err != nil {
		return service.Board{}, err
	}

	want := strings.ToLower(ref)
	var matches []service.Board
	for _, b := range boards {
		if strings.ToLower(strings.TrimSpace(b.Title)) == want {
			matches = append(matches, b)
		}
	}

	switch len(matches) {
	case 0:
		return service.Board{}, service.ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return service.Board{}, service.ErrAmbiguous
	}
}

// reportBoardError prints a board resolution failure and returns its exit code.
func reportBoardError(errOut io.Writer, ref string, err error) int {
	switch {
	case errors.Is(err, ErrBoardRefRequired):
		fmt.Fprintln(errOut, "error: board reference required")
		return exitcode.UserError
	case errors.Is(err, service.ErrNotFound):
		fmt.Fprintf(errOut, "error: board not found: %s\n", strings.TrimSpace(ref))
		return exitcode.UserError
	case errors.Is(err, service.ErrAmbiguous):
		fmt.Fprintf(errOut, "error: ambiguous board name: %s\n", strings.TrimSpace(ref))
		return exitcode.UserError
	}
	return reportError(errOut, err)
}

// reportError prints a backend failure and returns its exit code.
// 401s that survived the retry are auth errors; validation failures are user
// errors; everything else is a backend error.
func reportError(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	case errors.Is(err, service.ErrTitleRequired):
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	case errors.Is(err, service.ErrInvalidURL):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// parsePositive parses a 1-based number argument.
func parsePositive(s string) (int, bool) {
	if !isAllDigits(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
