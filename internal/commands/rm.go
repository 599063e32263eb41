package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"curate/internal/config"
	"curate/internal/exitcode"
	"curate/internal/service"
	"curate/internal/state"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	boardRef string
}

// SetBoard sets the board reference (for testing).
func (c *RmCmd) SetBoard(ref string) {
	c.boardRef = ref
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return nil }
func (c *RmCmd) Synopsis() string  { return "Delete an item" }
func (c *RmCmd) Usage() string     { return "curate rm --board <board-ref> <n>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.boardRef, "board", "", "")
	fs.StringVar(&c.boardRef, "b", "", "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: item number required")
		return exitcode.UserError
	}
	num, ok := parsePositive(args[0])
	if !ok {
		fmt.Fprintf(errOut, "error: invalid item number: %s\n", args[0])
		return exitcode.UserError
	}
	if strings.TrimSpace(c.boardRef) == "" {
		fmt.Fprintln(errOut, "error: --board required")
		return exitcode.UserError
	}

	board, err := ResolveBoard(ctx, svc, c.boardRef)
	if err != nil {
		return reportBoardError(errOut, c.boardRef, err)
	}

	item, err := findItemByNumber(ctx, svc, board.ID, num)
	if err != nil {
		if errors.Is(err, errItemOutOfRange) {
			fmt.Fprintf(errOut, "error: item number out of range: %d\n", num)
			return exitcode.UserError
		}
		return reportError(errOut, err)
	}

	boards := state.NewBoards(svc, commandLogger(cfg, errOut))
	if err := boards.DeleteItem(ctx, board.ID, item.ID); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
