package commands

import (
	"context"
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
	Register(&RmBoardCmd{})
}

// RmBoardCmd implements the rmboard command.
type RmBoardCmd struct {
	force bool
}

// SetForce sets the force flag (for testing).
func (c *RmBoardCmd) SetForce(force bool) {
	c.force = force
}

func (c *RmBoardCmd) Name() string      { return "rmboard" }
func (c *RmBoardCmd) Aliases() []string { return nil }
func (c *RmBoardCmd) Synopsis() string  { return "Delete a board" }
func (c *RmBoardCmd) Usage() string     { return "curate rmboard [--force] <board-ref>" }
func (c *RmBoardCmd) NeedsAuth() bool   { return true }

func (c *RmBoardCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
}

func (c *RmBoardCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ref := strings.Join(args, " ")

	boards := state.NewBoards(svc, commandLogger(cfg, errOut))
	board, err := ResolveBoard(ctx, svc, ref)
	if err != nil {
		return reportBoardError(errOut, ref, err)
	}

	// The backend deletes items with the board, so non-empty boards need --force.
	if !c.force {
		count := board.Count()
		if board.ItemCount == nil {
			items, err := svc.ListItems(ctx, board.ID)
			if err != nil {
				return reportError(errOut, err)
			}
			count = len(items)
		}
		if count > 0 {
			fmt.Fprintln(errOut, "error: board not empty (use --force)")
			return exitcode.UserError
		}
	}

	if err := boards.DeleteBoard(ctx, board.ID); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
