package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"curate/internal/config"
	"curate/internal/exitcode"
	"curate/internal/output"
	"curate/internal/service"
	"curate/internal/state"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	boardRef string
}

// SetBoard sets the board reference (for testing).
func (c *AddCmd) SetBoard(ref string) {
	c.boardRef = ref
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"save"} }
func (c *AddCmd) Synopsis() string  { return "Save a URL into a board" }
func (c *AddCmd) Usage() string     { return "curate add --board <board-ref> <url>" }
func (c *AddCmd) NeedsAuth() bool   { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.boardRef, "board", "", "")
	fs.StringVar(&c.boardRef, "b", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: url required")
		return exitcode.UserError
	}
	if len(args) > 1 {
		fmt.Fprintln(errOut, "error: exactly one url expected")
		return exitcode.UserError
	}
	if strings.TrimSpace(c.boardRef) == "" {
		fmt.Fprintln(errOut, "error: --board required")
		return exitcode.UserError
	}

	req := service.AddItemRequest{URL: args[0]}
	if err := req.Validate(); err != nil {
		return reportError(errOut, err)
	}

	board, err := ResolveBoard(ctx, svc, c.boardRef)
	if err != nil {
		return reportBoardError(errOut, c.boardRef, err)
	}
	req.ListID = board.ID

	boards := state.NewBoards(svc, commandLogger(cfg, errOut))
	item, err := boards.AddItem(ctx, req)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		updated, ok := boards.Get(board.ID)
		if !ok {
			updated = board
		}
		fmt.Fprintf(out, "saved %s to %s (%s)\n", item.URL, updated.Title, output.ItemCount(updated.Count()))
	}
	return exitcode.Success
}
