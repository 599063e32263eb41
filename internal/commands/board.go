package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"curate/internal/config"
	"curate/internal/exitcode"
	"curate/internal/filter"
	"curate/internal/output"
	"curate/internal/service"
	"curate/internal/state"
)

func init() {
	Register(&BoardCmd{})
	Register(&ItemsCmd{})
}

// BoardCmd implements the board command: header plus all items.
type BoardCmd struct{}

func (c *BoardCmd) Name() string      { return "board" }
func (c *BoardCmd) Aliases() []string { return nil }
func (c *BoardCmd) Synopsis() string  { return "Show a board and its items" }
func (c *BoardCmd) Usage() string     { return "curate board <board-ref>" }
func (c *BoardCmd) NeedsAuth() bool   { return true }

func (c *BoardCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *BoardCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return showBoard(ctx, cfg, svc, strings.Join(args, " "), filter.ItemAll, true, out, errOut)
}

// ItemsCmd implements the items command: items only, optionally filtered.
type ItemsCmd struct {
	filter string
}

// SetFilter sets the filter name (for testing).
func (c *ItemsCmd) SetFilter(f string) {
	c.filter = f
}

func (c *ItemsCmd) Name() string      { return "items" }
func (c *ItemsCmd) Aliases() []string { return nil }
func (c *ItemsCmd) Synopsis() string  { return "List the items of a board" }
func (c *ItemsCmd) Usage() string {
	return "curate items [--filter all|videos|images|links] <board-ref>"
}
func (c *ItemsCmd) NeedsAuth() bool { return true }

func (c *ItemsCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "all", "")
	fs.StringVar(&c.filter, "f", "all", "")
}

func (c *ItemsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	f, err := filter.ParseItemFilter(c.filter)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return showBoard(ctx, cfg, svc, strings.Join(args, " "), f, false, out, errOut)
}

// showBoard prints the items of the board named by ref. Item numbers are
// positions in the unfiltered display order, so they stay valid for rm.
func showBoard(ctx context.Context, cfg *config.Config, svc service.Service, ref string, f filter.Item, header bool, out, errOut io.Writer) int {
	board, err := ResolveBoard(ctx, svc, ref)
	if err != nil {
		return reportBoardError(errOut, ref, err)
	}

	items, err := state.LoadItems(ctx, svc, board.ID)
	if err != nil {
		return reportError(errOut, err)
	}
	all := items.All()

	shown := make(map[int64]bool)
	for _, it := range filter.Items(all, f) {
		shown[it.ID] = true
	}

	if header {
		output.FormatBoardHeader(out, board)
	}
	for i, it := range all {
		if shown[it.ID] {
			output.FormatItem(out, i+1, it)
		}
	}

	if len(shown) == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no items found")
	}
	return exitcode.Success
}
