package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"curate/internal/config"
	"curate/internal/exitcode"
	"curate/internal/filter"
	"curate/internal/output"
	"curate/internal/service"
)

func init() {
	Register(&BoardsCmd{})
}

// BoardsCmd implements the boards command. It is also what runs with no arguments.
type BoardsCmd struct {
	filter string

	// now anchors the recent filter; nil means time.Now.
	now func() time.Time
}

// SetFilter sets the filter name (for testing).
func (c *BoardsCmd) SetFilter(f string) {
	c.filter = f
}

// SetClock sets the clock used by the recent filter (for testing).
func (c *BoardsCmd) SetClock(now func() time.Time) {
	c.now = now
}

func (c *BoardsCmd) Name() string      { return "boards" }
func (c *BoardsCmd) Aliases() []string { return []string{"ls"} }
func (c *BoardsCmd) Synopsis() string  { return "Print all boards" }
func (c *BoardsCmd) Usage() string     { return "curate boards [--filter all|recent|favorites]" }
func (c *BoardsCmd) NeedsAuth() bool   { return true }

func (c *BoardsCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "all", "")
	fs.StringVar(&c.filter, "f", "all", "")
}

func (c *BoardsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	f, err := filter.ParseBoardFilter(c.filter)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	boards, err := svc.ListBoards(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	now := time.Now
	if c.now != nil {
		now = c.now
	}
	boards = filter.Boards(boards, f, now())

	for _, b := range boards {
		output.FormatBoard(out, b)
	}

	if len(boards) == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no boards found")
	}
	return exitcode.Success
}
