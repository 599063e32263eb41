package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"curate/internal/config"
	"curate/internal/exitcode"
	"curate/internal/output"
	"curate/internal/service"
)

func init() {
	Register(&ItemCmd{})
}

// ItemCmd implements the item command.
type ItemCmd struct{}

func (c *ItemCmd) Name() string      { return "item" }
func (c *ItemCmd) Aliases() []string { return nil }
func (c *ItemCmd) Synopsis() string  { return "Show one item" }
func (c *ItemCmd) Usage() string     { return "curate item <item-id>" }
func (c *ItemCmd) NeedsAuth() bool   { return true }

func (c *ItemCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ItemCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: item id required")
		return exitcode.UserError
	}
	if !isAllDigits(args[0]) {
		fmt.Fprintf(errOut, "error: invalid item id: %s\n", args[0])
		return exitcode.UserError
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(errOut, "error: invalid item id: %s\n", args[0])
		return exitcode.UserError
	}

	item, err := svc.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			fmt.Fprintf(errOut, "error: item not found: %d\n", id)
			return exitcode.UserError
		}
		return reportError(errOut, err)
	}

	output.FormatItemDetail(out, item)
	return exitcode.Success
}
