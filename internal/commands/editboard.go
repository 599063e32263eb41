package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"curate/internal/config"
	"curate/internal/exitcode"
	"curate/internal/output"
	"curate/internal/service"
)

func init() {
	Register(&EditBoardCmd{})
}

// optString is a string flag that remembers whether it was given.
type optString struct {
	value *string
}

func (o *optString) String() string {
	if o == nil || o.value == nil {
		return ""
	}
	return *o.value
}

func (o *optString) Set(s string) error {
	o.value = &s
	return nil
}

// optBool is a boolean flag that remembers whether it was given.
type optBool struct {
	value *bool
}

func (o *optBool) String() string {
	if o == nil || o.value == nil {
		return ""
	}
	return strconv.FormatBool(*o.value)
}

func (o *optBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	o.value = &v
	return nil
}

func (o *optBool) IsBoolFlag() bool { return true }

// EditBoardCmd implements the editboard command.
type EditBoardCmd struct {
	title       optString
	description optString
	public      optBool
}

func (c *EditBoardCmd) Name() string      { return "editboard" }
func (c *EditBoardCmd) Aliases() []string { return nil }
func (c *EditBoardCmd) Synopsis() string  { return "Change a board's title, description or visibility" }
func (c *EditBoardCmd) Usage() string {
	return "curate editboard [--title <t>] [--description <d>] [--public=true|false] <board-ref>"
}
func (c *EditBoardCmd) NeedsAuth() bool { return true }

func (c *EditBoardCmd) RegisterFlags(fs *flag.FlagSet) {
	c.title, c.description, c.public = optString{}, optString{}, optBool{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.description, "description", "")
	fs.Var(&c.description, "d", "")
	fs.Var(&c.public, "public", "")
}

func (c *EditBoardCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ref := strings.Join(args, " ")
	if strings.TrimSpace(ref) == "" {
		fmt.Fprintln(errOut, "error: board reference required")
		return exitcode.UserError
	}

	req := service.UpdateBoardRequest{
		Title:       c.title.value,
		Description: c.description.value,
		IsPublic:    c.public.value,
	}
	if req.Empty() {
		fmt.Fprintln(errOut, "error: nothing to change (use --title, --description or --public)")
		return exitcode.UserError
	}
	if err := req.Validate(); err != nil {
		return reportError(errOut, err)
	}

	board, err := ResolveBoard(ctx, svc, ref)
	if err != nil {
		return reportBoardError(errOut, ref, err)
	}

	board, err = svc.UpdateBoard(ctx, board.ID, req)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatBoard(out, board)
	}
	return exitcode.Success
}
