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
)

func init() {
	Register(&CreateBoardCmd{})
}

// CreateBoardCmd implements the createboard command.
type CreateBoardCmd struct {
	description string
	public      bool
}

func (c *CreateBoardCmd) Name() string      { return "createboard" }
func (c *CreateBoardCmd) Aliases() []string { return []string{"mkboard"} }
func (c *CreateBoardCmd) Synopsis() string  { return "Create a new board" }
func (c *CreateBoardCmd) Usage() string {
	return "curate createboard [--description <text>] [--public] <title...>"
}
func (c *CreateBoardCmd) NeedsAuth() bool { return true }

func (c *CreateBoardCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.description, "d", "", "")
	fs.BoolVar(&c.public, "public", false, "")
}

func (c *CreateBoardCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	req := service.CreateBoardRequest{Title: title}
	if c.description != "" {
		desc := c.description
		req.Description = &desc
	}
	if c.public {
		public := true
		req.IsPublic = &public
	}

	board, err := svc.CreateBoard(ctx, req)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatBoard(out, board)
	}
	return exitcode.Success
}
