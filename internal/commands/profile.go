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
	Register(&WhoamiCmd{})
	Register(&SyncCmd{})
}

// WhoamiCmd implements the whoami command.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return nil }
func (c *WhoamiCmd) Synopsis() string  { return "Show the signed-in backend profile" }
func (c *WhoamiCmd) Usage() string     { return "curate whoami" }
func (c *WhoamiCmd) NeedsAuth() bool   { return true }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	user, err := svc.Profile(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	output.FormatUser(out, user)
	return exitcode.Success
}

// SyncCmd implements the sync command.
type SyncCmd struct {
	name  string
	photo string
}

func (c *SyncCmd) Name() string      { return "sync" }
func (c *SyncCmd) Aliases() []string { return nil }
func (c *SyncCmd) Synopsis() string  { return "Push display name and photo to the backend profile" }
func (c *SyncCmd) Usage() string     { return "curate sync [--name <name>] [--photo <url>]" }
func (c *SyncCmd) NeedsAuth() bool   { return true }

func (c *SyncCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.name, "name", "", "")
	fs.StringVar(&c.photo, "photo", "", "")
}

func (c *SyncCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	var req service.SyncProfileRequest
	if name := strings.TrimSpace(c.name); name != "" {
		req.DisplayName = &name
	}
	if photo := strings.TrimSpace(c.photo); photo != "" {
		if err := service.ValidateItemURL(photo); err != nil {
			fmt.Fprintf(errOut, "error: invalid photo URL: %s\n", photo)
			return exitcode.UserError
		}
		req.PhotoURL = &photo
	}

	user, err := svc.SyncProfile(ctx, req)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatUser(out, user)
	}
	return exitcode.Success
}
