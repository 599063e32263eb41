package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"curate/internal/config"
	"curate/internal/exitcode"
	"curate/internal/service"
)

// Version is the application version. Set at build time.
var Version = "0.1.0"

func init() {
	Register(&VersionCmd{})
}

// VersionCmd implements the version command. The configured backend, if
// any, is printed on a second line.
type VersionCmd struct{}

func (c *VersionCmd) Name() string      { return "version" }
func (c *VersionCmd) Aliases() []string { return nil }
func (c *VersionCmd) Synopsis() string  { return "Print version" }
func (c *VersionCmd) Usage() string     { return "curate version" }
func (c *VersionCmd) NeedsAuth() bool   { return false }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *VersionCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprintf(out, "curate %s\n", Version)
	if cfg.BackendURL != "" && !cfg.Quiet {
		fmt.Fprintf(out, "backend %s\n", cfg.BackendURL)
	}
	return exitcode.Success
}
