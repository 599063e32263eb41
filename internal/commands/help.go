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

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "curate help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")
	DefaultRegistry.WriteSummary(out)
	return exitcode.Success
}

const helpText = `Usage:
  curate                                             List all boards
  curate boards [common flags] [--filter all|recent|favorites]
  curate board [common flags] <board-ref>            Show a board and its items
  curate items [common flags] [--filter all|videos|images|links] <board-ref>
  curate createboard [common flags] [--description <d>] [--public] <title...>
  curate editboard [common flags] [--title <t>] [--description <d>] [--public=true|false] <board-ref>
  curate rmboard [common flags] [--force] <board-ref>
  curate add [common flags] --board <board-ref> <url>
  curate rm [common flags] --board <board-ref> <n>
  curate item [common flags] <item-id>
  curate preview [common flags] [--content] <url>
  curate whoami [common flags]
  curate sync [common flags] [--name <name>] [--photo <url>]
  curate login [common flags]
  curate logout [common flags]
  curate help
  curate version

A board-ref is a board ID or a board title (case-insensitive).

Common flags:
  --config <dir>   Override config directory
  --backend <url>  Override the backend base URL
  --quiet          Suppress informational output
  --debug          Print debug logs and request counters to stderr

Environment:
  CURATE_BACKEND_URL   Backend base URL
  CURATE_TOKEN         Fixed bearer token (skips the stored login)
  CURATE_AUTH_MODE     oauth, service_account or none
  CURATE_AUDIENCE      ID token audience for service_account
  CURATE_CREDENTIALS   Service account key file for service_account
`
