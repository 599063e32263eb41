package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"curate/internal/config"
	"curate/internal/exitcode"
	"curate/internal/output"
	"curate/internal/preview"
	"curate/internal/service"
)

func init() {
	Register(&PreviewCmd{})
}

// PreviewCmd implements the preview command. It talks to the URL directly,
// never to the backend.
type PreviewCmd struct {
	content bool

	// fetcher overrides the default fetcher (for testing).
	fetcher *preview.Fetcher
}

// SetFetcher sets the fetcher (for testing).
func (c *PreviewCmd) SetFetcher(f *preview.Fetcher) {
	c.fetcher = f
}

func (c *PreviewCmd) Name() string      { return "preview" }
func (c *PreviewCmd) Aliases() []string { return nil }
func (c *PreviewCmd) Synopsis() string  { return "Show what a URL would look like once saved" }
func (c *PreviewCmd) Usage() string     { return "curate preview [--content] <url>" }
func (c *PreviewCmd) NeedsAuth() bool   { return false }

func (c *PreviewCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.content, "content", false, "")
}

func (c *PreviewCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: url required")
		return exitcode.UserError
	}

	f := c.fetcher
	if f == nil {
		f = preview.NewFetcher(preview.WithLogger(commandLogger(cfg, errOut)))
	}

	ctx, cancel := context.WithTimeout(ctx, preview.DefaultTimeout)
	defer cancel()

	p, err := f.Fetch(ctx, args[0], c.content)
	if err != nil {
		if errors.Is(err, service.ErrInvalidURL) {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: preview failed: %v\n", err)
		return exitcode.BackendError
	}

	output.FormatPreview(out, p)
	return exitcode.Success
}
