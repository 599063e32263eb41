package commands_test

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"curate/internal/commands"
	"curate/internal/config"
	"curate/internal/exitcode"
	"curate/internal/preview"
	"curate/internal/service"
	"curate/internal/testutil"
)

// runCommand is a helper to run a command with FakeService.
func runCommand(t *testing.T, cmd commands.Command, svc *testutil.FakeService, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}

	ctx := context.Background()
	var s service.Service
	if svc != nil {
		s = svc
	}
	code = cmd.Run(ctx, cfg, s, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// runWithFlags parses argv with the command's own flags before running it.
func runWithFlags(t *testing.T, cmd commands.Command, svc *testutil.FakeService, argv ...string) (stdout, stderr string, code int) {
	t.Helper()

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)
	if err := fs.Parse(argv); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	return runCommand(t, cmd, svc, fs.Args(), false)
}

// seedBoard creates "Reading" with a website, an image and a video item.
func seedBoard(svc *testutil.FakeService) int64 {
	id := svc.AddBoard("Reading")
	svc.AddURL(id, "https://example.com/a")
	svc.AddURL(id, "https://example.com/b.png")
	svc.AddURL(id, "https://youtu.be/x")
	return id
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	cmd := &commands.VersionCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "curate 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

func TestVersionCommand_ShowsBackend(t *testing.T) {
	cmd := &commands.VersionCmd{}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: t.TempDir(), BackendURL: "https://api.example.com"}
	code := cmd.Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "curate 0.1.0\nbackend https://api.example.com\n"
	if outBuf.String() != expected {
		t.Errorf("expected %q, got %q", expected, outBuf.String())
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	cmd := &commands.HelpCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "help", stdout)
}

// Tests for boards command
func TestBoardsCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddBoard("Reading")
	videos := svc.AddBoard("Videos")
	svc.AddURL(videos, "https://youtu.be/abc")

	cmd := &commands.BoardsCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}

	expected := "   1  Reading  (0 items)\n   2  Videos  (1 item)\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestBoardsCommand_Empty(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, _, code := runCommand(t, &commands.BoardsCmd{}, svc, nil, false)
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no boards found\n" {
		t.Errorf("expected %q, got %q", "no boards found\n", stdout)
	}

	stdout, _, _ = runCommand(t, &commands.BoardsCmd{}, svc, nil, true)
	if stdout != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", stdout)
	}
}

func TestBoardsCommand_RecentFilter(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddBoardAt("Old", testutil.Epoch.Add(-30*24*time.Hour))
	svc.AddBoard("New")

	cmd := &commands.BoardsCmd{}
	cmd.SetFilter("recent")
	cmd.SetClock(func() time.Time { return testutil.Epoch })
	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "   2  New  (0 items)\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestBoardsCommand_FavoritesIsEmpty(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddBoard("Reading")

	cmd := &commands.BoardsCmd{}
	cmd.SetFilter("favorites")
	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no boards found\n" {
		t.Errorf("expected %q, got %q", "no boards found\n", stdout)
	}
}

func TestBoardsCommand_UnknownFilter(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.BoardsCmd{}
	cmd.SetFilter("starred")
	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown board filter \"starred\" (want all, recent or favorites)\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
	if svc.Calls["ListBoards"] != 0 {
		t.Errorf("expected no backend call, got %d", svc.Calls["ListBoards"])
	}
}

func TestBoardsCommand_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     int
		expected string
	}{
		{
			name:     "unauthorized after retry",
			err:      fmt.Errorf("GET /lists: %w", service.ErrUnauthorized),
			code:     exitcode.AuthError,
			expected: "error: auth error: GET /lists: unauthorized\n",
		},
		{
			name:     "server failure",
			err:      errors.New("HTTP 500"),
			code:     exitcode.BackendError,
			expected: "error: backend error: HTTP 500\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewFakeService()
			svc.ListBoardsErr = tt.err

			stdout, stderr, code := runCommand(t, &commands.BoardsCmd{}, svc, nil, false)
			if code != tt.code {
				t.Errorf("expected exit code %d, got %d", tt.code, code)
			}
			if stdout != "" {
				t.Errorf("expected no stdout, got %q", stdout)
			}
			if stderr != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, stderr)
			}
		})
	}
}

// Tests for board and items commands
func TestBoardCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	seedBoard(svc)

	stdout, stderr, code := runCommand(t, &commands.BoardCmd{}, svc, []string{"reading"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "------------\n" +
		"Reading\n" +
		"------------\n" +
		"       1  website  https://example.com/a\n" +
		"       2  image    https://example.com/b.png\n" +
		"       3  youtube  https://youtu.be/x\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestBoardCommand_ByID(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddBoard("2024")
	id := svc.AddBoard("Other")

	stdout, _, code := runCommand(t, &commands.BoardCmd{}, svc, []string{fmt.Sprint(id)}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "------------\nOther\n------------\nno items found\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
	if svc.Calls["GetBoard"] != 1 {
		t.Errorf("expected a direct board lookup, got %d", svc.Calls["GetBoard"])
	}
}

func TestBoardCommand_ResolveErrors(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddBoard("Reading")
	svc.AddBoard(" reading ")

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"ambiguous", []string{"READING"}, "error: ambiguous board name: READING\n"},
		{"unknown title", []string{"Nope"}, "error: board not found: Nope\n"},
		{"unknown id", []string{"99"}, "error: board not found: 99\n"},
		{"missing", nil, "error: board reference required\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := runCommand(t, &commands.BoardCmd{}, svc, tt.args, false)
			if code != exitcode.UserError {
				t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
			}
			if stderr != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, stderr)
			}
		})
	}
}

func TestItemsCommand_FilterKeepsNumbers(t *testing.T) {
	svc := testutil.NewFakeService()
	seedBoard(svc)

	cmd := &commands.ItemsCmd{}
	cmd.SetFilter("videos")
	stdout, _, code := runCommand(t, cmd, svc, []string{"Reading"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "       3  youtube  https://youtu.be/x\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestItemsCommand_NoMatches(t *testing.T) {
	svc := testutil.NewFakeService()
	id := svc.AddBoard("Reading")
	svc.AddURL(id, "https://example.com/a")

	cmd := &commands.ItemsCmd{}
	cmd.SetFilter("images")
	stdout, _, code := runCommand(t, cmd, svc, []string{"Reading"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no items found\n" {
		t.Errorf("expected %q, got %q", "no items found\n", stdout)
	}
}

// Tests for createboard command
func TestCreateBoardCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := runWithFlags(t, &commands.CreateBoardCmd{}, svc, "--public", "-d", "links to read", "Read", "later")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "   1  Read later  (0 items) [public]\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}

	board, err := svc.GetBoard(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected board to exist: %v", err)
	}
	if board.Description == nil || *board.Description != "links to read" {
		t.Errorf("expected description to be stored, got %v", board.Description)
	}
}

func TestCreateBoardCommand_TitleRequired(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := runCommand(t, &commands.CreateBoardCmd{}, svc, []string{"  "}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: title required\n" {
		t.Errorf("expected %q, got %q", "error: title required\n", stderr)
	}
	if svc.Calls["CreateBoard"] != 0 {
		t.Errorf("expected no backend call, got %d", svc.Calls["CreateBoard"])
	}
}

// Tests for editboard command
func TestEditBoardCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddBoard("Reading")

	stdout, stderr, code := runWithFlags(t, &commands.EditBoardCmd{}, svc, "--title", "Later", "Reading")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "   1  Later  (0 items)\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestEditBoardCommand_Errors(t *testing.T) {
	tests := []struct {
		name     string
		argv     []string
		expected string
	}{
		{"no changes", []string{"Reading"}, "error: nothing to change (use --title, --description or --public)\n"},
		{"blank title", []string{"--title", " ", "Reading"}, "error: title required\n"},
		{"no board", []string{"--public"}, "error: board reference required\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewFakeService()
			svc.AddBoard("Reading")

			_, stderr, code := runWithFlags(t, &commands.EditBoardCmd{}, svc, tt.argv...)
			if code != exitcode.UserError {
				t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
			}
			if stderr != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, stderr)
			}
			if svc.Calls["UpdateBoard"] != 0 {
				t.Errorf("expected no update, got %d", svc.Calls["UpdateBoard"])
			}
		})
	}
}

// Tests for rmboard command
func TestRmBoardCommand_Empty(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddBoard("Reading")

	stdout, stderr, code := runCommand(t, &commands.RmBoardCmd{}, svc, []string{"Reading"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	if _, err := svc.GetBoard(context.Background(), 1); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected board to be deleted, got %v", err)
	}
}

func TestRmBoardCommand_NotEmpty(t *testing.T) {
	svc := testutil.NewFakeService()
	seedBoard(svc)

	_, stderr, code := runCommand(t, &commands.RmBoardCmd{}, svc, []string{"Reading"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: board not empty (use --force)\n" {
		t.Errorf("expected %q, got %q", "error: board not empty (use --force)\n", stderr)
	}
	if svc.Calls["DeleteBoard"] != 0 {
		t.Errorf("expected no delete, got %d", svc.Calls["DeleteBoard"])
	}
}

func TestRmBoardCommand_Force(t *testing.T) {
	svc := testutil.NewFakeService()
	seedBoard(svc)

	cmd := &commands.RmBoardCmd{}
	cmd.SetForce(true)
	stdout, _, code := runCommand(t, cmd, svc, []string{"Reading"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", stdout)
	}
	if svc.Calls["DeleteBoard"] != 1 {
		t.Errorf("expected one delete, got %d", svc.Calls["DeleteBoard"])
	}
}

// Tests for add command
func TestAddCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddBoard("Reading")

	cmd := &commands.AddCmd{}
	cmd.SetBoard("reading")
	stdout, stderr, code := runCommand(t, cmd, svc, []string{" https://example.com/a "}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "saved https://example.com/a to Reading (1 item)\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestAddCommand_InvalidURL(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddBoard("Reading")

	cmd := &commands.AddCmd{}
	cmd.SetBoard("Reading")
	_, stderr, code := runCommand(t, cmd, svc, []string{"ftp://example.com/a"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: enter a valid URL with http or https\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
	if svc.Calls["AddItem"] != 0 {
		t.Errorf("expected no backend call, got %d", svc.Calls["AddItem"])
	}
}

func TestAddCommand_ArgErrors(t *testing.T) {
	tests := []struct {
		name     string
		board    string
		args     []string
		expected string
	}{
		{"no url", "Reading", nil, "error: url required\n"},
		{"two urls", "Reading", []string{"https://a.example", "https://b.example"}, "error: exactly one url expected\n"},
		{"no board", "", []string{"https://a.example"}, "error: --board required\n"},
		{"unknown board", "Nope", []string{"https://a.example"}, "error: board not found: Nope\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewFakeService()
			svc.AddBoard("Reading")

			cmd := &commands.AddCmd{}
			cmd.SetBoard(tt.board)
			_, stderr, code := runCommand(t, cmd, svc, tt.args, false)
			if code != exitcode.UserError {
				t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
			}
			if stderr != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, stderr)
			}
		})
	}
}

func TestAddCommand_BackendFailure(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddBoard("Reading")
	svc.AddItemErr = errors.New("HTTP 500")

	cmd := &commands.AddCmd{}
	cmd.SetBoard("Reading")
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"https://example.com/a"}, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: backend error: HTTP 500\n" {
		t.Errorf("expected %q, got %q", "error: backend error: HTTP 500\n", stderr)
	}
}

// Tests for rm command
func TestRmCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	id := seedBoard(svc)

	cmd := &commands.RmCmd{}
	cmd.SetBoard("Reading")
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"2"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}

	items, err := svc.ListItems(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to list items: %v", err)
	}
	for _, it := range items {
		if it.URL == "https://example.com/b.png" {
			t.Error("expected item 2 to be deleted")
		}
	}
	if len(items) != 2 {
		t.Errorf("expected 2 items left, got %d", len(items))
	}
}

func TestRmCommand_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"no number", nil, "error: item number required\n"},
		{"not a number", []string{"abc"}, "error: invalid item number: abc\n"},
		{"zero", []string{"0"}, "error: invalid item number: 0\n"},
		{"out of range", []string{"4"}, "error: item number out of range: 4\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewFakeService()
			seedBoard(svc)

			cmd := &commands.RmCmd{}
			cmd.SetBoard("Reading")
			_, stderr, code := runCommand(t, cmd, svc, tt.args, false)
			if code != exitcode.UserError {
				t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
			}
			if stderr != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, stderr)
			}
			if svc.Calls["DeleteItem"] != 0 {
				t.Errorf("expected no delete, got %d", svc.Calls["DeleteItem"])
			}
		})
	}
}

// Tests for item command
func TestItemCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	board := svc.AddBoard("Reading")
	id := svc.AddURL(board, "https://example.com/a")

	stdout, stderr, code := runCommand(t, &commands.ItemCmd{}, svc, []string{fmt.Sprint(id)}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "id:          2\n" +
		"board:       1\n" +
		"url:         https://example.com/a\n" +
		"source:      website\n" +
		"position:    0\n" +
		"created:     2024-05-01\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestItemCommand_NotFound(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := runCommand(t, &commands.ItemCmd{}, svc, []string{"42"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: item not found: 42\n" {
		t.Errorf("expected %q, got %q", "error: item not found: 42\n", stderr)
	}
}

// Tests for preview command
func TestPreviewCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, `<html><head><title>Hello</title><meta name="description" content="A page"></head><body><p>Hi</p></body></html>`)
	}))
	defer srv.Close()

	cmd := &commands.PreviewCmd{}
	cmd.SetFetcher(preview.NewFetcher(preview.WithHTTPClient(srv.Client())))
	stdout, stderr, code := runCommand(t, cmd, nil, []string{srv.URL + "/page"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "url:         " + srv.URL + "/page\n" +
		"source:      website\n" +
		"title:       Hello\n" +
		"description: A page\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestPreviewCommand_Errors(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	cmd := &commands.PreviewCmd{}
	cmd.SetFetcher(preview.NewFetcher(preview.WithHTTPClient(srv.Client())))

	_, stderr, code := runCommand(t, cmd, nil, []string{"not a url"}, false)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: enter a valid URL with http or https\n" {
		t.Errorf("expected invalid URL error, got %q", stderr)
	}

	_, stderr, code = runCommand(t, cmd, nil, []string{srv.URL}, false)
	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if !strings.HasPrefix(stderr, "error: preview failed: ") {
		t.Errorf("expected preview failure, got %q", stderr)
	}
}

// Tests for whoami and sync commands
func TestWhoamiCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := runCommand(t, &commands.WhoamiCmd{}, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "id:     user-1\nemail:  user@example.com\nsince:  2024-05-01\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestWhoamiCommand_Unauthorized(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ProfileErr = service.ErrUnauthorized

	_, stderr, code := runCommand(t, &commands.WhoamiCmd{}, svc, nil, false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: auth error: unauthorized\n" {
		t.Errorf("expected %q, got %q", "error: auth error: unauthorized\n", stderr)
	}
}

func TestSyncCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := runWithFlags(t, &commands.SyncCmd{}, svc, "--name", " Ada ")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "id:     user-1\nemail:  user@example.com\nname:   Ada\nsince:  2024-05-01\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestSyncCommand_InvalidPhoto(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := runWithFlags(t, &commands.SyncCmd{}, svc, "--photo", "me.png")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid photo URL: me.png\n" {
		t.Errorf("expected %q, got %q", "error: invalid photo URL: me.png\n", stderr)
	}
	if svc.Calls["SyncProfile"] != 0 {
		t.Errorf("expected no backend call, got %d", svc.Calls["SyncProfile"])
	}
}

// Tests for board resolution
func TestResolveBoard(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddBoard("Reading")
	svc.AddBoard("Videos")
	ctx := context.Background()

	board, err := commands.ResolveBoard(ctx, svc, "  videos ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if board.ID != 2 {
		t.Errorf("expected board 2, got %d", board.ID)
	}

	if _, err := commands.ResolveBoard(ctx, svc, ""); !errors.Is(err, commands.ErrBoardRefRequired) {
		t.Errorf("expected ErrBoardRefRequired, got %v", err)
	}
	if _, err := commands.ResolveBoard(ctx, svc, "Music"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
