// Package exitcode defines exit codes for the CLI.
package exitcode

// Process exit codes.
const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, board not found, ambiguous
	// name, invalid URL or title).
	UserError = 1

	// AuthError indicates an auth/config error, including a missing backend
	// URL and a 401 that survived the token refresh.
	AuthError = 2

	// BackendError indicates a backend error (4xx/5xx) or an unreachable backend.
	BackendError = 3
)
