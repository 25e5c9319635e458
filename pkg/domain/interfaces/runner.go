package interfaces

import "context"

// CommandRunner runs external tools (npm, git, bumpversion, auto-changelog)
type CommandRunner interface {
	// Run executes the command and streams its output. Non-zero exit is an error.
	Run(ctx context.Context, name string, args ...string) error

	// Output executes the command and returns its trimmed standard output
	Output(ctx context.Context, name string, args ...string) (string, error)
}
