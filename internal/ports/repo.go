package ports

import "context"

// CommandResult is the outcome of one external command: trimmed output on
// success, or a non-nil Err describing the failure.
type CommandResult struct {
	Output string
	Err    error
}

// OK reports whether the command succeeded.
func (r CommandResult) OK() bool {
	return r.Err == nil
}

// CommandRunnerPort runs a local executable synchronously.
type CommandRunnerPort interface {
	Run(ctx context.Context, name string, args ...string) CommandResult
}
