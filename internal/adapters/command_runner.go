package adapters

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"release-metadata/internal/ports"
	"release-metadata/internal/shared"
	"release-metadata/internal/types"
)

// CommandRunnerAdapter runs executables in Dir, or the process working
// directory when Dir is empty.
type CommandRunnerAdapter struct {
	Dir string
}

func NewCommandRunnerAdapter(dir string) CommandRunnerAdapter {
	return CommandRunnerAdapter{Dir: dir}
}

func (a CommandRunnerAdapter) Run(ctx context.Context, name string, args ...string) ports.CommandResult {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = a.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := stderr.Bytes()
		if len(bytes.TrimSpace(detail)) == 0 {
			detail = stdout.Bytes()
		}
		return ports.CommandResult{
			Err: types.NewKindError(
				types.ErrGitCommandFailure,
				errbuilder.CodeInternal,
				name+" "+strings.Join(args, " ")+" failed",
				shared.CommandError(detail, err),
			),
		}
	}
	return ports.CommandResult{Output: strings.TrimSpace(stdout.String())}
}

var _ ports.CommandRunnerPort = CommandRunnerAdapter{}
