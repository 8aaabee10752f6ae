package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"release-metadata/internal/adapters"
	"release-metadata/internal/core"
	"release-metadata/internal/ports"
	"release-metadata/internal/types"
)

const (
	testHead = "2879128793bd9cf1c8a98a02cb3e671bbea16800"
	testURL  = "https://host/owner/test-repo.git"
)

type fakeRunner struct {
	responses map[string]ports.CommandResult
	calls     []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ports.CommandResult {
	key := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, key)
	if result, ok := f.responses[key]; ok {
		return result
	}
	return ports.CommandResult{Err: errors.New("command failed: " + key)}
}

type fakeRuntime struct{}

func (fakeRuntime) Packages() []types.PackageInfo {
	return []types.PackageInfo{{Name: "go", Versions: map[string]string{"go": "go1.25.0"}}}
}

func newTestService(t *testing.T, env map[string]string) (Service, *fakeRunner, string) {
	t.Helper()
	dir := t.TempDir()
	runner := &fakeRunner{responses: map[string]ports.CommandResult{
		"git remote get-url origin":             {Output: testURL},
		"git rev-parse --show-toplevel":         {Output: "/path/to/test-repo"},
		"git rev-parse HEAD":                    {Output: testHead},
		"git symbolic-ref --quiet --short HEAD": {Output: "release"},
	}}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	service := Service{
		Runner:  runner,
		Runtime: fakeRuntime{},
		Files:   adapters.NewMetadataFileAdapter(),
		Schema:  adapters.NewSchemaValidatorAdapter(),
		Ambient: core.Ambient{
			WorkingDir: dir,
			LookupEnv:  lookup,
			Now: func() time.Time {
				return time.Date(2021, 9, 10, 19, 12, 45, 0, time.UTC)
			},
		},
		Gate: core.SecurityGate{LookupEnv: lookup},
	}
	return service, runner, dir
}

func codeOf(err error) errbuilder.ErrCode {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) {
		return errbuilder.CodeOf(builder)
	}
	return errbuilder.CodeOf(err)
}
