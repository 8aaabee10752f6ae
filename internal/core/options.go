package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"release-metadata/internal/types"
)

// Ambient is the process state a top-level operation reads once: the working
// directory, environment variables and the clock.
type Ambient struct {
	WorkingDir string
	LookupEnv  func(key string) (string, bool)
	Now        func() time.Time
}

// DefaultAmbient captures the current process.
func DefaultAmbient() Ambient {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return Ambient{
		WorkingDir: wd,
		LookupEnv:  os.LookupEnv,
		Now:        time.Now,
	}
}

func (a Ambient) env(key string) (string, bool) {
	if a.LookupEnv == nil {
		return "", false
	}
	return a.LookupEnv(key)
}

func (a Ambient) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

// ValidateMode rejects anything but the application and command-line modes.
func ValidateMode(mode types.Mode) error {
	switch mode {
	case types.ModeApplication, types.ModeCommandLine:
		return nil
	default:
		return types.NewKindError(
			types.ErrInvalidMode,
			errbuilder.CodeInvalidArgument,
			fmt.Sprintf("invalid mode '%s' provided", mode),
			nil,
		)
	}
}

// ResolveOptions turns sparse options into a fully defaulted Config.
func ResolveOptions(mode types.Mode, opts *types.Options, ambient Ambient) (types.Config, error) {
	if err := ValidateMode(mode); err != nil {
		return types.Config{}, err
	}
	if opts == nil {
		opts = &types.Options{}
	}
	return types.Config{
		Mode:      mode,
		Git:       ResolveGit(opts.Git),
		Merge:     ResolveMerge(opts.Merge),
		Secure:    ResolveSecurity(mode, opts.Secure),
		Name:      opts.Name,
		Timestamp: resolveTimestamp(opts.Timestamp, ambient),
		Path:      ResolvePath(opts.Path, ambient.WorkingDir),
	}, nil
}

// ResolvePath anchors relative paths at cwd and turns existing directories
// into the default metadata filename inside them. Missing paths are taken to
// be files that will be created.
func ResolvePath(path string, cwd string) string {
	if path == "" {
		return filepath.Join(cwd, types.DefaultFilename)
	}
	resolved := path
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(cwd, path)
	}
	if info, err := os.Stat(resolved); err == nil && info.IsDir() {
		return filepath.Join(resolved, types.DefaultFilename)
	}
	return resolved
}

// DefaultBranchTest matches mainBranch, or "main" and "master" when it is
// empty.
func DefaultBranchTest(mainBranch string) types.BranchTestFunc {
	if mainBranch != "" {
		return func(branch string) bool { return branch == mainBranch }
	}
	return func(branch string) bool { return branch == "main" || branch == "master" }
}

func ResolveGit(setting types.GitSetting) types.GitConfig {
	if setting.Options != nil {
		opts := setting.Options
		branchTest := opts.BranchTest
		if branchTest == nil {
			branchTest = DefaultBranchTest(opts.Branch)
		}
		remote := opts.Remote
		if remote == "" {
			remote = "origin"
		}
		enabled := true
		if opts.Enabled != nil {
			enabled = *opts.Enabled
		}
		return types.GitConfig{BranchTest: branchTest, Enabled: enabled, Remote: remote}
	}
	if setting.Toggle != nil && !*setting.Toggle {
		return types.GitConfig{BranchTest: DefaultBranchTest(""), Enabled: false}
	}
	return types.GitConfig{BranchTest: DefaultBranchTest(""), Enabled: true, Remote: "origin"}
}

func ResolveMerge(opts *types.MergeOptions) types.MergeConfig {
	merge := types.MergeConfig{Original: map[string]any{}, Overlay: map[string]any{}}
	if opts == nil {
		return merge
	}
	if opts.Original != nil {
		merge.Original = opts.Original
	}
	if opts.Overlay != nil {
		merge.Overlay = opts.Overlay
	}
	return merge
}

// ResolveSecurity defaults the security settings for mode. An unset setting
// means "secure in application mode only".
func ResolveSecurity(mode types.Mode, setting types.SecuritySetting) types.SecurityConfig {
	application := mode == types.ModeApplication

	if setting.Options == nil {
		enabled := application
		if setting.Toggle != nil {
			enabled = *setting.Toggle
		}
		if !enabled {
			return types.SecurityConfig{}
		}
		var env map[string]bool
		if application {
			env = map[string]bool{"production": true}
		}
		return types.SecurityConfig{
			Enabled:     true,
			Env:         env,
			OmitRepoURL: false,
			RequireFile: application,
		}
	}

	opts := setting.Options
	config := types.SecurityConfig{
		Enabled:     true,
		Env:         resolveEnv(opts.Env),
		Filter:      opts.Filter,
		RequireFile: application,
	}
	if opts.Enabled != nil {
		config.Enabled = *opts.Enabled
	}
	if opts.OmitRepoURL != nil {
		config.OmitRepoURL = *opts.OmitRepoURL
	}
	if opts.RequireFile != nil {
		config.RequireFile = *opts.RequireFile
	}
	return config
}

func resolveEnv(value any) map[string]bool {
	switch v := value.(type) {
	case bool:
		if v {
			return map[string]bool{"production": true}
		}
		return nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return map[string]bool{v: true}
	case map[string]bool:
		return v
	case map[string]any:
		env := make(map[string]bool, len(v))
		for name, enabled := range v {
			b, _ := enabled.(bool)
			env[name] = b
		}
		return env
	default:
		return nil
	}
}

func resolveTimestamp(explicit string, ambient Ambient) string {
	if explicit != "" {
		return explicit
	}
	if value, ok := ambient.env(types.EnvTimestamp); ok && value != "" {
		return value
	}
	return FormatTimestamp(ambient.now())
}

// FormatTimestamp renders t in UTC as YYYYMMDDHHmmss.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(types.TimestampLayout)
}
