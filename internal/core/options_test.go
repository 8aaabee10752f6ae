package core

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"release-metadata/internal/types"
)

var timestampPattern = regexp.MustCompile(`^\d{14}$`)

func testAmbient(cwd string, env map[string]string) Ambient {
	return Ambient{
		WorkingDir: cwd,
		LookupEnv: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
		Now: func() time.Time {
			return time.Date(2021, 9, 10, 19, 12, 45, 0, time.UTC)
		},
	}
}

func resolveCommandLine(t *testing.T, opts *types.Options) types.Config {
	t.Helper()
	config, err := ResolveOptions(types.ModeCommandLine, opts, testAmbient("/some/absolute/path", nil))
	require.NoError(t, err)
	return config
}

func resolveApplication(t *testing.T, opts *types.Options) types.Config {
	t.Helper()
	config, err := ResolveOptions(types.ModeApplication, opts, testAmbient("/some/absolute/path", nil))
	require.NoError(t, err)
	return config
}

func TestResolveOptionsInvalidMode(t *testing.T) {
	_, err := ResolveOptions(types.Mode("foo"), nil, testAmbient("/", nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidMode))
	assert.Contains(t, err.Error(), "invalid mode 'foo' provided")
}

func TestResolveOptionsCommandLineDefaults(t *testing.T) {
	config := resolveCommandLine(t, nil)

	assert.Equal(t, types.ModeCommandLine, config.Mode)
	assert.True(t, config.Git.Enabled)
	assert.Equal(t, "origin", config.Git.Remote)
	require.NotNil(t, config.Git.BranchTest)
	assert.Equal(t, map[string]any{}, config.Merge.Original)
	assert.Equal(t, map[string]any{}, config.Merge.Overlay)
	assert.Nil(t, config.Name)
	assert.Equal(t, "/some/absolute/path/release-metadata.json", config.Path)
	assert.Equal(t, types.SecurityConfig{}, config.Secure)
	assert.Equal(t, "20210910191245", config.Timestamp)
}

func TestResolveOptionsApplicationDefaults(t *testing.T) {
	config := resolveApplication(t, nil)

	assert.True(t, config.Secure.Enabled)
	assert.Equal(t, map[string]bool{"production": true}, config.Secure.Env)
	assert.Nil(t, config.Secure.Filter)
	assert.False(t, config.Secure.OmitRepoURL)
	assert.True(t, config.Secure.RequireFile)
}

func TestResolveOptionsName(t *testing.T) {
	config := resolveCommandLine(t, &types.Options{Name: types.StringPtr("foo")})
	require.NotNil(t, config.Name)
	assert.Equal(t, "foo", *config.Name)
}

func TestResolveGit(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		git := ResolveGit(types.GitToggle(false))
		assert.False(t, git.Enabled)
		assert.Empty(t, git.Remote)
		assert.NotNil(t, git.BranchTest)
	})

	t.Run("unset and true share defaults", func(t *testing.T) {
		for _, setting := range []types.GitSetting{{}, types.GitToggle(true)} {
			git := ResolveGit(setting)
			assert.True(t, git.Enabled)
			assert.Equal(t, "origin", git.Remote)
		}
	})

	t.Run("default branch test", func(t *testing.T) {
		git := ResolveGit(types.GitWith(types.GitOptions{}))
		assert.True(t, git.BranchTest("main"))
		assert.True(t, git.BranchTest("master"))
		assert.False(t, git.BranchTest("hoge"))
	})

	t.Run("branch name", func(t *testing.T) {
		git := ResolveGit(types.GitWith(types.GitOptions{Branch: "hoge"}))
		assert.False(t, git.BranchTest("main"))
		assert.False(t, git.BranchTest("master"))
		assert.True(t, git.BranchTest("hoge"))
	})

	t.Run("custom branch test wins over branch", func(t *testing.T) {
		git := ResolveGit(types.GitWith(types.GitOptions{
			Branch:     "hoge",
			BranchTest: func(b string) bool { return len(b) > 3 },
		}))
		assert.False(t, git.BranchTest("q"))
		assert.True(t, git.BranchTest("qqqq"))
	})

	t.Run("own enabled flag", func(t *testing.T) {
		git := ResolveGit(types.GitWith(types.GitOptions{Enabled: types.BoolPtr(false)}))
		assert.False(t, git.Enabled)
		assert.Equal(t, "origin", git.Remote)
	})

	t.Run("remote", func(t *testing.T) {
		git := ResolveGit(types.GitWith(types.GitOptions{Remote: "kineticcafe"}))
		assert.Equal(t, "kineticcafe", git.Remote)
	})
}

func TestResolveSecurity(t *testing.T) {
	filter := func(types.SecureReleaseMetadata, types.ReleaseMetadata) map[string]any { return nil }

	tests := []struct {
		name    string
		mode    types.Mode
		setting types.SecuritySetting
		check   func(t *testing.T, got types.SecurityConfig)
	}{
		{
			name:    "command-line unset is disabled",
			mode:    types.ModeCommandLine,
			setting: types.SecuritySetting{},
			check: func(t *testing.T, got types.SecurityConfig) {
				assert.Equal(t, types.SecurityConfig{}, got)
			},
		},
		{
			name:    "false disables application security",
			mode:    types.ModeApplication,
			setting: types.SecureToggle(false),
			check: func(t *testing.T, got types.SecurityConfig) {
				assert.Equal(t, types.SecurityConfig{}, got)
			},
		},
		{
			name:    "true in command-line mode",
			mode:    types.ModeCommandLine,
			setting: types.SecureToggle(true),
			check: func(t *testing.T, got types.SecurityConfig) {
				assert.True(t, got.Enabled)
				assert.Nil(t, got.Env)
				assert.False(t, got.OmitRepoURL)
				assert.False(t, got.RequireFile)
			},
		},
		{
			name:    "empty object defaults",
			mode:    types.ModeApplication,
			setting: types.SecureWith(types.SecurityOptions{}),
			check: func(t *testing.T, got types.SecurityConfig) {
				assert.True(t, got.Enabled)
				assert.Nil(t, got.Env)
				assert.False(t, got.OmitRepoURL)
				assert.True(t, got.RequireFile)
			},
		},
		{
			name:    "empty object in command-line mode does not require a file",
			mode:    types.ModeCommandLine,
			setting: types.SecureWith(types.SecurityOptions{}),
			check: func(t *testing.T, got types.SecurityConfig) {
				assert.False(t, got.RequireFile)
			},
		},
		{
			name:    "enabled false",
			mode:    types.ModeApplication,
			setting: types.SecureWith(types.SecurityOptions{Enabled: types.BoolPtr(false)}),
			check: func(t *testing.T, got types.SecurityConfig) {
				assert.False(t, got.Enabled)
			},
		},
		{
			name:    "env true means production",
			mode:    types.ModeApplication,
			setting: types.SecureWith(types.SecurityOptions{Env: true}),
			check: func(t *testing.T, got types.SecurityConfig) {
				assert.Equal(t, map[string]bool{"production": true}, got.Env)
			},
		},
		{
			name:    "env false is unrestricted",
			mode:    types.ModeApplication,
			setting: types.SecureWith(types.SecurityOptions{Env: false}),
			check: func(t *testing.T, got types.SecurityConfig) {
				assert.Nil(t, got.Env)
			},
		},
		{
			name:    "env string",
			mode:    types.ModeApplication,
			setting: types.SecureWith(types.SecurityOptions{Env: "staging"}),
			check: func(t *testing.T, got types.SecurityConfig) {
				assert.Equal(t, map[string]bool{"staging": true}, got.Env)
			},
		},
		{
			name: "env map",
			mode: types.ModeApplication,
			setting: types.SecureWith(types.SecurityOptions{
				Env: map[string]bool{"production": true, "development": false, "staging": true},
			}),
			check: func(t *testing.T, got types.SecurityConfig) {
				assert.Equal(t, map[string]bool{"production": true, "development": false, "staging": true}, got.Env)
			},
		},
		{
			name:    "env map decoded from a config file",
			mode:    types.ModeApplication,
			setting: types.SecureWith(types.SecurityOptions{Env: map[string]any{"staging": true, "qa": "yes"}}),
			check: func(t *testing.T, got types.SecurityConfig) {
				assert.Equal(t, map[string]bool{"staging": true, "qa": false}, got.Env)
			},
		},
		{
			name:    "filter",
			mode:    types.ModeApplication,
			setting: types.SecureWith(types.SecurityOptions{Filter: filter}),
			check: func(t *testing.T, got types.SecurityConfig) {
				assert.NotNil(t, got.Filter)
			},
		},
		{
			name:    "omit repo url",
			mode:    types.ModeApplication,
			setting: types.SecureWith(types.SecurityOptions{OmitRepoURL: types.BoolPtr(true)}),
			check: func(t *testing.T, got types.SecurityConfig) {
				assert.True(t, got.OmitRepoURL)
			},
		},
		{
			name:    "require file false",
			mode:    types.ModeApplication,
			setting: types.SecureWith(types.SecurityOptions{RequireFile: types.BoolPtr(false)}),
			check: func(t *testing.T, got types.SecurityConfig) {
				assert.False(t, got.RequireFile)
			},
		},
		{
			name:    "require file true in command-line mode",
			mode:    types.ModeCommandLine,
			setting: types.SecureWith(types.SecurityOptions{RequireFile: types.BoolPtr(true)}),
			check: func(t *testing.T, got types.SecurityConfig) {
				assert.True(t, got.RequireFile)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, ResolveSecurity(tt.mode, tt.setting))
		})
	}
}

func TestResolveTimestamp(t *testing.T) {
	t.Run("explicit value", func(t *testing.T) {
		config := resolveCommandLine(t, &types.Options{Timestamp: "timestamp"})
		assert.Equal(t, "timestamp", config.Timestamp)
	})

	t.Run("environment override", func(t *testing.T) {
		ambient := testAmbient("/", map[string]string{types.EnvTimestamp: "release-timestamp"})
		config, err := ResolveOptions(types.ModeCommandLine, nil, ambient)
		require.NoError(t, err)
		assert.Equal(t, "release-timestamp", config.Timestamp)
	})

	t.Run("current time", func(t *testing.T) {
		t.Setenv(types.EnvTimestamp, "")
		config, err := ResolveOptions(types.ModeCommandLine, nil, DefaultAmbient())
		require.NoError(t, err)
		assert.Regexp(t, timestampPattern, config.Timestamp)
	})
}

func TestFormatTimestampUsesUTC(t *testing.T) {
	zone := time.FixedZone("EST", -5*60*60)
	got := FormatTimestamp(time.Date(2021, 9, 10, 14, 12, 45, 0, zone))
	assert.Equal(t, "20210910191245", got)
}

func TestResolvePath(t *testing.T) {
	cwd := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(cwd, "relative"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cwd, "relative.json"), []byte("{}"), 0o644))
	absDir := t.TempDir()

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "default", path: "", want: filepath.Join(cwd, "release-metadata.json")},
		{name: "relative directory", path: "relative", want: filepath.Join(cwd, "relative", "release-metadata.json")},
		{name: "relative file", path: "relative.json", want: filepath.Join(cwd, "relative.json")},
		{name: "relative missing", path: "missing.json", want: filepath.Join(cwd, "missing.json")},
		{name: "absolute directory", path: absDir, want: filepath.Join(absDir, "release-metadata.json")},
		{name: "absolute file", path: filepath.Join(cwd, "relative.json"), want: filepath.Join(cwd, "relative.json")},
		{name: "absolute missing", path: filepath.Join(absDir, "out.json"), want: filepath.Join(absDir, "out.json")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath(tt.path, cwd))
		})
	}
}
