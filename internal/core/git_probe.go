package core

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"release-metadata/internal/ports"
	"release-metadata/internal/types"
)

var fetchURLPattern = regexp.MustCompile(`\n\s+Fetch URL: (?P<fetch>[^\n]+)`)

// GitProbe collects repository information from the git executable. It never
// fails: anything git cannot answer becomes types.Unknown.
type GitProbe struct {
	Runner     ports.CommandRunnerPort
	WorkingDir string
}

func NewGitProbe(runner ports.CommandRunnerPort, workingDir string) GitProbe {
	return GitProbe{Runner: runner, WorkingDir: workingDir}
}

// Probe returns nil when git collection is disabled.
func (p GitProbe) Probe(ctx context.Context, config types.GitConfig) *types.RepoInfo {
	if !config.Enabled {
		return nil
	}
	sourcePath := p.toplevel(ctx)
	url := p.remoteURL(ctx, config.Remote)
	info := &types.RepoInfo{
		Ref:        p.ref(ctx, config.BranchTest),
		URL:        url,
		Name:       RepoName(url),
		Type:       types.RepoTypeGit,
		SourcePath: sourcePath,
	}
	log.Ctx(ctx).Debug().Str("ref", info.Ref).Str("url", info.URL).Msg("git probe completed")
	return info
}

// RepoName is the last path segment of url without a ".git" suffix.
func RepoName(url string) string {
	return strings.TrimSuffix(path.Base(url), ".git")
}

func (p GitProbe) toplevel(ctx context.Context) string {
	result := p.git(ctx, "rev-parse", "--show-toplevel")
	if !result.OK() {
		return p.WorkingDir
	}
	if filepath.IsAbs(result.Output) {
		return result.Output
	}
	return filepath.Join(p.WorkingDir, result.Output)
}

func (p GitProbe) remoteURL(ctx context.Context, remote string) string {
	if remote == "" {
		remote = "origin"
	}
	if result := p.git(ctx, "remote", "get-url", remote); result.OK() {
		return result.Output
	}
	result := p.git(ctx, "remote", "show", "-n", remote)
	if !result.OK() {
		return types.Unknown
	}
	return parseFetchURL(result.Output)
}

func parseFetchURL(output string) string {
	match := fetchURLPattern.FindStringSubmatch(output)
	if match == nil {
		return types.Unknown
	}
	return match[fetchURLPattern.SubexpIndex("fetch")]
}

func (p GitProbe) ref(ctx context.Context, branchTest types.BranchTestFunc) string {
	head := p.git(ctx, "rev-parse", "HEAD")
	if !head.OK() {
		return types.Unknown
	}
	branch := p.git(ctx, "symbolic-ref", "--quiet", "--short", "HEAD")
	if !branch.OK() {
		return head.Output
	}
	if branchTest == nil {
		branchTest = DefaultBranchTest("")
	}
	if branchTest(branch.Output) {
		return head.Output
	}
	return fmt.Sprintf("%s (%s)", branch.Output, head.Output)
}

func (p GitProbe) git(ctx context.Context, args ...string) ports.CommandResult {
	result := p.Runner.Run(ctx, "git", args...)
	if !result.OK() {
		log.Ctx(ctx).Debug().
			Err(result.Err).
			Str("command", "git "+strings.Join(args, " ")).
			Msg("git command failed")
	}
	return result
}
