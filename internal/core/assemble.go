package core

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"release-metadata/internal/types"
)

// Assemble builds raw metadata from a probe result, the runtime packages and
// the resolved configuration. The name falls back to the repository name.
func Assemble(ctx context.Context, info *types.RepoInfo, packages []types.PackageInfo, config types.Config, sourcePath string) types.ReleaseMetadata {
	assert.NotEmpty(ctx, config.Timestamp, "timestamp must be resolved")
	assert.NotEmpty(ctx, sourcePath, "source path must be set")

	repos := []types.RepoInfo{}
	if info != nil {
		repos = append(repos, *info)
	}
	if packages == nil {
		packages = []types.PackageInfo{}
	}

	name := config.Name
	if name == nil && info != nil && info.Name != "" {
		name = types.StringPtr(info.Name)
	}

	log.Ctx(ctx).Debug().
		Int("repos", len(repos)).
		Int("packages", len(packages)).
		Msg("release metadata assembled")
	return types.ReleaseMetadata{
		Name:       name,
		Timestamp:  config.Timestamp,
		SourcePath: sourcePath,
		Repos:      repos,
		Packages:   packages,
	}
}
