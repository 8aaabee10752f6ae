package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"release-metadata/internal/core"
	"release-metadata/internal/types"
)

// Config resolves sparse options for mode against the service's ambient
// state.
func (s Service) Config(mode types.Mode, opts *types.Options) (types.Config, error) {
	return core.ResolveOptions(mode, opts, s.Ambient)
}

// Build generates raw metadata for the working directory. Application mode
// refuses to generate when a metadata file is strictly required.
func (s Service) Build(ctx context.Context, mode types.Mode, opts *types.Options) (types.ReleaseMetadata, error) {
	config, err := s.Config(mode, opts)
	if err != nil {
		return types.ReleaseMetadata{}, err
	}
	return s.build(ctx, config)
}

// Resolve builds and post-processes metadata in one step.
func (s Service) Resolve(ctx context.Context, mode types.Mode, opts *types.Options) (types.ProcessedMetadata, error) {
	config, err := s.Config(mode, opts)
	if err != nil {
		return types.ProcessedMetadata{}, err
	}
	metadata, err := s.build(ctx, config)
	if err != nil {
		return types.ProcessedMetadata{}, err
	}
	return s.PostProcess(metadata, config)
}

// PostProcess merges and secures metadata under config.
func (s Service) PostProcess(metadata types.ReleaseMetadata, config types.Config) (types.ProcessedMetadata, error) {
	return core.PostProcess(metadata, config, s.Gate)
}

func (s Service) build(ctx context.Context, config types.Config) (types.ReleaseMetadata, error) {
	if config.Mode == types.ModeApplication && s.Gate.Check(types.SecurityCheckRequireFile, config) {
		return types.ReleaseMetadata{}, types.NewKindError(
			types.ErrSecureModeViolation,
			errbuilder.CodePermissionDenied,
			"release metadata generation is not allowed in secure mode",
			nil,
		)
	}

	log.Ctx(ctx).Debug().
		Str("mode", string(config.Mode)).
		Bool("git", config.Git.Enabled).
		Msg("building release metadata")

	info := core.NewGitProbe(s.Runner, s.Ambient.WorkingDir).Probe(ctx, config.Git)
	return core.Assemble(ctx, info, s.Runtime.Packages(), config, s.Ambient.WorkingDir), nil
}
