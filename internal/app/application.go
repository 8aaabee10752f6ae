package app

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"release-metadata/internal/core"
	"release-metadata/internal/types"
)

// Application resolves the application configuration once and returns an
// accessor that serves the metadata file, or freshly built metadata when the
// file is absent and not required.
func (s Service) Application(opts *types.Options) (ApplicationFunc, error) {
	config, err := s.Config(types.ModeApplication, opts)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) (types.ProcessedMetadata, error) {
		return s.applicationMetadata(ctx, config)
	}, nil
}

// Static is a single application read.
func (s Service) Static(ctx context.Context, opts *types.Options) (types.ProcessedMetadata, error) {
	config, err := s.Config(types.ModeApplication, opts)
	if err != nil {
		return types.ProcessedMetadata{}, err
	}
	return s.applicationMetadata(ctx, config)
}

func (s Service) applicationMetadata(ctx context.Context, config types.Config) (types.ProcessedMetadata, error) {
	exists := s.Files.Exists(config.Path)
	if !exists && s.Gate.Check(types.SecurityCheckRequireFile, config) {
		return types.ProcessedMetadata{}, types.NewKindError(
			types.ErrMissingRequiredFile,
			errbuilder.CodeNotFound,
			fmt.Sprintf("secure.requireFile is enabled, but %s does not exist", config.Path),
			nil,
		)
	}

	var (
		metadata types.ReleaseMetadata
		err      error
	)
	if exists {
		log.Ctx(ctx).Debug().Str("path", config.Path).Msg("reading release metadata")
		metadata, err = s.loadMetadata(config.Path)
	} else {
		metadata, err = s.build(ctx, config)
	}
	if err != nil {
		return types.ProcessedMetadata{}, err
	}
	return s.PostProcess(metadata, config)
}

func (s Service) loadMetadata(path string) (types.ReleaseMetadata, error) {
	document, err := s.Files.Load(path)
	if err != nil {
		return types.ReleaseMetadata{}, err
	}
	return core.Normalize(document)
}
