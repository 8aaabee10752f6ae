// Package releasemetadata exposes release metadata to Go applications.
//
// An application calls Create once at startup and invokes the returned
// accessor whenever it needs the metadata. Build tooling calls Generate.
package releasemetadata

import (
	"context"

	"release-metadata/internal/app"
	"release-metadata/internal/types"
)

type (
	Options         = types.Options
	GitOptions      = types.GitOptions
	GitSetting      = types.GitSetting
	MergeOptions    = types.MergeOptions
	SecurityOptions = types.SecurityOptions
	SecuritySetting = types.SecuritySetting

	ReleaseMetadata       = types.ReleaseMetadata
	SecureReleaseMetadata = types.SecureReleaseMetadata
	RepoInfo              = types.RepoInfo
	SecureRepoInfo        = types.SecureRepoInfo
	PackageInfo           = types.PackageInfo
	ProcessedMetadata     = types.ProcessedMetadata

	// Accessor returns the metadata an application exposes. The metadata
	// file is read again on every call.
	Accessor = app.ApplicationFunc
)

// Error kinds, for use with errors.Is.
var (
	ErrInvalidMode           = types.ErrInvalidMode
	ErrTypeMismatch          = types.ErrTypeMismatch
	ErrSecureModeViolation   = types.ErrSecureModeViolation
	ErrMissingRequiredFile   = types.ErrMissingRequiredFile
	ErrGitCommandFailure     = types.ErrGitCommandFailure
	ErrInvalidMergeArguments = types.ErrInvalidMergeArguments
)

var (
	GitToggle    = types.GitToggle
	GitWith      = types.GitWith
	SecureToggle = types.SecureToggle
	SecureWith   = types.SecureWith
)

// Create resolves application options once and returns the accessor.
func Create(opts *Options) (Accessor, error) {
	return app.NewService().Application(opts)
}

// CreateStatic reads the application metadata a single time.
func CreateStatic(ctx context.Context, opts *Options) (ProcessedMetadata, error) {
	return app.NewService().Static(ctx, opts)
}

// Generate builds metadata for the working directory with command-line
// defaults.
func Generate(ctx context.Context, opts *Options) (ProcessedMetadata, error) {
	return app.NewService().Resolve(ctx, types.ModeCommandLine, opts)
}
