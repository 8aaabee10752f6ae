package app

import (
	"context"
	"strings"

	"release-metadata/internal/core"
	"release-metadata/internal/types"
)

// Show runs the application accessor once so the exposed document can be
// previewed from the command line.
func (s Service) Show(ctx context.Context, req ShowRequest) (ShowResult, error) {
	opts := &types.Options{Path: core.ResolvePath(strings.TrimSpace(req.Path), s.Ambient.WorkingDir)}
	switch {
	case req.Insecure:
		opts.Secure = types.SecureToggle(false)
	case req.OmitRepoURL || req.RequireFile:
		opts.Secure = types.SecureWith(types.SecurityOptions{
			Env:         true,
			OmitRepoURL: types.BoolPtr(req.OmitRepoURL),
			RequireFile: types.BoolPtr(req.RequireFile),
		})
	}

	processed, err := s.Static(ctx, opts)
	if err != nil {
		return ShowResult{}, err
	}
	output, err := prettyJSON(processed)
	if err != nil {
		return ShowResult{}, err
	}
	return ShowResult{Path: opts.Path, Metadata: processed, Output: output}, nil
}
