package app

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"release-metadata/internal/core"
	"release-metadata/internal/types"
)

// Generate is the command-line build: it loads the merge inputs, resolves
// metadata and either saves it compactly or returns it pretty-printed.
func (s Service) Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	path := core.ResolvePath(strings.TrimSpace(req.Path), s.Ambient.WorkingDir)

	if (req.MergeFromPath || strings.TrimSpace(req.Merge) != "") && strings.TrimSpace(req.MergeOriginal) != "" {
		return GenerateResult{}, types.NewKindError(
			types.ErrInvalidMergeArguments,
			errbuilder.CodeInvalidArgument,
			"cannot specify both --merge and --merge-original",
			nil,
		)
	}

	var (
		original map[string]any
		err      error
	)
	switch {
	case req.MergeFromPath:
		original, err = s.loadDocument(path, true)
	case strings.TrimSpace(req.MergeOriginal) != "":
		original, err = s.loadDocument(req.MergeOriginal, false)
	default:
		original, err = s.loadDocument(req.Merge, false)
	}
	if err != nil {
		return GenerateResult{}, err
	}
	overlay, err := s.loadDocument(req.MergeOverlay, false)
	if err != nil {
		return GenerateResult{}, err
	}

	opts := &types.Options{
		Git: types.GitWith(types.GitOptions{
			Branch:  strings.TrimSpace(req.Branch),
			Remote:  strings.TrimSpace(req.Remote),
			Enabled: types.BoolPtr(!req.NoGit),
		}),
		Merge: &types.MergeOptions{Original: original, Overlay: overlay},
		Secure: types.SecureWith(types.SecurityOptions{
			Enabled:     types.BoolPtr(req.Secure || req.SecureIfProduction),
			Env:         req.SecureIfProduction,
			OmitRepoURL: types.BoolPtr(req.OmitRepoURL),
		}),
		Timestamp: strings.TrimSpace(req.Timestamp),
		Path:      path,
	}
	if name := strings.TrimSpace(req.ReleaseName); name != "" {
		opts.Name = types.StringPtr(name)
	}

	processed, err := s.Resolve(ctx, types.ModeCommandLine, opts)
	if err != nil {
		return GenerateResult{}, err
	}

	save := strings.TrimSpace(req.Path) != ""
	if req.Save != nil {
		save = *req.Save
	}
	if save {
		if err := s.Files.Save(path, processed, false); err != nil {
			return GenerateResult{}, err
		}
		log.Ctx(ctx).Info().Str("path", path).Msg("release metadata saved")
		return GenerateResult{Path: path, Saved: true, Metadata: processed}, nil
	}

	output, err := prettyJSON(processed)
	if err != nil {
		return GenerateResult{}, err
	}
	return GenerateResult{Path: path, Metadata: processed, Output: output}, nil
}

// loadDocument reads a merge input. An empty path yields an empty document,
// as does a missing file when optional is set.
func (s Service) loadDocument(path string, optional bool) (map[string]any, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return map[string]any{}, nil
	}
	resolved := core.ResolvePath(path, s.Ambient.WorkingDir)
	if optional && !s.Files.Exists(resolved) {
		return map[string]any{}, nil
	}
	return s.Files.Load(resolved)
}

func prettyJSON(value any) ([]byte, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode release metadata").
			WithCause(err)
	}
	return append(data, '\n'), nil
}
