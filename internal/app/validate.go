package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"release-metadata/internal/core"
	"release-metadata/internal/types"
)

// Validate checks a persisted metadata file against the published schema and,
// for full documents, normalizes it.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	path := core.ResolvePath(strings.TrimSpace(req.Path), s.Ambient.WorkingDir)
	document, err := s.Files.Load(path)
	if err != nil {
		return ValidateResult{}, err
	}
	raw, err := json.Marshal(document)
	if err != nil {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode release metadata").
			WithCause(err)
	}

	violations, err := s.Schema.Validate(ctx, raw, req.Secure)
	if err != nil {
		return ValidateResult{}, err
	}
	result := ValidateResult{Path: path, Violations: violations}
	if len(violations) > 0 {
		for _, violation := range violations {
			log.Ctx(ctx).Debug().Str("path", path).Msg(violation)
		}
		return result, types.NewKindError(
			types.ErrTypeMismatch,
			errbuilder.CodeInvalidArgument,
			fmt.Sprintf("%s does not match the release metadata schema: %s", path, strings.Join(violations, "; ")),
			nil,
		)
	}
	if req.Secure {
		return result, nil
	}

	metadata, err := core.Normalize(document)
	if err != nil {
		return result, err
	}
	result.Metadata = &metadata
	return result, nil
}
