package types

import (
	"errors"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Error kinds surfaced by the pipeline. Match them with errors.Is.
var (
	ErrInvalidMode           = errors.New("invalid mode")
	ErrTypeMismatch          = errors.New("type mismatch")
	ErrSecureModeViolation   = errors.New("secure mode violation")
	ErrMissingRequiredFile   = errors.New("missing required file")
	ErrGitCommandFailure     = errors.New("git command failure")
	ErrInvalidMergeArguments = errors.New("invalid merge arguments")
)

// KindError pairs an error kind with the builder carrying its code and
// message.
type KindError struct {
	Kind    error
	Builder *errbuilder.ErrBuilder
	cause   error
}

// NewKindError builds an errbuilder error tagged with kind.
func NewKindError(kind error, code errbuilder.ErrCode, msg string, cause error) error {
	builder := errbuilder.New().
		WithCode(code).
		WithMsg(msg)
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return &KindError{Kind: kind, Builder: builder, cause: cause}
}

func (e *KindError) Error() string {
	if e.cause != nil {
		return e.Builder.Msg + ": " + e.cause.Error()
	}
	return e.Builder.Msg
}

func (e *KindError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Kind, e.Builder, e.cause}
	}
	return []error{e.Kind, e.Builder}
}
