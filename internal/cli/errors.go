package cli

import "github.com/tansive/tristate/internal/common/apperrors"

var (
	ErrUsage        = apperrors.New("invalid usage").SetExitCode(apperrors.ExitUsage)
	ErrMissingInput = ErrUsage.New("missing input file")

	ErrInput          = apperrors.New("invalid input").SetExitCode(apperrors.ExitInvalidInput)
	ErrReadInput      = ErrInput.New("unable to read input")
	ErrParseYAML      = ErrInput.New("failed to decode YAML")
	ErrSingleDocument = ErrInput.New("expected exactly one document")
	ErrMissingEnv     = ErrInput.New("missing environment variable")
	ErrTemplate       = ErrInput.New("template error")

	ErrOutput = apperrors.New("unable to write output")
)
