package mergepatch

import "github.com/tansive/tristate/internal/common/apperrors"

var (
	ErrMergePatch      = apperrors.New("merge patch error").SetExitCode(apperrors.ExitInvalidInput)
	ErrInvalidDocument = ErrMergePatch.New("invalid JSON document")
	ErrInvalidPatch    = ErrMergePatch.New("invalid merge patch")
	ErrNullMember      = ErrMergePatch.New("a merge patch cannot set an object member to null")
	ErrInvalidSchema   = ErrMergePatch.New("invalid JSON schema")
	ErrSchemaViolation = ErrMergePatch.New("document does not match schema")
	ErrTypeMismatch    = ErrMergePatch.New("value does not match the requested type")
)
