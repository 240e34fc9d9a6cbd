package sqlpatch

import "github.com/tansive/tristate/internal/common/apperrors"

var (
	ErrSQLPatch     = apperrors.New("sql patch error").SetExitCode(apperrors.ExitInvalidInput)
	ErrEmptyPatch   = ErrSQLPatch.New("patch sets no columns")
	ErrNoCondition  = ErrSQLPatch.New("refusing to update without a condition")
	ErrInvalidPatch = ErrSQLPatch.New("patch must be a struct with db tagged tri-state fields")
	ErrInvalidName  = ErrSQLPatch.New("invalid identifier")
	ErrColumnDenied = ErrSQLPatch.New("column is not allowed")

	ErrDatabase = apperrors.New("database error").SetExitCode(apperrors.ExitUnavailable)
	ErrExec     = ErrDatabase.New("failed to execute statement")
	ErrOpen     = ErrDatabase.New("failed to open database")
)
