package teamerrors

import "team-pulse/internal/shared/apperror"

var (
	ErrTeamNotFound = apperror.New(
		apperror.CodeNotFound,
		"Team not found",
	)

	ErrTeamNameTaken = apperror.New(
		apperror.CodeConflict,
		"A team with this name already exists in the workspace",
	)

	ErrInvalidTeamName = apperror.New(
		apperror.CodeInvalidInput,
		"Team name must not be blank",
	)
)
