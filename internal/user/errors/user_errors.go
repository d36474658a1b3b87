package usererrors

import "team-pulse/internal/shared/apperror"

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
	)

	ErrEmailInUse = apperror.New(
		apperror.CodeConflict,
		"Email already in use",
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Role must be one of ADMIN, MANAGER, USER",
	)

	ErrInvalidTeamID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid team ID",
	)

	ErrTeamNotFound = apperror.New(
		apperror.CodeNotFound,
		"Team not found",
	)

	ErrCannotModifySelf = apperror.New(
		apperror.CodeForbidden,
		"You cannot change your own account status",
	)
)
