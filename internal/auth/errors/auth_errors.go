package autherrors

import "team-pulse/internal/shared/apperror"

var (
	ErrTokenNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"Token not found",
	)

	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid token",
	)

	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"Token has expired",
	)

	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid credentials",
	)

	ErrUserInactive = apperror.New(
		apperror.CodeUnauthorized,
		"User not found or inactive",
	)

	ErrEmailInUse = apperror.New(
		apperror.CodeConflict,
		"Email already in use",
	)

	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have permission to access this resource",
	)
)
