package apperror

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
	)

	ErrTooManyRequests = New(
		CodeTooManyRequests,
		"Too many requests, please slow down",
	)
)

func RequiredField(field string) *AppError {
	return Newf(CodeValidation, "%s is required", field)
}

func InvalidField(field string) *AppError {
	return Newf(CodeValidation, "%s is invalid", field)
}

func TooLongField(field, max string) *AppError {
	return Newf(CodeValidation, "%s must be at most %s characters", field, max)
}

func TooShortField(field, min string) *AppError {
	return Newf(CodeValidation, "%s must be at least %s characters", field, min)
}
