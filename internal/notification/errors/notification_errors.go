package notificationerrors

import "team-pulse/internal/shared/apperror"

var (
	ErrInvalidNotificationID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid notification ID",
	)
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Notification not found",
	)
)
