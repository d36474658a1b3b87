package leaveerrors

import (
	"strings"

	"team-pulse/internal/shared/apperror"
)

var (
	ErrNoTeam = apperror.New(
		apperror.CodeInvalidInput,
		"You must be assigned to a team to apply for leave",
	)
	ErrUserInactive = apperror.New(
		apperror.CodeUnauthorized,
		"User not found or inactive",
	)
	ErrCrossWorkspace = apperror.New(
		apperror.CodeForbidden,
		"Cross-workspace action not allowed",
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date, expected YYYY-MM-DD or an ISO 8601 timestamp",
	)
	ErrEndBeforeStart = apperror.New(
		apperror.CodeInvalidInput,
		"End date cannot be before start date",
	)
	ErrSessionOrder = apperror.New(
		apperror.CodeInvalidInput,
		"End session cannot be before start session on the same day",
	)
	ErrInvalidSession = apperror.New(
		apperror.CodeInvalidInput,
		"Session must be one of FULL_DAY, FIRST_HALF, SECOND_HALF",
	)
	ErrInvalidType = apperror.New(
		apperror.CodeInvalidInput,
		"Leave type must be one of VACATION, SICK, PERSONAL, CASUAL",
	)
	ErrInvalidReason = apperror.New(
		apperror.CodeInvalidInput,
		"Reason is required and must be at most 500 characters",
	)
	ErrOverlap = apperror.New(
		apperror.CodeConflict,
		"You already have a leave request that overlaps with this period",
	)
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid leave request ID",
	)
	ErrInvalidTeamID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid team ID",
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
	)
	ErrTeamIDRequired = apperror.New(
		apperror.CodeInvalidInput,
		"team_id is required",
	)
	ErrTeamNotFound = apperror.New(
		apperror.CodeNotFound,
		"Team not found",
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Only pending leave requests can be changed",
	)
	ErrSelfReview = apperror.New(
		apperror.CodeForbidden,
		"You cannot review your own leave request",
	)
	ErrNotTeamManager = apperror.New(
		apperror.CodeForbidden,
		"Only a manager of this team can review the request",
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"Only the requester can cancel this leave request",
	)
	ErrForbiddenTeam = apperror.New(
		apperror.CodeForbidden,
		"You can only view your own team",
	)
)

// OverlapConflict names the status of the request already holding the slots.
func OverlapConflict(status string) *apperror.AppError {
	article := "a"
	if status != "" && strings.ContainsRune("aeiou", rune(status[0])) {
		article = "an"
	}
	return apperror.Newf(apperror.CodeConflict,
		"You already have %s %s leave request that overlaps with this period", article, status)
}
