package leave

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"team-pulse/internal/domain"
	leaveerrors "team-pulse/internal/leave/errors"
	"team-pulse/internal/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxReasonLength = 500

// application is an apply request that passed validation, with dates at
// midnight UTC.
type application struct {
	userID       uuid.UUID
	workspaceID  uuid.UUID
	teamID       uuid.UUID
	startDate    time.Time
	startSession Session
	endDate      time.Time
	endSession   Session
	leaveType    LeaveType
	reason       string
	slots        SlotRange
}

// ParseDate accepts YYYY-MM-DD or an RFC3339 timestamp and drops the time of day.
func ParseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		t, err = time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, leaveerrors.ErrInvalidDateFormat
		}
	}
	return NormalizeDate(t), nil
}

// NormalizeDate truncates t to midnight UTC of its UTC calendar day.
func NormalizeDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// validateApplication runs the apply checks in order: team membership, identity
// re-validation against the store, then the input itself.
func validateApplication(ctx context.Context, users UserStore, caller domain.Identity, req ApplyLeaveRequest) (*application, error) {
	if !caller.HasTeam() {
		return nil, leaveerrors.ErrNoTeam
	}

	u, err := users.FindByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrUserInactive
		}
		return nil, err
	}
	if err := checkRequester(u, caller); err != nil {
		return nil, err
	}

	startDate, err := ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := ParseDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	startSession, endSession := Session(req.StartSession), Session(req.EndSession)
	if !startSession.Valid() || !endSession.Valid() {
		return nil, leaveerrors.ErrInvalidSession
	}
	leaveType := LeaveType(req.Type)
	if !leaveType.Valid() {
		return nil, leaveerrors.ErrInvalidType
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" || utf8.RuneCountInString(reason) > maxReasonLength {
		return nil, leaveerrors.ErrInvalidReason
	}

	if endDate.Before(startDate) {
		return nil, leaveerrors.ErrEndBeforeStart
	}
	if startDate.Equal(endDate) && startSession == SessionSecondHalf && endSession == SessionFirstHalf {
		return nil, leaveerrors.ErrSessionOrder
	}

	slots, err := NewSlotRange(startDate, startSession, endDate, endSession)
	if err != nil {
		return nil, leaveerrors.ErrInvalidSession
	}

	return &application{
		userID:       caller.UserID,
		workspaceID:  caller.WorkspaceID,
		teamID:       *caller.TeamID,
		startDate:    startDate,
		startSession: startSession,
		endDate:      endDate,
		endSession:   endSession,
		leaveType:    leaveType,
		reason:       reason,
		slots:        slots,
	}, nil
}

// checkRequester rejects stale or tampered identities.
func checkRequester(u *user.User, caller domain.Identity) error {
	if u == nil || !u.IsActive {
		return leaveerrors.ErrUserInactive
	}
	if u.WorkspaceID != caller.WorkspaceID {
		return leaveerrors.ErrCrossWorkspace
	}
	return nil
}
