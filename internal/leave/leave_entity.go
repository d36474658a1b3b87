package leave

import (
	"time"

	"github.com/google/uuid"
)

type Session string

const (
	SessionFullDay    Session = "FULL_DAY"
	SessionFirstHalf  Session = "FIRST_HALF"
	SessionSecondHalf Session = "SECOND_HALF"
)

func (s Session) Valid() bool {
	switch s {
	case SessionFullDay, SessionFirstHalf, SessionSecondHalf:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal statuses never change again and do not block new requests.
var terminalForOverlap = []Status{StatusCancelled, StatusRejected}

type LeaveType string

const (
	TypeVacation LeaveType = "VACATION"
	TypeSick     LeaveType = "SICK"
	TypePersonal LeaveType = "PERSONAL"
	TypeCasual   LeaveType = "CASUAL"
)

func (t LeaveType) Valid() bool {
	switch t {
	case TypeVacation, TypeSick, TypePersonal, TypeCasual:
		return true
	default:
		return false
	}
}

type LeaveRequest struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceID  uuid.UUID  `gorm:"type:uuid;not null"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null"`
	TeamID       uuid.UUID  `gorm:"type:uuid;not null"`
	StartDate    time.Time  `gorm:"type:date;not null"`
	StartSession Session    `gorm:"type:varchar(20);not null"`
	EndDate      time.Time  `gorm:"type:date;not null"`
	EndSession   Session    `gorm:"type:varchar(20);not null"`
	Type         LeaveType  `gorm:"column:type;type:varchar(20);not null"`
	Status       Status     `gorm:"type:varchar(20);not null"`
	Reason       string     `gorm:"type:varchar(500);not null"`
	ApproverID   *uuid.UUID `gorm:"type:uuid"`
	Comment      *string
	ReviewedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// Slots maps the stored period onto half-day slots.
func (l *LeaveRequest) Slots() (SlotRange, error) {
	return NewSlotRange(l.StartDate, l.StartSession, l.EndDate, l.EndSession)
}
