package events

import "time"

const LeaveLifecycleTopic = "teampulse.leave.lifecycle.v1"

const (
	LeaveApplied   = "leave_applied"
	LeaveApproved  = "leave_approved"
	LeaveRejected  = "leave_rejected"
	LeaveCancelled = "leave_cancelled"
)

// LeaveLifecycleEvent is published for every leave request state change. Warning
// is only set on leave_applied.
type LeaveLifecycleEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	LeaveID      string    `json:"leave_id"`
	WorkspaceID  string    `json:"workspace_id"`
	TeamID       string    `json:"team_id"`
	UserID       string    `json:"user_id"`
	ActorID      string    `json:"actor_id"`
	Status       string    `json:"status"`
	StartDate    string    `json:"start_date"`
	StartSession string    `json:"start_session"`
	EndDate      string    `json:"end_date"`
	EndSession   string    `json:"end_session"`
	Warning      string    `json:"warning,omitempty"`
	Comment      string    `json:"comment,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
