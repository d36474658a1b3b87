package leave

type ApplyLeaveRequest struct {
	StartDate    string `json:"start_date" binding:"required,isodate"`
	StartSession string `json:"start_session" binding:"required,oneof=FULL_DAY FIRST_HALF SECOND_HALF"`
	EndDate      string `json:"end_date" binding:"required,isodate"`
	EndSession   string `json:"end_session" binding:"required,oneof=FULL_DAY FIRST_HALF SECOND_HALF"`
	Type         string `json:"type" binding:"required,oneof=VACATION SICK PERSONAL CASUAL"`
	Reason       string `json:"reason" binding:"required,min=1,max=500"`
}

// ReviewLeaveRequest is the optional body of approve and reject.
type ReviewLeaveRequest struct {
	Comment *string `json:"comment" binding:"omitempty,max=1000"`
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	TeamID       string  `json:"team_id"`
	StartDate    string  `json:"start_date"`
	StartSession string  `json:"start_session"`
	EndDate      string  `json:"end_date"`
	EndSession   string  `json:"end_session"`
	Type         string  `json:"type"`
	Status       string  `json:"status"`
	Reason       string  `json:"reason"`
	ApproverID   *string `json:"approver_id"`
	Comment      *string `json:"comment"`
	ReviewedAt   *string `json:"reviewed_at"`
	CreatedAt    string  `json:"created_at"`
}

type ApplyLeaveResponse struct {
	LeaveRequest LeaveResponse `json:"leaveRequest"`
	Warning      *string       `json:"warning,omitempty"`
}
