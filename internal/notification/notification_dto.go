package notification

type NotificationResponse struct {
	ID             string  `json:"id"`
	LeaveRequestID *string `json:"leave_request_id"`
	Kind           string  `json:"kind"`
	Message        string  `json:"message"`
	Read           bool    `json:"read"`
	ReadAt         *string `json:"read_at"`
	CreatedAt      string  `json:"created_at"`
}
