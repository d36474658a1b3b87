package team

type CreateTeamRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type TeamResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MemberCount int64  `json:"member_count"`
	CreatedAt   string `json:"created_at"`
}
