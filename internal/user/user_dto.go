package user

type CreateUserRequest struct {
	Name     string  `json:"name" binding:"required,max=100"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Role     string  `json:"role" binding:"required"`
	TeamID   *string `json:"team_id" binding:"omitempty,uuid"`
}

// AssignTeamRequest moves a user to a team; a null team_id removes the assignment.
type AssignTeamRequest struct {
	TeamID *string `json:"team_id" binding:"omitempty,uuid"`
}

type UserResponse struct {
	ID          string  `json:"id"`
	WorkspaceID string  `json:"workspace_id"`
	TeamID      *string `json:"team_id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
}
