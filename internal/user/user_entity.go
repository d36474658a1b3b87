package user

import (
	"time"

	"team-pulse/internal/domain"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceID  uuid.UUID   `gorm:"type:uuid;not null;index"`
	TeamID       *uuid.UUID  `gorm:"type:uuid;index"`
	Name         string      `gorm:"type:varchar(100);not null"`
	Email        string      `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string      `gorm:"type:text;not null"`
	Role         domain.Role `gorm:"type:varchar(20);not null"`
	IsActive     bool        `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string {
	return "users"
}

// Identity builds the token identity for u.
func (u *User) Identity() domain.Identity {
	return domain.Identity{
		UserID:      u.ID,
		WorkspaceID: u.WorkspaceID,
		TeamID:      u.TeamID,
		Role:        u.Role,
	}
}
