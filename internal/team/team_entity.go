package team

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(100);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Team) TableName() string {
	return "teams"
}

// TeamWithCount is a read model for listing.
type TeamWithCount struct {
	Team
	MemberCount int64
}
