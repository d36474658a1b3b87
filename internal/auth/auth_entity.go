package auth

import (
	"time"

	"github.com/google/uuid"
)

// Workspace is the tenant root. Every team, user and leave request belongs to one.
type Workspace struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(50);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Workspace) TableName() string {
	return "workspaces"
}
