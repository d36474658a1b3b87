package notification

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceID    uuid.UUID  `gorm:"type:uuid;not null"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null"`
	LeaveRequestID *uuid.UUID `gorm:"type:uuid"`
	Kind           string     `gorm:"type:varchar(40);not null"`
	Message        string     `gorm:"type:text;not null"`
	ReadAt         *time.Time
	CreatedAt      time.Time
}

func (Notification) TableName() string {
	return "notifications"
}
