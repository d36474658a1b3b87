package tenant

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope restricts a query to rows owned by workspaceID.
func Scope(workspaceID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("workspace_id = ?", workspaceID)
	}
}
