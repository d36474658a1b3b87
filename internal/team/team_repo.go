package team

import (
	"context"
	"database/sql"

	"team-pulse/internal/shared/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=team_repo.go -destination=mock/team_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *Team) error
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]TeamWithCount, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, t *Team) error {
	return database.Conn(ctx, r.db, r.tx).Create(t).Error
}

func (r *repository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]TeamWithCount, error) {
	var rows []TeamWithCount
	err := database.Conn(ctx, r.db, r.tx).
		Table("teams").
		Select("teams.*, (SELECT count(*) FROM users WHERE users.team_id = teams.id AND users.is_active) AS member_count").
		Where("teams.workspace_id = ?", workspaceID).
		Order("teams.name ASC").
		Scan(&rows).Error
	return rows, err
}
