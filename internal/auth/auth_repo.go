package auth

import (
	"context"
	"database/sql"

	"team-pulse/internal/shared/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateWorkspace(ctx context.Context, ws *Workspace) error
	FindWorkspace(ctx context.Context, id uuid.UUID) (*Workspace, error)
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

func (r *repository) CreateWorkspace(ctx context.Context, ws *Workspace) error {
	return database.Conn(ctx, r.db, r.tx).Create(ws).Error
}

func (r *repository) FindWorkspace(ctx context.Context, id uuid.UUID) (*Workspace, error) {
	var ws Workspace
	if err := database.Conn(ctx, r.db, r.tx).First(&ws, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ws, nil
}
