package user

import (
	"context"
	"database/sql"

	"team-pulse/internal/domain"
	"team-pulse/internal/shared/database"
	"team-pulse/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAllByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]User, error)
	CountActiveByTeam(ctx context.Context, teamID uuid.UUID) (int64, error)
	FindActiveManagersByTeam(ctx context.Context, teamID uuid.UUID) ([]User, error)
	TeamExists(ctx context.Context, workspaceID, teamID uuid.UUID) (bool, error)
	Update(ctx context.Context, u *User) error
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

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return database.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.conn(ctx).Create(u).Error
}

// FindByID is not tenant scoped: callers compare WorkspaceID themselves.
func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	if err := r.conn(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	if err := r.conn(ctx).First(&u, "lower(email) = lower(?)", email).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindAllByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]User, error) {
	var users []User
	err := r.conn(ctx).
		Scopes(tenant.Scope(workspaceID)).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *repository) CountActiveByTeam(ctx context.Context, teamID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Model(&User{}).
		Where("team_id = ? AND is_active", teamID).
		Count(&count).Error
	return count, err
}

func (r *repository) FindActiveManagersByTeam(ctx context.Context, teamID uuid.UUID) ([]User, error) {
	var users []User
	err := r.conn(ctx).
		Where("team_id = ? AND is_active AND role = ?", teamID, domain.RoleManager).
		Find(&users).Error
	return users, err
}

func (r *repository) TeamExists(ctx context.Context, workspaceID, teamID uuid.UUID) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Table("teams").
		Scopes(tenant.Scope(workspaceID)).
		Where("id = ?", teamID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return r.conn(ctx).Save(u).Error
}
