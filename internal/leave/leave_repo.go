package leave

import (
	"context"
	"database/sql"
	"time"

	"team-pulse/internal/shared/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	LockUser(ctx context.Context, userID uuid.UUID) error
	FindOverlappingCandidates(ctx context.Context, userID uuid.UUID, from, to time.Time, excluded []Status) ([]LeaveRequest, error)
	CountOverlappingForTeam(ctx context.Context, teamID, excludeUserID uuid.UUID, from, to time.Time, excluded []Status) (int64, error)
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]LeaveRequest, error)
	ListActiveByTeam(ctx context.Context, teamID uuid.UUID) ([]LeaveRequest, error)
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

// LockUser serializes apply calls of one user until the surrounding transaction
// ends. Outside a transaction it is released immediately and has no effect.
func (r *repository) LockUser(ctx context.Context, userID uuid.UUID) error {
	return r.conn(ctx).Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", userID.String()).Error
}

// FindOverlappingCandidates is a day granularity pre-filter; callers compare slots.
func (r *repository) FindOverlappingCandidates(ctx context.Context, userID uuid.UUID, from, to time.Time, excluded []Status) ([]LeaveRequest, error) {
	var rows []LeaveRequest
	err := r.conn(ctx).
		Where("user_id = ?", userID).
		Scopes(statusNotIn(excluded), intersectsDays(from, to)).
		Order("start_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CountOverlappingForTeam(ctx context.Context, teamID, excludeUserID uuid.UUID, from, to time.Time, excluded []Status) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("team_id = ? AND user_id <> ?", teamID, excludeUserID).
		Scopes(statusNotIn(excluded), intersectsDays(from, to)).
		Count(&count).Error
	return count, err
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	var l LeaveRequest
	if err := r.conn(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.conn(ctx).Save(l).Error
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]LeaveRequest, error) {
	var rows []LeaveRequest
	err := r.conn(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListActiveByTeam(ctx context.Context, teamID uuid.UUID) ([]LeaveRequest, error) {
	var rows []LeaveRequest
	err := r.conn(ctx).
		Where("team_id = ? AND status IN ?", teamID, []Status{StatusPending, StatusApproved}).
		Order("start_date ASC").
		Find(&rows).Error
	return rows, err
}

func statusNotIn(excluded []Status) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(excluded) == 0 {
			return db
		}
		return db.Where("status NOT IN ?", excluded)
	}
}

func intersectsDays(from, to time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("start_date <= ? AND end_date >= ?", to, from)
	}
}
