package seed

import (
	"context"
	"fmt"

	"team-pulse/internal/auth"
	"team-pulse/internal/domain"
	"team-pulse/internal/team"
	"team-pulse/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// wipeOrder lists tables children first.
var wipeOrder = []string{
	"notifications",
	"outbox_events",
	"leave_requests",
	"users",
	"teams",
	"workspaces",
}

type Options struct {
	Workspaces   int
	UsersPerTeam int
	Password     string
}

func (o Options) Validate() error {
	if o.Workspaces < 1 {
		return fmt.Errorf("workspaces must be at least 1")
	}
	if o.UsersPerTeam < 0 {
		return fmt.Errorf("users-per-team must not be negative")
	}
	if len(o.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

type Summary struct {
	Workspaces int
	Teams      int
	Users      int
}

type Runner interface {
	Run(ctx context.Context, opts Options) (Summary, error)
}

type runner struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewRunner(db *gorm.DB, logger ...*zap.Logger) Runner {
	l := zap.L().Named("seed.runner")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("seed.runner")
	}
	return &runner{db: db, logger: l}
}

// Run wipes every tenant table and inserts the plan for opts in one
// transaction.
func (r *runner) Run(ctx context.Context, opts Options) (Summary, error) {
	if err := opts.Validate(); err != nil {
		return Summary{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return Summary{}, err
	}

	plan := BuildPlan(opts.Workspaces, opts.UsersPerTeam)
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range wipeOrder {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("wipe %s: %w", table, err)
			}
		}
		r.logger.Info("cleared existing data")

		for _, ws := range plan.Workspaces {
			if err := insertWorkspace(tx, ws, string(hash)); err != nil {
				return fmt.Errorf("seed %s: %w", ws.Name, err)
			}
			r.logger.Info("workspace seeded", zap.String("workspace", ws.Name), zap.Int("teams", len(ws.Teams)))
		}
		return nil
	})
	if err != nil {
		r.logger.Error("seed failed", zap.Error(err))
		return Summary{}, err
	}

	w, t, u := plan.Counts()
	return Summary{Workspaces: w, Teams: t, Users: u}, nil
}

func insertWorkspace(tx *gorm.DB, plan WorkspacePlan, passwordHash string) error {
	ws := auth.Workspace{ID: uuid.New(), Name: plan.Name}
	if err := tx.Create(&ws).Error; err != nil {
		return err
	}

	users := []user.User{newUser(ws.ID, nil, plan.Admin, domain.RoleAdmin, passwordHash)}
	for _, tp := range plan.Teams {
		t := team.Team{ID: uuid.New(), WorkspaceID: ws.ID, Name: tp.Name}
		if err := tx.Create(&t).Error; err != nil {
			return err
		}
		users = append(users, newUser(ws.ID, &t.ID, tp.Manager, domain.RoleManager, passwordHash))
		for _, m := range tp.Members {
			users = append(users, newUser(ws.ID, &t.ID, m, domain.RoleUser, passwordHash))
		}
	}
	return tx.CreateInBatches(users, 100).Error
}

func newUser(workspaceID uuid.UUID, teamID *uuid.UUID, p Person, role domain.Role, passwordHash string) user.User {
	return user.User{
		ID:           uuid.New(),
		WorkspaceID:  workspaceID,
		TeamID:       teamID,
		Name:         p.Name,
		Email:        p.Email,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
	}
}
