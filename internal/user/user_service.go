package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"team-pulse/internal/domain"
	"team-pulse/internal/shared/contextutil"
	"team-pulse/internal/shared/database"
	usererrors "team-pulse/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, caller domain.Identity) ([]UserResponse, error)
	GetByID(ctx context.Context, caller domain.Identity, id string) (UserResponse, error)
	Create(ctx context.Context, caller domain.Identity, req CreateUserRequest) (UserResponse, error)
	ToggleStatus(ctx context.Context, caller domain.Identity, id string, isActive bool) (UserResponse, error)
	AssignTeam(ctx context.Context, caller domain.Identity, id string, req AssignTeamRequest) (UserResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{
		repo:   repo,
		logger: l,
	}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) GetAll(ctx context.Context, caller domain.Identity) ([]UserResponse, error) {
	users, err := s.repo.FindAllByWorkspace(ctx, caller.WorkspaceID)
	if err != nil {
		s.log(ctx).Error("list users failed", zap.String("workspace_id", caller.WorkspaceID.String()), zap.Error(err))
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, caller domain.Identity, id string) (UserResponse, error) {
	u, err := s.findInWorkspace(ctx, caller, id)
	if err != nil {
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func (s *service) Create(ctx context.Context, caller domain.Identity, req CreateUserRequest) (UserResponse, error) {
	l := s.log(ctx)
	l.Debug("create user requested", zap.String("workspace_id", caller.WorkspaceID.String()))

	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	teamID, err := s.resolveTeam(ctx, caller.WorkspaceID, req.TeamID)
	if err != nil {
		return UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		l.Error("hash password failed", zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		WorkspaceID:  caller.WorkspaceID,
		TeamID:       teamID,
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hashed),
		Role:         role,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if database.IsUniqueViolation(err) {
			l.Warn("create user rejected: email in use")
			return UserResponse{}, usererrors.ErrEmailInUse
		}
		l.Error("create user failed", zap.Error(err))
		return UserResponse{}, err
	}

	l.Info("create user success", zap.String("user_id", u.ID.String()), zap.String("role", string(u.Role)))
	return mapToResponse(*u), nil
}

func (s *service) ToggleStatus(ctx context.Context, caller domain.Identity, id string, isActive bool) (UserResponse, error) {
	l := s.log(ctx)

	u, err := s.findInWorkspace(ctx, caller, id)
	if err != nil {
		return UserResponse{}, err
	}
	if u.ID == caller.UserID {
		l.Warn("toggle status rejected: self", zap.String("user_id", u.ID.String()))
		return UserResponse{}, usererrors.ErrCannotModifySelf
	}

	u.IsActive = isActive
	if err := s.repo.Update(ctx, u); err != nil {
		l.Error("toggle status failed", zap.String("user_id", u.ID.String()), zap.Error(err))
		return UserResponse{}, err
	}

	l.Info("toggle status success", zap.String("user_id", u.ID.String()), zap.Bool("is_active", isActive))
	return mapToResponse(*u), nil
}

func (s *service) AssignTeam(ctx context.Context, caller domain.Identity, id string, req AssignTeamRequest) (UserResponse, error) {
	l := s.log(ctx)

	u, err := s.findInWorkspace(ctx, caller, id)
	if err != nil {
		return UserResponse{}, err
	}

	teamID, err := s.resolveTeam(ctx, caller.WorkspaceID, req.TeamID)
	if err != nil {
		return UserResponse{}, err
	}

	u.TeamID = teamID
	if err := s.repo.Update(ctx, u); err != nil {
		l.Error("assign team failed", zap.String("user_id", u.ID.String()), zap.Error(err))
		return UserResponse{}, err
	}

	l.Info("assign team success", zap.String("user_id", u.ID.String()))
	return mapToResponse(*u), nil
}

// findInWorkspace reports users of other workspaces as not found.
func (s *service) findInWorkspace(ctx context.Context, caller domain.Identity, id string) (*User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUserNotFound
		}
		s.log(ctx).Error("find user failed", zap.String("user_id", id), zap.Error(err))
		return nil, err
	}
	if u.WorkspaceID != caller.WorkspaceID {
		return nil, usererrors.ErrUserNotFound
	}
	return u, nil
}

func (s *service) resolveTeam(ctx context.Context, workspaceID uuid.UUID, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	teamID, err := uuid.Parse(*raw)
	if err != nil {
		return nil, usererrors.ErrInvalidTeamID
	}

	exists, err := s.repo.TeamExists(ctx, workspaceID, teamID)
	if err != nil {
		s.log(ctx).Error("team lookup failed", zap.String("team_id", teamID.String()), zap.Error(err))
		return nil, err
	}
	if !exists {
		return nil, usererrors.ErrTeamNotFound
	}
	return &teamID, nil
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:          u.ID.String(),
		WorkspaceID: u.WorkspaceID.String(),
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
	if u.TeamID != nil {
		teamID := u.TeamID.String()
		resp.TeamID = &teamID
	}
	return resp
}
