package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	autherrors "team-pulse/internal/auth/errors"
	"team-pulse/internal/domain"
	"team-pulse/internal/shared/contextutil"
	"team-pulse/internal/shared/database"
	"team-pulse/internal/shared/token"
	"team-pulse/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Me(ctx context.Context, caller domain.Identity) (AuthResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	users  user.Repository
	tokens TokenConfig
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, users user.Repository, tokens TokenConfig, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{db: db, repo: repo, users: users, tokens: tokens, logger: l}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

// Register creates a workspace together with its first ADMIN.
func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	l := s.log(ctx)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	l.Debug("register requested", zap.String("workspace_name", req.WorkspaceName))

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		l.Warn("register rejected: email in use")
		return AuthResponse{}, autherrors.ErrEmailInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Error("register email lookup failed", zap.Error(err))
		return AuthResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		l.Error("hash password failed", zap.Error(err))
		return AuthResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("register begin tx failed", zap.Error(err))
		return AuthResponse{}, err
	}
	defer tx.Rollback()

	ws := &Workspace{ID: uuid.New(), Name: strings.TrimSpace(req.WorkspaceName)}
	if err := s.repo.WithTx(tx).CreateWorkspace(ctx, ws); err != nil {
		l.Error("create workspace failed", zap.Error(err))
		return AuthResponse{}, err
	}

	admin := &user.User{
		ID:           uuid.New(),
		WorkspaceID:  ws.ID,
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	if err := s.users.WithTx(tx).Create(ctx, admin); err != nil {
		if database.IsUniqueViolation(err) {
			l.Warn("register rejected: email in use")
			return AuthResponse{}, autherrors.ErrEmailInUse
		}
		l.Error("create admin user failed", zap.Error(err))
		return AuthResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error("register commit failed", zap.Error(err))
		return AuthResponse{}, err
	}

	l.Info("register success",
		zap.String("workspace_id", ws.ID.String()),
		zap.String("user_id", admin.ID.String()),
	)
	resp := mapToResponse(admin)
	resp.WorkspaceName = ws.Name
	return resp, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	l := s.log(ctx)

	u, err := s.users.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login rejected: unknown email")
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		l.Error("login lookup failed", zap.Error(err))
		return LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		l.Warn("login rejected: wrong password", zap.String("user_id", u.ID.String()))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}
	if !u.IsActive {
		l.Warn("login rejected: inactive user", zap.String("user_id", u.ID.String()))
		return LoginResponse{}, autherrors.ErrUserInactive
	}

	now := time.Now().UTC()
	signed, err := token.Issue(s.tokens.Secret, u.Identity(), s.tokens.TTL, now)
	if err != nil {
		l.Error("issue token failed", zap.Error(err))
		return LoginResponse{}, err
	}

	l.Info("login success", zap.String("user_id", u.ID.String()))
	return LoginResponse{
		User:        mapToResponse(u),
		AccessToken: signed,
		ExpiresAt:   now.Add(s.tokens.TTL).Format(time.RFC3339),
	}, nil
}

func (s *service) Me(ctx context.Context, caller domain.Identity) (AuthResponse, error) {
	u, err := s.users.FindByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, autherrors.ErrUserInactive
		}
		s.log(ctx).Error("me lookup failed", zap.Error(err))
		return AuthResponse{}, err
	}
	if !u.IsActive || u.WorkspaceID != caller.WorkspaceID {
		return AuthResponse{}, autherrors.ErrUserInactive
	}

	resp := mapToResponse(u)
	if ws, err := s.repo.FindWorkspace(ctx, u.WorkspaceID); err == nil {
		resp.WorkspaceName = ws.Name
	}
	return resp, nil
}

func mapToResponse(u *user.User) AuthResponse {
	resp := AuthResponse{
		ID:          u.ID.String(),
		WorkspaceID: u.WorkspaceID.String(),
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
	}
	if u.TeamID != nil {
		v := u.TeamID.String()
		resp.TeamID = &v
	}
	return resp
}
