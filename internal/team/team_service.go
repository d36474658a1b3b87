package team

import (
	"context"
	"strings"
	"time"

	"team-pulse/internal/domain"
	"team-pulse/internal/shared/contextutil"
	"team-pulse/internal/shared/database"
	teamerrors "team-pulse/internal/team/errors"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, caller domain.Identity, req CreateTeamRequest) (TeamResponse, error)
	List(ctx context.Context, caller domain.Identity) ([]TeamResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("team.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("team.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, caller domain.Identity, req CreateTeamRequest) (TeamResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return TeamResponse{}, teamerrors.ErrInvalidTeamName
	}

	t := &Team{WorkspaceID: caller.WorkspaceID, Name: name}
	if err := s.repo.Create(ctx, t); err != nil {
		if database.IsUniqueViolation(err) {
			l.Warn("create team rejected: name taken", zap.String("name", name))
			return TeamResponse{}, teamerrors.ErrTeamNameTaken
		}
		l.Error("create team failed", zap.Error(err))
		return TeamResponse{}, err
	}

	l.Info("create team success", zap.String("team_id", t.ID.String()))
	return mapToResponse(TeamWithCount{Team: *t}), nil
}

func (s *service) List(ctx context.Context, caller domain.Identity) ([]TeamResponse, error) {
	rows, err := s.repo.ListByWorkspace(ctx, caller.WorkspaceID)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list teams failed", zap.Error(err))
		return nil, err
	}

	resp := make([]TeamResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp, nil
}

func mapToResponse(t TeamWithCount) TeamResponse {
	return TeamResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		MemberCount: t.MemberCount,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}
