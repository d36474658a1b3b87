package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"team-pulse/internal/domain"
	"team-pulse/internal/events"
	leaveerrors "team-pulse/internal/leave/errors"
	"team-pulse/internal/messaging/kafka"
	"team-pulse/internal/shared/apperror"
	"team-pulse/internal/shared/contextutil"
	"team-pulse/internal/shared/database"
	"team-pulse/internal/user"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	TeamCacheKeyPrefix = "leaves:team:"
	teamCacheTTL       = 5 * time.Minute
	aggregateType      = "leave_request"
)

func TeamCacheKey(teamID uuid.UUID) string {
	return TeamCacheKeyPrefix + teamID.String()
}

// UserStore is the part of the user repository leave needs.
type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	CountActiveByTeam(ctx context.Context, teamID uuid.UUID) (int64, error)
	TeamExists(ctx context.Context, workspaceID, teamID uuid.UUID) (bool, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, caller domain.Identity, req ApplyLeaveRequest) (ApplyLeaveResponse, error)
	Approve(ctx context.Context, caller domain.Identity, id string, req ReviewLeaveRequest) (LeaveResponse, error)
	Reject(ctx context.Context, caller domain.Identity, id string, req ReviewLeaveRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, caller domain.Identity, id string) (LeaveResponse, error)
	ListMine(ctx context.Context, caller domain.Identity) ([]LeaveResponse, error)
	ListTeam(ctx context.Context, caller domain.Identity, teamID string) ([]LeaveResponse, error)
	GetByID(ctx context.Context, caller domain.Identity, id string) (LeaveResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	users  UserStore
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	users UserStore,
	outbox kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		users:  users,
		outbox: outbox,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) Apply(ctx context.Context, caller domain.Identity, req ApplyLeaveRequest) (ApplyLeaveResponse, error) {
	l := s.log(ctx)
	l.Debug("apply leave requested",
		zap.String("user_id", caller.UserID.String()),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	app, err := validateApplication(ctx, s.users, caller, req)
	if err != nil {
		if apperror.CodeOf(err) == apperror.CodeInternalError {
			l.Error("apply leave identity check failed", zap.Error(err))
		} else {
			l.Warn("apply leave rejected", zap.Error(err))
		}
		return ApplyLeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("apply leave begin tx failed", zap.Error(err))
		return ApplyLeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.LockUser(ctx, app.userID); err != nil {
		l.Error("apply leave lock failed", zap.Error(err))
		return ApplyLeaveResponse{}, err
	}

	if err := checkSelfOverlap(ctx, qtx, app); err != nil {
		if apperror.CodeOf(err) == apperror.CodeConflict {
			l.Warn("apply leave overlaps existing request", zap.Error(err))
		} else {
			l.Error("apply leave overlap check failed", zap.Error(err))
		}
		return ApplyLeaveResponse{}, err
	}

	estimator := teamConflictEstimator{users: s.users, leaves: s.repo}
	warning, err := estimator.estimate(ctx, app.teamID, app.userID, app.startDate, app.endDate)
	if err != nil {
		l.Error("apply leave team conflict estimate failed", zap.Error(err))
		return ApplyLeaveResponse{}, err
	}

	rec := &LeaveRequest{
		ID:           uuid.New(),
		WorkspaceID:  app.workspaceID,
		UserID:       app.userID,
		TeamID:       app.teamID,
		StartDate:    app.startDate,
		StartSession: app.startSession,
		EndDate:      app.endDate,
		EndSession:   app.endSession,
		Type:         app.leaveType,
		Status:       StatusPending,
		Reason:       app.reason,
	}
	if err := qtx.Create(ctx, rec); err != nil {
		if database.IsExclusionViolation(err) {
			l.Warn("apply leave lost overlap race", zap.Error(err))
			return ApplyLeaveResponse{}, leaveerrors.ErrOverlap
		}
		l.Error("apply leave persist failed", zap.Error(err))
		return ApplyLeaveResponse{}, err
	}

	if err := s.enqueue(ctx, tx, rec, events.LeaveApplied, caller.UserID, warning); err != nil {
		l.Error("apply leave outbox persist failed", zap.String("leave_id", rec.ID.String()), zap.Error(err))
		return ApplyLeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error("apply leave commit failed", zap.Error(err))
		return ApplyLeaveResponse{}, err
	}
	s.invalidateTeam(ctx, rec.TeamID)

	l.Info("apply leave success",
		zap.String("leave_id", rec.ID.String()),
		zap.Bool("team_warning", warning != nil),
	)
	return ApplyLeaveResponse{LeaveRequest: mapToResponse(*rec), Warning: warning}, nil
}

// checkSelfOverlap compares slots of the caller's live requests that share at
// least one calendar day with the application.
func checkSelfOverlap(ctx context.Context, repo Repository, app *application) error {
	candidates, err := repo.FindOverlappingCandidates(ctx, app.userID, app.startDate, app.endDate, terminalForOverlap)
	if err != nil {
		return err
	}
	for _, c := range candidates {
		existing, err := c.Slots()
		if err != nil {
			return err
		}
		if existing.Overlaps(app.slots) {
			return leaveerrors.OverlapConflict(strings.ToLower(string(c.Status)))
		}
	}
	return nil
}

func (s *service) Approve(ctx context.Context, caller domain.Identity, id string, req ReviewLeaveRequest) (LeaveResponse, error) {
	return s.transition(ctx, caller, id, StatusApproved, req.Comment)
}

func (s *service) Reject(ctx context.Context, caller domain.Identity, id string, req ReviewLeaveRequest) (LeaveResponse, error) {
	return s.transition(ctx, caller, id, StatusRejected, req.Comment)
}

func (s *service) Cancel(ctx context.Context, caller domain.Identity, id string) (LeaveResponse, error) {
	return s.transition(ctx, caller, id, StatusCancelled, nil)
}

var transitionEvents = map[Status]string{
	StatusApproved:  events.LeaveApproved,
	StatusRejected:  events.LeaveRejected,
	StatusCancelled: events.LeaveCancelled,
}

// transition moves a PENDING request to target. Reviews need a current manager
// of the request's team (or an admin) other than the requester; cancel needs
// the requester.
func (s *service) transition(ctx context.Context, caller domain.Identity, id string, target Status, comment *string) (LeaveResponse, error) {
	l := s.log(ctx).With(zap.String("leave_id", id), zap.String("target_status", string(target)))
	l.Debug("leave transition requested")

	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	actor, err := s.currentIdentity(ctx, caller)
	if err != nil {
		l.Warn("leave transition identity rejected", zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("leave transition begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	rec, err := qtx.FindByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		l.Error("leave transition lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if rec.WorkspaceID != actor.WorkspaceID {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}

	switch target {
	case StatusApproved, StatusRejected:
		if rec.UserID == actor.UserID {
			l.Warn("leave self review rejected")
			return LeaveResponse{}, leaveerrors.ErrSelfReview
		}
		if !actor.ManagesTeam(rec.TeamID) {
			l.Warn("leave review by non manager rejected")
			return LeaveResponse{}, leaveerrors.ErrNotTeamManager
		}
	case StatusCancelled:
		if rec.UserID != actor.UserID {
			l.Warn("leave cancel by non owner rejected")
			return LeaveResponse{}, leaveerrors.ErrNotOwner
		}
	}

	if rec.Status != StatusPending {
		l.Warn("leave transition from non pending status", zap.String("status", string(rec.Status)))
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	rec.Status = target
	if target != StatusCancelled {
		now := time.Now().UTC()
		approver := actor.UserID
		rec.ApproverID = &approver
		rec.ReviewedAt = &now
		rec.Comment = trimComment(comment)
	}

	if err := qtx.Update(ctx, rec); err != nil {
		l.Error("leave transition persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := s.enqueue(ctx, tx, rec, transitionEvents[target], actor.UserID, nil); err != nil {
		l.Error("leave transition outbox persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		l.Error("leave transition commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.invalidateTeam(ctx, rec.TeamID)

	l.Info("leave transition success")
	return mapToResponse(*rec), nil
}

// currentIdentity rebuilds the caller from the store so role and team changes
// made after the token was issued take effect.
func (s *service) currentIdentity(ctx context.Context, caller domain.Identity) (domain.Identity, error) {
	u, err := s.users.FindByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Identity{}, leaveerrors.ErrUserInactive
		}
		return domain.Identity{}, err
	}
	if err := checkRequester(u, caller); err != nil {
		return domain.Identity{}, err
	}
	return u.Identity(), nil
}

func (s *service) ListMine(ctx context.Context, caller domain.Identity) ([]LeaveResponse, error) {
	rows, err := s.repo.ListByUser(ctx, caller.UserID)
	if err != nil {
		s.log(ctx).Error("list own leave failed", zap.String("user_id", caller.UserID.String()), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

// ListTeam returns the pending and approved requests of a team. Admins may ask
// for any team of their workspace; everyone else only sees their own team.
func (s *service) ListTeam(ctx context.Context, caller domain.Identity, teamID string) ([]LeaveResponse, error) {
	l := s.log(ctx)

	caller, err := s.currentIdentity(ctx, caller)
	if err != nil {
		return nil, err
	}

	var target uuid.UUID
	switch {
	case teamID != "":
		parsed, err := uuid.Parse(teamID)
		if err != nil {
			return nil, leaveerrors.ErrInvalidTeamID
		}
		target = parsed
	case caller.HasTeam():
		target = *caller.TeamID
	default:
		return nil, leaveerrors.ErrTeamIDRequired
	}

	if !caller.IsAdmin() && (!caller.HasTeam() || *caller.TeamID != target) {
		l.Warn("list team leave for foreign team rejected", zap.String("team_id", target.String()))
		return nil, leaveerrors.ErrForbiddenTeam
	}

	exists, err := s.users.TeamExists(ctx, caller.WorkspaceID, target)
	if err != nil {
		l.Error("list team leave team lookup failed", zap.Error(err))
		return nil, err
	}
	if !exists {
		return nil, leaveerrors.ErrTeamNotFound
	}

	cacheKey := TeamCacheKey(target)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []LeaveResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		// Shared by concurrent callers; one caller going away must not fail the rest.
		fillCtx := context.WithoutCancel(ctx)
		rows, err := s.repo.ListActiveByTeam(fillCtx, target)
		if err != nil {
			return nil, err
		}
		resp := mapToListResponse(rows)

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(fillCtx, cacheKey, data, teamCacheTTL).Err(); err != nil {
					l.Warn("team leave cache fill failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		l.Error("list team leave failed", zap.String("team_id", target.String()), zap.Error(err))
		return nil, err
	}

	return v.([]LeaveResponse), nil
}

func (s *service) GetByID(ctx context.Context, caller domain.Identity, id string) (LeaveResponse, error) {
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	caller, err = s.currentIdentity(ctx, caller)
	if err != nil {
		return LeaveResponse{}, err
	}

	rec, err := s.repo.FindByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		s.log(ctx).Error("get leave failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if rec.WorkspaceID != caller.WorkspaceID {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	if rec.UserID != caller.UserID && !caller.ManagesTeam(rec.TeamID) {
		return LeaveResponse{}, apperror.ErrForbidden
	}

	return mapToResponse(*rec), nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, rec *LeaveRequest, eventType string, actorID uuid.UUID, warning *string) error {
	if s.outbox == nil {
		return nil
	}

	meta := contextutil.ExtractMetadata(ctx)
	event := events.LeaveLifecycleEvent{
		EventType:    eventType,
		RequestID:    meta.RequestID,
		LeaveID:      rec.ID.String(),
		WorkspaceID:  rec.WorkspaceID.String(),
		TeamID:       rec.TeamID.String(),
		UserID:       rec.UserID.String(),
		ActorID:      actorID.String(),
		Status:       string(rec.Status),
		StartDate:    rec.StartDate.Format(time.DateOnly),
		StartSession: string(rec.StartSession),
		EndDate:      rec.EndDate.Format(time.DateOnly),
		EndSession:   string(rec.EndSession),
		Warning:      deref(warning),
		Comment:      deref(rec.Comment),
		OccurredAt:   time.Now().UTC(),
	}
	row, err := kafka.NewOutboxEvent(events.LeaveLifecycleTopic, aggregateType, rec.ID.String(), eventType, meta.RequestID, event)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, row)
}

func (s *service) invalidateTeam(ctx context.Context, teamID uuid.UUID) {
	if s.rdb == nil {
		return
	}
	cacheKey := TeamCacheKey(teamID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.log(ctx).Error("failed to invalidate team leave cache", zap.String("key", cacheKey), zap.Error(err))
	}
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func trimComment(c *string) *string {
	if c == nil {
		return nil
	}
	v := strings.TrimSpace(*c)
	if v == "" {
		return nil
	}
	return &v
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:           l.ID.String(),
		UserID:       l.UserID.String(),
		TeamID:       l.TeamID.String(),
		StartDate:    l.StartDate.Format(time.DateOnly),
		StartSession: string(l.StartSession),
		EndDate:      l.EndDate.Format(time.DateOnly),
		EndSession:   string(l.EndSession),
		Type:         string(l.Type),
		Status:       string(l.Status),
		Reason:       l.Reason,
		Comment:      l.Comment,
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
	}
	if l.ApproverID != nil {
		v := l.ApproverID.String()
		resp.ApproverID = &v
	}
	if l.ReviewedAt != nil {
		v := l.ReviewedAt.UTC().Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}

func mapToListResponse(rows []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp
}
