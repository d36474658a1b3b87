package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"team-pulse/internal/domain"
	"team-pulse/internal/events"
	notificationerrors "team-pulse/internal/notification/errors"
	"team-pulse/internal/shared/contextutil"
	"team-pulse/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const listLimit = 100

var ErrUnknownEvent = errors.New("unknown leave lifecycle event")

// Recipients resolves who hears about a team's requests.
type Recipients interface {
	FindActiveManagersByTeam(ctx context.Context, teamID uuid.UUID) ([]user.User, error)
}

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	HandleLeaveEvent(ctx context.Context, event events.LeaveLifecycleEvent) (int64, error)
	List(ctx context.Context, caller domain.Identity) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, caller domain.Identity, id string) error
}

type service struct {
	repo       Repository
	recipients Recipients
	logger     *zap.Logger
}

func NewService(repo Repository, recipients Recipients, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, recipients: recipients, logger: l}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

// HandleLeaveEvent fans a lifecycle event out to its recipients: applied and
// cancelled go to the team's active managers, approved and rejected to the
// requester. It returns the number of notifications stored.
func (s *service) HandleLeaveEvent(ctx context.Context, event events.LeaveLifecycleEvent) (int64, error) {
	l := s.log(ctx).With(
		zap.String("event_type", event.EventType),
		zap.String("leave_id", event.LeaveID),
		zap.String("request_id", event.RequestID),
	)

	workspaceID, err := uuid.Parse(event.WorkspaceID)
	if err != nil {
		return 0, fmt.Errorf("event workspace_id: %w", err)
	}
	leaveID, err := uuid.Parse(event.LeaveID)
	if err != nil {
		return 0, fmt.Errorf("event leave_id: %w", err)
	}
	requesterID, err := uuid.Parse(event.UserID)
	if err != nil {
		return 0, fmt.Errorf("event user_id: %w", err)
	}

	var recipients []uuid.UUID
	switch event.EventType {
	case events.LeaveApplied, events.LeaveCancelled:
		teamID, err := uuid.Parse(event.TeamID)
		if err != nil {
			return 0, fmt.Errorf("event team_id: %w", err)
		}
		managers, err := s.recipients.FindActiveManagersByTeam(ctx, teamID)
		if err != nil {
			l.Error("resolve team managers failed", zap.Error(err))
			return 0, err
		}
		for _, m := range managers {
			if m.ID != requesterID && m.WorkspaceID == workspaceID {
				recipients = append(recipients, m.ID)
			}
		}
	case events.LeaveApproved, events.LeaveRejected:
		recipients = []uuid.UUID{requesterID}
	default:
		l.Warn("unknown leave event skipped")
		return 0, ErrUnknownEvent
	}

	if len(recipients) == 0 {
		l.Debug("leave event has no recipients")
		return 0, nil
	}

	message := messageFor(event)
	items := make([]Notification, len(recipients))
	for i, uid := range recipients {
		items[i] = Notification{
			ID:             uuid.New(),
			WorkspaceID:    workspaceID,
			UserID:         uid,
			LeaveRequestID: &leaveID,
			Kind:           event.EventType,
			Message:        message,
		}
	}

	created, err := s.repo.CreateMany(ctx, items)
	if err != nil {
		l.Error("store notifications failed", zap.Error(err))
		return 0, err
	}

	l.Info("leave event notifications stored",
		zap.Int("recipients", len(recipients)),
		zap.Int64("created", created),
	)
	return created, nil
}

func messageFor(e events.LeaveLifecycleEvent) string {
	period := fmt.Sprintf("%s (%s) to %s (%s)", e.StartDate, e.StartSession, e.EndDate, e.EndSession)
	var msg string
	switch e.EventType {
	case events.LeaveApplied:
		msg = fmt.Sprintf("New leave request for %s awaits your review.", period)
		if e.Warning != "" {
			msg += " " + e.Warning
		}
	case events.LeaveCancelled:
		msg = fmt.Sprintf("The leave request for %s was cancelled.", period)
	case events.LeaveApproved:
		msg = fmt.Sprintf("Your leave request for %s was approved.", period)
	case events.LeaveRejected:
		msg = fmt.Sprintf("Your leave request for %s was rejected.", period)
	}
	if e.Comment != "" && (e.EventType == events.LeaveApproved || e.EventType == events.LeaveRejected) {
		msg += " Comment: " + e.Comment
	}
	return msg
}

func (s *service) List(ctx context.Context, caller domain.Identity) ([]NotificationResponse, error) {
	rows, err := s.repo.ListByUser(ctx, caller.UserID, listLimit)
	if err != nil {
		s.log(ctx).Error("list notifications failed", zap.String("user_id", caller.UserID.String()), zap.Error(err))
		return nil, err
	}

	resp := make([]NotificationResponse, len(rows))
	for i, n := range rows {
		resp[i] = mapToResponse(n)
	}
	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, caller domain.Identity, id string) error {
	nid, err := uuid.Parse(id)
	if err != nil {
		return notificationerrors.ErrInvalidNotificationID
	}

	affected, err := s.repo.MarkRead(ctx, nid, caller.UserID, time.Now().UTC())
	if err != nil {
		s.log(ctx).Error("mark notification read failed", zap.String("notification_id", id), zap.Error(err))
		return err
	}
	if affected == 0 {
		return notificationerrors.ErrNotificationNotFound
	}
	return nil
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID.String(),
		Kind:      n.Kind,
		Message:   n.Message,
		Read:      n.ReadAt != nil,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
	}
	if n.LeaveRequestID != nil {
		v := n.LeaveRequestID.String()
		resp.LeaveRequestID = &v
	}
	if n.ReadAt != nil {
		v := n.ReadAt.UTC().Format(time.RFC3339)
		resp.ReadAt = &v
	}
	return resp
}
