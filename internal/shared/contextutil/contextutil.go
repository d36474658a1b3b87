package contextutil

import (
	"context"

	"go.uber.org/zap"
)

type contextKey int

const (
	requestIDKey contextKey = iota
	userIDKey
	workspaceIDKey
	loggerKey
)

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	return stringValue(ctx, requestIDKey)
}

func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, userIDKey, uid)
}

func GetUserID(ctx context.Context) string {
	return stringValue(ctx, userIDKey)
}

// WithWorkspaceID records the caller's tenant for logs and outbox metadata.
func WithWorkspaceID(ctx context.Context, wid string) context.Context {
	return context.WithValue(ctx, workspaceIDKey, wid)
}

func GetWorkspaceID(ctx context.Context) string {
	return stringValue(ctx, workspaceIDKey)
}

func stringValue(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}

func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request-scoped logger, then defaultLogger, then a no-op
// logger. It never returns nil.
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	if defaultLogger != nil {
		return defaultLogger
	}
	return zap.NewNop()
}

type Metadata struct {
	RequestID   string
	UserID      string
	WorkspaceID string
}

func ExtractMetadata(ctx context.Context) Metadata {
	return Metadata{
		RequestID:   GetRequestID(ctx),
		UserID:      GetUserID(ctx),
		WorkspaceID: GetWorkspaceID(ctx),
	}
}

// LogFields turns the non-empty metadata into zap fields.
func (m Metadata) LogFields() []zap.Field {
	fields := make([]zap.Field, 0, 3)
	if m.RequestID != "" {
		fields = append(fields, zap.String("request_id", m.RequestID))
	}
	if m.UserID != "" {
		fields = append(fields, zap.String("user_id", m.UserID))
	}
	if m.WorkspaceID != "" {
		fields = append(fields, zap.String("workspace_id", m.WorkspaceID))
	}
	return fields
}
