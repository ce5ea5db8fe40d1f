package service

import (
	"context"
	"log/slog"
	"time"

	"kanban/internal/domain"
	"kanban/internal/logger"
)

// AuditSink receives audit events. The default sink writes them to the
// structured log.
type AuditSink interface {
	Record(ctx context.Context, ev domain.AuditEvent)
}

type logSink struct{}

func (logSink) Record(ctx context.Context, ev domain.AuditEvent) {
	attrs := []any{
		"audit", true,
		"user_id", ev.UserID,
		"action", ev.Action,
		"category", ev.Category,
		slog.Time("at", ev.At),
	}
	if ev.IP != "" {
		attrs = append(attrs, "ip", ev.IP)
	}
	if ev.UserAgent != "" {
		attrs = append(attrs, "user_agent", ev.UserAgent)
	}
	if len(ev.Details) > 0 {
		attrs = append(attrs, slog.Any("details", ev.Details))
	}
	logger.WithContext(ctx).Info("audit", attrs...)
}

// AuditService handles audit logging
type AuditService struct {
	sink AuditSink
	now  func() time.Time
}

// NewAuditService creates an audit service that writes to the logger
func NewAuditService() *AuditService {
	return NewAuditServiceWithSink(logSink{})
}

func NewAuditServiceWithSink(sink AuditSink) *AuditService {
	return &AuditService{sink: sink, now: time.Now}
}

// Log records a new audit event
func (s *AuditService) Log(ctx context.Context, userID int64, action, category string, details map[string]any) {
	s.sink.Record(ctx, domain.AuditEvent{
		UserID:   userID,
		Action:   action,
		Category: category,
		Details:  details,
		At:       s.now(),
	})
}

// LogWithRequest records an audit event with request info (IP, User-Agent)
func (s *AuditService) LogWithRequest(ctx context.Context, userID int64, action, category, ip, userAgent string, details map[string]any) {
	s.sink.Record(ctx, domain.AuditEvent{
		UserID:    userID,
		Action:    action,
		Category:  category,
		Details:   details,
		IP:        ip,
		UserAgent: userAgent,
		At:        s.now(),
	})
}

// LogLogin logs a successful login
func (s *AuditService) LogLogin(ctx context.Context, userID int64, ip, userAgent string) {
	s.LogWithRequest(ctx, userID, domain.AuditActionLogin, domain.AuditCategoryAuth, ip, userAgent, nil)
}

// LogLoginFailed logs rejected credentials. userID is 0 when the username is unknown.
func (s *AuditService) LogLoginFailed(ctx context.Context, userID int64, username, ip, userAgent string) {
	s.LogWithRequest(ctx, userID, domain.AuditActionLoginFailed, domain.AuditCategoryAuth, ip, userAgent,
		map[string]any{"username": username})
}

func (s *AuditService) LogLogout(ctx context.Context, userID int64, ip, userAgent string) {
	s.LogWithRequest(ctx, userID, domain.AuditActionLogout, domain.AuditCategoryAuth, ip, userAgent, nil)
}

func (s *AuditService) LogRegister(ctx context.Context, userID int64, username string) {
	s.Log(ctx, userID, domain.AuditActionRegister, domain.AuditCategoryAuth, map[string]any{"username": username})
}

// LogTask logs a task mutation
func (s *AuditService) LogTask(ctx context.Context, userID int64, action string, taskID int64, details map[string]any) {
	if details == nil {
		details = make(map[string]any)
	}
	details["task_id"] = taskID

	s.Log(ctx, userID, action, domain.AuditCategoryTask, details)
}
