package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/YoussefTakali/esprithub/internal/events"
)

// AuditService writes a structured audit trail for authentication and
// account events.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserLoggedIn, a.record)
	a.dispatcher.Subscribe(events.EventTokenRefreshed, a.record)
	a.dispatcher.Subscribe(events.EventGithubLinked, a.record)
	a.dispatcher.Subscribe(events.EventUserCreated, a.record)
	a.dispatcher.Subscribe(events.EventUserUpdated, a.record)
	a.dispatcher.Subscribe(events.EventUserDeleted, a.record)
}

func (a *AuditService) record(_ context.Context, event events.Event) error {
	a.logger.Info("audit",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("user_id", event.UserID),
		zap.String("email", event.Email),
		zap.Time("timestamp", event.Timestamp),
		zap.Any("payload", event.Payload))
	return nil
}
