package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/events"
)

// AuditService writes a structured log line for every lifecycle event.
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
	for _, t := range []events.EventType{
		events.EventJobPosted,
		events.EventJobUpdated,
		events.EventJobDeleted,
		events.EventApplicationSubmitted,
		events.EventApplicationDeleted,
	} {
		a.dispatcher.Subscribe(t, a.record)
	}
}

func (a *AuditService) record(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("resource_id", event.ResourceID),
		zap.String("actor_id", event.Actor.UserID),
		zap.String("actor_role", string(event.Actor.Role)),
		zap.Any("payload", event.Payload))
	return nil
}
