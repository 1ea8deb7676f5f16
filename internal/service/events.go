package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/policy"
)

type publisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// publish never fails the calling operation; subscriber errors are only logged.
func (p publisher) publish(ctx context.Context, event events.Event) {
	if p.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := p.dispatcher.Publish(ctx, event); err != nil && p.logger != nil {
		p.logger.Warn("event subscriber failed",
			zap.String("event_type", string(event.Type)),
			zap.String("resource_id", event.ResourceID),
			zap.Error(err))
	}
}

func eventActor(actor policy.Actor) events.Actor {
	return events.Actor{UserID: actor.ID, Role: actor.Role}
}
