package service

import (
	"context"
	"encoding/json"
	"time"

	"research-assistant-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// StageEvent is published on the in-process bus whenever a workflow stage
// completes for a session.
type StageEvent struct {
	SessionId  uuid.UUID `json:"session_id"`
	Stage      string    `json:"stage"`
	ItemCount  int       `json:"item_count"`
	OccurredAt time.Time `json:"occurred_at"`
}

type IPublisherService interface {
	PublishStage(ctx context.Context, event StageEvent) error
}

type publisherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
}

func NewPublisherService(pubSub *gochannel.GoChannel, topicName string, log logger.ILogger) IPublisherService {
	return &publisherService{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    log,
	}
}

// PublishStage emits a stage event. Stage events are observability signals,
// not workflow state: callers log a failed publish and move on.
func (p *publisherService) PublishStage(ctx context.Context, event StageEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := p.pubSub.Publish(p.topicName, msg); err != nil {
		p.logger.Warn("publisher", "failed to publish stage event", map[string]interface{}{
			"session_id": event.SessionId,
			"stage":      event.Stage,
			"error":      err.Error(),
		})
		return err
	}
	return nil
}
