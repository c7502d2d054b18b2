package service

import (
	"context"
	"encoding/json"

	"research-assistant-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains stage events off the in-process bus and writes them
// to the structured log. It is the audit trail of the workflow.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
}

func NewConsumerService(pubSub *gochannel.GoChannel, topicName string, log logger.ILogger) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var event StageEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal stage event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed events never become parseable on retry
		return
	}

	cs.logger.Info("consumer", "workflow stage completed", map[string]interface{}{
		"session_id":  event.SessionId,
		"stage":       event.Stage,
		"item_count":  event.ItemCount,
		"occurred_at": event.OccurredAt,
	})
	msg.Ack()
}
