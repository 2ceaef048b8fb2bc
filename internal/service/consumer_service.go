package service

import (
	"context"
	"time"

	"lesson-notes-be/internal/pkg/logger"
	"lesson-notes-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventMirror forwards an event to an external bus. *nats.Publisher satisfies it.
type EventMirror interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber  message.Subscriber
	topicName   string
	eventLogger logger.ILogger
	logger      logger.ILogger
	mirror      EventMirror
}

// NewConsumerService records every lifecycle event in eventLogger and, when
// mirror is non-nil, forwards it. A nil mirror disables forwarding.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	eventLogger logger.ILogger,
	log logger.ILogger,
	mirror EventMirror,
) IConsumerService {
	return &consumerService{
		subscriber:  subscriber,
		topicName:   topicName,
		eventLogger: eventLogger,
		logger:      log,
		mirror:      mirror,
	}
}

// Consume subscribes to the topic and processes messages in the background
// until ctx is cancelled.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	event, err := events.Unmarshal(msg.Payload)
	if err != nil {
		cs.logger.Error("EVENTS", "Failed to decode event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		// Ack invalid messages to prevent infinite redelivery
		msg.Ack()
		return
	}

	details := map[string]interface{}{
		"message_id":  msg.UUID,
		"occurred_at": event.Timestamp().Format(time.RFC3339Nano),
	}
	for k, v := range event.Payload() {
		details[k] = v
	}
	cs.eventLogger.Info("EVENTS", event.EventType(), details)

	if cs.mirror != nil {
		mirrorCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := cs.mirror.Publish(mirrorCtx, event); err != nil {
			cs.logger.Warn("EVENTS", "Failed to mirror event", map[string]interface{}{
				"type":  event.EventType(),
				"error": err.Error(),
			})
		}
		cancel()
	}

	msg.Ack()
}
