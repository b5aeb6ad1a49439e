package events

import (
	"context"

	"gym-membership-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// ChannelBus is the in-process transport used when no broker is configured.
type ChannelBus struct {
	pubSub *gochannel.GoChannel
	topic  string
	logger logger.ILogger
}

func NewChannelBus(topic string, logger logger.ILogger) *ChannelBus {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewStdLogger(false, false),
	)
	return &ChannelBus{pubSub: pubSub, topic: topic, logger: logger}
}

func (b *ChannelBus) Publish(ctx context.Context, event Event) error {
	data, err := Marshal(event)
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	return b.pubSub.Publish(b.topic, msg)
}

// Subscribe starts a goroutine that feeds every message on the topic to
// handler until ctx is cancelled.
func (b *ChannelBus) Subscribe(ctx context.Context, consumer string, handler Handler) error {
	messages, err := b.pubSub.Subscribe(ctx, b.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			b.process(consumer, msg, handler)
		}
	}()
	return nil
}

func (b *ChannelBus) process(consumer string, msg *message.Message, handler Handler) {
	event, err := Unmarshal(msg.Payload)
	if err != nil {
		b.logger.Error("EVENTS", "Dropping malformed message", map[string]interface{}{
			"consumer": consumer,
			"error":    err.Error(),
		})
		msg.Ack()
		return
	}

	if err := handler(msg.Context(), event); err != nil {
		b.logger.Warn("EVENTS", "Handler failed", map[string]interface{}{
			"consumer": consumer,
			"type":     event.Type,
			"error":    err.Error(),
		})
		msg.Nack()
		return
	}
	msg.Ack()
}

func (b *ChannelBus) Close() error {
	return b.pubSub.Close()
}
