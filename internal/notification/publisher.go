package notification

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
)

// Writer is the slice of kafkago.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

func publishEvent(ctx context.Context, writer Writer, event Event) error {
	msg := kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.Recipient),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "recipient", Value: []byte(event.Recipient)},
		},
	}

	return writer.WriteMessages(ctx, msg)
}
