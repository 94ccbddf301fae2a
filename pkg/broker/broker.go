package broker

import (
	"context"
	"errors"
	"time"
)

// ErrDisabled is returned by the no-op publisher
var ErrDisabled = errors.New("event publishing disabled")

// Message is one domain event
type Message struct {
	Key        string
	EventType  string
	Value      any // JSON-encoded on publish
	OccurredAt time.Time
}

// Publisher emits domain events
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// NopPublisher drops every message
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Message) error { return ErrDisabled }
func (NopPublisher) Close() error                           { return nil }
