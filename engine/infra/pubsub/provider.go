// Package pubsub carries small fire-and-forget notifications between service
// instances.
package pubsub

import "context"

type Message struct {
	Channel string
	Payload []byte
}

// Subscription streams messages until Close or until the subscribing context
// ends. Close is idempotent.
type Subscription interface {
	Messages() <-chan Message
	Close() error
}

type Provider interface {
	Subscribe(ctx context.Context, channel string) (Subscription, error)
	Publish(ctx context.Context, channel string, payload []byte) error
}
