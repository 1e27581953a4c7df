package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MicroServices-SocialApp/Post-API/engine/infra/pubsub"
	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
	"github.com/google/uuid"
)

const defaultChannel = "post-api:cache:invalidate"

type invalidation struct {
	Origin string `json:"origin"`
	PostID int64  `json:"post_id"`
}

// Broadcaster shares evictions of a process-local cache with every other
// instance listening on the same channel. Messages from this instance are
// ignored on receipt.
type Broadcaster struct {
	provider pubsub.Provider
	channel  string
	origin   string
}

func NewBroadcaster(provider pubsub.Provider, channel string) *Broadcaster {
	if channel == "" {
		channel = defaultChannel
	}
	return &Broadcaster{provider: provider, channel: channel, origin: uuid.NewString()}
}

// Publish announces that id was evicted locally.
func (b *Broadcaster) Publish(ctx context.Context, id int64) error {
	payload, err := json.Marshal(invalidation{Origin: b.origin, PostID: id})
	if err != nil {
		return err
	}
	return b.provider.Publish(ctx, b.channel, payload)
}

// Listen evicts ids announced by other instances from repo until ctx ends.
// The returned function stops listening.
func (b *Broadcaster) Listen(ctx context.Context, repo *PostRepository) (func(), error) {
	sub, err := b.provider.Subscribe(ctx, b.channel)
	if err != nil {
		return nil, fmt.Errorf("listening for cache invalidations: %w", err)
	}
	log := logger.FromContext(ctx).With("component", "cache_broadcast", "channel", b.channel)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range sub.Messages() {
			var inv invalidation
			if err := json.Unmarshal(msg.Payload, &inv); err != nil {
				log.Warn("Ignoring malformed invalidation", "error", err)
				continue
			}
			if inv.Origin == b.origin {
				continue
			}
			repo.evictLocal(ctx, inv.PostID)
		}
	}()
	return func() {
		_ = sub.Close()
		<-done
	}, nil
}
