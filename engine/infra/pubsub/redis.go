package pubsub

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

const subscriptionBuffer = 64

// RedisProvider implements Provider on Redis PUBLISH/SUBSCRIBE.
type RedisProvider struct {
	client redis.UniversalClient
}

func NewRedisProvider(client redis.UniversalClient) (*RedisProvider, error) {
	if client == nil {
		return nil, errors.New("pubsub: redis client is nil")
	}
	return &RedisProvider{client: client}, nil
}

func (p *RedisProvider) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("pubsub: publish to %s: %w", channel, err)
	}
	return nil
}

// Subscribe waits for the subscription to be confirmed before returning, so a
// message published after Subscribe returns is never missed.
func (p *RedisProvider) Subscribe(ctx context.Context, channel string) (Subscription, error) {
	ps := p.client.Subscribe(ctx, channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("pubsub: subscribe to %s: %w", channel, err)
	}
	subCtx, cancel := context.WithCancel(ctx)
	out := make(chan Message, subscriptionBuffer)
	go forward(subCtx, ps.Channel(), out)
	return &redisSubscription{pubsub: ps, cancel: cancel, messages: out}, nil
}

func forward(ctx context.Context, in <-chan *redis.Message, out chan<- Message) {
	defer close(out)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-in:
			if !ok {
				return
			}
			if msg == nil {
				continue
			}
			select {
			case out <- Message{Channel: msg.Channel, Payload: []byte(msg.Payload)}:
			case <-ctx.Done():
				return
			}
		}
	}
}

type redisSubscription struct {
	pubsub   *redis.PubSub
	cancel   context.CancelFunc
	messages <-chan Message
	once     sync.Once
	err      error
}

func (s *redisSubscription) Messages() <-chan Message {
	return s.messages
}

func (s *redisSubscription) Close() error {
	s.once.Do(func() {
		s.cancel()
		s.err = s.pubsub.Close()
	})
	return s.err
}
