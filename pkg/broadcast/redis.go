package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisBroadcaster relays messages through a Redis pub/sub channel, so a
// message broadcast by any process reaches the subscribers of every
// process listening on the channel. Payloads are JSON encoded; messages
// that fail to decode are dropped.
type RedisBroadcaster[T any] struct {
	client  redis.UniversalClient
	channel string
	pubsub  *redis.PubSub
	local   *MemoryBroadcaster[T]
	done    chan struct{}
	once    sync.Once
}

// NewRedisBroadcaster subscribes to channel and starts relaying. Options
// apply to the local fan-out. The client stays owned by the caller.
func NewRedisBroadcaster[T any](ctx context.Context, client redis.UniversalClient, channel string, bufferSize int, opts ...Option) (*RedisBroadcaster[T], error) {
	ps := client.Subscribe(ctx, channel)
	// wait for the subscription confirmation so no publish is missed
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, errors.Join(ErrSubscribe, err)
	}

	b := &RedisBroadcaster[T]{
		client:  client,
		channel: channel,
		pubsub:  ps,
		local:   NewMemoryBroadcaster[T](bufferSize, opts...),
		done:    make(chan struct{}),
	}
	go b.relay()

	return b, nil
}

// Subscribe registers a local subscriber for the lifetime of ctx.
func (b *RedisBroadcaster[T]) Subscribe(ctx context.Context) Subscriber[T] {
	return b.local.Subscribe(ctx)
}

// Broadcast publishes msg on the channel. Local subscribers receive it
// once Redis delivers it back.
func (b *RedisBroadcaster[T]) Broadcast(ctx context.Context, msg Message[T]) error {
	payload, err := json.Marshal(msg.Data)
	if err != nil {
		return errors.Join(ErrEncode, err)
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return errors.Join(ErrPublish, err)
	}
	return nil
}

// Len returns the number of local subscribers.
func (b *RedisBroadcaster[T]) Len() int {
	return b.local.Len()
}

// Close unsubscribes from the channel and closes every local subscriber.
func (b *RedisBroadcaster[T]) Close() error {
	var err error
	b.once.Do(func() {
		err = b.pubsub.Close()
		<-b.done
		err = errors.Join(err, b.local.Close())
	})
	return err
}

func (b *RedisBroadcaster[T]) relay() {
	defer close(b.done)
	for m := range b.pubsub.Channel() {
		var data T
		if err := json.Unmarshal([]byte(m.Payload), &data); err != nil {
			continue
		}
		_ = b.local.Broadcast(context.Background(), Message[T]{Data: data})
	}
}

var (
	_ Broadcaster[struct{}] = (*RedisBroadcaster[struct{}])(nil)
	_ Broadcaster[struct{}] = (*MemoryBroadcaster[struct{}])(nil)
)
