// Package broadcast fans typed messages out to subscribers.
//
// It is used to push state snapshots, where only the newest message
// matters: a subscriber whose buffer is full loses its oldest pending
// message instead of blocking the publisher, and with WithReplayLatest a
// new subscriber first receives the last message broadcast.
//
// Basic usage:
//
//	b := broadcast.NewMemoryBroadcaster[[]toast.Notification](8, broadcast.WithReplayLatest())
//	defer b.Close()
//
//	sub := b.Subscribe(ctx)
//	defer sub.Close()
//
//	_ = b.Broadcast(ctx, broadcast.Message[[]toast.Notification]{Data: visible})
//
//	for msg := range sub.Receive(ctx) {
//		render(msg.Data)
//	}
//
// Subscribers are removed when their context is cancelled, when they are
// closed, or when the broadcaster is closed. Filter wraps a subscriber to
// drop messages the caller does not want, such as events of another queue
// sharing the broadcaster.
//
// RedisBroadcaster spreads messages across processes through a Redis
// pub/sub channel and fans them out locally with the same semantics:
//
//	b, err := broadcast.NewRedisBroadcaster[toast.Announcement](ctx, client, "toasts:announcements", 16)
package broadcast
