package toast

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/toastkit/pkg/broadcast"
	"github.com/dmitrymomot/toastkit/pkg/logger"
)

// Announcement is a toast meant for every queue listening on a bus.
// Only the content travels; each queue allocates its own id.
type Announcement struct {
	Message    string   `json:"message"`
	Category   Category `json:"category"`
	Persistent bool     `json:"persistent"`
}

// Relay connects a local Queue to a bus shared with other queues, possibly
// in other processes. Announce publishes on the bus; every started Relay,
// this one included, shows what it receives on its own queue.
type Relay struct {
	queue  *Queue
	bus    broadcast.Broadcaster[Announcement]
	logger *slog.Logger

	mu   sync.Mutex
	sub  broadcast.Subscriber[Announcement]
	done chan struct{}
}

// NewRelay creates a Relay for q. Call Start to begin showing announcements.
func NewRelay(q *Queue, bus broadcast.Broadcaster[Announcement]) *Relay {
	return &Relay{
		queue:  q,
		bus:    bus,
		logger: q.logger,
	}
}

// Announce validates the toast and publishes it on the bus.
func (r *Relay) Announce(ctx context.Context, message string, category Category, opts ...ShowOption) error {
	if err := validate(message, category); err != nil {
		return err
	}
	var so showOptions
	for _, opt := range opts {
		opt(&so)
	}
	return r.bus.Broadcast(ctx, broadcast.Message[Announcement]{Data: Announcement{
		Message:    message,
		Category:   category,
		Persistent: so.persistent,
	}})
}

// Start subscribes to the bus and shows announcements on the queue until
// ctx is done, the bus closes or Close is called. Later calls are no-ops.
func (r *Relay) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sub != nil {
		return
	}
	r.sub = r.bus.Subscribe(ctx)
	r.done = make(chan struct{})
	go r.run(ctx, r.sub, r.done)
}

// Close stops a started Relay and waits for it to finish.
func (r *Relay) Close() error {
	r.mu.Lock()
	sub, done := r.sub, r.done
	r.mu.Unlock()
	if sub == nil {
		return nil
	}
	err := sub.Close()
	<-done
	return err
}

func (r *Relay) run(ctx context.Context, sub broadcast.Subscriber[Announcement], done chan struct{}) {
	defer close(done)
	events := sub.Receive(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-events:
			if !ok {
				return
			}
			r.show(ctx, msg.Data)
		}
	}
}

func (r *Relay) show(ctx context.Context, a Announcement) {
	id, err := r.queue.Show(a.Message, a.Category, PersistentIf(a.Persistent))
	switch {
	case errors.Is(err, ErrClosed):
		return
	case err != nil:
		r.logger.LogAttrs(ctx, slog.LevelWarn, "dropped announcement",
			logger.Category(string(a.Category)),
			logger.Error(err),
		)
	default:
		r.logger.LogAttrs(ctx, slog.LevelDebug, "announcement shown",
			logger.Event("announced"),
			logger.NotificationID(id),
		)
	}
}
