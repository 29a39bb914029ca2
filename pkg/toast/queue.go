package toast

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/toastkit/pkg/broadcast"
	"github.com/dmitrymomot/toastkit/pkg/logger"
)

// Queue owns the visible notifications, their hover marks, the recency
// ledger and the expiry countdowns. All methods are safe for concurrent use;
// every operation runs to completion under a single lock, so timer expiry,
// hover events and Show/Remove calls never interleave.
//
// Events are queued under the lock and published after it is released, in
// mutation order, so a slow broadcaster never delays the queue itself.
type Queue struct {
	mu         sync.Mutex
	origin     string
	clock      Clock
	items      []Notification
	hovered    map[int]struct{}
	suppressor *Suppressor
	scheduler  *Scheduler
	logger     *slog.Logger
	closed     bool
	outbox     []Event

	pubMu          sync.Mutex
	events         broadcast.Broadcaster[Event]
	ownsEvents     bool
	publishTimeout time.Duration
}

// New creates a Queue. Call Close when done to cancel pending countdowns.
func New(opts ...Option) *Queue {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.origin == "" {
		o.origin = uuid.NewString()
	}
	q := &Queue{
		origin:         o.origin,
		clock:          o.clock,
		hovered:        make(map[int]struct{}),
		suppressor:     NewSuppressor(o.cooldown),
		events:         o.events,
		publishTimeout: o.publishTimeout,
		logger:         o.logger.With(logger.Component("toast")),
	}
	if q.events == nil {
		q.events = broadcast.NewMemoryBroadcaster[Event](o.eventBuffer, broadcast.WithReplayLatest())
		q.ownsEvents = true
	}
	q.scheduler = NewScheduler(o.clock, o.duration, q.expire)

	return q
}

// Show displays message unless the same text was shown within the cooldown.
// It returns the allocated id, or 0 when the message was suppressed.
func (q *Queue) Show(message string, category Category, opts ...ShowOption) (int, error) {
	if err := validate(message, category); err != nil {
		return 0, err
	}

	var so showOptions
	for _, opt := range opts {
		opt(&so)
	}

	defer q.flush()
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return 0, ErrClosed
	}

	now := q.clock.Now()
	if q.suppressor.ShouldSuppress(message, now) {
		q.logger.LogAttrs(context.Background(), slog.LevelDebug, "notification suppressed",
			logger.Event("suppressed"),
			logger.Category(string(category)),
		)
		return 0, nil
	}

	// ids are read here, under the lock, never from an earlier snapshot
	id := Allocate(q.visibleIDs())
	q.items = append(q.items, Notification{
		ID:         id,
		Message:    message,
		Category:   category,
		Persistent: so.persistent,
		CreatedAt:  now,
	})
	q.suppressor.Record(message, now)

	if !so.persistent {
		q.scheduler.Start(id)
	}

	q.logger.LogAttrs(context.Background(), slog.LevelDebug, "notification shown",
		logger.Event(string(EventShown)),
		logger.NotificationID(id),
		logger.Category(string(category)),
		slog.Bool("persistent", so.persistent),
	)
	q.enqueue(EventShown, id)

	return id, nil
}

// Remove dismisses the notification with the given id.
// Removing an unknown or already removed id is a no-op.
func (q *Queue) Remove(id int) {
	defer q.flush()
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed || !q.removeLocked(id) {
		return
	}

	q.logger.LogAttrs(context.Background(), slog.LevelDebug, "notification removed",
		logger.Event(string(EventRemoved)),
		logger.NotificationID(id),
	)
	q.enqueue(EventRemoved, id)
}

// NotifyHover pauses the countdown of id while hovered and restarts it
// with the full duration when the pointer leaves. Persistent notifications
// never get a countdown. Unknown ids are ignored.
func (q *Queue) NotifyHover(id int, hovered bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	idx := q.indexOf(id)
	if idx < 0 {
		return
	}

	if hovered {
		q.hovered[id] = struct{}{}
		q.scheduler.Cancel(id)
		return
	}

	delete(q.hovered, id)
	if !q.items[idx].Persistent {
		q.scheduler.Start(id)
	}
}

// Notifications returns a copy of the visible notifications in display order.
func (q *Queue) Notifications() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.items)
}

// Len returns the number of visible notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Pending returns the number of running countdowns.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.scheduler.Len()
}

// Origin returns the id stamped on every event this queue publishes.
func (q *Queue) Origin() string {
	return q.origin
}

// Subscribe returns a subscriber receiving an Event after every change of
// this queue. Events of other queues sharing the broadcaster are dropped.
// The most recent event, if any, is delivered first.
func (q *Queue) Subscribe(ctx context.Context) broadcast.Subscriber[Event] {
	return broadcast.Filter(q.events.Subscribe(ctx), func(ev Event) bool {
		return ev.Origin == q.origin
	})
}

// Subscribers returns the number of active event subscribers, or -1 when
// the broadcaster does not report it.
func (q *Queue) Subscribers() int {
	if l, ok := q.events.(interface{ Len() int }); ok {
		return l.Len()
	}
	return -1
}

// Close cancels all countdowns and clears hover marks. After Close, Show
// returns ErrClosed and the other mutating methods do nothing. The visible
// set stays readable. Close is idempotent.
func (q *Queue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	q.scheduler.Stop()
	clear(q.hovered)
	q.mu.Unlock()

	q.flush()
	if q.ownsEvents {
		return q.events.Close()
	}
	return nil
}

// expire runs on the clock's callback goroutine.
func (q *Queue) expire(id int, c *Countdown) {
	defer q.flush()
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed || !q.scheduler.Claim(id, c) {
		return
	}
	if _, hovered := q.hovered[id]; hovered {
		return
	}
	if !q.removeLocked(id) {
		return
	}

	q.logger.LogAttrs(context.Background(), slog.LevelDebug, "notification expired",
		logger.Event(string(EventExpired)),
		logger.NotificationID(id),
	)
	q.enqueue(EventExpired, id)
}

func (q *Queue) removeLocked(id int) bool {
	idx := q.indexOf(id)
	if idx < 0 {
		return false
	}
	q.items = slices.Delete(q.items, idx, idx+1)
	q.scheduler.Cancel(id)
	delete(q.hovered, id)
	return true
}

func (q *Queue) indexOf(id int) int {
	return slices.IndexFunc(q.items, func(n Notification) bool { return n.ID == id })
}

func (q *Queue) visibleIDs() []int {
	ids := make([]int, len(q.items))
	for i, n := range q.items {
		ids[i] = n.ID
	}
	return ids
}

// enqueue must be called with q.mu held so events keep mutation order.
func (q *Queue) enqueue(kind EventKind, id int) {
	q.outbox = append(q.outbox, Event{
		Origin:  q.origin,
		Kind:    kind,
		ID:      id,
		Visible: slices.Clone(q.items),
	})
}

// flush publishes queued events without holding q.mu. Only one goroutine
// publishes at a time; a caller that finds another one publishing leaves
// its events to it.
func (q *Queue) flush() {
	for {
		if !q.pubMu.TryLock() {
			return
		}
		for ev, ok := q.next(); ok; ev, ok = q.next() {
			q.publish(ev)
		}
		q.pubMu.Unlock()

		// events queued while we were unlocking
		q.mu.Lock()
		empty := len(q.outbox) == 0
		q.mu.Unlock()
		if empty {
			return
		}
	}
}

func (q *Queue) next() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.outbox) == 0 {
		return Event{}, false
	}
	ev := q.outbox[0]
	q.outbox[0] = Event{}
	q.outbox = q.outbox[1:]
	return ev, true
}

func (q *Queue) publish(ev Event) {
	ctx, cancel := context.WithTimeout(context.Background(), q.publishTimeout)
	defer cancel()

	if err := q.events.Broadcast(ctx, broadcast.Message[Event]{Data: ev}); err != nil {
		q.logger.LogAttrs(ctx, slog.LevelWarn, "failed to publish notification event",
			logger.Event(string(ev.Kind)),
			logger.NotificationID(ev.ID),
			logger.Error(err),
		)
	}
}

func validate(message string, category Category) error {
	if strings.TrimSpace(message) == "" {
		return ErrEmptyMessage
	}
	if !category.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return nil
}
