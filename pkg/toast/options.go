package toast

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/toastkit/pkg/broadcast"
)

// DefaultPublishTimeout bounds a single event publish.
const DefaultPublishTimeout = 2 * time.Second

// Option configures a Queue.
type Option func(*options)

type options struct {
	clock          Clock
	duration       time.Duration
	cooldown       time.Duration
	logger         *slog.Logger
	events         broadcast.Broadcaster[Event]
	eventBuffer    int
	origin         string
	publishTimeout time.Duration
}

func defaultOptions() *options {
	return &options{
		clock:          SystemClock(),
		duration:       DefaultDuration,
		cooldown:       DefaultCooldown,
		logger:         slog.New(slog.DiscardHandler),
		eventBuffer:    16,
		publishTimeout: DefaultPublishTimeout,
	}
}

// WithClock sets the clock used for timestamps and countdowns.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithDuration sets how long non-persistent notifications stay visible.
func WithDuration(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.duration = d
		}
	}
}

// WithCooldown sets the duplicate suppression window.
func WithCooldown(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.cooldown = d
		}
	}
}

// WithLogger sets the logger. Queue logs lifecycle events at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithBroadcaster publishes queue events to b instead of an internal
// memory broadcaster. The caller keeps ownership of b and must close it.
func WithBroadcaster(b broadcast.Broadcaster[Event]) Option {
	return func(o *options) {
		if b != nil {
			o.events = b
		}
	}
}

// WithEventBuffer sets the per-subscriber buffer of the internal broadcaster.
func WithEventBuffer(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.eventBuffer = n
		}
	}
}

// WithOrigin sets the id stamped on published events. Queues sharing a
// broadcaster need distinct origins; by default a random UUID is used.
func WithOrigin(id string) Option {
	return func(o *options) {
		if id != "" {
			o.origin = id
		}
	}
}

// WithPublishTimeout bounds each Broadcast call.
func WithPublishTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.publishTimeout = d
		}
	}
}

// ShowOption configures a single Show call.
type ShowOption func(*showOptions)

type showOptions struct {
	persistent bool
}

// Persistent keeps the notification visible until it is removed explicitly.
func Persistent() ShowOption {
	return func(o *showOptions) { o.persistent = true }
}

// PersistentIf is Persistent when v is true.
func PersistentIf(v bool) ShowOption {
	return func(o *showOptions) { o.persistent = v }
}
