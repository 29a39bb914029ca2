package toast

import "time"

// Config holds queue settings loadable from the environment.
type Config struct {
	Duration    time.Duration `env:"TOAST_DURATION" envDefault:"3s"`     // Duration is how long a non-persistent notification stays visible.
	Cooldown    time.Duration `env:"TOAST_COOLDOWN" envDefault:"3s"`     // Cooldown is the window in which an identical message is suppressed.
	EventBuffer int           `env:"TOAST_EVENT_BUFFER" envDefault:"16"` // EventBuffer is the per-subscriber event buffer size.
}

// NewFromConfig creates a Queue from cfg. Zero values keep the defaults;
// opts are applied after the config values.
func NewFromConfig(cfg Config, opts ...Option) *Queue {
	configOpts := make([]Option, 0, 3+len(opts))
	if cfg.Duration > 0 {
		configOpts = append(configOpts, WithDuration(cfg.Duration))
	}
	if cfg.Cooldown > 0 {
		configOpts = append(configOpts, WithCooldown(cfg.Cooldown))
	}
	if cfg.EventBuffer > 0 {
		configOpts = append(configOpts, WithEventBuffer(cfg.EventBuffer))
	}
	configOpts = append(configOpts, opts...)

	return New(configOpts...)
}
