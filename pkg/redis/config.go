package redis

import "time"

// Config describes the Redis connection. An empty URL disables Redis.
type Config struct {
	URL            string        `env:"REDIS_URL"`                                       // URL in the form "redis://:password@localhost:6379/0".
	Channel        string        `env:"REDIS_CHANNEL" envDefault:"toasts:announcements"` // Channel carries announcements between processes.
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`             // RetryAttempts is the number of connection attempts.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`            // RetryInterval is the pause between attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"10s"`          // ConnectTimeout bounds all attempts together.
}

// Enabled reports whether a connection URL is configured.
func (c Config) Enabled() bool {
	return c.URL != ""
}
