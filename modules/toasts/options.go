package toasts

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/toastkit/pkg/catalog"
	"github.com/dmitrymomot/toastkit/pkg/toast"
)

const (
	defaultBasePath = "/toasts"
	maxBodyBytes    = 64 << 10
)

// Announcer publishes a toast to every connected queue. *toast.Relay implements it.
type Announcer interface {
	Announce(ctx context.Context, message string, category toast.Category, opts ...toast.ShowOption) error
}

type config struct {
	catalog  *catalog.Catalog
	relay    Announcer
	logger   *slog.Logger
	basePath string
}

// Option configures the toasts module.
type Option func(*config)

func defaultConfig() *config {
	return &config{
		logger:   slog.New(slog.DiscardHandler),
		basePath: defaultBasePath,
	}
}

// WithCatalog enables keyed toasts in POST requests.
func WithCatalog(c *catalog.Catalog) Option {
	return func(cfg *config) { cfg.catalog = c }
}

// WithRelay enables "broadcast": true in POST requests.
func WithRelay(a Announcer) Option {
	return func(cfg *config) { cfg.relay = a }
}

// WithLogger sets the module logger.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithBasePath sets the path the router is mounted at. Rendered toasts use
// it to address the hover and dismiss endpoints. Default "/toasts".
func WithBasePath(p string) Option {
	return func(cfg *config) {
		cfg.basePath = "/" + strings.Trim(p, "/")
	}
}
