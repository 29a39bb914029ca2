package toasts

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/toastkit/pkg/broadcast"
	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/requestid"
	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// Queue is the part of *toast.Queue the module needs.
type Queue interface {
	Show(message string, category toast.Category, opts ...toast.ShowOption) (int, error)
	Remove(id int)
	NotifyHover(id int, hovered bool)
	Notifications() []toast.Notification
	Subscribe(ctx context.Context) broadcast.Subscriber[toast.Event]
	Subscribers() int
}

type module struct {
	queue Queue
	cfg   *config
	log   *slog.Logger
}

// Router returns the toasts HTTP module.
//
// Example:
//
//	q := toast.New(toast.WithLogger(log))
//	defer q.Close()
//
//	relay := toast.NewRelay(q, bus)
//	relay.Start(ctx)
//
//	r := chi.NewRouter()
//	r.Mount("/toasts", toasts.Router(q,
//		toasts.WithCatalog(catalog.Default()),
//		toasts.WithRelay(relay),
//	))
func Router(q Queue, opts ...Option) chi.Router {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	m := &module{
		queue: q,
		cfg:   cfg,
		log:   cfg.logger.With(logger.Component("toasts")),
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)

	r.Get("/", m.list)
	r.Post("/", m.create)
	r.Get("/stream", m.stream)
	r.Route("/{id}", func(r chi.Router) {
		r.Delete("/", m.remove)
		r.Post("/hover", m.hoverStart)
		r.Delete("/hover", m.hoverEnd)
	})

	return r
}
