package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/toastkit/modules/toasts"
	"github.com/dmitrymomot/toastkit/pkg/broadcast"
	"github.com/dmitrymomot/toastkit/pkg/catalog"
	"github.com/dmitrymomot/toastkit/pkg/config"
	"github.com/dmitrymomot/toastkit/pkg/environment"
	"github.com/dmitrymomot/toastkit/pkg/httpserver"
	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/redis"
	"github.com/dmitrymomot/toastkit/pkg/requestid"
	"github.com/dmitrymomot/toastkit/pkg/toast"
)

var version = "dev"

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

type Config struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"toastd"`
	CatalogPath string `env:"TOAST_CATALOG_PATH"`

	Log    logger.Config
	Toast  toast.Config
	Server httpserver.Config
	Redis  redis.Config
}

func main() {
	var cfg Config
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(environment.Parse(cfg.Env), cfg.ServiceName),
		logger.WithConfig(cfg.Log),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
		logger.WithAttr(slog.String("version", version)),
	)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("toastd stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	messages := catalog.Default()
	if cfg.CatalogPath != "" {
		custom, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return err
		}
		messages = messages.Merge(custom)
	}

	health := func(context.Context) error { return nil }
	var closers []func() error

	var bus broadcast.Broadcaster[toast.Announcement] = broadcast.NewMemoryBroadcaster[toast.Announcement](cfg.Toast.EventBuffer)
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		remote, err := broadcast.NewRedisBroadcaster[toast.Announcement](ctx, client, cfg.Redis.Channel, cfg.Toast.EventBuffer)
		if err != nil {
			_ = client.Close()
			return err
		}
		bus = remote
		health = redis.Healthcheck(client)
		closers = append(closers, client.Close)
		log.Info("relaying announcements through redis", slog.String("channel", cfg.Redis.Channel))
	}

	queue := toast.NewFromConfig(cfg.Toast, toast.WithLogger(log))
	relay := toast.NewRelay(queue, bus)
	relay.Start(context.Background())
	closers = append([]func() error{relay.Close, queue.Close, bus.Close}, closers...)

	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page(toasts.Container("/toasts", queue.Notifications())).Render(r.Context(), w); err != nil {
			log.ErrorContext(r.Context(), "failed to render page", logger.Error(err))
		}
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := health(r.Context()); err != nil {
			log.WarnContext(r.Context(), "healthcheck failed", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	r.Mount("/toasts", toasts.Router(queue,
		toasts.WithCatalog(messages),
		toasts.WithLogger(log),
		toasts.WithBasePath("/toasts"),
		toasts.WithRelay(relay),
	))

	srv := httpserver.NewFromConfig(cfg.Server,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("toastd listening",
				slog.String("addr", cfg.Server.Addr),
				slog.Int("catalog_size", messages.Len()),
				logger.Duration(cfg.Toast.Duration),
			)
		}),
		httpserver.WithStopHook(func(l *slog.Logger) {
			errs := make([]error, 0, len(closers))
			for _, c := range closers {
				if err := c(); err != nil {
					errs = append(errs, err)
				}
			}
			if len(errs) > 0 {
				l.Error("failed to release resources", logger.Errors(errs...))
			}
		}),
	)

	return srv.Run(ctx, r)
}

func page(body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!doctype html><html lang="en"><head><meta charset="utf-8"><title>toastd</title>`+
				`<script type="module" src="%s"></script></head><body>`, datastarScript,
		); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}
