package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// Option configures a single Load call.
type Option func(*loadOptions)

type loadOptions struct {
	files   []string
	prefix  string
	environ map[string]string
}

// WithEnvFiles loads the given .env files before parsing. Unlike the
// default .env, which is optional, each of these files must exist.
// Variables already present in the process environment win.
func WithEnvFiles(files ...string) Option {
	return func(o *loadOptions) {
		o.files = append(o.files, files...)
	}
}

// WithPrefix prepends prefix to every env tag, so `env:"DURATION"` reads
// TOAST_DURATION with WithPrefix("TOAST_").
func WithPrefix(prefix string) Option {
	return func(o *loadOptions) { o.prefix = prefix }
}

// WithEnvironment parses from m instead of the process environment.
// Env files are not read in this mode.
func WithEnvironment(m map[string]string) Option {
	return func(o *loadOptions) { o.environ = m }
}

// Load parses environment variables into v according to its `env` tags.
//
// Example:
//
//	type Config struct {
//		Addr     string        `env:"HTTP_ADDR" envDefault:":8080"`
//		Duration time.Duration `env:"TOAST_DURATION" envDefault:"3s"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.environ == nil {
		defaultEnvLoaded.Do(func() {
			// the default .env file is optional
			_ = godotenv.Load()
		})
		if len(o.files) > 0 {
			if err := godotenv.Load(o.files...); err != nil {
				return errors.Join(ErrEnvFile, err)
			}
		}
	}

	if err := env.ParseWithOptions(v, env.Options{
		Prefix:      o.prefix,
		Environment: o.environ,
	}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad is like Load but panics on failure. Use it for configuration
// the process cannot start without.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
