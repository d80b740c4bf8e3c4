package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option configures how the environment is assembled before parsing.
type Option func(*options)

type options struct {
	files   []string
	prefix  string
	environ map[string]string
}

// WithEnvFile reads variables from dotenv files. Variables already present in
// the environment win over file values.
func WithEnvFile(paths ...string) Option {
	return func(o *options) {
		for _, p := range paths {
			if p != "" {
				o.files = append(o.files, p)
			}
		}
	}
}

// WithPrefix prepends prefix to every variable name looked up.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnvironment replaces the process environment as the variable source.
func WithEnvironment(environ map[string]string) Option {
	return func(o *options) { o.environ = maps.Clone(environ) }
}

// Parse builds a T from the environment without caching.
//
//	type Settings struct {
//		Locale string `env:"VALIDATION_LOCALE" envDefault:"en"`
//	}
//
//	s, err := config.Parse[Settings](config.WithEnvFile(".env"))
func Parse[T any](opts ...Option) (T, error) {
	var zero T
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	environ := o.environ
	if len(o.files) > 0 {
		if environ == nil {
			environ = processEnv()
		}
		fromFiles, err := godotenv.Read(o.files...)
		if err != nil {
			return zero, errors.Join(ErrReadingEnvFile, err)
		}
		maps.Copy(fromFiles, environ)
		environ = fromFiles
	}

	var v T
	if err := env.ParseWithOptions(&v, env.Options{
		Environment: environ,
		Prefix:      o.prefix,
	}); err != nil {
		return zero, errors.Join(ErrParsingConfig, err)
	}
	return v, nil
}

func processEnv() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out
}

// configCache stores one parsed value per configuration type.
type configCache struct {
	mu     sync.RWMutex
	values map[string]any
}

var globalCache = &configCache{values: make(map[string]any)}

// Load parses the environment into v once per type and serves later calls for
// the same type from the cache. Options only matter on the first call.
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}
	key := typeName[T]()

	globalCache.mu.RLock()
	cached, ok := globalCache.values[key]
	globalCache.mu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	globalCache.mu.Lock()
	defer globalCache.mu.Unlock()
	if cached, ok := globalCache.values[key]; ok {
		*v = cached.(T)
		return nil
	}
	parsed, err := Parse[T](opts...)
	if err != nil {
		return err
	}
	globalCache.values[key] = parsed
	*v = parsed
	return nil
}

// MustLoad works like Load but panics on failure.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Reset drops every cached configuration.
func Reset() {
	globalCache.mu.Lock()
	globalCache.values = make(map[string]any)
	globalCache.mu.Unlock()
}

func typeName[T any]() string {
	t := reflect.TypeFor[T]()
	return t.PkgPath() + "." + t.String()
}
