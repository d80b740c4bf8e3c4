package catalog

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/validation"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher keeps a validation config in sync with a catalog file. Every
// successful reload publishes a new immutable *validation.Config; engines
// built before the reload keep the config they were built with.
type Watcher struct {
	path     string
	lang     string
	opts     []validation.ConfigOption
	debounce time.Duration
	log      *slog.Logger
	onReload func(*validation.Config)

	fsw     *fsnotify.Watcher
	current atomic.Pointer[validation.Config]
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithLogger sets the watcher logger.
func WithLogger(l *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// WithDebounce sets how long the watcher waits for more changes before reloading.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithConfigOptions sets options applied to every config the watcher builds.
func WithConfigOptions(opts ...validation.ConfigOption) WatcherOption {
	return func(w *Watcher) { w.opts = append(w.opts, opts...) }
}

// WithReloadHandler registers a callback invoked after each successful reload.
func WithReloadHandler(fn func(*validation.Config)) WatcherOption {
	return func(w *Watcher) { w.onReload = fn }
}

// NewWatcher loads the catalog at path and starts watching its directory.
// The initial load must succeed; later failures keep the last good config.
func NewWatcher(ctx context.Context, path, lang string, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToWatchFile, err)
	}
	w := &Watcher{
		path:     abs,
		lang:     lang,
		debounce: defaultDebounce,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.log = w.log.With(logger.Component("catalog"), logger.Path(abs))

	if err := w.Reload(ctx); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Join(ErrFailedToWatchFile, err)
	}
	// Editors often replace the file, so the directory is watched.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, errors.Join(ErrFailedToWatchFile, err)
	}
	w.fsw = fsw
	return w, nil
}

// Config returns the current config.
func (w *Watcher) Config() *validation.Config {
	return w.current.Load()
}

// Reload reads the catalog and publishes a new config.
func (w *Watcher) Reload(ctx context.Context) error {
	c, err := Load(ctx, w.path)
	if err != nil {
		return err
	}
	cfg, err := c.Config(w.lang, w.opts...)
	if err != nil {
		return err
	}
	w.current.Store(cfg)
	w.log.DebugContext(ctx, "message catalog loaded", slog.String("lang", w.lang))
	if w.onReload != nil {
		w.onReload(cfg)
	}
	return nil
}

// Run processes file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	pending := false
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending = true
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.WarnContext(ctx, "catalog watcher error", logger.Error(err))

		case <-ticker.C:
			if !pending {
				continue
			}
			pending = false
			if err := w.Reload(ctx); err != nil {
				w.log.WarnContext(ctx, "message catalog reload failed, keeping previous config", logger.Error(err))
			}
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
