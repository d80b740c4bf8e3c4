package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/formguard/pkg/catalog"
	"github.com/dmitrymomot/formguard/pkg/formhttp"
	"github.com/dmitrymomot/formguard/pkg/httpserver"
	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/validation"
)

func serveCmd(g *globalFlags) *cobra.Command {
	var (
		file  string
		form  string
		title string
		addr  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a form with live validation",
		Long: `Serve an HTML form over HTTP. Fields are validated on blur and the
whole form on submit; a message catalog given with --messages is reloaded
when the file changes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := g.load()
			if err != nil {
				return err
			}
			if addr != "" {
				app.HTTP.Addr = addr
			}
			log := newLogger(app.Log, cmd.ErrOrStderr())

			markup, err := readMarkup(cmd, file)
			if err != nil {
				return err
			}
			opts, err := app.Validation.EngineOptions()
			if err != nil {
				return err
			}

			eg, ctx := errgroup.WithContext(ctx)
			source, err := configSource(ctx, eg, app.Validation, log)
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			srv, err := formhttp.New(markup,
				formhttp.WithLogger(log),
				formhttp.WithFormName(form),
				formhttp.WithTitle(title),
				formhttp.WithConfigSource(source),
				formhttp.WithEngineOptions(opts...),
				formhttp.WithMetrics(reg),
			)
			if err != nil {
				return err
			}

			eg.Go(func() error {
				return httpserver.NewFromConfig(app.HTTP, httpserver.WithLogger(log)).Run(ctx, srv.Router())
			})
			if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "HTML file holding the form (stdin when empty or -)")
	cmd.Flags().StringVar(&form, "form", "", "form name or id (first form by default)")
	cmd.Flags().StringVar(&title, "title", "Form", "page title")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	return cmd
}

// configSource returns a static config, or a catalog watcher's live config
// when a message catalog is configured. The watcher runs in eg.
func configSource(ctx context.Context, eg *errgroup.Group, s validation.Settings, log *slog.Logger) (func() *validation.Config, error) {
	if s.MessagesFile == "" {
		cfg, err := staticConfig(ctx, s)
		if err != nil {
			return nil, err
		}
		return func() *validation.Config { return cfg }, nil
	}
	p, err := s.Parser()
	if err != nil {
		return nil, err
	}
	w, err := catalog.NewWatcher(ctx, s.MessagesFile, s.MessagesLang,
		catalog.WithLogger(log),
		catalog.WithConfigOptions(validation.WithParser(p)),
	)
	if err != nil {
		return nil, err
	}
	eg.Go(func() error {
		defer w.Close()
		log.InfoContext(ctx, "watching message catalog", logger.Path(s.MessagesFile))
		return w.Run(ctx)
	})
	return w.Config, nil
}
