package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formguard/pkg/catalog"
	"github.com/dmitrymomot/formguard/pkg/config"
	"github.com/dmitrymomot/formguard/pkg/dom"
	"github.com/dmitrymomot/formguard/pkg/formhttp"
	"github.com/dmitrymomot/formguard/pkg/httpserver"
	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/validation"
)

var errInvalidForm = errors.New("form is invalid")

// appConfig is everything the commands read from the environment.
type appConfig struct {
	Log        logger.Config
	Validation validation.Settings
	HTTP       httpserver.Config
}

type globalFlags struct {
	envFiles []string
	locale   string
	lang     string
	messages string
}

func rootCmd() *cobra.Command {
	var g globalFlags

	cmd := &cobra.Command{
		Use:   "formguard",
		Short: "Validate HTML forms",
		Long: `formguard validates HTML form controls against their declarative
constraints (required, pattern, type, min, max, step) and reports one
message per invalid field.

Settings come from the environment and optional .env files; flags win.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringSliceVar(&g.envFiles, "env-file", nil, "dotenv files to load")
	cmd.PersistentFlags().StringVar(&g.locale, "locale", "", "locale for number and date parsing (overrides VALIDATION_LOCALE)")
	cmd.PersistentFlags().StringVar(&g.messages, "messages", "", "YAML message catalog (overrides VALIDATION_MESSAGES_FILE)")
	cmd.PersistentFlags().StringVar(&g.lang, "lang", "", "catalog language (overrides VALIDATION_MESSAGES_LANG)")

	cmd.AddCommand(checkCmd(&g), serveCmd(&g), versionCmd())
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "formguard version %s (build: %s)\n", Version, BuildTime)
		},
	}
}

// load reads the environment and applies flag overrides.
func (g *globalFlags) load() (appConfig, error) {
	app, err := config.Parse[appConfig](config.WithEnvFile(g.envFiles...))
	if err != nil {
		return appConfig{}, err
	}
	if g.locale != "" {
		app.Validation.Locale = g.locale
	}
	if g.messages != "" {
		app.Validation.MessagesFile = g.messages
	}
	if g.lang != "" {
		app.Validation.MessagesLang = g.lang
	}
	return app, nil
}

func newLogger(cfg logger.Config, w io.Writer) *slog.Logger {
	return logger.NewFromConfig(cfg,
		logger.WithOutput(w),
		logger.WithContextExtractors(formhttp.RequestIDExtractor),
	)
}

// staticConfig builds the validation config once, from the catalog when one
// is configured.
func staticConfig(ctx context.Context, s validation.Settings) (*validation.Config, error) {
	p, err := s.Parser()
	if err != nil {
		return nil, err
	}
	if s.MessagesFile == "" {
		return validation.NewConfig(validation.WithParser(p)), nil
	}
	c, err := catalog.Load(ctx, s.MessagesFile)
	if err != nil {
		return nil, err
	}
	return c.Config(s.MessagesLang, validation.WithParser(p))
}

func readMarkup(cmd *cobra.Command, path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

// pickTarget returns the named form, the first form, or the whole body.
func pickTarget(doc *dom.Document, name string) (*dom.Element, error) {
	if name != "" {
		return doc.Form(name)
	}
	if forms := doc.Forms(); len(forms) > 0 {
		return forms[0], nil
	}
	return doc.Body(), nil
}
