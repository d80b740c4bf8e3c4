package formhttp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/formguard/pkg/dom"
	"github.com/dmitrymomot/formguard/pkg/httpserver"
	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/validation"
)

// FormID is assigned to the served form when the markup gives it no id.
const FormID = "formguard"

// DefaultScriptURL is the datastar client bundle referenced by the page.
const DefaultScriptURL = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// Server serves one HTML form and validates submissions against it. Every
// request parses its own copy of the markup, so handlers are safe for
// concurrent use.
type Server struct {
	markup     string
	formName   string
	title      string
	scriptURL  string
	source     func() *validation.Config
	engineOpts []validation.Option
	registry   *prometheus.Registry
	metrics    *Metrics
	log        *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithFormName selects the form by name or id. The first form is used otherwise.
func WithFormName(name string) Option {
	return func(s *Server) { s.formName = name }
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(s *Server) { s.title = title }
}

// WithScriptURL overrides the datastar bundle location. An empty URL omits
// the script tag.
func WithScriptURL(u string) Option {
	return func(s *Server) { s.scriptURL = u }
}

// WithConfigSource sets the function consulted for the validation config on
// every request, such as catalog.Watcher.Config.
func WithConfigSource(fn func() *validation.Config) Option {
	return func(s *Server) { s.source = fn }
}

// WithEngineOptions adds options to every engine the server builds.
func WithEngineOptions(opts ...validation.Option) Option {
	return func(s *Server) { s.engineOpts = append(s.engineOpts, opts...) }
}

// WithMetrics registers validation metrics in reg and exposes it on /metrics.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// New validates the markup once and returns a server for it.
func New(markup string, opts ...Option) (*Server, error) {
	s := &Server{
		markup:    markup,
		title:     "Form",
		scriptURL: DefaultScriptURL,
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("formhttp"))
	if s.registry != nil {
		s.metrics = NewMetrics(s.registry)
	}
	if _, _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Router returns the HTTP routes of the server.
//
//	GET  /              the form page
//	POST /validate      validate every field
//	POST /blur/{field}  validate one field
//	GET  /health        readiness probe
//	GET  /metrics       prometheus metrics, when enabled
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))

	r.Get("/", s.page)
	r.Post("/validate", s.validate)
	r.Post("/blur/{field}", s.blur)
	r.Get("/health", httpserver.HealthCheckHandler(s.log, s.ready))
	if s.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) ready(context.Context) error {
	if s.source != nil && s.source() == nil {
		return ErrNoConfig
	}
	return nil
}

// load parses a fresh copy of the markup and returns the served form.
func (s *Server) load() (*dom.Document, *dom.Element, error) {
	doc, err := dom.Parse(s.markup)
	if err != nil {
		return nil, nil, err
	}
	var form *dom.Element
	if s.formName != "" {
		if form, err = doc.Form(s.formName); err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrNoForm, err)
		}
	} else {
		forms := doc.Forms()
		if len(forms) == 0 {
			return nil, nil, ErrNoForm
		}
		form = forms[0]
	}
	if id, _ := form.Attr("id"); id == "" {
		form.SetAttr("id", FormID)
	}
	return doc, form, nil
}

// bind builds an engine and binder for form.
func (s *Server) bind(form *dom.Element) (*dom.Binder, error) {
	var cfg *validation.Config
	if s.source != nil {
		cfg = s.source()
	}
	opts := append([]validation.Option{validation.WithLogger(s.log)}, s.engineOpts...)
	engine, err := validation.New(form, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return dom.Bind(engine, dom.WithBinderLogger(s.log))
}

func formID(form *dom.Element) string {
	id, _ := form.Attr("id")
	return id
}
