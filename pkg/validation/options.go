package validation

import "log/slog"

// Event is delivered to validate handlers once per Validate call.
type Event struct {
	Valid  bool
	Engine *Engine
}

// Option configures an Engine. Rules and messages given here form the custom layer
// and win over everything registered in the Config.
type Option func(*options)

type options struct {
	rules          RuleSet
	messages       MessageSet
	template       ErrorTemplate
	validateOnBlur bool
	handlers       []func(Event)
	logger         *slog.Logger
}

func defaultOptions() *options {
	return &options{validateOnBlur: true}
}

// WithRule registers an instance-level rule.
func WithRule(name string, r Rule) Option {
	return func(o *options) {
		if name != "" && r != nil {
			o.rules.Set(name, r)
		}
	}
}

// WithMessage registers an instance-level message.
func WithMessage(name string, m Message) Option {
	return func(o *options) {
		if name != "" && !m.IsZero() {
			o.messages.Set(name, m)
		}
	}
}

// WithErrorTemplate sets the markup used for new decoration nodes.
func WithErrorTemplate(t ErrorTemplate) Option {
	return func(o *options) {
		if t != nil {
			o.template = t
		}
	}
}

// WithValidateOnBlur is read by event binders; the engine itself ignores it.
func WithValidateOnBlur(enabled bool) Option {
	return func(o *options) { o.validateOnBlur = enabled }
}

// WithValidateHandler registers a callback fired after every Validate call.
func WithValidateHandler(h func(Event)) Option {
	return func(o *options) {
		if h != nil {
			o.handlers = append(o.handlers, h)
		}
	}
}

// WithLogger sets the engine logger. Nil keeps the discarding default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
