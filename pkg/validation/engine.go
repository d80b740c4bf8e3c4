package validation

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/formguard/pkg/logger"
)

// Engine validates the fields of one target and manages their decorations.
// An Engine is not safe for concurrent use; callers serialize passes.
type Engine struct {
	target         Target
	rules          RuleSet
	messages       MessageSet
	locators       locatorPipeline
	validateOnBlur bool
	handlers       []func(Event)
	log            *slog.Logger

	store       *errorStore
	decorations map[FieldID]Decoration
	marked      map[FieldID]Markable
}

// New builds an engine bound to target. The effective rules and messages are
// merged once here: built-in, then cfg, then resolver contributions, then opts.
// A nil cfg behaves like NewConfig().
func New(target Target, cfg *Config, opts ...Option) (*Engine, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	if cfg == nil {
		cfg = NewConfig()
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	log := o.logger
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("validation"))

	contrib, err := resolveAll(eligible(target.Fields()), cfg.resolvers)
	if err != nil {
		return nil, err
	}

	return &Engine{
		target:         target,
		rules:          MergeRules(BuiltinRules(cfg.parser, log), cfg.rules, contrib.Rules, o.rules),
		messages:       MergeMessages(BuiltinMessages(), cfg.messages, contrib.Messages, o.messages),
		locators:       newLocatorPipeline(cfg.locators, o.template),
		validateOnBlur: o.validateOnBlur,
		handlers:       o.handlers,
		log:            log,
		store:          newErrorStore(),
		decorations:    make(map[FieldID]Decoration),
		marked:         make(map[FieldID]Markable),
	}, nil
}

// Target returns the bound target.
func (e *Engine) Target() Target { return e.target }

// Rules returns a copy of the effective rules in evaluation order.
func (e *Engine) Rules() RuleSet { return e.rules.clone() }

// Messages returns a copy of the effective messages.
func (e *Engine) Messages() MessageSet { return e.messages.clone() }

// ValidateOnBlur reports whether event binders should validate fields on blur.
func (e *Engine) ValidateOnBlur() bool { return e.validateOnBlur }

// Validate evaluates every eligible field, replaces the error store, updates
// decorations and fires the validate event. The error is non-nil only when a
// locator or template fails; invalid input is reported through the boolean.
func (e *Engine) Validate(ctx context.Context) (bool, error) {
	fields := e.target.Fields()
	next := newErrorStore()

	type entry struct {
		field Field
		id    FieldID
	}
	checked := make([]entry, 0, len(fields))
	for i, f := range fields {
		if !f.Eligible() {
			continue
		}
		id := identity(f, i)
		if rule, failed := e.failing(f); failed {
			next.set(id, e.message(f, rule))
			e.log.DebugContext(ctx, "rule failed", logger.Field(id.String()), logger.Rule(rule))
		}
		checked = append(checked, entry{field: f, id: id})
	}
	e.store = next

	seen := make(map[FieldID]bool, len(checked))
	for _, c := range checked {
		seen[c.id] = true
		if err := e.sync(ctx, c.field, c.id); err != nil {
			return false, err
		}
	}
	// Fields that left the target keep their nodes, hidden.
	for id, node := range e.decorations {
		if !seen[id] {
			node.Hide()
		}
	}
	for id, m := range e.marked {
		if !seen[id] {
			m.SetInvalid(false)
			delete(e.marked, id)
		}
	}

	valid := next.len() == 0
	e.log.DebugContext(ctx, "validation pass", logger.Group("pass",
		logger.Fields(len(checked)),
		logger.Invalid(next.len()),
		logger.Valid(valid),
	))
	for _, h := range e.handlers {
		h(Event{Valid: valid, Engine: e})
	}
	return valid, nil
}

// ValidateField validates one field and updates only its store entry and
// decoration. No validate event is fired. Ineligible fields are valid.
func (e *Engine) ValidateField(ctx context.Context, f Field) (bool, error) {
	if f == nil || !f.Eligible() {
		return true, nil
	}
	fields := e.target.Fields()
	id := e.identityOf(f, fields)

	valid := true
	if rule, failed := e.failing(f); failed {
		e.store.set(id, e.message(f, rule))
		e.log.DebugContext(ctx, "rule failed", logger.Field(id.String()), logger.Rule(rule))
		valid = false
	} else {
		e.store.remove(id)
	}
	ids := make([]FieldID, len(fields))
	for i, ff := range fields {
		ids[i] = identity(ff, i)
	}
	e.store.reorder(ids)

	if err := e.sync(ctx, f, id); err != nil {
		return false, err
	}
	e.log.DebugContext(ctx, "field validated", logger.Field(id.String()), logger.Valid(valid))
	return valid, nil
}

// CheckValidity evaluates the rules for f without touching the error store or
// any decoration. Nil and ineligible fields are valid.
func (e *Engine) CheckValidity(f Field) bool {
	if f == nil || !f.Eligible() {
		return true
	}
	_, failed := e.failing(f)
	return !failed
}

// Errors returns the current messages in field enumeration order.
func (e *Engine) Errors() []string {
	return e.store.list()
}

// InvalidFields returns the identities of invalid fields in enumeration order.
func (e *Engine) InvalidFields() []FieldID {
	return append([]FieldID(nil), e.store.order...)
}

// ErrorFor returns the current message of the field with the given identity.
func (e *Engine) ErrorFor(id FieldID) (string, bool) {
	return e.store.get(id)
}

// HideMessages hides every tracked decoration. Stored messages are kept.
func (e *Engine) HideMessages() {
	for _, node := range e.decorations {
		node.Hide()
	}
}

// failing returns the first rule f does not satisfy.
func (e *Engine) failing(f Field) (string, bool) {
	for _, name := range e.rules.names {
		if !e.rules.rules[name](f) {
			return name, true
		}
	}
	return "", false
}

// message resolves the text for a failing rule: rule-specific annotation,
// validation message, title, then the registry.
func (e *Engine) message(f Field, rule string) string {
	a := f.Annotations()
	bound := f.Constraints().Bound(rule)
	name := DisplayName(f)

	if t := a.RuleMessage(rule); t != "" {
		return Format(t, name, bound)
	}
	if a.ValidationMessage != "" {
		return Format(a.ValidationMessage, name, bound)
	}
	if a.Title != "" {
		return Format(a.Title, name, bound)
	}
	if m, ok := e.messages.Get(rule); ok {
		return m.Resolve(f, bound)
	}
	return Format(fallbackMessage, name, bound)
}

// sync brings the decoration and marker of one field in line with the store.
func (e *Engine) sync(ctx context.Context, f Field, id FieldID) error {
	msg, invalid := e.store.get(id)
	markable, _ := f.(Markable)

	if !invalid {
		if node, ok := e.decorations[id]; ok {
			node.Hide()
		}
		if markable != nil {
			markable.SetInvalid(false)
		}
		delete(e.marked, id)
		return nil
	}

	node, ok := e.decorations[id]
	if !ok {
		var err error
		node, err = e.locators.locate(ctx, e.target, f, id, msg)
		if err != nil {
			return err
		}
		if node != nil {
			e.decorations[id] = node
		}
	}
	if node != nil {
		node.SetMessage(msg)
		node.Show()
	}
	if markable != nil {
		markable.SetInvalid(true)
		e.marked[id] = markable
	}
	return nil
}

func (e *Engine) identityOf(f Field, fields []Field) FieldID {
	if name := f.Name(); name != "" {
		return Named(name)
	}
	for i, ff := range fields {
		if ff.Name() == "" && sameField(ff, f) {
			return identity(ff, i)
		}
	}
	return identity(f, -1)
}

func sameField(a, b Field) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

func eligible(fields []Field) []Field {
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		if f.Eligible() {
			out = append(out, f)
		}
	}
	return out
}
