package dom

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/validation"
)

// Binder applies the interaction policy of a validated element: fields are
// revalidated on blur, checkboxes on click, and the whole target on submit.
type Binder struct {
	engine *validation.Engine
	root   *Element
	log    *slog.Logger
}

// BinderOption configures a Binder.
type BinderOption func(*Binder)

// WithBinderLogger sets the binder logger.
func WithBinderLogger(l *slog.Logger) BinderOption {
	return func(b *Binder) {
		if l != nil {
			b.log = l
		}
	}
}

// Bind attaches the interaction policy to the engine's target, which must be
// an Element. Binding a <form> sets novalidate so the browser's own bubbles
// stay out of the way.
func Bind(engine *validation.Engine, opts ...BinderOption) (*Binder, error) {
	root, ok := engine.Target().(*Element)
	if !ok {
		return nil, ErrNotBindable
	}
	b := &Binder{engine: engine, root: root, log: logger.Discard()}
	for _, opt := range opts {
		opt(b)
	}
	b.log = b.log.With(logger.Component("dom"))

	if root.IsForm() {
		setAttr(root.node, "novalidate", "novalidate")
	}
	return b, nil
}

// Engine returns the bound engine.
func (b *Binder) Engine() *validation.Engine { return b.engine }

// Blur handles focus leaving f. With blur validation disabled nothing is
// updated and the side-effect free validity of f is returned.
func (b *Binder) Blur(ctx context.Context, f *Element) (bool, error) {
	if err := b.owns(f); err != nil {
		return false, err
	}
	if !b.engine.ValidateOnBlur() {
		return b.engine.CheckValidity(f), nil
	}
	b.log.DebugContext(ctx, "blur", logger.Field(f.Name()))
	return b.engine.ValidateField(ctx, f)
}

// Click handles a click on f. Checkboxes toggle and are revalidated; other
// controls are left alone.
func (b *Binder) Click(ctx context.Context, f *Element) (bool, error) {
	if err := b.owns(f); err != nil {
		return false, err
	}
	if f.Type() != "checkbox" {
		return b.engine.CheckValidity(f), nil
	}
	f.SetChecked(!f.Checked())
	if !b.engine.ValidateOnBlur() {
		return b.engine.CheckValidity(f), nil
	}
	b.log.DebugContext(ctx, "checkbox click", logger.Field(f.Name()))
	return b.engine.ValidateField(ctx, f)
}

// Submit validates the whole target. Submission should proceed only when the
// result is true.
func (b *Binder) Submit(ctx context.Context) (bool, error) {
	valid, err := b.engine.Validate(ctx)
	if err != nil {
		return false, err
	}
	if !valid {
		b.log.DebugContext(ctx, "submit prevented", logger.Invalid(len(b.engine.Errors())))
	}
	return valid, nil
}

func (b *Binder) owns(f *Element) error {
	if f == nil || f.doc != b.root.doc || !contains(b.root.node, f.node) {
		return ErrForeignField
	}
	return nil
}
