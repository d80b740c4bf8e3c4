package validation

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Locator finds, and optionally annotates, the node displaying a field's message.
type Locator interface {
	// Locate returns an existing node for the field within target, or nil.
	Locate(target Target, id FieldID) (Decoration, error)
	// Decorate runs once on every node the engine materializes.
	Decorate(node Decoration, id FieldID) error
}

type namedLocator struct {
	name    string
	locator Locator
}

// ErrorTemplate produces the markup of a new decoration node.
type ErrorTemplate func(message string) templ.Component

// DefaultErrorTemplate renders the message in a span.
func DefaultErrorTemplate(message string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<span>"+templ.EscapeString(message)+"</span>")
		return err
	})
}

// TemplateFromString compiles an html/template source into an ErrorTemplate.
// The message is available as {{.Message}}; "${message}" is accepted as a shorthand.
func TemplateFromString(markup string) (ErrorTemplate, error) {
	src := strings.ReplaceAll(markup, "${message}", "{{.Message}}")
	t, err := template.New("error").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplate, err)
	}
	return func(message string) templ.Component {
		return templ.FromGoHTML(t, struct{ Message string }{message})
	}, nil
}

// DefaultLocator finds nodes through the target's DecorationHost capability.
type DefaultLocator struct{}

// Locate implements Locator.
func (DefaultLocator) Locate(target Target, id FieldID) (Decoration, error) {
	host, ok := target.(DecorationHost)
	if !ok {
		return nil, nil
	}
	return host.FindDecoration(id.Name, id.DecorationKey()), nil
}

// Decorate implements Locator.
func (DefaultLocator) Decorate(Decoration, FieldID) error { return nil }

type locatorPipeline struct {
	locators []namedLocator
	template ErrorTemplate
}

func newLocatorPipeline(custom []namedLocator, tmpl ErrorTemplate) locatorPipeline {
	all := make([]namedLocator, 0, len(custom)+1)
	all = append(all, custom...)
	all = append(all, namedLocator{name: "default", locator: DefaultLocator{}})
	if tmpl == nil {
		tmpl = DefaultErrorTemplate
	}
	return locatorPipeline{locators: all, template: tmpl}
}

// locate returns the node for f, materializing one when no locator finds it.
// A nil node with a nil error means the target cannot display decorations.
func (p locatorPipeline) locate(ctx context.Context, target Target, f Field, id FieldID, message string) (Decoration, error) {
	for _, l := range p.locators {
		node, err := l.locator.Locate(target, id)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLocate, l.name, err)
		}
		if node != nil {
			return node, nil
		}
	}

	host, ok := target.(DecorationHost)
	if !ok {
		return nil, nil
	}
	node, err := host.AttachDecoration(ctx, f, id.DecorationKey(), p.template, message)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplate, err)
	}
	for _, l := range p.locators {
		if err := l.locator.Decorate(node, id); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDecorate, l.name, err)
		}
	}
	return node, nil
}
