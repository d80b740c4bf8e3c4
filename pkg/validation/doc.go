// Package validation validates data-entry fields against declarative
// constraints and keeps one human-readable message per invalid field.
//
// The engine never sees a concrete UI tree. Hosts (an HTML document, a
// terminal form, a server-side form object) implement Field and Target, and
// optionally Markable and DecorationHost when they can show an error
// indicator next to a field. See pkg/dom for the HTML host.
//
// # Registries
//
// Rules and messages are merged per name at construction, lowest precedence
// first: built-in, Config (external), resolver contributions, engine options
// (custom). Overriding a name replaces that name only and keeps its position
// in the evaluation order. Config is immutable; applications that want shared
// defaults build one Config and pass it to every engine.
//
// # Evaluation
//
// Each eligible field is checked in a fixed order
//
//	required → pattern → number → date → min → max → step → email → url → others
//
// and evaluation stops at the first failing rule, so a field carries at most
// one message. Messages are taken from the field's rule-specific annotation,
// its validation message, its title, and finally the registry, with {0}
// replaced by the field name and {1} by the rule's bound.
//
// # Usage
//
//	cfg := validation.NewConfig(
//	    validation.WithParser(validation.NewLocaleParser(",", ".")),
//	    validation.WithExternalMessage("required", validation.Literal("Please fill in {0}")),
//	)
//	engine, err := validation.New(form, cfg,
//	    validation.WithRule("even", isEven),
//	    validation.WithMessage("even", validation.Literal("{0} must be even")),
//	)
//	ok, err := engine.Validate(ctx)
//	for _, msg := range engine.Errors() {
//	    fmt.Println(msg)
//	}
//
// # Error Handling
//
// Invalid input is not an error. Validate returns a non-nil error only when a
// locator or the error template fails, wrapped with ErrLocate, ErrDecorate or
// ErrTemplate. Panics raised by custom rules or message functions propagate to
// the caller.
package validation
