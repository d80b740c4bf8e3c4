package validation

import "fmt"

// Contribution is what a resolver adds to an engine's effective rules and messages.
type Contribution struct {
	Rules    RuleSet
	Messages MessageSet
}

// Empty reports whether the contribution adds nothing.
func (c Contribution) Empty() bool {
	return c.Rules.Len() == 0 && c.Messages.Len() == 0
}

// Resolver inspects a field and may contribute rules and messages.
// Resolvers must not depend on each other's side effects.
type Resolver interface {
	Resolve(f Field) (Contribution, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(f Field) (Contribution, error)

// Resolve calls fn(f).
func (fn ResolverFunc) Resolve(f Field) (Contribution, error) { return fn(f) }

type namedResolver struct {
	name     string
	resolver Resolver
}

// resolveAll runs every resolver against every field. The first contribution of a
// name wins; later resolvers never overwrite it.
func resolveAll(fields []Field, resolvers []namedResolver) (Contribution, error) {
	var out Contribution
	for _, f := range fields {
		for _, r := range resolvers {
			c, err := r.resolver.Resolve(f)
			if err != nil {
				return Contribution{}, fmt.Errorf("%w: %s: %w", ErrResolve, r.name, err)
			}
			if c.Empty() {
				continue
			}
			out.Rules.addMissing(c.Rules)
			out.Messages.addMissing(c.Messages)
		}
	}
	return out, nil
}
