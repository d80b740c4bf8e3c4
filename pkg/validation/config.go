package validation

// Config is the shared, immutable registry consumed by engines at construction.
// Build one per application (or per locale) and pass it to every engine explicitly.
type Config struct {
	rules     RuleSet
	messages  MessageSet
	locators  []namedLocator
	resolvers []namedResolver
	parser    Parser
}

// ConfigOption configures a Config.
type ConfigOption func(*Config)

// NewConfig builds a Config. Rules and messages given here form the external layer:
// they override built-ins per name and are overridden by engine-level options.
func NewConfig(opts ...ConfigOption) *Config {
	c := &Config{parser: DefaultParser()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithExternalRule registers a rule for every engine built from the config.
func WithExternalRule(name string, r Rule) ConfigOption {
	return func(c *Config) {
		if name != "" && r != nil {
			c.rules.Set(name, r)
		}
	}
}

// WithExternalMessage registers a message for every engine built from the config.
func WithExternalMessage(name string, m Message) ConfigOption {
	return func(c *Config) {
		if name != "" && !m.IsZero() {
			c.messages.Set(name, m)
		}
	}
}

// WithExternalMessages registers a whole message set, typically loaded from a catalog.
func WithExternalMessages(set MessageSet) ConfigOption {
	return func(c *Config) {
		c.messages = MergeMessages(c.messages, set)
	}
}

// WithLocator registers a message locator. Locators are consulted in
// registration order before the default locator. Re-registering a name replaces it.
func WithLocator(name string, l Locator) ConfigOption {
	return func(c *Config) {
		if l == nil {
			return
		}
		for i := range c.locators {
			if c.locators[i].name == name {
				c.locators[i].locator = l
				return
			}
		}
		c.locators = append(c.locators, namedLocator{name: name, locator: l})
	}
}

// WithResolver registers a rule resolver. Re-registering a name replaces it.
func WithResolver(name string, r Resolver) ConfigOption {
	return func(c *Config) {
		if r == nil {
			return
		}
		for i := range c.resolvers {
			if c.resolvers[i].name == name {
				c.resolvers[i].resolver = r
				return
			}
		}
		c.resolvers = append(c.resolvers, namedResolver{name: name, resolver: r})
	}
}

// WithParser sets the typed value parser used by built-in rules.
func WithParser(p Parser) ConfigOption {
	return func(c *Config) {
		if p != nil {
			c.parser = p
		}
	}
}

// Parser returns the configured typed value parser.
func (c *Config) Parser() Parser { return c.parser }

// LocatorNames returns registered locator names in consultation order.
func (c *Config) LocatorNames() []string {
	names := make([]string, 0, len(c.locators))
	for _, l := range c.locators {
		names = append(names, l.name)
	}
	return names
}

// ResolverNames returns registered resolver names in invocation order.
func (c *Config) ResolverNames() []string {
	names := make([]string, 0, len(c.resolvers))
	for _, r := range c.resolvers {
		names = append(names, r.name)
	}
	return names
}
