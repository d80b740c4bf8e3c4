package validation

// Rule decides whether a field satisfies one constraint category.
type Rule func(f Field) bool

// RuleSet is an ordered name→rule map. Evaluation follows insertion order;
// replacing an existing name keeps its position.
type RuleSet struct {
	names []string
	rules map[string]Rule
}

// Set adds or replaces a rule.
func (s *RuleSet) Set(name string, r Rule) {
	if s.rules == nil {
		s.rules = make(map[string]Rule)
	}
	if _, ok := s.rules[name]; !ok {
		s.names = append(s.names, name)
	}
	s.rules[name] = r
}

// Get returns the rule registered under name.
func (s RuleSet) Get(name string) (Rule, bool) {
	r, ok := s.rules[name]
	return r, ok
}

// Has reports whether name is registered.
func (s RuleSet) Has(name string) bool {
	_, ok := s.rules[name]
	return ok
}

// Names returns rule names in evaluation order.
func (s RuleSet) Names() []string {
	return append([]string(nil), s.names...)
}

// Len returns the number of rules.
func (s RuleSet) Len() int { return len(s.names) }

func (s RuleSet) clone() RuleSet {
	var c RuleSet
	for _, n := range s.names {
		c.Set(n, s.rules[n])
	}
	return c
}

// MessageSet is an ordered name→message map.
type MessageSet struct {
	names    []string
	messages map[string]Message
}

// Set adds or replaces a message.
func (s *MessageSet) Set(name string, m Message) {
	if s.messages == nil {
		s.messages = make(map[string]Message)
	}
	if _, ok := s.messages[name]; !ok {
		s.names = append(s.names, name)
	}
	s.messages[name] = m
}

// Get returns the message registered under name.
func (s MessageSet) Get(name string) (Message, bool) {
	m, ok := s.messages[name]
	return m, ok
}

// Has reports whether name is registered.
func (s MessageSet) Has(name string) bool {
	_, ok := s.messages[name]
	return ok
}

// Names returns message names in registration order.
func (s MessageSet) Names() []string {
	return append([]string(nil), s.names...)
}

// Len returns the number of messages.
func (s MessageSet) Len() int { return len(s.names) }

func (s MessageSet) clone() MessageSet {
	var c MessageSet
	for _, n := range s.names {
		c.Set(n, s.messages[n])
	}
	return c
}

// MergeRules overlays layers onto base, lowest precedence first.
// Each layer replaces only the names it defines.
func MergeRules(base RuleSet, layers ...RuleSet) RuleSet {
	out := base.clone()
	for _, l := range layers {
		for _, n := range l.names {
			out.Set(n, l.rules[n])
		}
	}
	return out
}

// MergeMessages overlays layers onto base, lowest precedence first.
func MergeMessages(base MessageSet, layers ...MessageSet) MessageSet {
	out := base.clone()
	for _, l := range layers {
		for _, n := range l.names {
			out.Set(n, l.messages[n])
		}
	}
	return out
}

// addMissing copies entries of src whose names are not yet in dst.
func (s *RuleSet) addMissing(src RuleSet) {
	for _, n := range src.names {
		if !s.Has(n) {
			s.Set(n, src.rules[n])
		}
	}
}

func (s *MessageSet) addMissing(src MessageSet) {
	for _, n := range src.names {
		if !s.Has(n) {
			s.Set(n, src.messages[n])
		}
	}
}
