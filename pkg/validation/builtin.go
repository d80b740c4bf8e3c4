package validation

import (
	"fmt"
	"log/slog"
	"math"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
)

// Built-in rule names, in evaluation order.
const (
	RuleRequired = "required"
	RulePattern  = "pattern"
	RuleNumber   = "number"
	RuleDate     = "date"
	RuleMin      = "min"
	RuleMax      = "max"
	RuleStep     = "step"
	RuleEmail    = "email"
	RuleURL      = "url"
)

// fallbackMessage is used for rules that have no registered message.
const fallbackMessage = "{0} is not valid"

// stepTolerance bounds the float error accepted when checking step multiples.
const stepTolerance = 1e-9

// BuiltinMessages returns the default message for every built-in rule.
func BuiltinMessages() MessageSet {
	var s MessageSet
	s.Set(RuleRequired, Literal("{0} is required"))
	s.Set(RulePattern, Literal("{0} is not valid"))
	s.Set(RuleNumber, Literal("{0} is not a valid number"))
	s.Set(RuleDate, Literal("{0} is not valid date"))
	s.Set(RuleMin, Literal("{0} should be greater than or equal to {1}"))
	s.Set(RuleMax, Literal("{0} should be smaller than or equal to {1}"))
	s.Set(RuleStep, Literal("{0} is not valid"))
	s.Set(RuleEmail, Literal("{0} is not valid email"))
	s.Set(RuleURL, Literal("{0} is not valid URL"))
	return s
}

// BuiltinRules returns the built-in rules bound to a parser.
func BuiltinRules(p Parser, log *slog.Logger) RuleSet {
	if p == nil {
		p = DefaultParser()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	b := builtins{parser: p, log: log, patterns: make(map[string]*regexp.Regexp)}

	var s RuleSet
	s.Set(RuleRequired, b.required)
	s.Set(RulePattern, b.pattern)
	s.Set(RuleNumber, b.number)
	s.Set(RuleDate, b.date)
	s.Set(RuleMin, b.min)
	s.Set(RuleMax, b.max)
	s.Set(RuleStep, b.step)
	s.Set(RuleEmail, b.email)
	s.Set(RuleURL, b.url)
	return s
}

type builtins struct {
	parser   Parser
	log      *slog.Logger
	patterns map[string]*regexp.Regexp
}

func isNumericType(t string) bool { return t == "number" || t == "range" }

func isDateType(t string) bool { return t == "date" || t == "datetime-local" }

func (b builtins) required(f Field) bool {
	if !f.Constraints().Required {
		return true
	}
	return !f.Value().Empty()
}

func (b builtins) pattern(f Field) bool {
	c := f.Constraints()
	v := f.Value().Text
	if c.Pattern == "" || v == "" {
		return true
	}
	re, ok := b.patterns[c.Pattern]
	if !ok {
		var err error
		// Patterns match the whole value.
		re, err = regexp.Compile("^(?:" + c.Pattern + ")$")
		if err != nil {
			b.log.Warn("field pattern does not compile",
				slog.String("field", f.Name()),
				slog.String("pattern", c.Pattern),
				slog.Any("error", fmt.Errorf("%w: %w", ErrInvalidPattern, err)),
			)
		}
		b.patterns[c.Pattern] = re
	}
	if re == nil {
		return false
	}
	return re.MatchString(v)
}

func (b builtins) number(f Field) bool {
	v := f.Value().Text
	if !isNumericType(f.Constraints().EffectiveType()) || v == "" {
		return true
	}
	_, err := b.parser.ParseNumber(v)
	return err == nil
}

func (b builtins) date(f Field) bool {
	v := f.Value().Text
	if !isDateType(f.Constraints().EffectiveType()) || v == "" {
		return true
	}
	_, err := b.parser.ParseDate(v)
	return err == nil
}

// compare returns sign(value - bound) for typed fields. ok is false when the rule
// does not apply: untyped field, empty value, absent bound, or unparsable input.
func (b builtins) compare(f Field, bound string) (sign int, ok bool) {
	v := f.Value().Text
	if v == "" || bound == "" {
		return 0, false
	}
	switch t := f.Constraints().EffectiveType(); {
	case isNumericType(t):
		val, err := b.parser.ParseNumber(v)
		if err != nil {
			return 0, false
		}
		lim, err := ParseBound(bound)
		if err != nil {
			return 0, false
		}
		switch {
		case val < lim:
			return -1, true
		case val > lim:
			return 1, true
		}
		return 0, true
	case isDateType(t):
		val, err := b.parser.ParseDate(v)
		if err != nil {
			return 0, false
		}
		lim, err := b.parser.ParseDate(bound)
		if err != nil {
			return 0, false
		}
		return val.Compare(lim), true
	}
	return 0, false
}

func (b builtins) min(f Field) bool {
	sign, ok := b.compare(f, f.Constraints().Min)
	return !ok || sign >= 0
}

func (b builtins) max(f Field) bool {
	sign, ok := b.compare(f, f.Constraints().Max)
	return !ok || sign <= 0
}

func (b builtins) step(f Field) bool {
	c := f.Constraints()
	v := f.Value().Text
	if !isNumericType(c.EffectiveType()) || c.Step == "" || v == "" {
		return true
	}
	step, err := ParseBound(c.Step)
	if err != nil || step <= 0 {
		return true
	}
	val, err := b.parser.ParseNumber(v)
	if err != nil {
		return true
	}
	base := 0.0
	if c.Min != "" {
		if m, err := ParseBound(c.Min); err == nil {
			base = m
		}
	}
	q := (val - base) / step
	return math.Abs(q-math.Round(q)) <= stepTolerance*math.Max(1, math.Abs(q))
}

func (b builtins) email(f Field) bool {
	v := f.Value().Text
	if f.Constraints().EffectiveType() != RuleEmail || v == "" {
		return true
	}
	return isEmail(v)
}

func (b builtins) url(f Field) bool {
	v := f.Value().Text
	if f.Constraints().EffectiveType() != RuleURL || v == "" {
		return true
	}
	return isURL(v)
}

func isEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}
	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return false
	}
	// Domain must contain at least one dot and cannot start/end with dot
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

func isURL(value string) bool {
	u, err := url.ParseRequestURI(value)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
