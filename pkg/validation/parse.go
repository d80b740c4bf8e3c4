package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/language"
)

// Parser converts field text into typed values for min/max/step and type rules.
type Parser interface {
	ParseNumber(text string) (float64, error)
	ParseDate(text string) (time.Time, error)
}

// isoLayouts are accepted by every LocaleParser regardless of locale.
var isoLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// LocaleParser parses numbers with a decimal/group separator pair and dates with
// a list of layouts tried in order.
type LocaleParser struct {
	Decimal     string
	Group       string
	DateLayouts []string
}

// DefaultParser uses "." for decimals, "," for groups and month-first dates.
func DefaultParser() LocaleParser {
	return NewLocaleParser(".", ",", "1/2/2006", "01/02/2006")
}

// NewLocaleParser returns a parser for the given separators and extra date layouts.
func NewLocaleParser(decimal, group string, layouts ...string) LocaleParser {
	if decimal == "" {
		decimal = "."
	}
	if group == decimal {
		group = ""
	}
	return LocaleParser{
		Decimal:     decimal,
		Group:       group,
		DateLayouts: append(append([]string(nil), layouts...), isoLayouts...),
	}
}

// ParseNumber parses locale-formatted text.
func (p LocaleParser) ParseNumber(text string) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, ErrParseNumber
	}
	if p.Group != "" {
		s = strings.ReplaceAll(s, p.Group, "")
		if strings.TrimSpace(p.Group) == "" {
			s = strings.Map(func(r rune) rune {
				if unicode.IsSpace(r) {
					return -1
				}
				return r
			}, s)
		}
	}
	if p.Decimal != "." {
		if strings.Contains(s, ".") {
			return 0, fmt.Errorf("%w: %q", ErrParseNumber, text)
		}
		s = strings.ReplaceAll(s, p.Decimal, ".")
	}
	return parseFinite(s, text)
}

// ParseDate tries every configured layout in order.
func (p LocaleParser) ParseDate(text string) (time.Time, error) {
	s := strings.TrimSpace(text)
	for _, layout := range p.DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrParseDate, text)
}

// ParseBound parses a constraint bound. Bounds are authored in markup or code and
// always use the invariant "." decimal separator.
func ParseBound(text string) (float64, error) {
	return parseFinite(strings.TrimSpace(text), text)
}

func parseFinite(s, original string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrParseNumber, original)
	}
	return v, nil
}

type localeFormat struct {
	decimal string
	group   string
	layouts []string
}

var (
	localeTags = []language.Tag{
		language.English,
		language.German,
		language.French,
		language.Spanish,
		language.Italian,
		language.Dutch,
		language.Portuguese,
		language.Russian,
		language.Polish,
		language.Swedish,
		language.Japanese,
		language.Chinese,
	}
	localeFormats = []localeFormat{
		{".", ",", []string{"1/2/2006", "01/02/2006"}},
		{",", ".", []string{"2.1.2006", "02.01.2006"}},
		{",", " ", []string{"2/1/2006", "02/01/2006"}},
		{",", ".", []string{"2/1/2006", "02/01/2006"}},
		{",", ".", []string{"2/1/2006", "02/01/2006"}},
		{",", ".", []string{"2-1-2006", "02-01-2006"}},
		{",", ".", []string{"2/1/2006", "02/01/2006"}},
		{",", " ", []string{"2.1.2006", "02.01.2006"}},
		{",", " ", []string{"2.1.2006", "02.01.2006"}},
		{",", " ", []string{"2006-01-02"}},
		{".", ",", []string{"2006/1/2", "2006/01/02"}},
		{".", ",", []string{"2006/1/2", "2006/01/02"}},
	}
	localeMatcher = language.NewMatcher(localeTags)
)

// ParserForLocale returns the parser of the closest supported locale.
// Unsupported tags fall back to English conventions.
func ParserForLocale(tag language.Tag) LocaleParser {
	_, idx, conf := localeMatcher.Match(tag)
	if conf == language.No {
		idx = 0
	}
	f := localeFormats[idx]
	return NewLocaleParser(f.decimal, f.group, f.layouts...)
}

// ParserForLocaleName parses a BCP 47 name such as "de-AT" and returns its parser.
func ParserForLocaleName(name string) (LocaleParser, error) {
	tag, err := language.Parse(name)
	if err != nil {
		return LocaleParser{}, fmt.Errorf("%w: %q", ErrUnknownLocale, name)
	}
	return ParserForLocale(tag), nil
}
