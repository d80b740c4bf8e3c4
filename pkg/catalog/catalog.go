package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formguard/pkg/validation"
)

// Catalog holds validation messages per language. Message order inside a
// language follows the file.
type Catalog struct {
	langs    []string
	tags     []language.Tag
	messages map[string]validation.MessageSet
	matcher  language.Matcher
}

// Parse reads a YAML catalog of the form
//
//	en:
//	  required: "{0} is required"
//	de:
//	  required: "{0} ist erforderlich"
//
// Top-level keys must be BCP 47 language tags; values are message templates.
func Parse(ctx context.Context, data []byte) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrCatalogParse, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, ErrEmptyCatalog
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected a mapping of languages at line %d", ErrCatalogParse, root.Line)
	}

	c := &Catalog{messages: make(map[string]validation.MessageSet)}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		tag, err := language.Parse(key.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid language %q at line %d", ErrCatalogParse, key.Value, key.Line)
		}
		if val.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: language %q: expected a mapping of rules at line %d", ErrCatalogParse, key.Value, val.Line)
		}
		var set validation.MessageSet
		for j := 0; j+1 < len(val.Content); j += 2 {
			rule, msg := val.Content[j], val.Content[j+1]
			if msg.Kind != yaml.ScalarNode || rule.Value == "" {
				return nil, fmt.Errorf("%w: language %q: rule %q must map to a string at line %d", ErrCatalogParse, key.Value, rule.Value, msg.Line)
			}
			set.Set(rule.Value, validation.Literal(msg.Value))
		}
		if _, dup := c.messages[key.Value]; !dup {
			c.langs = append(c.langs, key.Value)
			c.tags = append(c.tags, tag)
		}
		c.messages[key.Value] = set
	}
	if len(c.langs) == 0 {
		return nil, ErrEmptyCatalog
	}
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

// Load reads and parses a catalog file.
func Load(ctx context.Context, path string) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	return Parse(ctx, data)
}

// Languages returns the catalog languages in file order.
func (c *Catalog) Languages() []string {
	return append([]string(nil), c.langs...)
}

// Messages returns the messages of lang. An exact key wins; otherwise the
// closest catalog language is used, so "de-AT" falls back to "de".
func (c *Catalog) Messages(lang string) (validation.MessageSet, error) {
	if set, ok := c.messages[lang]; ok {
		return set, nil
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return validation.MessageSet{}, fmt.Errorf("%w: %q", ErrLanguageNotFound, lang)
	}
	_, idx, conf := c.matcher.Match(tag)
	if conf == language.No {
		return validation.MessageSet{}, fmt.Errorf("%w: %q", ErrLanguageNotFound, lang)
	}
	return c.messages[c.langs[idx]], nil
}

// Config builds a validation config whose external messages come from lang.
// opts are applied first, so catalog messages override messages set there.
func (c *Catalog) Config(lang string, opts ...validation.ConfigOption) (*validation.Config, error) {
	set, err := c.Messages(lang)
	if err != nil {
		return nil, err
	}
	all := append(append([]validation.ConfigOption(nil), opts...), validation.WithExternalMessages(set))
	return validation.NewConfig(all...), nil
}
