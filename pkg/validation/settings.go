package validation

// Settings are the environment-driven knobs of a validation setup. Load them
// with pkg/config and turn them into options with ConfigOptions / EngineOptions.
type Settings struct {
	// Locale selects separators and date layouts when no explicit separators are set.
	Locale           string `env:"VALIDATION_LOCALE" envDefault:"en"`
	DecimalSeparator string `env:"VALIDATION_DECIMAL_SEPARATOR"`
	GroupSeparator   string `env:"VALIDATION_GROUP_SEPARATOR"`
	ValidateOnBlur   bool   `env:"VALIDATION_ON_BLUR" envDefault:"true"`
	ErrorTemplate    string `env:"VALIDATION_ERROR_TEMPLATE"`
	MessagesFile     string `env:"VALIDATION_MESSAGES_FILE"`
	MessagesLang     string `env:"VALIDATION_MESSAGES_LANG" envDefault:"en"`
}

// Parser returns the parser described by the settings. Explicit separators win
// over the locale; date layouts always come from the locale.
func (s Settings) Parser() (LocaleParser, error) {
	p := DefaultParser()
	if s.Locale != "" {
		var err error
		if p, err = ParserForLocaleName(s.Locale); err != nil {
			return LocaleParser{}, err
		}
	}
	if s.DecimalSeparator == "" && s.GroupSeparator == "" {
		return p, nil
	}
	decimal, group := p.Decimal, p.Group
	if s.DecimalSeparator != "" {
		decimal = s.DecimalSeparator
	}
	if s.GroupSeparator != "" {
		group = s.GroupSeparator
	}
	layouts := p.DateLayouts[:len(p.DateLayouts)-len(isoLayouts)]
	return NewLocaleParser(decimal, group, layouts...), nil
}

// EngineOptions returns the engine options described by the settings.
func (s Settings) EngineOptions() ([]Option, error) {
	opts := []Option{WithValidateOnBlur(s.ValidateOnBlur)}
	if s.ErrorTemplate != "" {
		t, err := TemplateFromString(s.ErrorTemplate)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithErrorTemplate(t))
	}
	return opts, nil
}
