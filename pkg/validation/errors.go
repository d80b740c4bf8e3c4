package validation

import "errors"

// Errors returned by engines and parsers. Invalid input is never reported
// through these: it is the boolean result of Validate plus Errors().
var (
	// ErrNilTarget is returned by New when no target is supplied.
	ErrNilTarget = errors.New("validation target is nil")

	// ErrResolve wraps a failure of a registered rule resolver.
	ErrResolve = errors.New("rule resolver failed")

	// ErrLocate wraps a failure of a message locator.
	ErrLocate = errors.New("message locator failed")

	// ErrDecorate wraps a failure while decorating a message node.
	ErrDecorate = errors.New("message decoration failed")

	// ErrTemplate wraps a failure rendering the error template.
	ErrTemplate = errors.New("error template failed")

	// ErrInvalidPattern is logged when a field's pattern does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrParseNumber is returned when text is not a number in the configured format.
	ErrParseNumber = errors.New("invalid number")

	// ErrParseDate is returned when text matches none of the configured date layouts.
	ErrParseDate = errors.New("invalid date")

	// ErrUnknownLocale is returned for malformed locale names.
	ErrUnknownLocale = errors.New("unknown locale")
)
