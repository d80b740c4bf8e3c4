package logger

import "log/slog"

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err under the key "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Field records a field identity under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Rule records a rule name under the key "rule".
func Rule(name string) slog.Attr {
	return slog.String("rule", name)
}

// Valid records the outcome of a validation pass.
func Valid(ok bool) slog.Attr {
	return slog.Bool("valid", ok)
}

// Fields records how many fields a pass evaluated.
func Fields(n int) slog.Attr {
	return slog.Int("fields", n)
}

// Invalid records how many fields failed.
func Invalid(n int) slog.Attr {
	return slog.Int("invalid", n)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Path records a filesystem path under the key "path".
func Path(p string) slog.Attr {
	return slog.String("path", p)
}
