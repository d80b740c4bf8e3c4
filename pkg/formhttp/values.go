package formhttp

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

// readValues collects submitted values from a form body, the query string or
// datastar signals, whichever the request carries.
func readValues(r *http.Request) (url.Values, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data") {
		if strings.HasPrefix(ct, "multipart/form-data") {
			if err := r.ParseMultipartForm(32 << 20); err != nil {
				return nil, err
			}
		} else if err := r.ParseForm(); err != nil {
			return nil, err
		}
		return r.PostForm, nil
	}
	if !isDataStar(r) {
		return r.URL.Query(), nil
	}
	signals := make(map[string]any)
	if err := datastar.ReadSignals(r, &signals); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSignal, err)
	}
	return signalValues(signals), nil
}

// signalValues flattens datastar signals into form values. Arrays become
// repeated values, booleans "on" or nothing.
func signalValues(signals map[string]any) url.Values {
	out := make(url.Values, len(signals))
	for name, v := range signals {
		switch tv := v.(type) {
		case []any:
			for _, item := range tv {
				out.Add(name, scalar(item))
			}
		case bool:
			if tv {
				out.Set(name, "on")
			}
		case nil:
		case map[string]any:
			// Nested signals are not form fields.
		default:
			out.Set(name, scalar(tv))
		}
	}
	return out
}

func scalar(v any) string {
	switch tv := v.(type) {
	case string:
		return tv
	case float64:
		return strconv.FormatFloat(tv, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(tv)
	case nil:
		return ""
	default:
		return fmt.Sprint(tv)
	}
}
