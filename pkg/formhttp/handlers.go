package formhttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"
	"golang.org/x/net/html"

	"github.com/dmitrymomot/formguard/pkg/dom"
	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/validation"
)

// Result is the JSON body of a validation response.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors []string          `json:"errors"`
	Fields map[string]string `json:"fields"`
}

// isDataStar reports whether r was issued by the datastar client.
func isDataStar(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		return true
	}
	return r.URL.Query().Has("datastar") || r.Header.Get("Datastar-Request") == "true"
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	_, form, err := s.load()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	instrument(form)
	templ.Handler(pageComponent(s.title, s.scriptURL, form)).ServeHTTP(w, r)
}

// instrument wires the datastar actions into the served form.
func instrument(form *dom.Element) {
	form.SetAttr("data-on:submit__prevent", "@post('/validate', {contentType: 'form'})")
	for _, f := range form.Fields() {
		el := f.(*dom.Element)
		if el.Name() == "" || !el.Eligible() {
			continue
		}
		path := strings.ReplaceAll(url.PathEscape(el.Name()), "'", "%27")
		el.SetAttr("data-on:blur", fmt.Sprintf("@post('/blur/%s', {contentType: 'form'})", path))
	}
}

func pageComponent(title, scriptURL string, form *dom.Element) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>%s</title>", templ.EscapeString(title)); err != nil {
			return err
		}
		if scriptURL != "" {
			if _, err := fmt.Fprintf(w, "<script type=\"module\" src=\"%s\"></script>", templ.EscapeString(scriptURL)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</head><body>"); err != nil {
			return err
		}
		if err := form.Render(w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

func renderNode(w io.Writer, d *dom.Decoration) error {
	return html.Render(w, d.Node())
}

func elementComponent(render func(io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return render(w)
	})
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	values, err := readValues(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_, form, err := s.load()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	form.ApplyValues(values)
	binder, err := s.bind(form)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	valid, err := binder.Submit(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	engine := binder.Engine()
	s.metrics.observe("submit", valid, engine.InvalidFields(), time.Since(start).Seconds())

	res := result(engine, valid)
	switch {
	case isDataStar(r):
		sse := datastar.NewSSE(w, r)
		if err := sse.PatchElementTempl(elementComponent(form.Render), datastar.WithSelector("#"+formID(form))); err != nil {
			s.log.ErrorContext(ctx, "failed to patch form", logger.Error(err))
			return
		}
		s.patchSignals(ctx, sse, map[string]any{"valid": res.Valid, "errors": res.Fields})
	case wantsJSON(r):
		s.writeJSON(w, r, status(valid), res)
	default:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status(valid))
		if err := form.Render(w); err != nil {
			s.log.ErrorContext(ctx, "failed to render form", logger.Error(err))
		}
	}
}

func (s *Server) blur(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	name := chi.URLParam(r, "field")

	values, err := readValues(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc, form, err := s.load()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	form.ApplyValues(values)
	binder, err := s.bind(form)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	el, err := doc.FieldByName(name)
	if err != nil {
		http.Error(w, fmt.Sprintf("%s: %s", ErrUnknownField, name), http.StatusNotFound)
		return
	}
	valid, err := binder.Blur(ctx, el)
	if errors.Is(err, dom.ErrForeignField) {
		http.Error(w, fmt.Sprintf("%s: %s", ErrUnknownField, name), http.StatusNotFound)
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	engine := binder.Engine()
	s.metrics.observe("blur", valid, engine.InvalidFields(), time.Since(start).Seconds())

	msg, _ := engine.ErrorFor(validation.Named(name))
	dec, _ := form.FindDecoration(name, validation.DecorationKey(name)).(*dom.Decoration)
	if valid && dec != nil {
		dec.Hide()
	}

	switch {
	case isDataStar(r):
		sse := datastar.NewSSE(w, r)
		var err error
		switch {
		case dec != nil:
			err = sse.PatchElementTempl(elementComponent(func(w io.Writer) error { return renderNode(w, dec) }),
				datastar.WithSelector("#"+dec.ID()))
		case valid:
			err = sse.PatchElements("",
				datastar.WithSelector("#"+validation.DecorationKey(name)),
				datastar.WithMode(datastar.ElementPatchModeRemove))
		}
		if err != nil {
			s.log.ErrorContext(ctx, "failed to patch message", logger.Error(err))
			return
		}
		s.patchSignals(ctx, sse, map[string]any{"errors": map[string]string{name: msg}})
	case wantsJSON(r):
		res := Result{Valid: valid, Errors: []string{}, Fields: map[string]string{}}
		if msg != "" {
			res.Errors = append(res.Errors, msg)
			res.Fields[name] = msg
		}
		s.writeJSON(w, r, status(valid), res)
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status(valid))
		_, _ = io.WriteString(w, msg)
	}
}

func (s *Server) patchSignals(ctx context.Context, sse *datastar.ServerSentEventGenerator, signals map[string]any) {
	b, err := json.Marshal(signals)
	if err == nil {
		err = sse.PatchSignals(b)
	}
	if err != nil {
		s.log.ErrorContext(ctx, "failed to patch signals", logger.Error(err))
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.ErrorContext(r.Context(), "failed to encode response", logger.Error(err))
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.log.ErrorContext(r.Context(), "validation request failed", logger.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func result(engine *validation.Engine, valid bool) Result {
	res := Result{Valid: valid, Errors: engine.Errors(), Fields: make(map[string]string)}
	if res.Errors == nil {
		res.Errors = []string{}
	}
	for _, id := range engine.InvalidFields() {
		msg, _ := engine.ErrorFor(id)
		res.Fields[id.String()] = msg
	}
	return res
}

func status(valid bool) int {
	if valid {
		return http.StatusOK
	}
	return http.StatusUnprocessableEntity
}
