package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formguard/pkg/dom"
	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/validation"
)

func checkCmd(g *globalFlags) *cobra.Command {
	var (
		file   string
		form   string
		set    []string
		field  string
		render bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a form document",
		Long: `Validate the controls of an HTML document and print one line per
invalid field. The exit code is 1 when the form is invalid.`,
		Example: `  formguard check --file signup.html --set name=Bob --set email=bob@example.com
  cat form.html | formguard check --field email --set email=nope`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := g.load()
			if err != nil {
				return err
			}
			log := newLogger(app.Log, cmd.ErrOrStderr())

			values, err := parseAssignments(set)
			if err != nil {
				return err
			}
			markup, err := readMarkup(cmd, file)
			if err != nil {
				return err
			}
			doc, err := dom.Parse(markup)
			if err != nil {
				return err
			}
			target, err := pickTarget(doc, form)
			if err != nil {
				return err
			}
			target.ApplyValues(values)

			cfg, err := staticConfig(ctx, app.Validation)
			if err != nil {
				return err
			}
			opts, err := app.Validation.EngineOptions()
			if err != nil {
				return err
			}
			engine, err := validation.New(target, cfg, append(opts, validation.WithLogger(log))...)
			if err != nil {
				return err
			}
			binder, err := dom.Bind(engine, dom.WithBinderLogger(log))
			if err != nil {
				return err
			}

			var valid bool
			if field != "" {
				el, ferr := doc.FieldByName(field)
				if ferr != nil {
					return ferr
				}
				valid, err = engine.ValidateField(ctx, el)
			} else {
				valid, err = binder.Submit(ctx)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if render {
				if err := doc.Render(out); err != nil {
					return err
				}
				fmt.Fprintln(out)
			} else {
				for _, id := range engine.InvalidFields() {
					msg, _ := engine.ErrorFor(id)
					fmt.Fprintf(out, "%s: %s\n", id, msg)
				}
			}
			log.DebugContext(ctx, "check finished", logger.Valid(valid), logger.Invalid(len(engine.Errors())))
			if !valid {
				return errInvalidForm
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "HTML file to validate (stdin when empty or -)")
	cmd.Flags().StringVar(&form, "form", "", "form name or id (first form, else the whole body)")
	cmd.Flags().StringArrayVarP(&set, "set", "s", nil, "field value as name=value, repeatable")
	cmd.Flags().StringVar(&field, "field", "", "validate only the named field")
	cmd.Flags().BoolVar(&render, "render", false, "print the decorated document instead of messages")
	return cmd
}

// parseAssignments turns name=value pairs into form values.
func parseAssignments(pairs []string) (url.Values, error) {
	values := make(url.Values, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q: want name=value", p)
		}
		values.Add(name, value)
	}
	return values, nil
}
