// Package formhttp serves an HTML form over HTTP and validates submissions
// against it with the validation engine.
//
// Each request parses a fresh copy of the markup, applies the submitted
// values to its controls and validates them. Responses follow the client:
// datastar requests get server-sent events patching the form and the
// "valid"/"errors" signals, JSON clients get a Result, and plain form posts
// get the re-rendered form with status 422 when invalid.
//
// # Usage
//
//	srv, err := formhttp.New(markup,
//	    formhttp.WithLogger(log),
//	    formhttp.WithConfigSource(watcher.Config),
//	    formhttp.WithMetrics(prometheus.NewRegistry()),
//	)
//	if err != nil {
//	    return err
//	}
//	return httpserver.New().Run(ctx, srv.Router())
package formhttp
