// Package httpserver runs an http.Handler with graceful shutdown.
//
// Run listens on the configured address, serves until its context is
// cancelled and then shuts down within the shutdown timeout. Signal handling
// is left to the caller, typically through signal.NotifyContext.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// HealthCheckHandler provides liveness and readiness endpoints.
package httpserver
