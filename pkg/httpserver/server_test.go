package httpserver_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/httpserver"
)

func start(t *testing.T, srv *httpserver.Server, h http.Handler) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, h) }()
	select {
	case <-srv.Ready():
	case err := <-done:
		cancel()
		t.Fatalf("server did not start: %v", err)
	case <-time.After(2 * time.Second):
		cancel()
		t.Fatal("server did not start")
	}
	return cancel, done
}

func TestRunAndShutdown(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(httpserver.WithAddr("127.0.0.1:0"), httpserver.WithShutdownTimeout(100*time.Millisecond))
	cancel, done := start(t, srv, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	}))

	resp, err := http.Get("http://" + srv.Addr())
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("run did not finish")
	}
	require.NoError(t, srv.Shutdown(context.Background()))
}

func TestRunTwice(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(httpserver.WithAddr("127.0.0.1:0"))
	cancel, done := start(t, srv, nil)
	defer func() {
		cancel()
		<-done
	}()

	err := srv.Run(context.Background(), nil)
	assert.ErrorIs(t, err, httpserver.ErrAlreadyRunning)
}

func TestRunListenError(t *testing.T) {
	t.Parallel()

	first := httpserver.New(httpserver.WithAddr("127.0.0.1:0"))
	cancel, done := start(t, first, nil)
	defer func() {
		cancel()
		<-done
	}()

	second := httpserver.New(httpserver.WithAddr(first.Addr()))
	err := second.Run(context.Background(), nil)
	assert.ErrorIs(t, err, httpserver.ErrStart)
}

func TestShutdownBeforeRun(t *testing.T) {
	t.Parallel()
	assert.NoError(t, httpserver.New().Shutdown(context.Background()))
	assert.Empty(t, httpserver.New().Addr())
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	srv := httpserver.NewFromConfig(httpserver.Config{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second})
	cancel, done := start(t, srv, nil)
	assert.NotEmpty(t, srv.Addr())
	cancel()
	assert.NoError(t, <-done)
}

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		checks []func(context.Context) error
		code   int
		body   string
	}{
		{"liveness", nil, http.StatusOK, "ALIVE"},
		{"ready", []func(context.Context) error{func(context.Context) error { return nil }}, http.StatusOK, "READY"},
		{"not ready", []func(context.Context) error{
			func(context.Context) error { return nil },
			func(context.Context) error { return errors.New("catalog missing") },
		}, http.StatusServiceUnavailable, "NOT_READY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			httpserver.HealthCheckHandler(nil, tt.checks...).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}
