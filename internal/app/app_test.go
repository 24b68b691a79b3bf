package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/publika-insight/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingHandler struct{}

func (pingHandler) Init(r chi.Router) {
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})
}

type fakeConsumer struct {
	consumed atomic.Bool
	closed   atomic.Bool
}

func (c *fakeConsumer) Consume(ctx context.Context) {
	c.consumed.Store(true)
	<-ctx.Done()
}

func (c *fakeConsumer) Close() error {
	c.closed.Store(true)
	return nil
}

type starterFunc func(ctx context.Context) error

func (f starterFunc) Start(ctx context.Context) error { return f(ctx) }

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func testConfig() config.Config {
	return config.Config{
		Http: config.Http{Host: "127.0.0.1", Port: "0"},
		Cors: config.CORS{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

func TestApplication_Routes(t *testing.T) {
	a := New(slog.New(slog.NewTextHandler(io.Discard, nil)), testConfig())
	a.SetHTTPHandlers(pingHandler{})

	testCases := []struct {
		path       string
		wantStatus int
	}{
		{"/ping", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/missing", http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			a.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.wantStatus, rr.Code)
		})
	}
}

func TestApplication_StartStop(t *testing.T) {
	a := New(slog.New(slog.NewTextHandler(io.Discard, nil)), testConfig())

	consumer := &fakeConsumer{}
	started := make(chan struct{})
	var closed atomic.Bool

	a.SetConsumers(consumer)
	a.SetStarters(
		starterFunc(func(ctx context.Context) error {
			close(started)
			return nil
		}),
		starterFunc(func(ctx context.Context) error {
			return errors.New("warm up failed")
		}),
	)
	a.SetClosers(closerFunc(func() error {
		closed.Store(true)
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, a.Start(ctx))

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("starter was not run")
	}
	assert.Eventually(t, consumer.consumed.Load, time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, a.Stop())
	assert.True(t, consumer.closed.Load())
	assert.True(t, closed.Load())
}

func TestApplication_StartListenError(t *testing.T) {
	cfg := testConfig()
	cfg.Http.Port = "99999"
	a := New(slog.New(slog.NewTextHandler(io.Discard, nil)), cfg)

	assert.Error(t, a.Start(context.Background()))
}
