package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"supermarket-dashboard/internal/config"
)

func newTestGracefulServer() *GracefulServer {
	cfg := &config.Config{Server: config.ServerConfig{
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		ShutdownTimeout: 2 * time.Second,
	}}
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	return NewGracefulServer(srv, slog.New(slog.NewTextHandler(io.Discard, nil)), cfg)
}

func TestGracefulServer_RunsHooksOnCancel(t *testing.T) {
	gs := newTestGracefulServer()

	var ran atomic.Int32
	for _, name := range []string{"analytics", "cache"} {
		gs.RegisterShutdownHook(name, func(ctx context.Context) error {
			ran.Add(1)
			return nil
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := gs.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if ran.Load() != 2 {
		t.Errorf("hooks run = %d, want 2", ran.Load())
	}
}

func TestGracefulServer_HookError(t *testing.T) {
	gs := newTestGracefulServer()

	boom := errors.New("boom")
	gs.RegisterShutdownHook("failing", func(ctx context.Context) error { return boom })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := gs.Run(ctx); !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want %v", err, boom)
	}
}
