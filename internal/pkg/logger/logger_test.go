package logger

import (
	"context"
	"testing"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, env := range []string{"dev", "prod"} {
		logger, err := New(env, "debug")
		if err != nil {
			t.Fatalf("New(%q) error = %v", env, err)
		}
		if !logger.Core().Enabled(zap.DebugLevel) {
			t.Errorf("New(%q) debug level not enabled", env)
		}
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New("dev", "loud"); err == nil {
		t.Error("New() with invalid level should fail")
	}
}

func TestWithAction(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := ctxzap.ToContext(context.Background(), zap.New(core))

	ctx = WithAction(ctx, "upload")
	ctx = AddFields(ctx, zap.Int("files", 2))
	ctxzap.Extract(ctx).Info("done")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["action"] != "upload" {
		t.Errorf("action = %v, want upload", fields["action"])
	}
	if fields["files"] != int64(2) {
		t.Errorf("files = %v, want 2", fields["files"])
	}
}
