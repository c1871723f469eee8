package mcp

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/fitz/taskflow/internal/app"
)

func TestNewServer_RegistersTools(t *testing.T) {
	c, err := app.New(context.Background(), app.Options{})
	if err != nil {
		t.Fatalf("app.New failed: %v", err)
	}

	s := NewServer(c, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if s.mcpServer == nil {
		t.Fatal("expected mcp server")
	}
	if s.HTTPHandler() == nil {
		t.Error("expected HTTP handler")
	}
}

func TestNewServer_NilLogger(t *testing.T) {
	c, err := app.New(context.Background(), app.Options{})
	if err != nil {
		t.Fatalf("app.New failed: %v", err)
	}
	if s := NewServer(c, nil); s.logger == nil {
		t.Error("expected default logger")
	}
}
