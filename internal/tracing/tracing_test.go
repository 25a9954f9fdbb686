package tracing

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestInit_None(t *testing.T) {
	for _, exporter := range []string{"", ExporterNone} {
		shutdown, err := Init(context.Background(), exporter, "test")
		if err != nil {
			t.Fatalf("Init(%q) returned error: %v", exporter, err)
		}
		if err := shutdown(context.Background()); err != nil {
			t.Errorf("shutdown returned error: %v", err)
		}
	}
}

func TestInit_Unknown(t *testing.T) {
	if _, err := Init(context.Background(), "zipkin", "test"); err == nil {
		t.Error("expected error for unknown exporter")
	}
}

func TestInit_StdoutExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := initWithWriter(context.Background(), ExporterStdout, "deepseek-test", &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, span := otel.Tracer("test").Start(context.Background(), "deepseek.http")
	span.End()

	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "deepseek.http") {
		t.Errorf("expected exported span name, got %q", out)
	}
	if !strings.Contains(out, "deepseek-test") {
		t.Errorf("expected service name in resource, got %q", out)
	}
}
