package httpclient

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/PauloHFS/deepseek/internal/logging"
	"github.com/PauloHFS/deepseek/internal/metrics"
)

const tracerName = "github.com/PauloHFS/deepseek/internal/httpclient"

type Client struct {
	*http.Client
	name string
}

type Config struct {
	Name string
	// Timeout is zero by default; callers bound calls with a context.
	Timeout   time.Duration
	Transport http.RoundTripper
}

func New(cfg Config) *Client {
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	transport := &loggingTransport{
		RoundTripper: base,
		name:         cfg.Name,
	}

	return &Client{
		Client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		name: cfg.Name,
	}
}

func Default() *Client {
	return New(Config{Name: "deepseek"})
}

// loggingTransport traces and logs each exchange. When the request context
// already carries a logging.Event, attributes are added to it and the owner
// of the event logs; otherwise one line is logged here.
type loggingTransport struct {
	http.RoundTripper
	name string
}

func (t *loggingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()
	requestID := uuid.NewString()

	ctx, span := otel.Tracer(tracerName).Start(r.Context(), "deepseek.http",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", r.Method),
			attribute.String("url.full", r.URL.String()),
			attribute.String("request_id", requestID),
		),
	)
	defer span.End()

	event := logging.EventFromContext(ctx)
	owned := event == nil
	if owned {
		ctx, event = logging.NewEventContext(ctx)
	}

	event.Add(
		slog.String("http_client", t.name),
		slog.String("request_id", requestID),
		slog.String("method", r.Method),
		slog.String("url", r.URL.String()),
	)

	resp, err := t.RoundTripper.RoundTrip(r.WithContext(ctx))

	duration := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, "error").Inc()
		event.Add(
			slog.String("http_outcome", "error"),
			slog.String("error", err.Error()),
			slog.Float64("duration_ms", float64(duration.Milliseconds())),
		)
		if owned {
			logging.Get().Log(ctx, slog.LevelError, "http request failed", event.Attrs()...)
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= 500 {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	}
	metrics.HTTPRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(resp.StatusCode)).Inc()

	event.Add(
		slog.Int("status", resp.StatusCode),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	)

	if owned {
		level := slog.LevelInfo
		if resp.StatusCode >= 400 {
			level = slog.LevelWarn
		}
		logging.Get().Log(ctx, level, "http request completed", event.Attrs()...)
	}
	return resp, nil
}
