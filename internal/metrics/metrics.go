package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deepseek_requests_total",
		Help: "Total number of chat-completion requests",
	}, []string{"model", "outcome"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "deepseek_request_duration_seconds",
		Help:    "Chat-completion round trip duration in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"model", "outcome"})

	TokensTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deepseek_tokens_total",
		Help: "Total number of tokens reported by the provider",
	}, []string{"model", "token_type"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deepseek_http_requests_total",
		Help: "Total number of outbound HTTP exchanges",
	}, []string{"method", "status"})
)

func RecordRequest(model, outcome string, duration time.Duration) {
	RequestsTotal.WithLabelValues(model, outcome).Inc()
	RequestDuration.WithLabelValues(model, outcome).Observe(duration.Seconds())
}

func RecordTokens(model string, prompt, completion, total int) {
	if prompt > 0 {
		TokensTotal.WithLabelValues(model, "prompt").Add(float64(prompt))
	}
	if completion > 0 {
		TokensTotal.WithLabelValues(model, "completion").Add(float64(completion))
	}
	if total > 0 {
		TokensTotal.WithLabelValues(model, "total").Add(float64(total))
	}
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
