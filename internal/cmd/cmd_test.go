package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PauloHFS/deepseek/internal/config"
	"github.com/PauloHFS/deepseek/internal/deepseek"
	"github.com/PauloHFS/deepseek/internal/logging"
	"github.com/PauloHFS/deepseek/internal/tracing"
)

type fakeClient struct {
	mu      sync.Mutex
	prompts []string
	reply   func(prompt string) (string, error)
}

func (f *fakeClient) Chat(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if _, ok := ctx.Deadline(); !ok {
		return "", errors.New("expected a deadline on the context")
	}
	return f.reply(prompt)
}

func (f *fakeClient) Complete(ctx context.Context, req deepseek.ChatRequest) (*deepseek.ChatResponse, error) {
	return nil, errors.New("not used")
}

func newTestApp(client deepseek.ChatClient) *app {
	return &app{
		cfg:      &config.Config{Timeout: time.Minute},
		client:   client,
		logger:   logging.Init(logging.Options{Env: "prod", Output: io.Discard}),
		shutdown: tracing.ShutdownFunc(func(context.Context) error { return nil }),
	}
}

func TestRunChat(t *testing.T) {
	t.Run("joins arguments", func(t *testing.T) {
		fake := &fakeClient{reply: func(p string) (string, error) { return "echo: " + p, nil }}
		var out bytes.Buffer

		err := runChat(context.Background(), newTestApp(fake), []string{"what", "is", "go?"}, &out)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.String() != "Response: echo: what is go?\n" {
			t.Errorf("unexpected output %q", out.String())
		}
	})

	t.Run("default prompt", func(t *testing.T) {
		fake := &fakeClient{reply: func(p string) (string, error) { return "fine", nil }}
		var out bytes.Buffer

		if err := runChat(context.Background(), newTestApp(fake), nil, &out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(fake.prompts) != 1 || fake.prompts[0] != defaultPrompt {
			t.Errorf("expected default prompt, got %v", fake.prompts)
		}
	})

	t.Run("returns client error", func(t *testing.T) {
		apiErr := &deepseek.APIError{Message: "Insufficient Balance", Code: "invalid_request_error"}
		fake := &fakeClient{reply: func(string) (string, error) { return "", apiErr }}
		var out bytes.Buffer

		err := runChat(context.Background(), newTestApp(fake), []string{"hi"}, &out)
		if !errors.Is(err, apiErr) {
			t.Fatalf("expected API error, got %v", err)
		}
		if out.Len() != 0 {
			t.Errorf("expected no output on error, got %q", out.String())
		}
	})
}

func TestRunRepl(t *testing.T) {
	fake := &fakeClient{reply: func(p string) (string, error) {
		if p == "fail" {
			return "", &deepseek.MalformedResponseError{Err: deepseek.ErrNoChoices}
		}
		return strings.ToUpper(p), nil
	}}

	in := strings.NewReader("hello\n\n   \nfail\nworld\n")
	var out, errOut bytes.Buffer

	err := runRepl(context.Background(), newTestApp(fake), in, &out, &errOut, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := strings.Join(fake.prompts, ","); got != "hello,fail,world" {
		t.Errorf("expected blank lines skipped, got prompts %q", got)
	}
	if out.String() != "Response: HELLO\nResponse: WORLD\n" {
		t.Errorf("unexpected output %q", out.String())
	}
	if !strings.Contains(errOut.String(), "malformed response") {
		t.Errorf("expected error report, got %q", errOut.String())
	}
}

func TestRunRepl_InteractivePrompt(t *testing.T) {
	fake := &fakeClient{reply: func(p string) (string, error) { return p, nil }}
	var out bytes.Buffer

	err := runRepl(context.Background(), newTestApp(fake), strings.NewReader("x\n"), &out, io.Discard, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "> Response: x\n> " {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestRunRepl_StopsOnCancel(t *testing.T) {
	fake := &fakeClient{reply: func(p string) (string, error) { return p, nil }}
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runRepl(ctx, newTestApp(fake), pr, io.Discard, io.Discard, false) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil error on cancel, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("repl did not stop after cancel")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"config load", fmt.Errorf("%w: %w", errLoadConfig, errors.New("bad temperature")), ExitConfig},
		{"missing key", &deepseek.ConfigurationError{Variable: deepseek.EnvAPIKey}, ExitConfig},
		{"transport", &deepseek.TransportError{Op: "send request", Err: errors.New("refused")}, ExitTransport},
		{"api", &deepseek.APIError{Message: "x"}, ExitAPI},
		{"malformed", &deepseek.MalformedResponseError{Err: deepseek.ErrUnknownShape}, ExitMalformed},
		{"deadline", context.DeadlineExceeded, ExitTransport},
		{"other", errors.New("boom"), ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
