package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/PauloHFS/deepseek/internal/metrics"
)

func RunRepl() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := setup(ctx)
	if err != nil {
		fail(err)
	}
	defer a.close()

	if a.cfg.MetricsAddr != "" {
		go func() {
			a.logger.Info("metrics server started", "addr", a.cfg.MetricsAddr)
			if err := metrics.Serve(ctx, a.cfg.MetricsAddr); err != nil {
				a.logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if err := runRepl(ctx, a, os.Stdin, os.Stdout, os.Stderr, interactive); err != nil {
		a.logger.Error("repl stopped", "error", err)
	}
}

// runRepl answers each non-blank input line independently. Failed prompts
// are reported on errOut and do not stop the loop.
func runRepl(ctx context.Context, a *app, in io.Reader, out, errOut io.Writer, interactive bool) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	// A Scan blocked on stdin cannot be interrupted; after cancellation the
	// goroutine stays parked until the next line or EOF, and the process
	// exits right after runRepl returns.
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		if interactive {
			fmt.Fprint(out, "> ")
		}

		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			select {
			case err := <-scanErr:
				return err
			default:
				return nil
			}
		}

		prompt := strings.TrimSpace(line)
		if prompt == "" {
			continue
		}

		reply, err := a.ask(ctx, prompt)
		if err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "Response: %s\n", reply)
	}
}
