package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

const defaultPrompt = "Hello, how are you?"

func RunChat(args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := setup(ctx)
	if err != nil {
		fail(err)
	}

	err = runChat(ctx, a, args, os.Stdout)
	a.close()
	if err != nil {
		fail(err)
	}
}

func runChat(ctx context.Context, a *app, args []string, out io.Writer) error {
	prompt := strings.Join(args, " ")
	if prompt == "" {
		prompt = defaultPrompt
	}

	reply, err := a.ask(ctx, prompt)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "Response: %s\n", reply)
	return err
}
