package main

import (
	"fmt"
	"os"

	"github.com/PauloHFS/deepseek/internal/cmd"
)

func main() {
	if len(os.Args) < 2 {
		cmd.RunChat(nil)
		return
	}

	switch os.Args[1] {
	case "chat":
		cmd.RunChat(os.Args[2:])
	case "repl":
		cmd.RunRepl()
	case "help", "-h", "--help":
		showHelp()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		showHelp()
		os.Exit(cmd.ExitUsage)
	}
}

func showHelp() {
	fmt.Println("DeepSeek chat client")
	fmt.Println("Usage: ./deepseek [command] [args]")
	fmt.Println("\nAvailable commands:")
	fmt.Println("  chat [prompt]  Send one prompt and print the reply (default)")
	fmt.Println("  repl           Answer one prompt per line from stdin")
	fmt.Println("  help           Show this help message")
	fmt.Println("\nEnvironment:")
	fmt.Println("  DEEPSEEK_API_KEY      API key (required)")
	fmt.Println("  DEEPSEEK_BASE_URL     API base URL (default https://api.deepseek.com)")
	fmt.Println("  DEEPSEEK_MODEL        Model name (default deepseek-chat)")
	fmt.Println("  DEEPSEEK_TEMPERATURE  Sampling temperature (default 0.7)")
	fmt.Println("  DEEPSEEK_TIMEOUT      Per-request timeout (default 60s)")
	fmt.Println("  METRICS_ADDR          Serve /metrics here during repl")
	fmt.Println("  OTEL_TRACES_EXPORTER  none, stdout, otlp-http or otlp-grpc")
}
