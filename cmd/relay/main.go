package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tmc/langchaingo/llms/openai"
	"golang.org/x/term"

	"github.com/rahul/relay/internal/engine"
	"github.com/rahul/relay/internal/memory"
	"github.com/rahul/relay/internal/observability"
	"github.com/rahul/relay/internal/tools"
	"github.com/rahul/relay/pkg/config"
)

var (
	configPath string
	sessionID  string
	verbose    bool
)

func main() {
	root := &cobra.Command{
		Use:   "relay",
		Short: "Stepwise reasoning-and-acting agent engine",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the YAML config file")

	chat := &cobra.Command{
		Use:   "chat",
		Short: "Interactive chat session against the configured provider",
		RunE:  runChat,
	}
	chat.Flags().StringVar(&sessionID, "session", "default", "conversation id for persistent memory")
	chat.Flags().BoolVar(&verbose, "verbose", false, "emit structured engine events to stderr")
	root.AddCommand(chat)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	apiKey, err := resolveAPIKey(cfg)
	if err != nil {
		return err
	}

	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(cfg.Provider.Model),
	}
	if cfg.Provider.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.Provider.BaseURL))
	}
	model, err := openai.New(opts...)
	if err != nil {
		return err
	}

	var mem engine.Memory
	switch cfg.Memory.Type {
	case "sqlite":
		store, err := memory.NewStore(cfg.Memory.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		mem = store.Conversation(sessionID)
	default:
		mem = memory.NewBuffer()
	}

	source, err := tools.NewSource([]tools.Tool{clockTool{}}, nil)
	if err != nil {
		return err
	}

	var logger *observability.Logger
	if verbose {
		logger = observability.NewLoggerTo(os.Stderr)
	}

	executor, err := engine.NewStepExecutor(engine.ExecutorConfig{
		Model:         model,
		Tools:         source,
		Logger:        logger,
		MaxIterations: cfg.Engine.MaxIterations,
	})
	if err != nil {
		return err
	}
	runner := engine.NewRunner(engine.NewScheduler(executor))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print("> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			return nil
		}

		response, err := runner.Chat(ctx, mem, input)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Printf("task failed: %v", err)
			continue
		}
		fmt.Println(response.Text)
	}
}

// resolveAPIKey falls back from config to environment to an interactive
// hidden prompt.
func resolveAPIKey(cfg *config.Config) (string, error) {
	if cfg.Provider.APIKey != "" {
		return cfg.Provider.APIKey, nil
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("no API key in config or OPENAI_API_KEY")
	}
	fmt.Print("API key: ")
	key, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(key)), nil
}

// clockTool is a minimal tool wired into the demo so the engine has
// something to act with out of the box.
type clockTool struct{}

func (clockTool) Name() string { return "clock" }

func (clockTool) Description() string {
	return "Returns the current date and time. Takes no arguments."
}

func (clockTool) Parameters() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}

func (clockTool) Call(ctx context.Context, args map[string]any) (tools.Output, error) {
	return tools.Output{
		ToolName: "clock",
		Content:  time.Now().Format(time.RFC1123),
		RawInput: args,
	}, nil
}
