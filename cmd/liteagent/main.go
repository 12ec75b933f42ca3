// Command liteagent runs an interactive tool-calling agent session against
// a configured language model.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/martinemde/liteagent/agent"
	"github.com/martinemde/liteagent/config"
	"github.com/martinemde/liteagent/eventlog"
	"github.com/martinemde/liteagent/llm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "liteagent:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "path to config file (default: search standard locations)")
		modelName  = flag.String("model", "", "model identifier (overrides config)")
		debug      = flag.Bool("debug", false, "verbose logging of every loop step")
		eventLogDB = flag.String("event-log", "", "SQLite file to persist agent events (overrides config)")
	)
	flag.Parse()

	cfg := config.Default()
	if path, err := config.FindConfig(*configPath); err == nil {
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config %s: %w", path, err)
		}
		cfg = loaded
	} else if *configPath != "" {
		// An explicit -config that does not exist is fatal; falling back to
		// defaults is only for the no-flag case.
		return err
	}

	if *modelName != "" {
		cfg.Model.Name = *modelName
	}
	if *debug {
		cfg.Agent.Debug = true
		cfg.LogLevel = "debug"
	}
	if *eventLogDB != "" {
		cfg.EventLog.Enabled = true
		cfg.EventLog.Path = *eventLogDB
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, level)
	slog.SetDefault(logger)

	model, err := llm.New(llm.Config{
		Model:           cfg.Model.Name,
		Provider:        cfg.Model.Provider,
		APIKey:          cfg.Model.APIKey,
		MaxTokens:       cfg.Model.MaxTokens,
		Temperature:     cfg.Model.Temperature,
		MaxRetries:      cfg.Model.MaxRetries,
		ProviderOptions: cfg.ProviderOptions,
	})
	if err != nil {
		return err
	}

	observers := []agent.Observer{agent.NewConsoleObserver(logger)}
	if cfg.EventLog.Enabled {
		store, err := eventlog.Open(cfg.EventLog.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		store.SetLogger(logger)
		observers = append(observers, store)
	}

	a := agent.New(model, agent.Options{
		Name:          cfg.Agent.Name,
		SystemPrompt:  cfg.Agent.SystemPrompt,
		Debug:         cfg.Agent.Debug,
		MaxIterations: cfg.Agent.MaxIterations,
		LoopWindow:    cfg.Agent.LoopWindow,
		Logger:        logger,
		Observers:     observers,
	})

	logger.Info("agent ready", "model", cfg.Model.Name, "tools", a.Tools().Count())
	fmt.Println("Type a message and press enter. Ctrl-D or /quit to exit, /reset to clear history.")

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/reset":
			a.ResetMemory()
			fmt.Println("(history cleared)")
			continue
		}

		fmt.Println(a.Chat(ctx, line))
	}
	return scanner.Err()
}
