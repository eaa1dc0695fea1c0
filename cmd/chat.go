package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/quillsh/quill/internal/input"
	"github.com/quillsh/quill/internal/logging"
	"github.com/quillsh/quill/internal/repl"
	"github.com/quillsh/quill/internal/session"
	"github.com/quillsh/quill/internal/tools"
)

// runChat starts the interactive REPL mode.
func runChat() error {
	cfg := initConfig()

	log, err := logging.New(cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	p, err := buildProvider(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	root := cfg.WorkspaceRoot
	if root == "" {
		root, err = os.Getwd()
		if err != nil {
			fmt.Fprintln(os.Stderr, "resolve working directory:", err)
			os.Exit(1)
		}
	}
	ws, err := tools.NewWorkspace(root)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	executor := tools.NewExecutor(tools.DefaultRegistry(ws))
	sess := session.New(cfg.MaxHistoryTokens)

	var items []input.MenuItem
	for _, c := range repl.Commands() {
		items = append(items, input.MenuItem{Name: c[0], Desc: c[1]})
	}
	reader := input.NewReader(os.Stdin, os.Stdout, "> ", items)
	defer reader.Stop()

	ui := repl.NewConsoleIO(reader, os.Stdout)
	r := repl.New(p, executor, sess, cfg, ui, log, ws.Root())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		cancel()
		reader.Stop()
	}()

	fmt.Printf("quill %s | %s (%s). /help for commands, /exit to leave.\n",
		appVersion, p.Name(), modelName(cfg.Model, p.DefaultModel()))

	return r.Run(ctx)
}

func modelName(configured, fallback string) string {
	if configured != "" {
		return configured
	}
	return fallback
}
