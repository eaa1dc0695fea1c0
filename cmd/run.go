package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quillsh/quill/internal/logging"
	"github.com/quillsh/quill/internal/repl"
	"github.com/quillsh/quill/internal/session"
	"github.com/quillsh/quill/internal/tools"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [prompt]",
		Short: "Execute a single prompt non-interactively",
		Example: `  quill run "read main.go and tell me what it does"
  quill run list all Go files`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(strings.Join(args, " "))
		},
	}
}

// runOnce executes a single prompt and exits.
func runOnce(prompt string) error {
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
	ui := repl.NewConsoleIO(nil, os.Stdout)
	r := repl.New(p, executor, sess, cfg, ui, log, ws.Root())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		cancel()
	}()

	return r.RunOnce(ctx, prompt)
}
