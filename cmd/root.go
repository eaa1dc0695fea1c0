package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillsh/quill/internal/config"
	"github.com/quillsh/quill/internal/provider"
)

var (
	cfgFile       string
	providerFlag  string
	modelFlag     string
	workspaceFlag string
	noStream      bool
	debugFlag     bool

	// Version info, set by Execute().
	appVersion string
	appCommit  string
	appDate    string
)

// Execute is the entry point called from main.go.
func Execute(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date

	rootCmd := &cobra.Command{
		Use:   "quill",
		Short: "AI coding assistant for the terminal",
		Long:  "quill is an interactive AI coding assistant with sandboxed tool execution.",
		// Running quill with no subcommand starts chat mode.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default ~/.config/quill/config.json)")
	rootCmd.PersistentFlags().StringVarP(&providerFlag, "provider", "p", "", "override provider")
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "override model")
	rootCmd.PersistentFlags().StringVarP(&workspaceFlag, "workspace", "w", "", "workspace root for tools (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&noStream, "no-stream", false, "disable streaming output")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging to stderr")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig loads configuration and applies CLI flag overrides.
func initConfig() *config.Config {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if providerFlag != "" {
		cfg.Provider = providerFlag
	}
	if modelFlag != "" {
		cfg.Model = modelFlag
	}
	if workspaceFlag != "" {
		cfg.WorkspaceRoot = workspaceFlag
	}
	if noStream {
		cfg.UI.Stream = false
	}
	if debugFlag {
		cfg.Debug = true
	}
	return cfg
}

// providerBaseURLs maps OpenAI-compatible provider names to their base URLs.
var providerBaseURLs = map[string]string{
	"openai":   "https://api.openai.com/v1",
	"deepseek": "https://api.deepseek.com",
	"groq":     "https://api.groq.com/openai/v1",
}

// buildProvider creates a Provider from the configuration.
func buildProvider(cfg *config.Config) (provider.Provider, error) {
	name := cfg.Provider
	pc := cfg.ProviderConfig(name)

	apiKey := pc.APIKey
	if apiKey == "" {
		return nil, fmt.Errorf(
			"API key not configured for provider %q.\n"+
				"Set it via:\n"+
				"  - environment: ANTHROPIC_API_KEY / OPENAI_API_KEY / QUILL_API_KEY\n"+
				"  - config file: providers.%s.api_key",
			name, name,
		)
	}

	// CLI flag > config file > per-provider config > provider default.
	model := cfg.Model
	if model == "" {
		model = pc.Model
	}

	switch name {
	case "anthropic":
		return provider.NewAnthropicProvider(apiKey, model), nil
	default:
		// Everything else speaks the OpenAI-compatible API.
		baseURL := pc.BaseURL
		if baseURL == "" {
			u, ok := providerBaseURLs[name]
			if !ok {
				return nil, fmt.Errorf("unknown provider %q; set providers.%s.base_url in config", name, name)
			}
			baseURL = u
		}
		return provider.NewOpenAIProvider(apiKey, baseURL, model), nil
	}
}
