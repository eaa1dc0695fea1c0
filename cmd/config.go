package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/quillsh/quill/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and modify the persisted configuration",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file location",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Println(configPath())
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print one configuration value",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load(cfgFile)
				if err != nil {
					return err
				}
				v, err := configValue(cfg, args[0])
				if err != nil {
					return err
				}
				fmt.Println(v)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Set one configuration value and save the file",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load(cfgFile)
				if err != nil {
					return err
				}
				if err := setConfigValue(cfg, args[0], args[1]); err != nil {
					return err
				}
				if err := cfg.Save(cfgFile); err != nil {
					return err
				}
				fmt.Printf("%s = %s (saved to %s)\n", args[0], args[1], configPath())
				return nil
			},
		},
	)
	return cmd
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultPath()
}

func configValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "provider":
		return cfg.Provider, nil
	case "model":
		return cfg.Model, nil
	case "workspace_root":
		return cfg.WorkspaceRoot, nil
	case "max_history_tokens":
		return strconv.Itoa(cfg.MaxHistoryTokens), nil
	case "max_iterations":
		return strconv.Itoa(cfg.MaxIterations), nil
	case "ui.stream":
		return strconv.FormatBool(cfg.UI.Stream), nil
	case "debug":
		return strconv.FormatBool(cfg.Debug), nil
	}
	return "", fmt.Errorf("unknown config key %q", key)
}

func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "workspace_root":
		cfg.WorkspaceRoot = value
	case "max_history_tokens", "max_iterations":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", key, err)
		}
		if key == "max_history_tokens" {
			cfg.MaxHistoryTokens = n
		} else {
			cfg.MaxIterations = n
		}
	case "ui.stream", "debug":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be a boolean: %w", key, err)
		}
		if key == "ui.stream" {
			cfg.UI.Stream = b
		} else {
			cfg.Debug = b
		}
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}
