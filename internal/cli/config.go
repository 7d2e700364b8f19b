package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/benchsplit/internal/model"
)

// setDefaults registers model.DefaultConfig under the viper keys
func setDefaults(v *viper.Viper) {
	def := model.DefaultConfig()

	v.SetDefault("input.max_bytes", def.Input.MaxBytes)
	v.SetDefault("output.dir", def.Output.Dir)
	v.SetDefault("output.file_mode", uint32(def.Output.FileMode))
	v.SetDefault("output.create_dirs", def.Output.CreateDirs)
	v.SetDefault("output.verbose", def.Output.Verbose)
	v.SetDefault("categories", def.Categories)
	v.SetDefault("concurrency.workers", def.Concurrency.Workers)
	v.SetDefault("cache.enabled", def.Cache.Enabled)
	v.SetDefault("cache.ttl", def.Cache.TTL)
}

// loadConfig builds the effective configuration from flags, env, config
// file and defaults, in that order of precedence
func loadConfig(v *viper.Viper) (*model.Config, error) {
	setDefaults(v)

	cfg := model.DefaultConfig()
	cfg.Input.MaxBytes = v.GetInt64("input.max_bytes")
	cfg.Output.Dir = v.GetString("output.dir")
	cfg.Output.FileMode = os.FileMode(v.GetUint32("output.file_mode"))
	cfg.Output.CreateDirs = v.GetBool("output.create_dirs")
	cfg.Output.Verbose = v.GetBool("output.verbose")
	cfg.Concurrency.Workers = v.GetInt("concurrency.workers")
	cfg.Cache.Enabled = v.GetBool("cache.enabled")
	cfg.Cache.TTL = v.GetDuration("cache.ttl")

	var categories []model.Category
	if err := v.UnmarshalKey("categories", &categories); err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}
	cfg.Categories = categories

	if cfg.Input.MaxBytes < 0 {
		return nil, fmt.Errorf("input.max_bytes must not be negative, got %d", cfg.Input.MaxBytes)
	}
	if cfg.Concurrency.Workers <= 0 {
		return nil, fmt.Errorf("concurrency.workers must be positive, got %d", cfg.Concurrency.Workers)
	}
	if len(cfg.Categories) == 0 {
		return nil, fmt.Errorf("no categories configured")
	}

	return cfg, nil
}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Benchsplit configuration",
	Long: `Manage Benchsplit configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (BENCHSPLIT_*)
3. Config file (~/.benchsplit/config.yaml)
4. Defaults`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration after applying defaults, config file, env vars and flags.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}

		if configFile := viper.ConfigFileUsed(); configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "═══════════════════════════════════════════════════════════")
		fmt.Fprintln(out, "  Current Configuration")
		fmt.Fprintln(out, "═══════════════════════════════════════════════════════════")
		fmt.Fprintln(out)
		fmt.Fprintln(out, string(yamlData))

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.benchsplit/config.yaml.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}

		configPath, err := writeDefaultConfig(home + "/.benchsplit")
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Created default configuration: %s\n", configPath)
		return nil
	},
}

// writeDefaultConfig writes config.yaml into configDir, refusing to
// replace an existing file
func writeDefaultConfig(configDir string) (path string, err error) {
	configPath := configDir + "/config.yaml"

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists: %s\nUse 'benchsplit config show' to view it, or delete it first to recreate", configPath)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("error creating config directory: %w", err)
	}

	yamlData, err := yaml.Marshal(model.DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("error marshaling config: %w", err)
	}

	f, err := os.Create(configPath)
	if err != nil {
		return "", fmt.Errorf("error creating config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close config file: %w", closeErr)
		}
	}()

	header := "# Benchsplit Configuration File\n" +
		"#\n" +
		"# Configuration hierarchy (highest to lowest priority):\n" +
		"#   1. CLI flags\n" +
		"#   2. Environment variables (BENCHSPLIT_*)\n" +
		"#   3. This config file\n" +
		"#   4. Built-in defaults\n\n"

	if _, err := f.WriteString(header); err != nil {
		return "", fmt.Errorf("error writing config: %w", err)
	}
	if _, err := f.Write(yamlData); err != nil {
		return "", fmt.Errorf("error writing config: %w", err)
	}

	return configPath, nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
