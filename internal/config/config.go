package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

// DefaultFile is picked up from the working directory when --config is not set.
const DefaultFile = "apispec.yaml"

type Config struct {
	Bundle BundleConfig `koanf:"bundle"`
	Mocks  MocksConfig  `koanf:"mocks"`
	Log    LogConfig    `koanf:"log"`
}

type BundleConfig struct {
	BaseDir    string   `koanf:"base-dir"`
	Shared     string   `koanf:"shared"`
	ModulesDir string   `koanf:"modules-dir"`
	Modules    []string `koanf:"modules"`
	OutputDir  string   `koanf:"output-dir"`
}

type MocksConfig struct {
	OutputDir    string `koanf:"output-dir"`
	TemplatesDir string `koanf:"templates-dir"`
	LastUpdated  string `koanf:"last-updated"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaults() map[string]any {
	return map[string]any{
		"bundle.base-dir":    ".",
		"bundle.shared":      "shared.yaml",
		"bundle.modules-dir": "modules",
		"bundle.modules": []string{
			"auth", "users", "posts", "messages", "qa",
			"events", "marketplace", "resources", "notifications", "moderation",
		},
		"bundle.output-dir": "dist",
		"mocks.output-dir":  "mocks",
		"log.level":         "info",
		"log.format":        "text",
	}
}

// BindCommonFlags binds flags shared by every subcommand
func BindCommonFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP("config", "c", "", "Config file path (default: "+DefaultFile+")")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: text, json")
	flags.Bool("dry-run", false, "Print output without writing files")
}

// Load layers defaults, the config file and explicitly set flags, in that order.
func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	configFile := getString(cmd, "config")
	if configFile == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			configFile = DefaultFile
		}
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	flagsMap := buildFlagsMap(cmd)
	if len(flagsMap) > 0 {
		if err := k.Load(confmap.Provider(flagsMap, "."), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func getString(cmd *cobra.Command, name string) string {
	if v, err := cmd.Flags().GetString(name); err == nil && v != "" {
		return v
	}
	if v, err := cmd.PersistentFlags().GetString(name); err == nil && v != "" {
		return v
	}
	return ""
}

func getStringSlice(cmd *cobra.Command, name string) []string {
	if v, err := cmd.Flags().GetStringSlice(name); err == nil && len(v) > 0 {
		return v
	}
	if v, err := cmd.PersistentFlags().GetStringSlice(name); err == nil && len(v) > 0 {
		return v
	}
	return nil
}

func buildFlagsMap(cmd *cobra.Command) map[string]any {
	m := make(map[string]any)

	if v := getString(cmd, "log-level"); v != "" {
		m["log.level"] = v
	}
	if v := getString(cmd, "log-format"); v != "" {
		m["log.format"] = v
	}

	// bundle command
	if v := getString(cmd, "base-dir"); v != "" {
		m["bundle.base-dir"] = v
	}
	if v := getString(cmd, "shared"); v != "" {
		m["bundle.shared"] = v
	}
	if v := getString(cmd, "modules-dir"); v != "" {
		m["bundle.modules-dir"] = v
	}
	if v := getStringSlice(cmd, "modules"); len(v) > 0 {
		m["bundle.modules"] = v
	}

	// output-dir is bound by both commands; the command name decides where it lands
	if v := getString(cmd, "output-dir"); v != "" {
		if cmd.Name() == "mocks" {
			m["mocks.output-dir"] = v
		} else {
			m["bundle.output-dir"] = v
		}
	}

	// mocks command
	if v := getString(cmd, "templates"); v != "" {
		m["mocks.templates-dir"] = v
	}
	if v := getString(cmd, "last-updated"); v != "" {
		m["mocks.last-updated"] = v
	}

	return m
}

func (c *Config) Validate() error {
	if c.Bundle.Shared == "" {
		return fmt.Errorf("shared file is required")
	}
	if c.Bundle.OutputDir == "" {
		return fmt.Errorf("bundle output directory is required")
	}
	if c.Mocks.OutputDir == "" {
		return fmt.Errorf("mocks output directory is required")
	}
	if slices.Contains(c.Bundle.Modules, "") {
		return fmt.Errorf("module names must not be empty")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Log.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Log.Format] {
		return fmt.Errorf("invalid log format: %s (valid: text, json)", c.Log.Format)
	}

	if c.Mocks.LastUpdated != "" {
		if _, err := time.Parse(time.DateOnly, c.Mocks.LastUpdated); err != nil {
			return fmt.Errorf("invalid last-updated date: %s (expected YYYY-MM-DD)", c.Mocks.LastUpdated)
		}
	}

	return nil
}
