// Package config loads generation settings from a YAML config file merged
// with command-line flags. Flags win over the file.
package config

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

// DefaultConfigFile is looked up in the working directory when no --config
// flag is given.
const DefaultConfigFile = "oasforge.yaml"

type Config struct {
	Locator   string `koanf:"locator"`
	Package   string `koanf:"package"`
	OutputDir string `koanf:"output-dir"`
	UserAgent string `koanf:"user-agent"`
	MaxDepth  int    `koanf:"max-depth"`
	DryRun    bool   `koanf:"dry-run"`
}

// BindGenerateFlags binds the generation flags to a command.
func BindGenerateFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.StringP("config", "c", "", "Config file path (default: oasforge.yaml)")
	flags.StringP("package", "p", "", "Go package name for generated code")
	flags.StringP("output-dir", "o", "", "Directory to write generated files into")
	flags.String("user-agent", "", "User-Agent for the generated client")
	flags.Int("max-depth", 0, "Maximum document nesting depth")
	flags.Bool("dry-run", false, "Print file names without writing files")
}

// Load merges the config file (if any) with flags set on the command.
// The locator argument, when non-empty, overrides both.
func Load(cmd *cobra.Command, locator string) (*Config, error) {
	k := koanf.New(".")

	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			configFile = DefaultConfigFile
		}
	}
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	flagsMap := buildFlagsMap(cmd)
	if len(flagsMap) > 0 {
		if err := k.Load(confmap.Provider(flagsMap, "."), nil); err != nil {
			return nil, fmt.Errorf("config: loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling config: %w", err)
	}

	if locator != "" {
		cfg.Locator = locator
	}
	if cfg.Package == "" {
		cfg.Package = "api"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Locator == "" {
		return fmt.Errorf("config: no document locator given (argument, --config file, or 'locator' key)")
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("config: max-depth must not be negative")
	}
	return nil
}

func buildFlagsMap(cmd *cobra.Command) map[string]any {
	m := make(map[string]any)
	flags := cmd.Flags()

	if v, err := flags.GetString("package"); err == nil && v != "" {
		m["package"] = v
	}
	if v, err := flags.GetString("output-dir"); err == nil && v != "" {
		m["output-dir"] = v
	}
	if v, err := flags.GetString("user-agent"); err == nil && v != "" {
		m["user-agent"] = v
	}
	if flags.Changed("max-depth") {
		if v, err := flags.GetInt("max-depth"); err == nil {
			m["max-depth"] = v
		}
	}
	if flags.Changed("dry-run") {
		if v, err := flags.GetBool("dry-run"); err == nil {
			m["dry-run"] = v
		}
	}
	return m
}
