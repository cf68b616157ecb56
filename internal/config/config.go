package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultInput  = "seguro_de_vida.csv"
	DefaultTarget = "despesas"
)

var validate = validator.New()

// Global configuration structure.
type Global struct {
	Input       string `mapstructure:"input" yaml:"input" validate:"required"`
	Target      string `mapstructure:"target" yaml:"target" validate:"required"`
	Correlate   bool   `mapstructure:"correlate" yaml:"correlate"`
	Format      string `mapstructure:"format" yaml:"format" validate:"oneof=text json yaml"`
	Output      string `mapstructure:"output" yaml:"output,omitempty"`
	ChartsDir   string `mapstructure:"charts_dir" yaml:"charts_dir,omitempty"`
	ChartFormat string `mapstructure:"chart_format" yaml:"chart_format" validate:"oneof=png svg pdf"`
	LogLevel    string `mapstructure:"log_level" yaml:"log_level" validate:"oneof=trace debug info warn error disabled"`
	LogJSON     bool   `mapstructure:"log_json" yaml:"log_json"`
}

// Validate returns an error if the configuration is unusable.
func (c *Global) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.segurostats/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults; command flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("SEGUROSTATS")
	v.AutomaticEnv()

	v.SetDefault("input", DefaultInput)
	v.SetDefault("target", DefaultTarget)
	v.SetDefault("correlate", true)
	v.SetDefault("format", "text")
	v.SetDefault("output", "")
	v.SetDefault("charts_dir", "")
	v.SetDefault("chart_format", "png")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".segurostats"), nil
}
