package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/sadopc/wristtrack/internal/catalog"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Export   ExportConfig   `mapstructure:"export"`
	Catalog  []catalog.Item `mapstructure:"catalog"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// Dir returns ~/.config/wristtrack.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "wristtrack"), nil
}

// Load reads configuration from defaults, the TOML file and env. Env var
// overrides use prefix WRISTTRACK_. A missing config file is not an error.
func Load() (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}
	home, _ := os.UserHomeDir()

	v := viper.New()

	v.SetDefault("database.path", filepath.Join(dir, "wristtrack.db"))
	v.SetDefault("log.path", filepath.Join(dir, "wristtrack.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("export.dir", home)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("WRISTTRACK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("WRISTTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(cfgPath != "" && errors.Is(err, os.ErrNotExist)) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// BuildCatalog returns the configured catalog, or the built-in one when the
// config has no [[catalog]] entries.
func (c Config) BuildCatalog() (*catalog.Catalog, error) {
	if len(c.Catalog) == 0 {
		return catalog.Default(), nil
	}
	cat, err := catalog.New(c.Catalog)
	if err != nil {
		return nil, fmt.Errorf("config catalog: %w", err)
	}
	return cat, nil
}
