// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvGatewayURL = "QUICKCALORIES_GATEWAY_URL"
	EnvAppSecret  = "QUICKCALORIES_APP_SECRET"
	EnvDBPath     = "QUICKCALORIES_DB_PATH"
)

// Config describes the quickcalories YAML configuration.
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Gateway struct {
		URL       string `yaml:"url"`
		AppSecret string `yaml:"app_secret"`
		Model     string `yaml:"model"`
	} `yaml:"gateway"`
}

func Default() Config {
	var cfg Config
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8011
	cfg.Database.Path = "quickcalories.db"
	cfg.Gateway.Model = "gpt-4o-mini"
	return cfg
}

// Load reads path (optional) over the defaults and then applies environment
// overrides. A .env file in the working directory is loaded first if present.
func Load(path string) (Config, error) {
	if err := LoadDotEnv(); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv(os.LookupEnv)
	return cfg, cfg.Validate()
}

// LoadDotEnv loads the given files (default .env) into the environment
// without overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvGatewayURL); ok && strings.TrimSpace(v) != "" {
		c.Gateway.URL = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvAppSecret); ok && strings.TrimSpace(v) != "" {
		c.Gateway.AppSecret = v
	}
	if v, ok := lookup(EnvDBPath); ok && strings.TrimSpace(v) != "" {
		c.Database.Path = strings.TrimSpace(v)
	}
}

func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path is required")
	}
	return nil
}

func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
