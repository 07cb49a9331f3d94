package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configDir      = ".tagsync"
	configFileName = "config.yaml"
	envPrefix      = "TAGSYNC"
)

// Config is the effective configuration of a run.
type Config struct {
	API      APIConfig      `mapstructure:"api" yaml:"api"`
	Snapshot SnapshotConfig `mapstructure:"snapshot" yaml:"snapshot"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// APIConfig points at the GraphQL service.
type APIConfig struct {
	BaseURL     string        `mapstructure:"base_url" yaml:"base_url"`
	GraphQLPath string        `mapstructure:"graphql_path" yaml:"graphql_path"`
	TokenPath   string        `mapstructure:"token_path" yaml:"token_path"`
	Token       string        `mapstructure:"token" yaml:"token,omitempty"`
	Bearer      string        `mapstructure:"bearer" yaml:"bearer,omitempty"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// SnapshotConfig selects where the desired state is stored.
type SnapshotConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	Dir     string `mapstructure:"dir" yaml:"dir"`
	Format  string `mapstructure:"format" yaml:"format"`
	DSN     string `mapstructure:"dsn" yaml:"dsn,omitempty"`
}

type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	OutputPath string `mapstructure:"output_path" yaml:"output_path,omitempty"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// GetConfigPath returns the default config file path (~/.tagsync/config.yaml)
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDir, configFileName), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "https://app.leanix.net")
	v.SetDefault("api.graphql_path", "/services/pathfinder/v1/graphql")
	v.SetDefault("api.token_path", "/services/mtm/v1/oauth2/token")
	v.SetDefault("api.token", "")
	v.SetDefault("api.bearer", "")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("snapshot.backend", "file")
	v.SetDefault("snapshot.dir", "backup")
	v.SetDefault("snapshot.format", "json")
	v.SetDefault("snapshot.dsn", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_path", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)
}

// Load reads .env, then the config file (explicit path or the default location),
// then TAGSYNC_* environment variables. A missing default config file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // .env is optional

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		var err error
		if path, err = GetConfigPath(); err != nil {
			return nil, err
		}
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// Save writes cfg as YAML to path, or to the default location when path is empty.
// The API token is never written; it lives in the keyring.
func Save(cfg *Config, path string) error {
	if path == "" {
		var err error
		if path, err = GetConfigPath(); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	v := viper.New()
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.graphql_path", cfg.API.GraphQLPath)
	v.Set("api.token_path", cfg.API.TokenPath)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("snapshot.backend", cfg.Snapshot.Backend)
	v.Set("snapshot.dir", cfg.Snapshot.Dir)
	v.Set("snapshot.format", cfg.Snapshot.Format)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)
	return v.WriteConfigAs(path)
}

// GraphQLURL is the full endpoint used for queries and mutations.
func (c APIConfig) GraphQLURL() string {
	return strings.TrimSuffix(c.BaseURL, "/") + c.GraphQLPath
}

// TokenURL is the OAuth2 token endpoint the API token is exchanged at.
func (c APIConfig) TokenURL() string {
	return strings.TrimSuffix(c.BaseURL, "/") + c.TokenPath
}

// Masked returns a copy safe to print.
func (c Config) Masked() Config {
	c.API.Token = mask(c.API.Token)
	c.API.Bearer = mask(c.API.Bearer)
	c.Snapshot.DSN = mask(c.Snapshot.DSN)
	return c
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + strings.Repeat("*", 8)
}
