package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	IsDebug bool          `yaml:"is_debug" env:"IS_DEBUG" env-default:"false"`
	Listen  Listener      `yaml:"listen"`
	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"authorization"`
}

type Listener struct {
	BindIp string `yaml:"bind_ip" env:"BIND_IP" env-default:"0.0.0.0"`
	Port   string `yaml:"port" env:"PORT" env-default:"8080"`
}

// StorageConfig selects the database driver. "postgres" uses the
// host/port/database/username/password fields, "sqlite" only uses path.
type StorageConfig struct {
	Driver   string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"sqlite"`
	Host     string `yaml:"host" env:"STORAGE_HOST"`
	Port     string `yaml:"port" env:"STORAGE_PORT"`
	Database string `yaml:"database" env:"STORAGE_DATABASE"`
	Username string `yaml:"username" env:"STORAGE_USERNAME"`
	Password string `yaml:"password" env:"STORAGE_PASSWORD"`
	Path     string `yaml:"path" env:"STORAGE_PATH" env-default:"db.sqlite3"`
}

type AuthConfig struct {
	SecretKey       string `yaml:"secret_key" env:"JWT_SECRET_KEY"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes" env:"ACCESS_TOKEN_EXPIRE_MINUTES" env-default:"30"`
}

// TokenTTL is the lifetime of issued access tokens.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

// Load reads configuration from the YAML file at path with environment
// variable overrides. A missing file is not an error: the environment
// alone can carry the full configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("read config from environment: %w", err)
		}
	}
	return cfg, nil
}
