// Package config provides configuration management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the filesystem configuration and .env files are read from.
var AppFs = afero.NewOsFs()

const (
	// FileName is the config file name without extension.
	FileName = ".sqladmin"
	// EnvPrefix prefixes environment overrides, e.g. SQLADMIN_PROVIDER.
	EnvPrefix = "SQLADMIN"
)

// Keys understood in the config file and environment.
const (
	KeyProvider            = "provider"
	KeyDatabaseURL         = "database_url"
	KeyDriver              = "driver"
	KeyPrimaryKey          = "primary_key"
	KeyMaxConnections      = "max_connections"
	KeyMaxIdleTime         = "max_idle_time"
	KeyConnectTimeout      = "connect_timeout"
	KeyHealthCheckInterval = "health_check_interval"
	KeyDebug               = "debug"
)

// Config represents application configuration.
type Config struct {
	Database DatabaseConfig
	Debug    bool
	// File is the config file that was read, if any.
	File string
}

// DatabaseConfig represents database configuration.
type DatabaseConfig struct {
	Provider            string
	URL                 string
	Driver              string
	PrimaryKey          string
	MaxConnections      int
	MaxIdleTime         int
	ConnectTimeout      int
	HealthCheckInterval int
}

// LoadConfig loads configuration from the config file, .env files and the
// environment, in increasing order of precedence.
func LoadConfig() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}
	return Load(AppFs, home)
}

// Load is LoadConfig with an explicit filesystem and home directory.
func Load(fs afero.Fs, home string) (*Config, error) {
	v := viper.New()
	v.SetFs(fs)

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(home)
	v.AddConfigPath(configDir(home))

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault(KeyPrimaryKey, "id")
	v.SetDefault(KeyDebug, false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// .env never overrides the environment; .env.local overrides both.
	if err := loadEnvFile(fs, ".env", false); err != nil {
		return nil, err
	}
	if err := loadEnvFile(fs, ".env.local", true); err != nil {
		return nil, err
	}

	url := v.GetString(KeyDatabaseURL)
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}

	return &Config{
		Database: DatabaseConfig{
			Provider:            v.GetString(KeyProvider),
			URL:                 url,
			Driver:              v.GetString(KeyDriver),
			PrimaryKey:          v.GetString(KeyPrimaryKey),
			MaxConnections:      v.GetInt(KeyMaxConnections),
			MaxIdleTime:         v.GetInt(KeyMaxIdleTime),
			ConnectTimeout:      v.GetInt(KeyConnectTimeout),
			HealthCheckInterval: v.GetInt(KeyHealthCheckInterval),
		},
		Debug: v.GetBool(KeyDebug),
		File:  v.ConfigFileUsed(),
	}, nil
}

func loadEnvFile(fs afero.Fs, name string, overload bool) error {
	f, err := fs.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}

	for k, val := range vars {
		if _, set := os.LookupEnv(k); set && !overload {
			continue
		}
		if err := os.Setenv(k, val); err != nil {
			return err
		}
	}
	return nil
}

// SaveConfig saves configuration to $HOME/.config/sqladmin/.sqladmin.yaml
// and returns the path written.
func SaveConfig(cfg *Config) (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return Save(AppFs, home, cfg)
}

// Save is SaveConfig with an explicit filesystem and home directory.
// The database URL is not persisted; it usually carries credentials.
func Save(fs afero.Fs, home string, cfg *Config) (string, error) {
	v := viper.New()
	v.SetFs(fs)

	v.Set(KeyProvider, cfg.Database.Provider)
	v.Set(KeyDriver, cfg.Database.Driver)
	v.Set(KeyPrimaryKey, cfg.Database.PrimaryKey)
	v.Set(KeyMaxConnections, cfg.Database.MaxConnections)
	v.Set(KeyMaxIdleTime, cfg.Database.MaxIdleTime)
	v.Set(KeyConnectTimeout, cfg.Database.ConnectTimeout)
	v.Set(KeyHealthCheckInterval, cfg.Database.HealthCheckInterval)
	v.Set(KeyDebug, cfg.Debug)

	dir := configDir(home)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, FileName+".yaml")
	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return path, nil
}

func configDir(home string) string {
	return filepath.Join(home, ".config", "sqladmin")
}
