package config

import (
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/vivasst/risk_survey/pkg/storage"
	"gopkg.in/yaml.v3"
)

// Config captures service level configuration loaded from config.yaml.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	CORS     CORSConfig     `yaml:"cors"`
	Upload   UploadConfig   `yaml:"upload"`
	Redis    RedisConfig    `yaml:"redis"`
	Storage  storage.Config `yaml:"storage"`
	Survey   SurveyConfig   `yaml:"survey"`
}

// RedisConfig defines Redis connection settings for distributed locking.
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// CORSConfig defines CORS middleware settings.
type CORSConfig struct {
	AllowOrigin      string `yaml:"allow_origin"`
	AllowMethods     string `yaml:"allow_methods"`
	AllowHeaders     string `yaml:"allow_headers"`
	AllowCredentials bool   `yaml:"allow_credentials"`
}

// UploadConfig defines attachment upload constraints.
type UploadConfig struct {
	MaxSize      int64    `yaml:"max_size"`
	AllowedTypes []string `yaml:"allowed_types"`
}

// SurveyConfig defines survey engine behavior.
type SurveyConfig struct {
	// SeedOnStartup installs the default classification ranges, starter
	// hazard catalog and exposure references on boot.
	SeedOnStartup bool `yaml:"seed_on_startup"`
	// WriteLockKey is the Redis key guarding the legacy migration job when
	// multiple instances run against the same database.
	WriteLockKey string `yaml:"write_lock_key"`
	// WriteLockTTLSeconds bounds how long the migration lock is held.
	WriteLockTTLSeconds int `yaml:"write_lock_ttl_seconds"`
}

// ServerConfig defines HTTP server options.
type ServerConfig struct {
	Address  string `yaml:"address"`
	BasePath string `yaml:"base_path"`
}

// DatabaseConfig defines the database backend configuration.
type DatabaseConfig struct {
	Driver   string         `yaml:"driver"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	MySQL    MySQLConfig    `yaml:"mysql"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// SQLiteConfig contains SQLite specific settings.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// MySQLConfig contains MySQL specific connection details.
type MySQLConfig struct {
	DSN string `yaml:"dsn"`
}

// PostgresConfig contains PostgreSQL specific connection details.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// Load reads a YAML configuration file from the provided path.
// It searches in the current working directory first, then next to the binary executable.
func Load(name string) (*Config, error) {
	cfg := defaultConfig()

	configPath := findConfigFile(name)
	if configPath == "" {
		log.Printf("Warning: config file %q not found, using defaults", name)
		return cfg, nil
	}

	log.Printf("Loading config from: %s", configPath)
	f, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	var parsed Config
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	applyDefaults(&parsed)
	return &parsed, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address: ":8080",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			SQLite: SQLiteConfig{
				Path: "data/survey.db",
			},
		},
		CORS: CORSConfig{
			AllowOrigin:      "*",
			AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders:     "*",
			AllowCredentials: false,
		},
		Upload: UploadConfig{
			MaxSize: 10 * 1024 * 1024, // 10MB
			AllowedTypes: []string{
				"image/jpeg",
				"image/png",
				"image/gif",
				"image/webp",
				"image/heic",
				"application/pdf",
				"application/msword",
				"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
				"application/vnd.ms-excel",
				"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
				"text/plain",
				"text/csv",
				"audio/mpeg",
				"audio/wav",
				"video/mp4",
				"video/quicktime",
			},
		},
		Storage: storage.DefaultConfig(),
		Survey: SurveyConfig{
			SeedOnStartup:       true,
			WriteLockKey:        "risk_survey:migration_lock",
			WriteLockTTLSeconds: 300,
		},
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.SQLite.Path == "" {
		cfg.Database.SQLite.Path = "data/survey.db"
	}
	if cfg.Storage.Type == "" {
		cfg.Storage = storage.DefaultConfig()
	}
	if cfg.Survey.WriteLockKey == "" {
		cfg.Survey.WriteLockKey = "risk_survey:migration_lock"
	}
	if cfg.Survey.WriteLockTTLSeconds <= 0 {
		cfg.Survey.WriteLockTTLSeconds = 300
	}
}

// findConfigFile searches for a config file in the current directory first,
// then next to the binary executable. Returns the full path or empty string.
func findConfigFile(name string) string {
	// 1. Current working directory
	if _, err := os.Stat(name); err == nil {
		abs, _ := filepath.Abs(name)
		return abs
	}

	// 2. Next to the binary executable
	exe, err := os.Executable()
	if err == nil {
		exeDir := filepath.Dir(exe)
		candidate := filepath.Join(exeDir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// NormalizeBasePath cleans up user input and returns a URL path prefix suitable for routing.
// Examples:
//
//	"", "/", " ."        -> ""
//	"survey"             -> "/survey"
//	"/survey/"           -> "/survey"
//	"/nested/prefix/"    -> "/nested/prefix"
func NormalizeBasePath(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	cleaned := path.Clean("/" + strings.TrimPrefix(trimmed, "/"))
	if cleaned == "." || cleaned == "/" {
		return ""
	}
	return strings.TrimSuffix(cleaned, "/")
}
