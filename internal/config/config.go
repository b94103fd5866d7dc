package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
	Board     BoardConfig     `yaml:"board"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	CORS bool   `yaml:"cors"`
}

// DBConfig points at the SQLite database. The default is a shared in-memory
// database, so nothing outlives the process.
type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"` // "http" or "stdio"
}

type BoardConfig struct {
	DefaultID string `yaml:"default_id"`
	SeedPath  string `yaml:"seed_path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
			CORS: true,
		},
		DB: DBConfig{
			Path: "file:keydeck?mode=memory&cache=shared",
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Board: BoardConfig{
			DefaultID: "default",
		},
	}
}

// Load reads configuration from an optional .env file, an optional YAML file
// and environment variables, in that order of increasing precedence.
func Load() (Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv("KEYDECK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("KEYDECK_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("KEYDECK_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid KEYDECK_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if corsStr := os.Getenv("KEYDECK_SERVER_CORS"); corsStr != "" {
		enabled, err := strconv.ParseBool(corsStr)
		if err != nil {
			return fmt.Errorf("invalid KEYDECK_SERVER_CORS: %w", err)
		}
		cfg.Server.CORS = enabled
	}
	if dbPath := os.Getenv("KEYDECK_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("KEYDECK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("KEYDECK_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if mode := os.Getenv("KEYDECK_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if id := os.Getenv("KEYDECK_DEFAULT_BOARD"); id != "" {
		cfg.Board.DefaultID = id
	}
	if seedPath := os.Getenv("KEYDECK_SEED_PATH"); seedPath != "" {
		cfg.Board.SeedPath = seedPath
	}
	return nil
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.Transport.Mode {
	case "http", "stdio":
	default:
		return fmt.Errorf("invalid transport mode %q", c.Transport.Mode)
	}
	if c.Board.DefaultID == "" {
		return fmt.Errorf("board.default_id must not be empty")
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
