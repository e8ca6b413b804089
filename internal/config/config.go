// Package config provides configuration for the notes server. It loads
// settings from CLI flags and environment variables, validates them, and
// provides sensible defaults for a local single-user deployment.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

const (
	// DefaultListenAddr binds to loopback only; this is a single-user
	// local tool, not a network service.
	DefaultListenAddr = "127.0.0.1:8484"

	// DefaultDatabasePath is the SQLite file holding the persisted notes.
	DefaultDatabasePath = "./data/notes.db"

	// DefaultTemplatesDir is where the web UI templates live.
	DefaultTemplatesDir = "./web/templates"
)

// Config holds all application configuration.
type Config struct {
	// ListenAddr is the address the local web UI binds to.
	ListenAddr string

	// DatabasePath is the SQLite file backing the key-value store.
	// Ignored when InMemory is set.
	DatabasePath string

	// TemplatesDir is the directory containing HTML templates.
	TemplatesDir string

	// InMemory replaces the SQLite store with a volatile in-memory one.
	// Useful for trying the tool out without touching the filesystem.
	InMemory bool
}

// ValidationError represents a configuration validation error with multiple issues.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// ParseFlags parses CLI flags and returns them. Call before LoadConfig.
func ParseFlags() (addr, dbPath, templatesDir string, inMemory bool) {
	flag.StringVar(&addr, "addr", "", "Listen address (default "+DefaultListenAddr+", overrides NOTES_LISTEN_ADDR)")
	flag.StringVar(&dbPath, "db", "", "SQLite database path (default "+DefaultDatabasePath+", overrides NOTES_DB_PATH)")
	flag.StringVar(&templatesDir, "templates", "", "Templates directory (default "+DefaultTemplatesDir+", overrides NOTES_TEMPLATES_DIR)")
	flag.BoolVar(&inMemory, "in-memory", false, "Keep notes in memory only (no database file)")
	flag.Parse()
	return addr, dbPath, templatesDir, inMemory
}

// LoadConfig loads configuration from environment variables and CLI flag
// values. Non-empty flag values override the corresponding env vars.
func LoadConfig(addr, dbPath, templatesDir string, inMemory bool) (*Config, error) {
	cfg := &Config{InMemory: inMemory}

	cfg.ListenAddr = getEnvOrDefault("NOTES_LISTEN_ADDR", DefaultListenAddr)
	if addr != "" {
		cfg.ListenAddr = addr
	}

	cfg.DatabasePath = getEnvOrDefault("NOTES_DB_PATH", DefaultDatabasePath)
	if dbPath != "" {
		cfg.DatabasePath = dbPath
	}

	cfg.TemplatesDir = getEnvOrDefault("NOTES_TEMPLATES_DIR", DefaultTemplatesDir)
	if templatesDir != "" {
		cfg.TemplatesDir = templatesDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that all required configuration is present and valid.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.ListenAddr) == "" {
		errs = append(errs, "listen address is required (set NOTES_LISTEN_ADDR or --addr)")
	}
	if !c.InMemory && strings.TrimSpace(c.DatabasePath) == "" {
		errs = append(errs, "database path is required (set NOTES_DB_PATH, --db, or use --in-memory)")
	}
	if strings.TrimSpace(c.TemplatesDir) == "" {
		errs = append(errs, "templates directory is required (set NOTES_TEMPLATES_DIR or --templates)")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
