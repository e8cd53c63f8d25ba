// Package config provides configuration management for the quill CLI.
package config

// ConnectionConfig describes one named database connection. Either DSN or
// the host/port/user fields are set; DSN wins when both are present.
type ConnectionConfig struct {
	Type     string `koanf:"type"`
	DSN      string `koanf:"dsn"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Database string `koanf:"database"`
	Schema   string `koanf:"schema"`
}

// Config holds all CLI configuration options.
type Config struct {
	DefaultConnection string                      `koanf:"default_connection"`
	Connections       map[string]ConnectionConfig `koanf:"connections"`
	Format            string                      `koanf:"format"`
	HistoryFile       string                      `koanf:"history_file"`
	Verbose           bool                        `koanf:"verbose"`
}

// Default configuration values.
const (
	DefaultFormat      = "table"
	DefaultHistoryFile = ".quill/history"
)
