package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Package-level koanf instance and config file tracking.
var (
	k              = koanf.New(".")
	configFileUsed string
)

// maxUpwardSearchLevels limits how far up the directory tree to search for
// config files.
const maxUpwardSearchLevels = 10

// configFileIn returns the path of a quill config file in the directory,
// or "" when neither name exists.
func configFileIn(dir string) string {
	for _, name := range []string{"quill.yaml", "quill.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findConfigFile finds the config file to use.
// Priority: explicit path > quill.yaml > quill.yml, searched from startDir
// upward until the filesystem root or maxUpwardSearchLevels.
func findConfigFile(explicit, startDir string) string {
	if explicit != "" {
		return explicit
	}
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if path := configFileIn(dir); path != "" {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}
	return ""
}

// GetConfigFileUsed returns the path of the config file the last load
// read, or "" when none was found.
func GetConfigFileUsed() string {
	return configFileUsed
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
}

// LoadConfig loads configuration from file, environment variables, and
// flags. Precedence (highest to lowest): flags > env vars > config file >
// defaults.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"format":       DefaultFormat,
		"history_file": DefaultHistoryFile,
		"verbose":      false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Load config file, searching upward from the working directory
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	configFileUsed = findConfigFile(cfgFile, cwd)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Load environment variables (QUILL_ prefix)
	// Transform: QUILL_FORMAT -> format
	if err := k.Load(env.Provider("QUILL_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "QUILL_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = DefaultHistoryFile
	}

	return &cfg, nil
}

// Resolve returns the connection identified by name, or the default
// connection when name is empty. A name that is not configured but looks
// like a DSN is returned as an ad hoc connection.
func (c *Config) Resolve(name string) (ConnectionConfig, error) {
	if name == "" {
		name = c.DefaultConnection
	}
	if name == "" {
		return ConnectionConfig{}, fmt.Errorf("no connection named and no default_connection configured")
	}

	if conn, ok := c.Connections[name]; ok {
		return conn, nil
	}
	if strings.Contains(name, "://") || name == ":memory:" || strings.Contains(name, "/") {
		return ConnectionConfig{DSN: name}, nil
	}
	return ConnectionConfig{}, fmt.Errorf("unknown connection %q", name)
}

// EffectiveDSN assembles the connection string for a connection. Explicit
// DSNs win; otherwise a URL is built from the individual fields.
func (conn ConnectionConfig) EffectiveDSN() string {
	if conn.DSN != "" {
		return conn.DSN
	}

	scheme := conn.Type
	if scheme == "" {
		scheme = "postgres"
	}

	u := url.URL{Scheme: scheme, Path: "/" + conn.Database}
	host := conn.Host
	if host == "" {
		host = "localhost"
	}
	if conn.Port != 0 {
		host = fmt.Sprintf("%s:%d", host, conn.Port)
	}
	u.Host = host

	if conn.User != "" {
		if conn.Password != "" {
			u.User = url.UserPassword(conn.User, conn.Password)
		} else {
			u.User = url.User(conn.User)
		}
	}

	return u.String()
}
