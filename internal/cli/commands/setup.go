// Package commands implements the quill subcommands.
package commands

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillsql/quill/internal/cli/config"
	"github.com/quillsql/quill/internal/db"
	"github.com/quillsql/quill/pkg/dialect"
)

// loadConfig loads the CLI configuration using the root command's
// persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgFile, _ := cmd.Root().PersistentFlags().GetString("config")
	return config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
}

// connect resolves a connection name or DSN and opens it. It returns the
// handle, the resolved connection, and the database type.
func connect(ctx context.Context, cfg *config.Config, name string) (*sql.DB, config.ConnectionConfig, dialect.DatabaseType, error) {
	conn, err := cfg.Resolve(name)
	if err != nil {
		return nil, config.ConnectionConfig{}, dialect.TypeGeneric, err
	}

	dsn := conn.EffectiveDSN()
	typ := dialect.ParseDatabaseType(conn.Type)
	if typ == dialect.TypeGeneric {
		typ = db.SniffType(dsn)
	}
	if typ == dialect.TypeGeneric {
		return nil, config.ConnectionConfig{}, dialect.TypeGeneric,
			fmt.Errorf("cannot determine database type for %q; set type: in the connection config", name)
	}

	handle, err := db.Open(ctx, typ, dsn)
	if err != nil {
		return nil, config.ConnectionConfig{}, dialect.TypeGeneric, err
	}
	return handle, conn, typ, nil
}

// resolveFormat picks the output format: command flag, then config, then
// the default.
func resolveFormat(flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg.Format != "" {
		return cfg.Format
	}
	return config.DefaultFormat
}
