// Package db opens database connections for the supported engines.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/quillsql/quill/pkg/dialect"
)

// driverName maps a database type to its registered driver.
func driverName(t dialect.DatabaseType) (string, error) {
	switch t {
	case dialect.TypePostgres:
		return "pgx", nil
	case dialect.TypeMySQL:
		return "mysql", nil
	case dialect.TypeSQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("no driver for database type %q", t)
	}
}

// SniffType guesses the database type from a connection string. URL
// schemes win; anything else is treated as a SQLite file path.
func SniffType(dsn string) dialect.DatabaseType {
	lower := strings.ToLower(strings.TrimSpace(dsn))

	switch {
	case strings.HasPrefix(lower, "postgres://"),
		strings.HasPrefix(lower, "postgresql://"):
		return dialect.TypePostgres
	case strings.HasPrefix(lower, "mysql://"),
		strings.HasPrefix(lower, "mariadb://"):
		return dialect.TypeMySQL
	case strings.HasPrefix(lower, "sqlite://"),
		strings.HasPrefix(lower, "sqlite3://"),
		lower == ":memory:",
		strings.HasSuffix(lower, ".db"),
		strings.HasSuffix(lower, ".sqlite"),
		strings.HasSuffix(lower, ".sqlite3"):
		return dialect.TypeSQLite
	default:
		return dialect.TypeGeneric
	}
}

// NormalizeDSN rewrites a URL-style connection string into the form the
// engine's driver expects. Postgres URLs pass through (pgx accepts them);
// MySQL URLs become user:pass@tcp(host:port)/dbname; sqlite:// prefixes
// are stripped to a bare path.
func NormalizeDSN(t dialect.DatabaseType, dsn string) (string, error) {
	switch t {
	case dialect.TypeMySQL:
		if !strings.Contains(dsn, "://") {
			return dsn, nil
		}
		return mysqlDSN(dsn)
	case dialect.TypeSQLite:
		for _, prefix := range []string{"sqlite://", "sqlite3://"} {
			if strings.HasPrefix(dsn, prefix) {
				return strings.TrimPrefix(dsn, prefix), nil
			}
		}
		return dsn, nil
	default:
		return dsn, nil
	}
}

func mysqlDSN(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse mysql url: %w", err)
	}

	host := u.Host
	if u.Port() == "" {
		host += ":3306"
	}

	var auth string
	if u.User != nil {
		auth = u.User.Username()
		if pw, ok := u.User.Password(); ok {
			auth += ":" + pw
		}
		auth += "@"
	}

	dbname := strings.TrimPrefix(u.Path, "/")
	dsn := fmt.Sprintf("%stcp(%s)/%s", auth, host, dbname)
	if u.RawQuery != "" {
		dsn += "?" + u.RawQuery
	}
	return dsn, nil
}

// Open connects to the database, verifies the connection with a ping, and
// returns the handle. The caller owns the returned *sql.DB.
func Open(ctx context.Context, t dialect.DatabaseType, dsn string) (*sql.DB, error) {
	driver, err := driverName(t)
	if err != nil {
		return nil, err
	}

	normalized, err := NormalizeDSN(t, dsn)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driver, normalized)
	if err != nil {
		return nil, fmt.Errorf("open %s connection: %w", t, err)
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s: %w", t, err)
	}

	return conn, nil
}
