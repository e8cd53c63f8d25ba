// Package schema provides live database metadata for completion.
//
// Lookups are cached with a short TTL so the completer can hit the
// provider on every keystroke without flooding the database. Failures
// degrade to empty results: completion quality drops, the prompt never
// breaks.
package schema

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quillsql/quill/pkg/dialect"
)

// DefaultTTL is how long cached metadata stays fresh.
const DefaultTTL = 30 * time.Second

// Column describes one column of a table.
type Column struct {
	Name     string
	DataType string
	Nullable bool
}

// Provider supplies schema metadata for completion.
type Provider interface {
	// Schemas lists the namespaces visible to the connection.
	Schemas(ctx context.Context) []string

	// Tables lists table and view names. An empty schema means the
	// engine's default namespace.
	Tables(ctx context.Context, schema string) []string

	// Columns lists the columns of a table, or nil when the table is
	// unknown.
	Columns(ctx context.Context, schema, table string) []Column
}

// DBProvider reads metadata from a live connection. Safe for concurrent
// use.
type DBProvider struct {
	db     *sql.DB
	typ    dialect.DatabaseType
	ttl    time.Duration
	logger *slog.Logger

	mu      sync.Mutex
	tables  map[string]cachedTables
	columns map[string]cachedColumns
}

type cachedTables struct {
	names   []string
	fetched time.Time
}

type cachedColumns struct {
	cols    []Column
	fetched time.Time
}

// NewProvider wraps a connection in a caching metadata provider.
func NewProvider(db *sql.DB, typ dialect.DatabaseType, logger *slog.Logger) *DBProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &DBProvider{
		db:      db,
		typ:     typ,
		ttl:     DefaultTTL,
		logger:  logger,
		tables:  make(map[string]cachedTables),
		columns: make(map[string]cachedColumns),
	}
}

// Schemas lists namespaces. SQLite has a single implicit namespace.
func (p *DBProvider) Schemas(ctx context.Context) []string {
	var query string
	switch p.typ {
	case dialect.TypePostgres:
		query = `SELECT schema_name FROM information_schema.schemata
			WHERE schema_name NOT IN ('pg_catalog', 'information_schema')
			ORDER BY schema_name`
	case dialect.TypeMySQL:
		query = `SELECT schema_name FROM information_schema.schemata
			WHERE schema_name NOT IN ('mysql', 'sys', 'performance_schema', 'information_schema')
			ORDER BY schema_name`
	default:
		return []string{"main"}
	}
	return p.queryStrings(ctx, query)
}

// Tables lists tables and views in a schema, serving from cache while
// fresh.
func (p *DBProvider) Tables(ctx context.Context, schema string) []string {
	p.mu.Lock()
	if c, ok := p.tables[schema]; ok && time.Since(c.fetched) < p.ttl {
		p.mu.Unlock()
		return c.names
	}
	p.mu.Unlock()

	names := p.fetchTables(ctx, schema)

	p.mu.Lock()
	p.tables[schema] = cachedTables{names: names, fetched: time.Now()}
	p.mu.Unlock()
	return names
}

func (p *DBProvider) fetchTables(ctx context.Context, schema string) []string {
	switch p.typ {
	case dialect.TypePostgres:
		if schema == "" {
			schema = "public"
		}
		return p.queryStrings(ctx, `SELECT table_name FROM information_schema.tables
			WHERE table_schema = $1 ORDER BY table_name`, schema)
	case dialect.TypeMySQL:
		if schema == "" {
			return p.queryStrings(ctx, `SELECT table_name FROM information_schema.tables
				WHERE table_schema = DATABASE() ORDER BY table_name`)
		}
		return p.queryStrings(ctx, `SELECT table_name FROM information_schema.tables
			WHERE table_schema = ? ORDER BY table_name`, schema)
	case dialect.TypeSQLite:
		return p.queryStrings(ctx, `SELECT name FROM sqlite_master
			WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%'
			ORDER BY name`)
	default:
		return nil
	}
}

// Columns lists the columns of a table, serving from cache while fresh.
func (p *DBProvider) Columns(ctx context.Context, schema, table string) []Column {
	key := schema + "." + table

	p.mu.Lock()
	if c, ok := p.columns[key]; ok && time.Since(c.fetched) < p.ttl {
		p.mu.Unlock()
		return c.cols
	}
	p.mu.Unlock()

	cols := p.fetchColumns(ctx, schema, table)

	p.mu.Lock()
	p.columns[key] = cachedColumns{cols: cols, fetched: time.Now()}
	p.mu.Unlock()
	return cols
}

func (p *DBProvider) fetchColumns(ctx context.Context, schema, table string) []Column {
	switch p.typ {
	case dialect.TypePostgres:
		if schema == "" {
			schema = "public"
		}
		return p.queryColumns(ctx, `SELECT column_name, data_type, is_nullable
			FROM information_schema.columns
			WHERE table_schema = $1 AND table_name = $2
			ORDER BY ordinal_position`, schema, table)
	case dialect.TypeMySQL:
		if schema == "" {
			return p.queryColumns(ctx, `SELECT column_name, data_type, is_nullable
				FROM information_schema.columns
				WHERE table_schema = DATABASE() AND table_name = ?
				ORDER BY ordinal_position`, table)
		}
		return p.queryColumns(ctx, `SELECT column_name, data_type, is_nullable
			FROM information_schema.columns
			WHERE table_schema = ? AND table_name = ?
			ORDER BY ordinal_position`, schema, table)
	case dialect.TypeSQLite:
		return p.sqliteColumns(ctx, table)
	default:
		return nil
	}
}

func (p *DBProvider) sqliteColumns(ctx context.Context, table string) []Column {
	rows, err := p.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		p.logger.Debug("column lookup failed", "table", table, "error", err)
		return nil
	}
	defer func() { _ = rows.Close() }()

	var cols []Column
	for rows.Next() {
		var cid, notNull, pk int
		var name, colType string
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			continue
		}
		cols = append(cols, Column{Name: name, DataType: colType, Nullable: notNull == 0})
	}
	_ = rows.Err()
	return cols
}

// WarmUp pre-fetches tables and their columns concurrently. Errors are
// logged, not returned: a cold cache is just slower, not broken.
func (p *DBProvider) WarmUp(ctx context.Context, schema string) {
	tables := p.Tables(ctx, schema)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, table := range tables {
		table := table
		g.Go(func() error {
			p.Columns(gctx, schema, table)
			return nil
		})
	}
	_ = g.Wait()
}

// Invalidate drops all cached metadata.
func (p *DBProvider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tables = make(map[string]cachedTables)
	p.columns = make(map[string]cachedColumns)
}

func (p *DBProvider) queryStrings(ctx context.Context, query string, args ...any) []string {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		p.logger.Debug("metadata query failed", "error", err)
		return nil
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var s string
		if rows.Scan(&s) == nil {
			out = append(out, s)
		}
	}
	_ = rows.Err()
	return out
}

func (p *DBProvider) queryColumns(ctx context.Context, query string, args ...any) []Column {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		p.logger.Debug("metadata query failed", "error", err)
		return nil
	}
	defer func() { _ = rows.Close() }()

	var cols []Column
	for rows.Next() {
		var name, dataType, nullable string
		if rows.Scan(&name, &dataType, &nullable) == nil {
			cols = append(cols, Column{
				Name:     name,
				DataType: dataType,
				Nullable: nullable == "YES",
			})
		}
	}
	_ = rows.Err()
	return cols
}
