// Package sqlite implements the SQLite completion engine.
//
// It recognizes PRAGMA statements, virtual tables, and WITHOUT ROWID
// clauses on top of the dialect-neutral parser.
package sqlite

import (
	"strings"

	"github.com/quillsql/quill/pkg/dialect"
	"github.com/quillsql/quill/pkg/sqlparse"
)

func init() {
	dialect.Register(Engine{})
}

// Engine is the SQLite dialect plugin.
type Engine struct{}

// Type returns dialect.TypeSQLite.
func (Engine) Type() dialect.DatabaseType {
	return dialect.TypeSQLite
}

// ParseAtCursor wraps the base parse with SQLite pattern detection.
func (e Engine) ParseAtCursor(sql string, cursor int) *dialect.EnhancedContext {
	return &dialect.EnhancedContext{
		Base:   sqlparse.ParseAtCursor(sql, cursor),
		Engine: detectPatterns(sql),
		Type:   dialect.TypeSQLite,
	}
}

// detectPatterns scans the whole query for SQLite-specific syntax.
func detectPatterns(sql string) dialect.SQLiteContext {
	upper := strings.ToUpper(sql)

	ctx := dialect.SQLiteContext{
		Pragma: pragmaStatement(sql),
		VirtualTable: strings.Contains(upper, "VIRTUAL TABLE") ||
			strings.Contains(upper, "USING FTS") ||
			strings.Contains(upper, "USING RTREE"),
		WithoutRowid: strings.Contains(upper, "WITHOUT ROWID"),
	}

	return ctx
}

// pragmaStatement returns the trimmed PRAGMA statement body, or "" when
// the query holds none. Only the first PRAGMA is reported, up to the
// terminating semicolon.
func pragmaStatement(sql string) string {
	upper := strings.ToUpper(sql)
	idx := strings.Index(upper, "PRAGMA")
	if idx < 0 {
		return ""
	}

	rest := sql[idx:]
	if end := strings.IndexByte(rest, ';'); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

// OperatorsAtCursor scans a small window around the cursor for SQLite
// operators.
func (Engine) OperatorsAtCursor(sql string, cursor int) []string {
	window := dialect.CursorWindow(sql, cursor)
	upper := strings.ToUpper(window)
	var ops []string

	if strings.Contains(upper, "GLOB") {
		ops = append(ops, "GLOB")
	}
	if strings.Contains(upper, "MATCH") {
		ops = append(ops, "MATCH")
	}
	if strings.Contains(upper, "REGEXP") {
		ops = append(ops, "REGEXP")
	}
	if strings.Contains(window, "->") {
		ops = append(ops, "->", "->>")
	}
	if strings.Contains(window, "||") {
		ops = append(ops, "||")
	}

	return ops
}

// KeywordsByCategory returns the SQLite keyword catalog for a category.
func (Engine) KeywordsByCategory(cat dialect.KeywordCategory) []string {
	switch cat {
	case dialect.CategoryDDL:
		return []string{"CREATE", "ALTER", "DROP", "REINDEX", "VACUUM", "ANALYZE", "PRAGMA"}
	case dialect.CategoryDML:
		return []string{"SELECT", "INSERT", "UPDATE", "DELETE", "REPLACE", "UPSERT"}
	case dialect.CategoryFunctions:
		return []string{
			"IFNULL", "COALESCE", "NULLIF", "TYPEOF", "LENGTH", "SUBSTR",
			"REPLACE", "TRIM", "LTRIM", "RTRIM", "UPPER", "LOWER", "HEX",
			"QUOTE", "RANDOM", "ABS", "ROUND", "GROUP_CONCAT",
		}
	case dialect.CategoryOperators:
		return []string{
			"AND", "OR", "NOT", "IN", "EXISTS", "BETWEEN", "LIKE", "GLOB",
			"MATCH", "REGEXP", "IS", "NULL", "ISNULL", "NOTNULL",
		}
	case dialect.CategoryDataTypes:
		return []string{"INTEGER", "REAL", "TEXT", "BLOB", "NUMERIC"}
	case dialect.CategorySystemFunctions:
		return []string{
			"LAST_INSERT_ROWID", "CHANGES", "TOTAL_CHANGES",
			"SQLITE_VERSION", "SQLITE_SOURCE_ID",
		}
	case dialect.CategoryAggregateFunctions:
		return []string{"COUNT", "SUM", "AVG", "MAX", "MIN", "GROUP_CONCAT", "TOTAL"}
	case dialect.CategoryWindowFunctions:
		return []string{
			"ROW_NUMBER", "RANK", "DENSE_RANK", "PERCENT_RANK", "CUME_DIST",
			"NTILE", "LAG", "LEAD", "FIRST_VALUE", "LAST_VALUE", "NTH_VALUE",
		}
	default:
		return nil
	}
}

// Functions returns the SQLite function catalog.
func (Engine) Functions() []string {
	return []string{
		"COUNT", "SUM", "AVG", "MAX", "MIN", "UPPER", "LOWER", "LENGTH",
		"TRIM", "LTRIM", "RTRIM", "SUBSTR", "REPLACE", "ABS", "ROUND",
		"COALESCE", "NULLIF", "IFNULL",

		"TYPEOF", "HEX", "QUOTE", "RANDOM", "RANDOMBLOB", "ZEROBLOB",
		"GLOB", "LIKE", "LIKELIHOOD", "LIKELY", "UNLIKELY", "CHAR",
		"UNICODE", "INSTR", "PRINTF", "FORMAT", "SOUNDEX",
		"GROUP_CONCAT", "TOTAL", "LAST_INSERT_ROWID", "CHANGES",
		"TOTAL_CHANGES", "SQLITE_VERSION", "SQLITE_SOURCE_ID",

		"DATE", "TIME", "DATETIME", "JULIANDAY", "UNIXEPOCH", "STRFTIME",

		"JSON", "JSON_ARRAY", "JSON_ARRAY_LENGTH", "JSON_EXTRACT",
		"JSON_INSERT", "JSON_OBJECT", "JSON_PATCH", "JSON_REMOVE",
		"JSON_REPLACE", "JSON_SET", "JSON_TYPE", "JSON_VALID",
		"JSON_QUOTE", "JSON_GROUP_ARRAY", "JSON_GROUP_OBJECT",
	}
}

// Operators returns the SQLite operator catalog.
func (Engine) Operators() []string {
	return []string{
		"=", "==", "!=", "<>", "<", ">", "<=", ">=", "AND", "OR", "NOT",
		"IN", "LIKE", "BETWEEN", "IS", "NULL",

		"GLOB", "MATCH", "REGEXP", "ISNULL", "NOTNULL", "||", "->", "->>",
	}
}

// DataTypes returns the SQLite storage class catalog. SQLite accepts any
// type name and maps it to one of these affinities.
func (Engine) DataTypes() []string {
	return []string{"INTEGER", "REAL", "TEXT", "BLOB", "NUMERIC"}
}

// IsKeywordValid applies a per-clause allow-list.
func (Engine) IsKeywordValid(keyword string, ctx *dialect.EnhancedContext) bool {
	upper := strings.ToUpper(keyword)

	switch ctx.Base.Clause {
	case sqlparse.ClauseSelect:
		switch upper {
		case "DISTINCT", "ALL", "*", "AS", "FROM", "COUNT", "SUM", "AVG",
			"MAX", "MIN", "GROUP_CONCAT", "IFNULL", "COALESCE", "TYPEOF",
			"LENGTH", "SUBSTR":
			return true
		}
		return false
	case sqlparse.ClauseFrom:
		switch upper {
		case "JOIN", "INNER", "LEFT", "OUTER", "CROSS", "NATURAL", "ON",
			"USING", "WHERE", "GROUP", "ORDER", "LIMIT", "OFFSET", "UNION",
			"INTERSECT", "EXCEPT":
			return true
		}
		return false
	case sqlparse.ClauseWhere:
		switch upper {
		case "AND", "OR", "NOT", "IN", "EXISTS", "BETWEEN", "LIKE", "GLOB",
			"MATCH", "REGEXP", "IS", "NULL", "ISNULL", "NOTNULL", "GROUP",
			"ORDER", "LIMIT", "OFFSET":
			return true
		}
		return false
	default:
		return true
	}
}

// Suggestions prefix-filters the clause-appropriate catalogs. A partial
// that starts a PRAGMA statement gets the pragma name list.
func (e Engine) Suggestions(ctx *dialect.EnhancedContext, partial string) []string {
	if strings.HasPrefix(strings.ToUpper(partial), "PRAGMA") {
		return pragmaNames
	}

	var candidates []string
	switch ctx.Base.Clause {
	case sqlparse.ClauseSelect:
		candidates = e.KeywordsByCategory(dialect.CategoryFunctions)
	case sqlparse.ClauseWhere:
		candidates = e.KeywordsByCategory(dialect.CategoryOperators)
		candidates = append(candidates, e.Operators()...)
	}
	return dialect.PrefixFilter(candidates, partial)
}

var pragmaNames = []string{
	"PRAGMA table_info(",
	"PRAGMA foreign_key_list(",
	"PRAGMA index_list(",
	"PRAGMA index_info(",
	"PRAGMA database_list",
	"PRAGMA schema_version",
	"PRAGMA user_version",
	"PRAGMA journal_mode",
	"PRAGMA synchronous",
	"PRAGMA cache_size",
	"PRAGMA foreign_keys",
	"PRAGMA integrity_check",
}

// Hints returns SQLite completion hints, conditioned on the detected
// engine context.
func (e Engine) Hints(ctx *dialect.EnhancedContext) []dialect.CompletionHint {
	hints := e.clauseHints(ctx)

	sq, ok := ctx.Engine.(dialect.SQLiteContext)
	if !ok {
		return hints
	}

	if sq.Pragma != "" {
		hints = append(hints,
			dialect.CompletionHint{Text: "table_info(", Description: "Show table column details", Category: dialect.HintDatabaseSpecific, Priority: 8},
			dialect.CompletionHint{Text: "foreign_key_list(", Description: "Show foreign key constraints", Category: dialect.HintDatabaseSpecific, Priority: 7},
		)
	}
	if sq.VirtualTable {
		hints = append(hints, dialect.CompletionHint{
			Text:        "MATCH",
			Description: "Full-text search operator",
			Category:    dialect.HintOperator,
			Priority:    9,
		})
	}
	if sq.WithoutRowid {
		hints = append(hints, dialect.CompletionHint{
			Text:        "PRIMARY KEY",
			Description: "Required for WITHOUT ROWID tables",
			Category:    dialect.HintKeyword,
			Priority:    9,
		})
	}

	return hints
}

func (Engine) clauseHints(ctx *dialect.EnhancedContext) []dialect.CompletionHint {
	var hints []dialect.CompletionHint

	switch ctx.Base.Clause {
	case sqlparse.ClauseSelect:
		hints = append(hints,
			dialect.CompletionHint{Text: "GROUP_CONCAT(", Description: "Concatenate values from multiple rows", Category: dialect.HintFunction, Priority: 8},
			dialect.CompletionHint{Text: "IFNULL(", Description: "Return alternative value if NULL", Category: dialect.HintFunction, Priority: 8},
			dialect.CompletionHint{Text: "TYPEOF(", Description: "Get storage class of value", Category: dialect.HintFunction, Priority: 7},
			dialect.CompletionHint{Text: "DATETIME(", Description: "Format date and time", Category: dialect.HintFunction, Priority: 8},
			dialect.CompletionHint{Text: "STRFTIME(", Description: "Format date with custom pattern", Category: dialect.HintFunction, Priority: 7},
			dialect.CompletionHint{Text: "JSON_EXTRACT(", Description: "Extract JSON value", Category: dialect.HintFunction, Priority: 7},
		)
	case sqlparse.ClauseWhere:
		hints = append(hints,
			dialect.CompletionHint{Text: "GLOB", Description: "Unix-style pattern matching", Category: dialect.HintOperator, Priority: 7},
			dialect.CompletionHint{Text: "MATCH", Description: "Full-text search matching", Category: dialect.HintOperator, Priority: 7},
			dialect.CompletionHint{Text: "REGEXP", Description: "Regular expression matching", Category: dialect.HintOperator, Priority: 6},
		)
	case sqlparse.ClauseUnknown:
		hints = append(hints, dialect.CompletionHint{
			Text:        "PRAGMA",
			Description: "Query or set database settings",
			Category:    dialect.HintDatabaseSpecific,
			Priority:    8,
		})
	}

	if ctx.Base.Statement == sqlparse.StatementCreateTable {
		hints = append(hints, dialect.CompletionHint{
			Text:        "WITHOUT ROWID",
			Description: "Create table without implicit rowid",
			Category:    dialect.HintDatabaseSpecific,
			Priority:    7,
		})
	}

	return hints
}
