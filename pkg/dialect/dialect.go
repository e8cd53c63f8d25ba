// Package dialect defines the contract for per-engine SQL completion
// plugins.
//
// Each supported database engine gets one Engine implementation that wraps
// the dialect-neutral parse result from pkg/sqlparse with engine-specific
// operator detection, keyword catalogs, per-clause validity rules, and
// ranked completion hints. Concrete implementations live in pkg/dialects/*
// and register themselves via init(); unknown engines fall back to the
// Generic engine, which accepts everything and suggests nothing
// engine-specific.
package dialect

import (
	"strings"

	"github.com/quillsql/quill/pkg/sqlparse"
)

// DatabaseType identifies a supported database engine.
type DatabaseType int

// Supported engine types. TypeGeneric is the fallback for anything
// unrecognized.
const (
	TypeGeneric DatabaseType = iota
	TypePostgres
	TypeMySQL
	TypeSQLite
)

// String returns the canonical engine name.
func (t DatabaseType) String() string {
	switch t {
	case TypePostgres:
		return "postgres"
	case TypeMySQL:
		return "mysql"
	case TypeSQLite:
		return "sqlite"
	default:
		return "generic"
	}
}

// ParseDatabaseType maps an engine identifier to a DatabaseType. Unknown
// identifiers map to TypeGeneric; there is no error case.
func ParseDatabaseType(name string) DatabaseType {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "postgresql", "pg", "pgx":
		return TypePostgres
	case "mysql", "mariadb":
		return TypeMySQL
	case "sqlite", "sqlite3":
		return TypeSQLite
	default:
		return TypeGeneric
	}
}

// KeywordCategory groups an engine's keyword catalog.
type KeywordCategory int

// Keyword categories every engine can be queried for.
const (
	CategoryDDL KeywordCategory = iota
	CategoryDML
	CategoryFunctions
	CategoryOperators
	CategoryDataTypes
	CategorySystemFunctions
	CategoryAggregateFunctions
	CategoryWindowFunctions
)

// HintCategory classifies a completion hint.
type HintCategory int

// Hint categories.
const (
	HintKeyword HintCategory = iota
	HintFunction
	HintOperator
	HintDataType
	HintTableName
	HintColumnName
	HintSchemaName
	HintDatabaseSpecific
)

// CompletionHint is a ranked suggestion offered at the cursor. Higher
// Priority sorts first. RequiresParens tells the front end to append "()"
// on acceptance.
type CompletionHint struct {
	Text           string
	Description    string
	Category       HintCategory
	RequiresParens bool
	Priority       int
}

// EnhancedContext wraps the dialect-neutral parse result with
// engine-specific context.
type EnhancedContext struct {
	Base   *sqlparse.Context
	Engine EngineContext
	Type   DatabaseType
}

// Engine is the capability set every dialect plugin satisfies. No method
// fails: malformed input degrades suggestion quality, never errors.
type Engine interface {
	// Type returns the engine this plugin handles.
	Type() DatabaseType

	// ParseAtCursor parses sql and wraps the base context with
	// engine-specific context detected around the cursor.
	ParseAtCursor(sql string, cursor int) *EnhancedContext

	// KeywordsByCategory returns the engine's catalog for a category.
	KeywordsByCategory(cat KeywordCategory) []string

	// Functions returns the engine's function catalog.
	Functions() []string

	// Operators returns the engine's operator catalog.
	Operators() []string

	// DataTypes returns the engine's data type catalog.
	DataTypes() []string

	// IsKeywordValid reports whether keyword is plausible in the clause
	// active in ctx. Used for ranking, never to block input.
	IsKeywordValid(keyword string, ctx *EnhancedContext) bool

	// Suggestions prefix-filters the clause-appropriate catalog against
	// the partial word under the cursor.
	Suggestions(ctx *EnhancedContext, partial string) []string

	// OperatorsAtCursor returns engine-specific operators found in a
	// small window around the cursor.
	OperatorsAtCursor(sql string, cursor int) []string

	// Hints returns prioritized completion hints conditioned on the
	// engine context (detected CTEs, storage engine clauses, pragmas).
	Hints(ctx *EnhancedContext) []CompletionHint
}

// operatorWindow is the number of bytes inspected on each side of the
// cursor when scanning for engine-specific operators.
const operatorWindow = 10

// CursorWindow returns the slice of sql surrounding cursor used for
// operator detection, clamped to the input bounds.
func CursorWindow(sql string, cursor int) string {
	start := cursor - operatorWindow
	if start < 0 {
		start = 0
	}
	end := cursor + operatorWindow
	if end > len(sql) {
		end = len(sql)
	}
	if start > len(sql) {
		start = len(sql)
	}
	if end < start {
		end = start
	}
	return sql[start:end]
}

// PrefixFilter returns the entries of candidates that start with partial,
// case-insensitively. An empty partial matches everything.
func PrefixFilter(candidates []string, partial string) []string {
	lower := strings.ToLower(partial)
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), lower) {
			out = append(out, c)
		}
	}
	return out
}
