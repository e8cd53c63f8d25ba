// Package postgres implements the PostgreSQL completion engine.
//
// It layers JSON/array operator detection, window function and CTE
// awareness, and PostgreSQL catalogs over the dialect-neutral parser.
package postgres

import (
	"strings"

	"github.com/quillsql/quill/pkg/dialect"
	"github.com/quillsql/quill/pkg/sqlparse"
)

func init() {
	dialect.Register(Engine{})
}

// Engine is the PostgreSQL dialect plugin.
type Engine struct{}

// Type returns dialect.TypePostgres.
func (Engine) Type() dialect.DatabaseType {
	return dialect.TypePostgres
}

// ParseAtCursor wraps the base parse with PostgreSQL pattern detection.
func (e Engine) ParseAtCursor(sql string, cursor int) *dialect.EnhancedContext {
	return &dialect.EnhancedContext{
		Base:   sqlparse.ParseAtCursor(sql, cursor),
		Engine: detectPatterns(sql),
		Type:   dialect.TypePostgres,
	}
}

// jsonOperators are the PostgreSQL JSON/JSONB operators scanned for, in
// longest-match-irrelevant containment order.
var jsonOperators = []string{"->", "->>", "#>", "#>>", "@>", "<@", "?", "?|", "?&"}

// detectPatterns scans the whole query for PostgreSQL-specific syntax.
func detectPatterns(sql string) dialect.PostgresContext {
	ctx := dialect.PostgresContext{}

	for _, op := range jsonOperators {
		if strings.Contains(sql, op) {
			ctx.JSONOperators = append(ctx.JSONOperators, op)
		}
	}

	if strings.Contains(sql, "[") && strings.Contains(sql, "]") {
		ctx.ArrayAccesses = arrayAccesses(sql)
	}

	upper := strings.ToUpper(sql)
	for _, kw := range []string{"OVER", "PARTITION BY", "ROWS", "RANGE"} {
		if strings.Contains(upper, kw) {
			ctx.HasWindowFunctions = true
			break
		}
	}

	ctx.HasCTE = strings.Contains(upper, "WITH") &&
		(strings.Contains(upper, "AS (") || strings.Contains(upper, "AS("))

	return ctx
}

// arrayAccesses finds "name[" patterns and reports them as "name[...]".
func arrayAccesses(sql string) []string {
	var accesses []string
	var word strings.Builder

	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		switch {
		case ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9' || ch == '_':
			word.WriteByte(ch)
		case ch == '[' && word.Len() > 0:
			accesses = append(accesses, word.String()+"[...]")
			word.Reset()
		default:
			word.Reset()
		}
	}

	return accesses
}

// OperatorsAtCursor scans a small window around the cursor for PostgreSQL
// operators.
func (Engine) OperatorsAtCursor(sql string, cursor int) []string {
	window := dialect.CursorWindow(sql, cursor)
	var ops []string

	if strings.Contains(window, "->") {
		ops = append(ops, "->", "->>")
	}
	if strings.Contains(window, "#>") {
		ops = append(ops, "#>", "#>>")
	}
	if strings.Contains(window, "@>") || strings.Contains(window, "<@") {
		ops = append(ops, "@>", "<@")
	}
	if strings.Contains(window, "?") {
		ops = append(ops, "?", "?|", "?&")
	}
	if strings.Contains(window, "&&") {
		ops = append(ops, "&&")
	}
	if strings.Contains(window, "||") {
		ops = append(ops, "||")
	}
	if strings.Contains(window, "@@") {
		ops = append(ops, "@@")
	}

	return ops
}

// KeywordsByCategory returns the PostgreSQL keyword catalog for a
// category.
func (Engine) KeywordsByCategory(cat dialect.KeywordCategory) []string {
	switch cat {
	case dialect.CategoryDDL:
		return []string{"CREATE", "ALTER", "DROP", "TRUNCATE", "COMMENT", "GRANT", "REVOKE"}
	case dialect.CategoryDML:
		return []string{"SELECT", "INSERT", "UPDATE", "DELETE", "MERGE", "COPY", "RETURNING"}
	case dialect.CategoryFunctions:
		return []string{
			"COALESCE", "NULLIF", "GREATEST", "LEAST", "JSON_BUILD_OBJECT",
			"JSON_AGG", "ARRAY_AGG", "STRING_AGG", "UNNEST", "GENERATE_SERIES",
		}
	case dialect.CategoryOperators:
		return []string{
			"AND", "OR", "NOT", "IN", "EXISTS", "BETWEEN", "LIKE", "ILIKE",
			"SIMILAR", "TO", "IS", "DISTINCT", "FROM",
		}
	case dialect.CategoryDataTypes:
		return []string{
			"BIGINT", "INTEGER", "SMALLINT", "DECIMAL", "NUMERIC", "REAL",
			"DOUBLE", "PRECISION", "SERIAL", "BIGSERIAL", "MONEY", "TEXT",
			"VARCHAR", "CHAR", "BYTEA", "TIMESTAMP", "TIMESTAMPTZ", "DATE",
			"TIME", "TIMETZ", "INTERVAL", "BOOLEAN", "UUID", "JSON", "JSONB",
			"ARRAY", "INET", "CIDR", "MACADDR",
		}
	case dialect.CategorySystemFunctions:
		return []string{
			"NOW", "CURRENT_DATE", "CURRENT_TIME", "CURRENT_TIMESTAMP",
			"CURRENT_USER", "SESSION_USER", "USER", "CURRENT_CATALOG",
			"CURRENT_SCHEMA", "VERSION", "PG_BACKEND_PID",
		}
	case dialect.CategoryAggregateFunctions:
		return []string{
			"COUNT", "SUM", "AVG", "MAX", "MIN", "ARRAY_AGG", "STRING_AGG",
			"JSON_AGG", "JSONB_AGG", "BOOL_AND", "BOOL_OR", "BIT_AND",
			"BIT_OR", "STDDEV", "STDDEV_POP", "STDDEV_SAMP", "VARIANCE",
			"VAR_POP", "VAR_SAMP",
		}
	case dialect.CategoryWindowFunctions:
		return []string{
			"ROW_NUMBER", "RANK", "DENSE_RANK", "PERCENT_RANK", "CUME_DIST",
			"NTILE", "LAG", "LEAD", "FIRST_VALUE", "LAST_VALUE", "NTH_VALUE",
		}
	default:
		return nil
	}
}

// Functions returns the PostgreSQL function catalog.
func (Engine) Functions() []string {
	return []string{
		"COUNT", "SUM", "AVG", "MAX", "MIN", "UPPER", "LOWER", "LENGTH",
		"TRIM", "SUBSTR", "SUBSTRING", "REPLACE", "CONCAT", "ABS", "ROUND",
		"CEIL", "FLOOR", "COALESCE", "NULLIF", "GREATEST", "LEAST",

		"STRING_AGG", "ARRAY_AGG", "UNNEST", "GENERATE_SERIES",
		"JSON_BUILD_OBJECT", "JSON_BUILD_ARRAY", "JSON_AGG", "JSONB_AGG",
		"JSONB_BUILD_OBJECT", "JSONB_BUILD_ARRAY", "JSON_EXTRACT_PATH",
		"JSON_EXTRACT_PATH_TEXT", "JSONB_EXTRACT_PATH",
		"JSONB_EXTRACT_PATH_TEXT", "AGE", "EXTRACT", "DATE_PART",
		"DATE_TRUNC", "TO_CHAR", "TO_DATE", "TO_TIMESTAMP", "TO_NUMBER",
		"FORMAT", "LEFT", "RIGHT", "REVERSE", "TRANSLATE", "OVERLAY",
		"REGEXP_REPLACE", "REGEXP_SPLIT_TO_ARRAY", "ARRAY_APPEND",
		"ARRAY_PREPEND", "ARRAY_CAT", "ARRAY_LENGTH", "ARRAY_POSITION",
		"ARRAY_REMOVE", "ARRAY_REPLACE",
	}
}

// Operators returns the PostgreSQL operator catalog.
func (Engine) Operators() []string {
	return []string{
		"=", "!=", "<>", "<", ">", "<=", ">=", "AND", "OR", "NOT", "IN",
		"LIKE", "BETWEEN", "IS", "NULL",

		"->", "->>", "#>", "#>>", "@>", "<@", "?", "?|", "?&", "||", "&&",
		"@@", "ILIKE", "SIMILAR TO", "~", "~*", "!~", "!~*", "<<", ">>",
		"&<", "&>", "<->", "~=", "@", "##",
	}
}

// DataTypes returns the PostgreSQL data type catalog.
func (Engine) DataTypes() []string {
	return []string{
		"BIGINT", "INTEGER", "SMALLINT", "DECIMAL", "NUMERIC", "REAL",
		"DOUBLE PRECISION", "SERIAL", "BIGSERIAL", "SMALLSERIAL", "MONEY",
		"TEXT", "VARCHAR", "CHAR", "BYTEA", "TIMESTAMP", "TIMESTAMPTZ",
		"DATE", "TIME", "TIMETZ", "INTERVAL", "BOOLEAN", "UUID", "JSON",
		"JSONB", "ARRAY", "INET", "CIDR", "MACADDR", "MACADDR8", "POINT",
		"LINE", "LSEG", "BOX", "PATH", "POLYGON", "CIRCLE", "BIT", "VARBIT",
		"TSVECTOR", "TSQUERY", "XML", "PG_LSN",
	}
}

// IsKeywordValid applies a per-clause allow-list. Outside the clauses
// listed here every keyword is plausible.
func (Engine) IsKeywordValid(keyword string, ctx *dialect.EnhancedContext) bool {
	upper := strings.ToUpper(keyword)

	switch ctx.Base.Clause {
	case sqlparse.ClauseSelect:
		switch upper {
		case "DISTINCT", "ALL", "*", "AS", "FROM", "COUNT", "SUM", "AVG",
			"MAX", "MIN", "STRING_AGG", "ARRAY_AGG", "JSON_AGG", "JSONB_AGG",
			"ROW_NUMBER", "RANK", "DENSE_RANK", "OVER":
			return true
		}
		return false
	case sqlparse.ClauseFrom:
		switch upper {
		case "JOIN", "INNER", "LEFT", "RIGHT", "FULL", "OUTER", "CROSS",
			"LATERAL", "ON", "USING", "WHERE", "GROUP", "ORDER", "LIMIT",
			"OFFSET", "UNION", "INTERSECT", "EXCEPT":
			return true
		}
		return false
	case sqlparse.ClauseWhere:
		switch upper {
		case "AND", "OR", "NOT", "IN", "EXISTS", "BETWEEN", "LIKE", "ILIKE",
			"SIMILAR", "TO", "IS", "NULL", "DISTINCT", "FROM", "ANY", "SOME",
			"ALL", "GROUP", "ORDER", "LIMIT", "OFFSET":
			return true
		}
		return false
	default:
		return true
	}
}

// Suggestions prefix-filters the clause-appropriate catalogs.
func (e Engine) Suggestions(ctx *dialect.EnhancedContext, partial string) []string {
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

// Hints returns PostgreSQL completion hints, conditioned on the detected
// engine context.
func (e Engine) Hints(ctx *dialect.EnhancedContext) []dialect.CompletionHint {
	hints := e.clauseHints(ctx)

	pg, ok := ctx.Engine.(dialect.PostgresContext)
	if !ok {
		return hints
	}

	if len(pg.JSONOperators) > 0 {
		hints = append(hints, dialect.CompletionHint{
			Text:        "JSON_TYPEOF(",
			Description: "Get JSON value type",
			Category:    dialect.HintFunction,
			Priority:    6,
		})
	}
	if pg.HasWindowFunctions {
		hints = append(hints, dialect.CompletionHint{
			Text:        "PARTITION BY",
			Description: "Partition window function",
			Category:    dialect.HintKeyword,
			Priority:    8,
		})
	}
	if pg.HasCTE {
		hints = append(hints, dialect.CompletionHint{
			Text:        "RECURSIVE",
			Description: "Recursive Common Table Expression",
			Category:    dialect.HintKeyword,
			Priority:    7,
		})
	}

	return hints
}

func (Engine) clauseHints(ctx *dialect.EnhancedContext) []dialect.CompletionHint {
	var hints []dialect.CompletionHint

	switch ctx.Base.Clause {
	case sqlparse.ClauseSelect:
		hints = append(hints,
			dialect.CompletionHint{Text: "JSON_BUILD_OBJECT(", Description: "Build a JSON object from key-value pairs", Category: dialect.HintFunction, Priority: 7},
			dialect.CompletionHint{Text: "ARRAY_AGG(", Description: "Aggregate values into an array", Category: dialect.HintFunction, Priority: 8},
			dialect.CompletionHint{Text: "STRING_AGG(", Description: "Concatenate strings with separator", Category: dialect.HintFunction, Priority: 8},
			dialect.CompletionHint{Text: "ROW_NUMBER() OVER (", Description: "Assign unique row numbers", Category: dialect.HintFunction, Priority: 7},
		)
	case sqlparse.ClauseWhere:
		hints = append(hints,
			dialect.CompletionHint{Text: "->", Description: "JSON field accessor (returns JSON)", Category: dialect.HintOperator, Priority: 8},
			dialect.CompletionHint{Text: "->>", Description: "JSON field accessor (returns text)", Category: dialect.HintOperator, Priority: 8},
			dialect.CompletionHint{Text: "@>", Description: "JSON/Array contains operator", Category: dialect.HintOperator, Priority: 7},
			dialect.CompletionHint{Text: "ILIKE", Description: "Case-insensitive pattern matching", Category: dialect.HintOperator, Priority: 8},
		)
	case sqlparse.ClauseFrom:
		hints = append(hints,
			dialect.CompletionHint{Text: "LATERAL", Description: "Allow reference to columns from preceding tables", Category: dialect.HintKeyword, Priority: 6},
		)
	case sqlparse.ClauseUnknown:
		hints = append(hints,
			dialect.CompletionHint{Text: "WITH", Description: "Common Table Expression (CTE)", Category: dialect.HintKeyword, Priority: 7},
		)
	}

	return hints
}
