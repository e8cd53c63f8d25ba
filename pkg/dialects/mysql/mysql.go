// Package mysql implements the MySQL completion engine.
//
// It layers backtick identifier detection, MySQL operator detection, and
// storage engine awareness over the dialect-neutral parser.
package mysql

import (
	"strings"

	"github.com/quillsql/quill/pkg/dialect"
	"github.com/quillsql/quill/pkg/sqlparse"
)

func init() {
	dialect.Register(Engine{})
}

// Engine is the MySQL dialect plugin.
type Engine struct{}

// Type returns dialect.TypeMySQL.
func (Engine) Type() dialect.DatabaseType {
	return dialect.TypeMySQL
}

// ParseAtCursor wraps the base parse with MySQL pattern detection.
func (e Engine) ParseAtCursor(sql string, cursor int) *dialect.EnhancedContext {
	return &dialect.EnhancedContext{
		Base:   sqlparse.ParseAtCursor(sql, cursor),
		Engine: detectPatterns(sql),
		Type:   dialect.TypeMySQL,
	}
}

// detectPatterns scans the whole query for MySQL-specific syntax.
func detectPatterns(sql string) dialect.MySQLContext {
	ctx := dialect.MySQLContext{
		BacktickIdentifiers: backtickIdentifiers(sql),
	}

	upper := strings.ToUpper(sql)
	for _, op := range []string{"<=>", "<<", ">>", "&", "|", "^", "REGEXP", "RLIKE"} {
		if strings.Contains(upper, op) {
			ctx.Operators = append(ctx.Operators, op)
		}
	}

	ctx.StorageEngineClause = strings.Contains(upper, "ENGINE=") ||
		strings.Contains(upper, "TYPE=")

	return ctx
}

// backtickIdentifiers returns every backtick-quoted identifier in the
// query, quotes included. An unterminated backtick yields nothing for the
// trailing fragment.
func backtickIdentifiers(sql string) []string {
	var idents []string
	var current strings.Builder
	inBackticks := false

	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		switch {
		case ch == '`' && inBackticks:
			if current.Len() > 0 {
				idents = append(idents, "`"+current.String()+"`")
				current.Reset()
			}
			inBackticks = false
		case ch == '`':
			inBackticks = true
		case inBackticks:
			current.WriteByte(ch)
		}
	}

	return idents
}

// OperatorsAtCursor scans a small window around the cursor for MySQL
// operators.
func (Engine) OperatorsAtCursor(sql string, cursor int) []string {
	window := dialect.CursorWindow(sql, cursor)
	upper := strings.ToUpper(window)
	var ops []string

	if strings.Contains(window, "<=>") {
		ops = append(ops, "<=>")
	}
	if strings.Contains(window, "<<") || strings.Contains(window, ">>") {
		ops = append(ops, "<<", ">>")
	}
	if strings.ContainsAny(window, "&|^") {
		ops = append(ops, "&", "|", "^")
	}
	if strings.Contains(upper, "REGEXP") || strings.Contains(upper, "RLIKE") {
		ops = append(ops, "REGEXP", "RLIKE")
	}
	if strings.Contains(upper, "SOUNDS LIKE") {
		ops = append(ops, "SOUNDS LIKE")
	}
	if strings.Contains(window, "->") {
		ops = append(ops, "->", "->>")
	}

	return ops
}

// KeywordsByCategory returns the MySQL keyword catalog for a category.
func (Engine) KeywordsByCategory(cat dialect.KeywordCategory) []string {
	switch cat {
	case dialect.CategoryDDL:
		return []string{"CREATE", "ALTER", "DROP", "TRUNCATE", "RENAME", "COMMENT"}
	case dialect.CategoryDML:
		return []string{"SELECT", "INSERT", "UPDATE", "DELETE", "REPLACE", "LOAD", "DATA", "INFILE"}
	case dialect.CategoryFunctions:
		return []string{
			"IFNULL", "IF", "COALESCE", "NULLIF", "GREATEST", "LEAST",
			"CONCAT", "CONCAT_WS", "GROUP_CONCAT", "SUBSTRING", "LEFT",
			"RIGHT", "UPPER", "LOWER", "TRIM", "LENGTH", "LOCATE", "REPLACE",
		}
	case dialect.CategoryOperators:
		return []string{
			"AND", "OR", "NOT", "IN", "EXISTS", "BETWEEN", "LIKE", "REGEXP",
			"RLIKE", "IS", "NULL", "SOUNDS",
		}
	case dialect.CategoryDataTypes:
		return []string{
			"TINYINT", "SMALLINT", "MEDIUMINT", "INT", "INTEGER", "BIGINT",
			"DECIMAL", "NUMERIC", "FLOAT", "DOUBLE", "REAL", "BIT", "BOOLEAN",
			"DATE", "DATETIME", "TIMESTAMP", "TIME", "YEAR", "CHAR",
			"VARCHAR", "BINARY", "VARBINARY", "TINYBLOB", "BLOB",
			"MEDIUMBLOB", "LONGBLOB", "TINYTEXT", "TEXT", "MEDIUMTEXT",
			"LONGTEXT", "ENUM", "SET", "JSON",
		}
	case dialect.CategorySystemFunctions:
		return []string{
			"NOW", "CURDATE", "CURTIME", "CURRENT_DATE", "CURRENT_TIME",
			"CURRENT_TIMESTAMP", "DATABASE", "USER", "VERSION",
			"CONNECTION_ID", "LAST_INSERT_ID", "FOUND_ROWS", "ROW_COUNT",
		}
	case dialect.CategoryAggregateFunctions:
		return []string{
			"COUNT", "SUM", "AVG", "MAX", "MIN", "GROUP_CONCAT", "BIT_AND",
			"BIT_OR", "BIT_XOR", "STD", "STDDEV", "STDDEV_POP",
			"STDDEV_SAMP", "VAR_POP", "VAR_SAMP", "VARIANCE",
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

// Functions returns the MySQL function catalog.
func (Engine) Functions() []string {
	return []string{
		"COUNT", "SUM", "AVG", "MAX", "MIN", "UPPER", "LOWER", "LENGTH",
		"TRIM", "SUBSTR", "SUBSTRING", "REPLACE", "CONCAT", "ABS", "ROUND",
		"CEIL", "CEILING", "FLOOR", "COALESCE", "NULLIF", "GREATEST",
		"LEAST",

		"IFNULL", "IF", "GROUP_CONCAT", "CONCAT_WS", "LEFT", "RIGHT",
		"REVERSE", "REPEAT", "LCASE", "UCASE", "LTRIM", "RTRIM", "LPAD",
		"RPAD", "STRCMP", "SOUNDEX", "SPACE", "LOCATE", "POSITION", "INSTR",
		"FIND_IN_SET", "FIELD", "ELT", "MAKE_SET", "EXPORT_SET", "QUOTE",
		"UNHEX", "HEX", "BIN", "OCT", "CONV", "INET_ATON", "INET_NTOA",

		"NOW", "CURDATE", "CURTIME", "UNIX_TIMESTAMP", "FROM_UNIXTIME",
		"DATE_ADD", "DATE_SUB", "DATEDIFF", "DATE_FORMAT", "STR_TO_DATE",
		"YEAR", "MONTH", "DAY", "HOUR", "MINUTE", "SECOND", "DAYOFWEEK",
		"DAYOFMONTH", "DAYOFYEAR", "WEEK", "WEEKDAY", "MONTHNAME",
		"DAYNAME",

		"JSON_ARRAY", "JSON_OBJECT", "JSON_EXTRACT", "JSON_CONTAINS",
		"JSON_KEYS", "JSON_SEARCH", "JSON_TYPE", "JSON_VALID",
		"JSON_LENGTH",

		"MOD", "POW", "POWER", "SQRT", "EXP", "LN", "LOG", "LOG10", "LOG2",
		"SIN", "COS", "TAN", "ASIN", "ACOS", "ATAN", "ATAN2", "DEGREES",
		"RADIANS", "PI", "RAND", "SIGN", "TRUNCATE",
	}
}

// Operators returns the MySQL operator catalog.
func (Engine) Operators() []string {
	return []string{
		"=", "!=", "<>", "<", ">", "<=", ">=", "AND", "OR", "NOT", "IN",
		"LIKE", "BETWEEN", "IS", "NULL",

		"<=>", "<<", ">>", "&", "|", "^", "~", "REGEXP", "RLIKE",
		"NOT REGEXP", "NOT RLIKE", "SOUNDS LIKE", "->", "->>", "DIV",
		"MOD", "XOR",
	}
}

// DataTypes returns the MySQL data type catalog.
func (Engine) DataTypes() []string {
	return []string{
		"TINYINT", "SMALLINT", "MEDIUMINT", "INT", "INTEGER", "BIGINT",
		"DECIMAL", "DEC", "NUMERIC", "FLOAT", "DOUBLE", "REAL", "BIT",
		"BOOLEAN", "BOOL", "SERIAL", "DATE", "DATETIME", "TIMESTAMP",
		"TIME", "YEAR", "CHAR", "VARCHAR", "BINARY", "VARBINARY",
		"TINYBLOB", "BLOB", "MEDIUMBLOB", "LONGBLOB", "TINYTEXT", "TEXT",
		"MEDIUMTEXT", "LONGTEXT", "ENUM", "SET", "JSON", "GEOMETRY",
		"POINT", "LINESTRING", "POLYGON", "MULTIPOINT", "MULTILINESTRING",
		"MULTIPOLYGON", "GEOMETRYCOLLECTION",
	}
}

// IsKeywordValid applies a per-clause allow-list.
func (Engine) IsKeywordValid(keyword string, ctx *dialect.EnhancedContext) bool {
	upper := strings.ToUpper(keyword)

	switch ctx.Base.Clause {
	case sqlparse.ClauseSelect:
		switch upper {
		case "DISTINCT", "ALL", "*", "AS", "FROM", "COUNT", "SUM", "AVG",
			"MAX", "MIN", "GROUP_CONCAT", "IF", "IFNULL", "COALESCE",
			"CONCAT", "CONCAT_WS", "SUBSTRING", "LEFT", "RIGHT":
			return true
		}
		return false
	case sqlparse.ClauseFrom:
		switch upper {
		case "JOIN", "INNER", "LEFT", "RIGHT", "FULL", "OUTER", "CROSS",
			"STRAIGHT_JOIN", "ON", "USING", "WHERE", "GROUP", "ORDER",
			"LIMIT", "OFFSET", "UNION":
			return true
		}
		return false
	case sqlparse.ClauseWhere:
		switch upper {
		case "AND", "OR", "NOT", "IN", "EXISTS", "BETWEEN", "LIKE",
			"REGEXP", "RLIKE", "SOUNDS", "IS", "NULL", "GROUP", "ORDER",
			"LIMIT", "OFFSET":
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

// Hints returns MySQL completion hints, conditioned on the detected engine
// context.
func (e Engine) Hints(ctx *dialect.EnhancedContext) []dialect.CompletionHint {
	hints := e.clauseHints(ctx)

	my, ok := ctx.Engine.(dialect.MySQLContext)
	if !ok {
		return hints
	}

	if len(my.Operators) > 0 {
		hints = append(hints, dialect.CompletionHint{
			Text:        "SOUNDEX(",
			Description: "Get phonetic representation",
			Category:    dialect.HintFunction,
			Priority:    6,
		})
	}
	if my.StorageEngineClause {
		hints = append(hints,
			dialect.CompletionHint{Text: "AUTO_INCREMENT", Description: "Set auto increment starting value", Category: dialect.HintDatabaseSpecific, Priority: 7},
			dialect.CompletionHint{Text: "CHARSET", Description: "Set character set", Category: dialect.HintDatabaseSpecific, Priority: 7},
		)
	}

	return hints
}

func (Engine) clauseHints(ctx *dialect.EnhancedContext) []dialect.CompletionHint {
	var hints []dialect.CompletionHint

	switch ctx.Base.Clause {
	case sqlparse.ClauseSelect:
		hints = append(hints,
			dialect.CompletionHint{Text: "GROUP_CONCAT(", Description: "Concatenate values from multiple rows", Category: dialect.HintFunction, Priority: 8},
			dialect.CompletionHint{Text: "IF(", Description: "Conditional expression", Category: dialect.HintFunction, Priority: 7},
			dialect.CompletionHint{Text: "IFNULL(", Description: "Return alternative value if NULL", Category: dialect.HintFunction, Priority: 8},
			dialect.CompletionHint{Text: "JSON_EXTRACT(", Description: "Extract JSON value", Category: dialect.HintFunction, Priority: 7},
			dialect.CompletionHint{Text: "FROM_UNIXTIME(", Description: "Convert Unix timestamp to datetime", Category: dialect.HintFunction, Priority: 7},
		)
	case sqlparse.ClauseWhere:
		hints = append(hints,
			dialect.CompletionHint{Text: "<=>", Description: "NULL-safe equal operator", Category: dialect.HintOperator, Priority: 7},
			dialect.CompletionHint{Text: "REGEXP", Description: "Regular expression pattern matching", Category: dialect.HintOperator, Priority: 8},
			dialect.CompletionHint{Text: "RLIKE", Description: "Regular expression pattern matching (synonym for REGEXP)", Category: dialect.HintOperator, Priority: 7},
			dialect.CompletionHint{Text: "SOUNDS LIKE", Description: "Phonetic similarity comparison", Category: dialect.HintOperator, Priority: 6},
		)
	case sqlparse.ClauseInsert:
		hints = append(hints,
			dialect.CompletionHint{Text: "ON DUPLICATE KEY UPDATE", Description: "Handle duplicate key conflicts", Category: dialect.HintKeyword, Priority: 8},
			dialect.CompletionHint{Text: "IGNORE", Description: "Ignore duplicate key errors", Category: dialect.HintKeyword, Priority: 7},
		)
	}

	if ctx.Base.Statement == sqlparse.StatementCreateTable {
		hints = append(hints,
			dialect.CompletionHint{Text: "ENGINE=InnoDB", Description: "InnoDB storage engine", Category: dialect.HintDatabaseSpecific, Priority: 8},
			dialect.CompletionHint{Text: "ENGINE=MyISAM", Description: "MyISAM storage engine", Category: dialect.HintDatabaseSpecific, Priority: 7},
		)
	}

	return hints
}
