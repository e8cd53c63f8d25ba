package dialect

import "strings"

// QuoteChar returns the identifier quote character for an engine: double
// quotes for PostgreSQL and SQLite, backticks for MySQL.
func QuoteChar(t DatabaseType) byte {
	if t == TypeMySQL {
		return '`'
	}
	return '"'
}

// IsIdentifierChar reports whether ch may appear in an unquoted identifier
// for the engine. PostgreSQL and MySQL additionally allow '$'.
func IsIdentifierChar(ch byte, t DatabaseType) bool {
	if ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9' || ch == '_' {
		return true
	}
	return ch == '$' && (t == TypePostgres || t == TypeMySQL)
}

// NeedsQuoting reports whether an identifier must be quoted for the
// engine: empty names, names not starting with a letter or underscore, and
// reserved words.
func NeedsQuoting(identifier string, t DatabaseType) bool {
	if identifier == "" {
		return true
	}
	first := identifier[0]
	if !(first >= 'a' && first <= 'z' || first >= 'A' && first <= 'Z' || first == '_') {
		return true
	}

	switch strings.ToUpper(identifier) {
	case "SELECT", "FROM", "WHERE", "ORDER", "GROUP":
		return true
	case "LIMIT":
		return t == TypeMySQL
	}
	return false
}
