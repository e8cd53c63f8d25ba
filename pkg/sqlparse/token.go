// Package sqlparse provides a small incremental SQL parser used for
// context-aware completion.
//
// The parser is deliberately shallow: it tokenizes the input, classifies the
// statement and the clause at the cursor, extracts table references, and
// infers which element kinds are plausible at the cursor. It builds no AST
// and performs no semantic validation. Every call is a pure function of its
// input, so concurrent use requires no synchronization.
package sqlparse

// TokenKind classifies a lexical token.
type TokenKind int

const (
	// KindKeyword is a reserved SQL word (SELECT, FROM, ...).
	KindKeyword TokenKind = iota
	// KindIdentifier is a non-reserved word (table, column, alias names).
	KindIdentifier
	// KindOperator is a comparison operator (=, <, >=, <>, ...).
	KindOperator
	// KindLiteral is a quoted string or a numeric literal.
	KindLiteral
	// KindWhitespace is a run of whitespace characters.
	KindWhitespace
	// KindPunctuation is ( ) , ; . or any unrecognized character.
	KindPunctuation
)

// String returns a human-readable representation of the token kind.
func (k TokenKind) String() string {
	switch k {
	case KindKeyword:
		return "keyword"
	case KindIdentifier:
		return "identifier"
	case KindOperator:
		return "operator"
	case KindLiteral:
		return "literal"
	case KindWhitespace:
		return "whitespace"
	case KindPunctuation:
		return "punctuation"
	default:
		return "unknown"
	}
}

// Token is a classified substring of the input with its byte offsets.
// Start is inclusive, End exclusive. The token sequence produced by
// Tokenize is contiguous and ordered: concatenating Text over all tokens
// reconstructs the input exactly.
type Token struct {
	Text  string
	Start int
	End   int
	Kind  TokenKind
}

// StatementType identifies the overall kind of a SQL statement.
type StatementType int

// Statement types detected by the classifier.
const (
	StatementUnknown StatementType = iota
	StatementSelect
	StatementInsert
	StatementUpdate
	StatementDelete
	StatementCreateTable
	StatementAlterTable
	StatementDropTable
	StatementCreateIndex
)

// String returns the statement type name.
func (s StatementType) String() string {
	switch s {
	case StatementSelect:
		return "SELECT"
	case StatementInsert:
		return "INSERT"
	case StatementUpdate:
		return "UPDATE"
	case StatementDelete:
		return "DELETE"
	case StatementCreateTable:
		return "CREATE TABLE"
	case StatementAlterTable:
		return "ALTER TABLE"
	case StatementDropTable:
		return "DROP TABLE"
	case StatementCreateIndex:
		return "CREATE INDEX"
	default:
		return "UNKNOWN"
	}
}

// Clause identifies the syntactic section of a statement active at a
// position. The clause constrains which completions are plausible.
type Clause int

// Clauses tracked by the classifier.
const (
	ClauseUnknown Clause = iota
	ClauseSelect
	ClauseFrom
	ClauseWhere
	ClauseJoin
	ClauseOn
	ClauseGroupBy
	ClauseHaving
	ClauseOrderBy
	ClauseInsert
	ClauseInsertColumns
	ClauseInsertValues
	ClauseUpdate
	ClauseUpdateSet
	ClauseDelete
)

// String returns the clause name.
func (c Clause) String() string {
	switch c {
	case ClauseSelect:
		return "SELECT"
	case ClauseFrom:
		return "FROM"
	case ClauseWhere:
		return "WHERE"
	case ClauseJoin:
		return "JOIN"
	case ClauseOn:
		return "ON"
	case ClauseGroupBy:
		return "GROUP BY"
	case ClauseHaving:
		return "HAVING"
	case ClauseOrderBy:
		return "ORDER BY"
	case ClauseInsert:
		return "INSERT"
	case ClauseInsertColumns:
		return "INSERT COLUMNS"
	case ClauseInsertValues:
		return "VALUES"
	case ClauseUpdate:
		return "UPDATE"
	case ClauseUpdateSet:
		return "SET"
	case ClauseDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// TableRef is a parsed "[schema.]table [[AS] alias]" occurrence following a
// FROM, JOIN, INTO or UPDATE keyword. Position is the byte offset of the
// table (or schema) identifier.
type TableRef struct {
	Schema   string
	Table    string
	Alias    string
	Position int
}

// ColumnRef is a column reference with optional table qualification.
// The extractor for these is intentionally absent: Context.Columns is
// always empty in the current design.
type ColumnRef struct {
	Table  string
	Column string
	Alias  string
}

// ExpectationKind classifies what the parser expects at the cursor.
type ExpectationKind int

// Expectation kinds.
const (
	ExpectTable ExpectationKind = iota
	ExpectColumn
	ExpectKeyword
	ExpectValue
	ExpectFunction
	ExpectOperator
	ExpectIdentifier
)

// String returns the expectation kind name.
func (k ExpectationKind) String() string {
	switch k {
	case ExpectTable:
		return "table"
	case ExpectColumn:
		return "column"
	case ExpectKeyword:
		return "keyword"
	case ExpectValue:
		return "value"
	case ExpectFunction:
		return "function"
	case ExpectOperator:
		return "operator"
	case ExpectIdentifier:
		return "identifier"
	default:
		return "unknown"
	}
}

// Expectation describes one plausible element kind at the cursor.
// Keywords is populated only for ExpectKeyword.
type Expectation struct {
	Kind     ExpectationKind
	Keywords []string
}

// Context is the dialect-neutral parse result at a cursor position.
type Context struct {
	Statement   StatementType
	Tokens      []Token
	Tables      []TableRef
	Columns     []ColumnRef
	Clause      Clause
	CursorToken *Token
	Expecting   []Expectation
}

// Expects reports whether the context expects the given element kind.
func (c *Context) Expects(kind ExpectationKind) bool {
	for _, e := range c.Expecting {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
