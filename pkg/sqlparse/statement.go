package sqlparse

import "strings"

// detectStatement scans left to right for the first keyword that identifies
// a statement type. CREATE needs a look-ahead to the next keyword to
// distinguish CREATE TABLE from CREATE INDEX. Only the first relevant
// keyword in the buffer governs: a multi-statement buffer is classified by
// its first statement.
func detectStatement(tokens []Token) StatementType {
	for i, tok := range tokens {
		if tok.Kind != KindKeyword {
			continue
		}
		switch strings.ToUpper(tok.Text) {
		case "SELECT":
			return StatementSelect
		case "INSERT":
			return StatementInsert
		case "UPDATE":
			return StatementUpdate
		case "DELETE":
			return StatementDelete
		case "CREATE":
			if next, ok := nextKeyword(tokens, i); ok {
				switch strings.ToUpper(next.Text) {
				case "TABLE":
					return StatementCreateTable
				case "INDEX":
					return StatementCreateIndex
				}
			}
		case "ALTER":
			return StatementAlterTable
		case "DROP":
			return StatementDropTable
		}
	}
	return StatementUnknown
}

// nextKeyword returns the first keyword token after index i.
func nextKeyword(tokens []Token, i int) (Token, bool) {
	for j := i + 1; j < len(tokens); j++ {
		if tokens[j].Kind == KindKeyword {
			return tokens[j], true
		}
	}
	return Token{}, false
}

// nextNonWhitespace returns the first non-whitespace token after index i.
func nextNonWhitespace(tokens []Token, i int) (Token, bool) {
	for j := i + 1; j < len(tokens); j++ {
		if tokens[j].Kind != KindWhitespace {
			return tokens[j], true
		}
	}
	return Token{}, false
}

// clauseAt walks tokens starting at or before cursor and returns the clause
// active strictly at the cursor: the last clause-introducing keyword seen.
// GROUP and ORDER commit to GroupBy/OrderBy only when the next
// non-whitespace token is BY.
func clauseAt(tokens []Token, cursor int) Clause {
	clause := ClauseUnknown

	for i, tok := range tokens {
		if tok.Start > cursor {
			break
		}
		if tok.Kind != KindKeyword {
			continue
		}
		switch strings.ToUpper(tok.Text) {
		case "SELECT":
			clause = ClauseSelect
		case "FROM":
			clause = ClauseFrom
		case "WHERE":
			clause = ClauseWhere
		case "JOIN", "INNER", "LEFT", "RIGHT", "FULL":
			clause = ClauseJoin
		case "ON":
			clause = ClauseOn
		case "GROUP":
			if next, ok := nextNonWhitespace(tokens, i); ok && strings.EqualFold(next.Text, "BY") {
				clause = ClauseGroupBy
			}
		case "HAVING":
			clause = ClauseHaving
		case "ORDER":
			if next, ok := nextNonWhitespace(tokens, i); ok && strings.EqualFold(next.Text, "BY") {
				clause = ClauseOrderBy
			}
		case "INSERT":
			clause = ClauseInsert
		case "VALUES":
			clause = ClauseInsertValues
		case "UPDATE":
			clause = ClauseUpdate
		case "SET":
			clause = ClauseUpdateSet
		case "DELETE":
			clause = ClauseDelete
		}
	}

	return clause
}

// tokenAt returns the token whose span contains pos, treating End as
// inclusive so a cursor sitting just past a word still resolves to it.
func tokenAt(tokens []Token, pos int) *Token {
	for i := range tokens {
		if pos >= tokens[i].Start && pos <= tokens[i].End {
			tok := tokens[i]
			return &tok
		}
	}
	return nil
}
