package sqlparse

// determineExpectations maps the active clause to the element kinds that
// are syntactically plausible at the cursor. This is a fixed table, not a
// grammar: the sets are intentionally over-broad, and prefix filtering
// against the partial word happens downstream.
func determineExpectations(tokens []Token, clause Clause, cursor int) []Expectation {
	switch clause {
	case ClauseSelect:
		return []Expectation{
			{Kind: ExpectColumn},
			{Kind: ExpectFunction},
			{Kind: ExpectKeyword, Keywords: []string{"DISTINCT", "ALL", "*"}},
		}
	case ClauseFrom, ClauseJoin:
		return []Expectation{{Kind: ExpectTable}}
	case ClauseWhere, ClauseOn:
		return []Expectation{
			{Kind: ExpectColumn},
			{Kind: ExpectValue},
			{Kind: ExpectOperator},
		}
	case ClauseUpdateSet:
		if isAfterEquals(tokens, cursor) {
			return []Expectation{
				{Kind: ExpectValue},
				{Kind: ExpectColumn},
				{Kind: ExpectFunction},
			}
		}
		return []Expectation{{Kind: ExpectColumn}}
	case ClauseInsertColumns:
		return []Expectation{{Kind: ExpectColumn}}
	case ClauseInsertValues:
		return []Expectation{
			{Kind: ExpectValue},
			{Kind: ExpectFunction},
		}
	case ClauseOrderBy, ClauseGroupBy:
		return []Expectation{{Kind: ExpectColumn}}
	default:
		return []Expectation{
			{Kind: ExpectKeyword, Keywords: []string{
				"SELECT", "INSERT", "UPDATE", "DELETE", "CREATE", "ALTER", "DROP",
			}},
		}
	}
}

// isAfterEquals scans tokens backward from the cursor and reports whether
// an = appears before any comma. Inside a SET clause this distinguishes the
// right-hand side of "col =" (expect a value) from the left-hand side
// (expect a column).
func isAfterEquals(tokens []Token, cursor int) bool {
	for i := len(tokens) - 1; i >= 0; i-- {
		tok := tokens[i]
		if tok.End > cursor {
			continue
		}
		if tok.Text == "=" {
			return true
		}
		if tok.Kind == KindPunctuation && tok.Text == "," {
			return false
		}
	}
	return false
}
