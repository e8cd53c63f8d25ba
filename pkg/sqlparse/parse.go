package sqlparse

// ParseAtCursor tokenizes text and assembles the dialect-neutral context at
// the given cursor offset. It allocates everything fresh per call and never
// fails: malformed or empty input yields a context with empty or default
// fields.
func ParseAtCursor(text string, cursor int) *Context {
	tokens := Tokenize(text)
	clause := clauseAt(tokens, cursor)

	return &Context{
		Statement:   detectStatement(tokens),
		Tokens:      tokens,
		Tables:      extractTables(tokens),
		Columns:     extractColumns(tokens),
		Clause:      clause,
		CursorToken: tokenAt(tokens, cursor),
		Expecting:   determineExpectations(tokens, clause, cursor),
	}
}
