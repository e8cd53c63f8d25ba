package sqlparse

import "strings"

// extractTables scans every FROM, JOIN, INTO and UPDATE keyword in the
// buffer (not cursor-limited) and parses a table reference immediately
// after each. Matches are returned in source order.
func extractTables(tokens []Token) []TableRef {
	var tables []TableRef

	for i, tok := range tokens {
		if tok.Kind != KindKeyword {
			continue
		}
		switch strings.ToUpper(tok.Text) {
		case "FROM", "JOIN", "INTO", "UPDATE":
			if ref, ok := parseTableRef(tokens, i+1); ok {
				tables = append(tables, ref)
			}
		}
	}

	return tables
}

// parseTableRef parses "[schema.]table [[AS] alias]" starting at token
// index start. A keyword with no following identifier yields nothing.
func parseTableRef(tokens []Token, start int) (TableRef, bool) {
	idx := skipWhitespace(tokens, start)
	if idx >= len(tokens) || tokens[idx].Kind != KindIdentifier {
		return TableRef{}, false
	}

	first := tokens[idx]
	ref := TableRef{Table: first.Text, Position: first.Start}
	next := idx + 1

	// schema.table qualification
	if idx+2 < len(tokens) && tokens[idx+1].Text == "." && tokens[idx+2].Kind == KindIdentifier {
		ref.Schema = first.Text
		ref.Table = tokens[idx+2].Text
		next = idx + 3
	}

	// Optional alias: AS identifier, or a bare trailing identifier.
	aliasIdx := skipWhitespace(tokens, next)
	if aliasIdx < len(tokens) {
		tok := tokens[aliasIdx]
		switch {
		case tok.Kind == KindKeyword && strings.EqualFold(tok.Text, "AS"):
			aliasIdx = skipWhitespace(tokens, aliasIdx+1)
			if aliasIdx < len(tokens) && tokens[aliasIdx].Kind == KindIdentifier {
				ref.Alias = tokens[aliasIdx].Text
			}
		case tok.Kind == KindIdentifier:
			ref.Alias = tok.Text
		}
	}

	return ref, true
}

// skipWhitespace returns the index of the first non-whitespace token at or
// after start.
func skipWhitespace(tokens []Token, start int) int {
	idx := start
	for idx < len(tokens) && tokens[idx].Kind == KindWhitespace {
		idx++
	}
	return idx
}

// extractColumns would parse column references from SELECT and SET clauses.
// Column extraction is not implemented; callers get table-level context
// only and resolve columns through schema metadata instead.
func extractColumns([]Token) []ColumnRef {
	return nil
}
