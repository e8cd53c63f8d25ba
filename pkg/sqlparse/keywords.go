package sqlparse

import "strings"

// reservedWords is the keyword set shared by the tokenizer across all
// dialects. Using one set means a word reserved in only one engine can be
// misclassified under another; the clause classifier only depends on words
// every supported engine reserves, so completion quality degrades gracefully
// rather than breaking.
var reservedWords = map[string]struct{}{
	"SELECT": {}, "FROM": {}, "WHERE": {}, "INSERT": {}, "INTO": {},
	"VALUES": {}, "UPDATE": {}, "SET": {}, "DELETE": {}, "JOIN": {},
	"INNER": {}, "LEFT": {}, "RIGHT": {}, "FULL": {}, "OUTER": {},
	"ON": {}, "AS": {}, "AND": {}, "OR": {}, "NOT": {}, "IN": {},
	"EXISTS": {}, "BETWEEN": {}, "LIKE": {}, "ORDER": {}, "BY": {},
	"GROUP": {}, "HAVING": {}, "LIMIT": {}, "OFFSET": {}, "UNION": {},
	"INTERSECT": {}, "EXCEPT": {}, "CREATE": {}, "TABLE": {}, "INDEX": {},
	"VIEW": {}, "DROP": {}, "ALTER": {}, "ADD": {}, "COLUMN": {},
	"CONSTRAINT": {}, "PRIMARY": {}, "KEY": {}, "FOREIGN": {},
	"REFERENCES": {}, "UNIQUE": {}, "DEFAULT": {}, "NULL": {},
	"CASCADE": {}, "RESTRICT": {}, "WITH": {}, "DISTINCT": {}, "ALL": {},
	"CASE": {}, "WHEN": {}, "THEN": {}, "ELSE": {}, "END": {},
}

// IsReserved reports whether word is in the shared reserved-word set.
// The check is case-insensitive.
func IsReserved(word string) bool {
	_, ok := reservedWords[strings.ToUpper(word)]
	return ok
}
