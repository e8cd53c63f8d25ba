package dialect

import "github.com/quillsql/quill/pkg/sqlparse"

// genericEngine is the fallback for unrecognized database types. It accepts
// every keyword and contributes no engine-specific operators or
// suggestions, so completion degrades to the dialect-neutral baseline
// instead of failing.
type genericEngine struct{}

// Generic returns the fallback engine used for unrecognized database
// types.
func Generic() Engine {
	return genericEngine{}
}

func (genericEngine) Type() DatabaseType {
	return TypeGeneric
}

func (genericEngine) ParseAtCursor(sql string, cursor int) *EnhancedContext {
	return &EnhancedContext{
		Base:   sqlparse.ParseAtCursor(sql, cursor),
		Engine: GenericContext{},
		Type:   TypeGeneric,
	}
}

func (genericEngine) KeywordsByCategory(cat KeywordCategory) []string {
	switch cat {
	case CategoryDDL:
		return []string{"CREATE", "ALTER", "DROP"}
	case CategoryDML:
		return []string{"SELECT", "INSERT", "UPDATE", "DELETE"}
	case CategoryFunctions:
		return []string{"COUNT", "SUM", "AVG", "MAX", "MIN"}
	case CategoryOperators:
		return []string{"AND", "OR", "NOT", "IN", "EXISTS"}
	case CategoryDataTypes:
		return []string{"TEXT", "INTEGER", "BOOLEAN", "DATE"}
	case CategorySystemFunctions:
		return []string{"NOW", "CURRENT_DATE", "CURRENT_TIME"}
	case CategoryAggregateFunctions:
		return []string{"COUNT", "SUM", "AVG", "MAX", "MIN"}
	case CategoryWindowFunctions:
		return []string{"ROW_NUMBER", "RANK", "DENSE_RANK"}
	default:
		return nil
	}
}

func (genericEngine) Functions() []string {
	return []string{
		"COUNT", "SUM", "AVG", "MAX", "MIN", "UPPER", "LOWER", "LENGTH",
		"TRIM", "SUBSTR", "SUBSTRING", "REPLACE", "CONCAT", "ABS", "ROUND",
		"CEIL", "FLOOR", "NOW", "CURRENT_DATE", "CURRENT_TIME",
		"CURRENT_TIMESTAMP",
	}
}

func (genericEngine) Operators() []string {
	return []string{
		"=", "!=", "<>", "<", ">", "<=", ">=", "AND", "OR", "NOT", "IN",
		"LIKE", "BETWEEN",
	}
}

func (genericEngine) DataTypes() []string {
	return []string{"TEXT", "INTEGER", "REAL", "BOOLEAN", "DATE", "TIME", "TIMESTAMP"}
}

func (genericEngine) IsKeywordValid(string, *EnhancedContext) bool {
	return true
}

func (genericEngine) Suggestions(*EnhancedContext, string) []string {
	return nil
}

func (genericEngine) OperatorsAtCursor(string, int) []string {
	return nil
}

func (genericEngine) Hints(ctx *EnhancedContext) []CompletionHint {
	var hints []CompletionHint

	switch ctx.Base.Clause {
	case sqlparse.ClauseSelect:
		hints = append(hints,
			CompletionHint{Text: "*", Description: "Select all columns", Category: HintKeyword, Priority: 9},
			CompletionHint{Text: "DISTINCT", Description: "Select distinct values", Category: HintKeyword, Priority: 8},
		)
	case sqlparse.ClauseFrom:
		hints = append(hints,
			CompletionHint{Text: "JOIN", Description: "Join tables", Category: HintKeyword, Priority: 8},
		)
	}

	return hints
}
