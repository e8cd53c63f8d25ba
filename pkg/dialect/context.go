package dialect

// EngineContext is the engine-specific half of an EnhancedContext. It is a
// closed sum: exactly one variant exists per supported engine, each
// carrying only its own fields. The unexported marker method keeps the set
// closed to this package and pkg/dialects.
type EngineContext interface {
	engineContext()
}

// PostgresContext carries PostgreSQL-specific context detected in a query.
type PostgresContext struct {
	// JSONOperators found anywhere in the query (->, ->>, #>, @>, ...).
	JSONOperators []string
	// ArrayAccesses are "name[...]" patterns.
	ArrayAccesses []string
	// HasWindowFunctions is set when window syntax (OVER, PARTITION BY)
	// appears.
	HasWindowFunctions bool
	// HasCTE is set when a WITH ... AS ( construct appears.
	HasCTE bool
}

// MySQLContext carries MySQL-specific context detected in a query.
type MySQLContext struct {
	// BacktickIdentifiers are backtick-quoted identifiers, quotes included.
	BacktickIdentifiers []string
	// Operators are MySQL-specific operators found in the query.
	Operators []string
	// StorageEngineClause is set when an ENGINE= or TYPE= clause appears.
	StorageEngineClause bool
}

// SQLiteContext carries SQLite-specific context detected in a query.
type SQLiteContext struct {
	// Pragma is the PRAGMA statement text, if one appears.
	Pragma string
	// VirtualTable is set for VIRTUAL TABLE / FTS / RTREE constructs.
	VirtualTable bool
	// WithoutRowid is set when WITHOUT ROWID appears.
	WithoutRowid bool
}

// GenericContext carries no engine-specific information.
type GenericContext struct{}

func (PostgresContext) engineContext() {}
func (MySQLContext) engineContext()    {}
func (SQLiteContext) engineContext()   {}
func (GenericContext) engineContext()  {}
