package completer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillsql/quill/internal/schema"
	"github.com/quillsql/quill/pkg/dialect"
	_ "github.com/quillsql/quill/pkg/dialects/postgres"
)

// fakeProvider serves a fixed two-table schema.
type fakeProvider struct{}

func (fakeProvider) Schemas(context.Context) []string {
	return []string{"public"}
}

func (fakeProvider) Tables(_ context.Context, schemaName string) []string {
	return []string{"orders", "users"}
}

func (fakeProvider) Columns(_ context.Context, _, table string) []schema.Column {
	switch table {
	case "users":
		return []schema.Column{{Name: "id"}, {Name: "email"}, {Name: "name"}}
	case "orders":
		return []schema.Column{{Name: "id"}, {Name: "user_id"}, {Name: "total"}}
	default:
		return nil
	}
}

func newTestCompleter() *Completer {
	return New(dialect.For(dialect.TypePostgres), fakeProvider{}, []string{".help", ".tables", ".quit"})
}

func complete(c *Completer, text string) ([]string, int) {
	line := []rune(text)
	suffixes, length := c.Do(line, len(line))
	out := make([]string, 0, len(suffixes))
	partial := text[len(text)-length:]
	for _, s := range suffixes {
		out = append(out, partial+string(s))
	}
	return out, length
}

func TestCompletesTablesAfterFrom(t *testing.T) {
	got, length := complete(newTestCompleter(), "SELECT * FROM us")
	assert.Equal(t, 2, length)
	assert.Contains(t, got, "users")
	assert.NotContains(t, got, "orders")
}

func TestCompletesAllTablesOnEmptyPartial(t *testing.T) {
	got, _ := complete(newTestCompleter(), "SELECT * FROM ")
	assert.Contains(t, got, "users")
	assert.Contains(t, got, "orders")
	assert.Contains(t, got, "public.")
}

func TestCompletesSchemaQualifiedTables(t *testing.T) {
	got, _ := complete(newTestCompleter(), "SELECT * FROM public.us")
	assert.Contains(t, got, "public.users")
}

func TestCompletesColumnsViaAlias(t *testing.T) {
	got, _ := complete(newTestCompleter(), "SELECT * FROM users u WHERE u.em")
	assert.Equal(t, []string{"u.email"}, got)
}

func TestCompletesColumnsViaTableName(t *testing.T) {
	got, _ := complete(newTestCompleter(), "SELECT * FROM orders WHERE orders.to")
	assert.Contains(t, got, "orders.total")
}

func TestUnknownAliasYieldsNoColumns(t *testing.T) {
	got, _ := complete(newTestCompleter(), "SELECT * FROM users u WHERE x.em")
	assert.Empty(t, got)
}

func TestCompletesColumnsFromAllTables(t *testing.T) {
	got, _ := complete(newTestCompleter(), "SELECT * FROM users JOIN orders ON ")
	assert.Contains(t, got, "email")
	assert.Contains(t, got, "user_id")
}

func TestCompletesDotCommands(t *testing.T) {
	got, length := complete(newTestCompleter(), ".ta")
	require.Equal(t, 3, length)
	assert.Equal(t, []string{".tables"}, got)
}

func TestNilProviderStillCompletesKeywords(t *testing.T) {
	c := New(dialect.For(dialect.TypePostgres), nil, nil)
	got, _ := complete(c, "")
	assert.Contains(t, got, "SELECT")
}

func TestSelectClauseOffersFunctions(t *testing.T) {
	// The suffix follows the typed case, never mixing within one word.
	got, _ := complete(newTestCompleter(), "SELECT cou")
	assert.Contains(t, got, "count(")
	assert.NotContains(t, got, "couNT(")

	got, _ = complete(newTestCompleter(), "SELECT COU")
	assert.Contains(t, got, "COUNT(")
}
