package sqlparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTablesJoin(t *testing.T) {
	sql := "SELECT * FROM a JOIN b ON a.x=b.x"
	ctx := ParseAtCursor(sql, len(sql))

	require.Len(t, ctx.Tables, 2)
	assert.Equal(t, "a", ctx.Tables[0].Table)
	assert.Equal(t, "b", ctx.Tables[1].Table)
	assert.Empty(t, ctx.Tables[0].Alias)
	assert.Empty(t, ctx.Tables[1].Alias)
	assert.Less(t, ctx.Tables[0].Position, ctx.Tables[1].Position)
}

func TestExtractTablesWithAliases(t *testing.T) {
	sql := "SELECT u.*, o.total FROM users u JOIN orders o ON u.id = o.user_id"
	ctx := ParseAtCursor(sql, len(sql))

	require.Len(t, ctx.Tables, 2)
	assert.Equal(t, "users", ctx.Tables[0].Table)
	assert.Equal(t, "u", ctx.Tables[0].Alias)
	assert.Equal(t, "orders", ctx.Tables[1].Table)
	assert.Equal(t, "o", ctx.Tables[1].Alias)
}

func TestExtractTablesAliasForms(t *testing.T) {
	tests := []struct {
		sql   string
		table string
		alias string
	}{
		{"SELECT * FROM users u", "users", "u"},
		{"SELECT * FROM users AS u", "users", "u"},
		{"SELECT * FROM users", "users", ""},
	}

	for _, tt := range tests {
		ctx := ParseAtCursor(tt.sql, len(tt.sql))
		require.Len(t, ctx.Tables, 1, "sql %q", tt.sql)
		assert.Equal(t, tt.table, ctx.Tables[0].Table)
		assert.Equal(t, tt.alias, ctx.Tables[0].Alias)
	}
}

func TestExtractTablesSchemaQualified(t *testing.T) {
	sql := "SELECT * FROM public.users pu"
	ctx := ParseAtCursor(sql, len(sql))

	require.Len(t, ctx.Tables, 1)
	assert.Equal(t, "public", ctx.Tables[0].Schema)
	assert.Equal(t, "users", ctx.Tables[0].Table)
	assert.Equal(t, "pu", ctx.Tables[0].Alias)
}

func TestExtractTablesUpdateAndInsert(t *testing.T) {
	ctx := ParseAtCursor("UPDATE customers SET x = 1", 26)
	require.Len(t, ctx.Tables, 1)
	assert.Equal(t, "customers", ctx.Tables[0].Table)

	ctx = ParseAtCursor("INSERT INTO orders (a) VALUES (1)", 33)
	require.Len(t, ctx.Tables, 1)
	assert.Equal(t, "orders", ctx.Tables[0].Table)
}

func TestExtractTablesNothingAfterKeyword(t *testing.T) {
	// A FROM with no following identifier yields nothing.
	ctx := ParseAtCursor("SELECT * FROM ", 14)
	assert.Empty(t, ctx.Tables)

	ctx = ParseAtCursor("SELECT * FROM 'literal'", 23)
	assert.Empty(t, ctx.Tables)
}
