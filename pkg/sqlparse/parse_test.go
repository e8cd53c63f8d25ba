package sqlparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectStatementTypes(t *testing.T) {
	tests := []struct {
		sql  string
		want StatementType
	}{
		{"SELECT * FROM users", StatementSelect},
		{"INSERT INTO users VALUES", StatementInsert},
		{"UPDATE users SET name = 'test'", StatementUpdate},
		{"DELETE FROM users WHERE id = 1", StatementDelete},
		{"CREATE TABLE users", StatementCreateTable},
		{"CREATE INDEX idx ON users", StatementCreateIndex},
		{"ALTER TABLE users ADD c", StatementAlterTable},
		{"DROP TABLE users", StatementDropTable},
		{"EXPLAIN things", StatementUnknown},
		{"", StatementUnknown},
	}

	for _, tt := range tests {
		ctx := ParseAtCursor(tt.sql, len(tt.sql))
		assert.Equal(t, tt.want, ctx.Statement, "sql %q", tt.sql)
	}
}

func TestClauseAtPosition(t *testing.T) {
	sql := "SELECT id FROM users WHERE age > 1 ORDER BY id"

	tests := []struct {
		cursor int
		want   Clause
	}{
		{7, ClauseSelect}, // inside the select list
		{16, ClauseFrom},  // inside FROM
		{27, ClauseWhere}, // inside WHERE
		{len(sql), ClauseOrderBy},
	}

	for _, tt := range tests {
		ctx := ParseAtCursor(sql, tt.cursor)
		assert.Equal(t, tt.want, ctx.Clause, "cursor %d", tt.cursor)
	}
}

func TestClauseMonotonicity(t *testing.T) {
	// Moving the cursor strictly later within one statement never reverts
	// to an earlier clause.
	sql := "SELECT a, b FROM t JOIN u ON t.x = u.x WHERE a = 1 GROUP BY a HAVING a > 0 ORDER BY b"

	rank := map[Clause]int{
		ClauseUnknown: 0, ClauseSelect: 1, ClauseFrom: 2, ClauseJoin: 3,
		ClauseOn: 4, ClauseWhere: 5, ClauseGroupBy: 6, ClauseHaving: 7,
		ClauseOrderBy: 8,
	}

	prev := 0
	for cursor := 0; cursor <= len(sql); cursor++ {
		cur := rank[ParseAtCursor(sql, cursor).Clause]
		assert.GreaterOrEqual(t, cur, prev, "clause reverted at cursor %d", cursor)
		prev = cur
	}
}

func TestGroupOrderRequireBy(t *testing.T) {
	// GROUP not followed by BY does not open a GroupBy clause.
	ctx := ParseAtCursor("SELECT a FROM t WHERE grp GROUP x", 33)
	assert.NotEqual(t, ClauseGroupBy, ctx.Clause)

	ctx = ParseAtCursor("SELECT a FROM t GROUP BY a", 26)
	assert.Equal(t, ClauseGroupBy, ctx.Clause)
}

func TestParsePurity(t *testing.T) {
	sql := "SELECT u.*, o.total FROM users u JOIN orders o ON u.id = o.user_id"
	a := ParseAtCursor(sql, 30)
	b := ParseAtCursor(sql, 30)
	assert.Equal(t, a, b)
}

func TestUpdateContext(t *testing.T) {
	sql := "UPDATE users SET name = "
	ctx := ParseAtCursor(sql, len(sql))

	assert.Equal(t, StatementUpdate, ctx.Statement)
	assert.Equal(t, ClauseUpdateSet, ctx.Clause)
	require.Len(t, ctx.Tables, 1)
	assert.Equal(t, "users", ctx.Tables[0].Table)
	assert.True(t, ctx.Expects(ExpectValue))
}

func TestUpdateSetLeftOfEquals(t *testing.T) {
	sql := "UPDATE t SET col"
	ctx := ParseAtCursor(sql, len(sql))

	assert.Equal(t, ClauseUpdateSet, ctx.Clause)
	require.Len(t, ctx.Expecting, 1)
	assert.Equal(t, ExpectColumn, ctx.Expecting[0].Kind)
}

func TestIsAfterEquals(t *testing.T) {
	tests := []struct {
		sql  string
		want bool
	}{
		{"UPDATE t SET col = ", true},
		{"UPDATE t SET col", false},
		{"UPDATE t SET a = 1, b", false}, // comma resets
		{"UPDATE t SET a = 1, b = ", true},
	}

	for _, tt := range tests {
		tokens := Tokenize(tt.sql)
		assert.Equal(t, tt.want, isAfterEquals(tokens, len(tt.sql)), "sql %q", tt.sql)
	}
}

func TestDefaultExpectations(t *testing.T) {
	ctx := ParseAtCursor("", 0)
	require.Len(t, ctx.Expecting, 1)
	assert.Equal(t, ExpectKeyword, ctx.Expecting[0].Kind)
	assert.Contains(t, ctx.Expecting[0].Keywords, "SELECT")
}

func TestColumnsAlwaysEmpty(t *testing.T) {
	ctx := ParseAtCursor("SELECT a, b AS c FROM t", 8)
	assert.Empty(t, ctx.Columns)
}

func TestCursorToken(t *testing.T) {
	sql := "SELECT name FROM users"
	ctx := ParseAtCursor(sql, 9)
	require.NotNil(t, ctx.CursorToken)
	assert.Equal(t, "name", ctx.CursorToken.Text)

	// Cursor past the end of input has no token.
	ctx = ParseAtCursor(sql, len(sql)+5)
	assert.Nil(t, ctx.CursorToken)
}
