package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillsql/quill/pkg/dialect"
	"github.com/quillsql/quill/pkg/sqlparse"
)

func TestRegistersOnInit(t *testing.T) {
	e := dialect.For(dialect.TypeMySQL)
	assert.Equal(t, dialect.TypeMySQL, e.Type())
}

func TestDetectBacktickIdentifiers(t *testing.T) {
	sql := "SELECT `user id`, name FROM `order items`"
	ctx := Engine{}.ParseAtCursor(sql, len(sql))

	my, ok := ctx.Engine.(dialect.MySQLContext)
	require.True(t, ok)
	assert.Equal(t, []string{"`user id`", "`order items`"}, my.BacktickIdentifiers)
}

func TestUnterminatedBacktickIgnored(t *testing.T) {
	ctx := Engine{}.ParseAtCursor("SELECT `name", 12)
	my := ctx.Engine.(dialect.MySQLContext)
	assert.Empty(t, my.BacktickIdentifiers)
}

func TestDetectStorageEngineClause(t *testing.T) {
	sql := "CREATE TABLE `users` (id INT) ENGINE=InnoDB"
	ctx := Engine{}.ParseAtCursor(sql, len(sql))

	my := ctx.Engine.(dialect.MySQLContext)
	assert.True(t, my.StorageEngineClause)
	assert.Equal(t, []string{"`users`"}, my.BacktickIdentifiers)

	texts := hintTexts(Engine{}.Hints(ctx))
	assert.Contains(t, texts, "AUTO_INCREMENT")
	assert.Contains(t, texts, "CHARSET")
}

func TestCreateTableHints(t *testing.T) {
	sql := "CREATE TABLE users (id INT) "
	ctx := Engine{}.ParseAtCursor(sql, len(sql))
	require.Equal(t, sqlparse.StatementCreateTable, ctx.Base.Statement)

	texts := hintTexts(Engine{}.Hints(ctx))
	assert.Contains(t, texts, "ENGINE=InnoDB")
	assert.Contains(t, texts, "ENGINE=MyISAM")
}

func TestDetectOperators(t *testing.T) {
	sql := "SELECT * FROM t WHERE a <=> b AND name REGEXP '^x'"
	ctx := Engine{}.ParseAtCursor(sql, len(sql))

	my := ctx.Engine.(dialect.MySQLContext)
	assert.Contains(t, my.Operators, "<=>")
	assert.Contains(t, my.Operators, "REGEXP")
}

func TestOperatorsAtCursor(t *testing.T) {
	sql := "WHERE a <=> b"
	ops := Engine{}.OperatorsAtCursor(sql, 10)
	assert.Contains(t, ops, "<=>")

	sql = "WHERE name RLIKE 'x'"
	ops = Engine{}.OperatorsAtCursor(sql, 16)
	assert.Contains(t, ops, "RLIKE")
}

func TestWhereClauseHints(t *testing.T) {
	sql := "SELECT * FROM users WHERE "
	ctx := Engine{}.ParseAtCursor(sql, len(sql))

	texts := hintTexts(Engine{}.Hints(ctx))
	assert.Contains(t, texts, "<=>")
	assert.Contains(t, texts, "REGEXP")
	assert.Contains(t, texts, "SOUNDS LIKE")
}

func TestInsertHints(t *testing.T) {
	sql := "INSERT INTO users "
	ctx := Engine{}.ParseAtCursor(sql, len(sql))
	require.Equal(t, sqlparse.ClauseInsert, ctx.Base.Clause)

	texts := hintTexts(Engine{}.Hints(ctx))
	assert.Contains(t, texts, "ON DUPLICATE KEY UPDATE")
	assert.Contains(t, texts, "IGNORE")
}

func TestNoPostgresOperatorsSuggested(t *testing.T) {
	ops := Engine{}.Operators()
	assert.NotContains(t, ops, "@>")
	assert.NotContains(t, ops, "ILIKE")
	assert.NotContains(t, ops, "#>")
}

func hintTexts(hints []dialect.CompletionHint) []string {
	texts := make([]string, 0, len(hints))
	for _, h := range hints {
		texts = append(texts, h.Text)
	}
	return texts
}
