package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillsql/quill/pkg/dialect"
	"github.com/quillsql/quill/pkg/sqlparse"
)

func TestRegistersOnInit(t *testing.T) {
	e := dialect.For(dialect.TypeSQLite)
	assert.Equal(t, dialect.TypeSQLite, e.Type())
}

func TestDetectPragma(t *testing.T) {
	ctx := Engine{}.ParseAtCursor("PRAGMA table_info(users); SELECT 1", 24)

	sq, ok := ctx.Engine.(dialect.SQLiteContext)
	require.True(t, ok)
	assert.Equal(t, "PRAGMA table_info(users)", sq.Pragma)

	texts := hintTexts(Engine{}.Hints(ctx))
	assert.Contains(t, texts, "table_info(")
	assert.Contains(t, texts, "foreign_key_list(")
}

func TestDetectVirtualTable(t *testing.T) {
	sql := "CREATE VIRTUAL TABLE docs USING FTS5(content)"
	ctx := Engine{}.ParseAtCursor(sql, len(sql))

	sq := ctx.Engine.(dialect.SQLiteContext)
	assert.True(t, sq.VirtualTable)

	texts := hintTexts(Engine{}.Hints(ctx))
	assert.Contains(t, texts, "MATCH")
}

func TestDetectWithoutRowid(t *testing.T) {
	sql := "CREATE TABLE kv (k TEXT, v TEXT) WITHOUT ROWID"
	ctx := Engine{}.ParseAtCursor(sql, len(sql))

	sq := ctx.Engine.(dialect.SQLiteContext)
	assert.True(t, sq.WithoutRowid)

	texts := hintTexts(Engine{}.Hints(ctx))
	assert.Contains(t, texts, "PRIMARY KEY")
}

func TestCreateTableHints(t *testing.T) {
	sql := "CREATE TABLE kv (k TEXT) "
	ctx := Engine{}.ParseAtCursor(sql, len(sql))
	require.Equal(t, sqlparse.StatementCreateTable, ctx.Base.Statement)

	texts := hintTexts(Engine{}.Hints(ctx))
	assert.Contains(t, texts, "WITHOUT ROWID")
}

func TestOperatorsAtCursor(t *testing.T) {
	sql := "WHERE name GLOB 'a*'"
	ops := Engine{}.OperatorsAtCursor(sql, 15)
	assert.Contains(t, ops, "GLOB")

	sql = "WHERE doc MATCH 'term'"
	ops = Engine{}.OperatorsAtCursor(sql, 15)
	assert.Contains(t, ops, "MATCH")
}

func TestWhereClauseHints(t *testing.T) {
	sql := "SELECT * FROM logs WHERE "
	ctx := Engine{}.ParseAtCursor(sql, len(sql))

	texts := hintTexts(Engine{}.Hints(ctx))
	assert.Contains(t, texts, "GLOB")
	assert.Contains(t, texts, "MATCH")
	assert.Contains(t, texts, "REGEXP")
}

func TestPragmaSuggestions(t *testing.T) {
	ctx := Engine{}.ParseAtCursor("PRAGMA ", 7)
	got := Engine{}.Suggestions(ctx, "PRAGMA")

	assert.Contains(t, got, "PRAGMA table_info(")
	assert.Contains(t, got, "PRAGMA journal_mode")
}

func TestNoStorageEngineHints(t *testing.T) {
	sql := "CREATE TABLE kv (k TEXT) "
	ctx := Engine{}.ParseAtCursor(sql, len(sql))

	texts := hintTexts(Engine{}.Hints(ctx))
	assert.NotContains(t, texts, "ENGINE=InnoDB")
	assert.NotContains(t, texts, "AUTO_INCREMENT")
}

func hintTexts(hints []dialect.CompletionHint) []string {
	texts := make([]string, 0, len(hints))
	for _, h := range hints {
		texts = append(texts, h.Text)
	}
	return texts
}
