package commands

import (
	"bytes"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/quillsql/quill/internal/cli/config"
)

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3", "2026-08-30", "abc1234")
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "quill v1.2.3")
	assert.Contains(t, buf.String(), "abc1234")
}

func TestDialectsCommand(t *testing.T) {
	cmd := NewDialectsCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	require.NoError(t, cmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "generic")
	assert.Contains(t, out, "postgres")
	assert.Contains(t, out, "mysql")
	assert.Contains(t, out, "sqlite")
}

func TestQueryCommandAgainstSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	seed, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = seed.Exec(`CREATE TABLE users (id INTEGER, name TEXT);
		INSERT INTO users VALUES (1, 'ada'), (2, 'brin');`)
	require.NoError(t, err)
	require.NoError(t, seed.Close())

	cmd := NewQueryCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"-c", path, "-f", "csv", "SELECT name FROM users ORDER BY id;"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "name\nada\nbrin\n", buf.String())
}

func TestQueryCommandNoInput(t *testing.T) {
	cmd := NewQueryCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"-c", ":memory:"})

	// Whether stdin looks like a terminal or an empty pipe, there is no
	// SQL to run.
	err := cmd.Execute()
	require.Error(t, err)
}

func TestRenderResultsFormats(t *testing.T) {
	conn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()
	conn.SetMaxOpenConns(1)
	_, err = conn.Exec(`CREATE TABLE t (a INTEGER, b TEXT);
		INSERT INTO t VALUES (1, 'x,y'), (2, NULL);`)
	require.NoError(t, err)

	query := func() *sql.Rows {
		rows, err := conn.Query("SELECT a, b FROM t ORDER BY a")
		require.NoError(t, err)
		return rows
	}

	var buf bytes.Buffer
	require.NoError(t, renderResults(&buf, query(), "csv"))
	assert.Equal(t, "a,b\n1,\"x,y\"\n2,NULL\n", buf.String())

	buf.Reset()
	require.NoError(t, renderResults(&buf, query(), "json"))
	assert.Contains(t, buf.String(), `"a": 1`)

	buf.Reset()
	require.NoError(t, renderResults(&buf, query(), "markdown"))
	assert.Contains(t, buf.String(), "| a | b |")
	assert.Contains(t, buf.String(), "| --- | --- |")

	buf.Reset()
	require.NoError(t, renderResults(&buf, query(), "table"))
	assert.Contains(t, buf.String(), "(2 rows)")
}

func TestRenderResultsEmpty(t *testing.T) {
	conn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()
	conn.SetMaxOpenConns(1)
	_, err = conn.Exec(`CREATE TABLE t (a INTEGER)`)
	require.NoError(t, err)

	rows, err := conn.Query("SELECT a FROM t")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderResults(&buf, rows, "table"))
	assert.Equal(t, "(0 rows)\n", buf.String())
}

func TestResolveFormat(t *testing.T) {
	cfg := &config.Config{Format: "csv"}
	assert.Equal(t, "json", resolveFormat("json", cfg))
	assert.Equal(t, "csv", resolveFormat("", cfg))
	assert.Equal(t, config.DefaultFormat, resolveFormat("", &config.Config{}))
}
