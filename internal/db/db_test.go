package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillsql/quill/pkg/dialect"
)

func TestSniffType(t *testing.T) {
	tests := []struct {
		dsn  string
		want dialect.DatabaseType
	}{
		{"postgres://user@localhost/app", dialect.TypePostgres},
		{"postgresql://localhost:5433/app", dialect.TypePostgres},
		{"mysql://root:secret@db:3306/app", dialect.TypeMySQL},
		{"mariadb://db/app", dialect.TypeMySQL},
		{"sqlite:///tmp/app.db", dialect.TypeSQLite},
		{":memory:", dialect.TypeSQLite},
		{"/var/data/app.db", dialect.TypeSQLite},
		{"app.sqlite3", dialect.TypeSQLite},
		{"tcp://something", dialect.TypeGeneric},
		{"", dialect.TypeGeneric},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SniffType(tt.dsn), "dsn %q", tt.dsn)
	}
}

func TestNormalizeDSNMySQL(t *testing.T) {
	got, err := NormalizeDSN(dialect.TypeMySQL, "mysql://root:secret@db:3307/app?parseTime=true")
	require.NoError(t, err)
	assert.Equal(t, "root:secret@tcp(db:3307)/app?parseTime=true", got)

	got, err = NormalizeDSN(dialect.TypeMySQL, "mysql://db/app")
	require.NoError(t, err)
	assert.Equal(t, "tcp(db:3306)/app", got)

	// Driver-native DSNs pass through untouched.
	got, err = NormalizeDSN(dialect.TypeMySQL, "root@tcp(localhost)/app")
	require.NoError(t, err)
	assert.Equal(t, "root@tcp(localhost)/app", got)
}

func TestNormalizeDSNSQLite(t *testing.T) {
	got, err := NormalizeDSN(dialect.TypeSQLite, "sqlite:///tmp/app.db")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/app.db", got)

	got, err = NormalizeDSN(dialect.TypeSQLite, ":memory:")
	require.NoError(t, err)
	assert.Equal(t, ":memory:", got)
}

func TestNormalizeDSNPostgresPassthrough(t *testing.T) {
	dsn := "postgres://user@localhost/app"
	got, err := NormalizeDSN(dialect.TypePostgres, dsn)
	require.NoError(t, err)
	assert.Equal(t, dsn, got)
}

func TestOpenRejectsUnknownType(t *testing.T) {
	_, err := Open(context.Background(), dialect.TypeGeneric, ":memory:")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no driver")
}

func TestOpenSQLiteInMemory(t *testing.T) {
	conn, err := Open(context.Background(), dialect.TypeSQLite, ":memory:")
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	var one int
	require.NoError(t, conn.QueryRowContext(context.Background(), "SELECT 1").Scan(&one))
	assert.Equal(t, 1, one)
}
