package dialect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		input    string
		expected string
	}{
		{"mysql plain", NewMySQLDialect(), "users", "`users`"},
		{"mysql embedded backtick", NewMySQLDialect(), "we`ird", "`we``ird`"},
		{"tidb", NewTiDBDialect(), "users", "`users`"},
		{"postgres plain", NewPostgresDialect(), "users", `"users"`},
		{"postgres embedded quote", NewPostgresDialect(), `a"b`, `"a""b"`},
		{"sqlite", NewSQLiteDialect(), "users", `"users"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.dialect.QuoteIdentifier(tt.input))
		})
	}
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "?", NewMySQLDialect().Placeholder(3))
	assert.Equal(t, "?", NewSQLiteDialect().Placeholder(3))
	assert.Equal(t, "$3", NewPostgresDialect().Placeholder(3))
}

func TestInsertIgnore(t *testing.T) {
	head, tail := NewMySQLDialect().InsertIgnore()
	assert.Equal(t, "INSERT IGNORE INTO", head)
	assert.Empty(t, tail)

	head, tail = NewPostgresDialect().InsertIgnore()
	assert.Equal(t, "INSERT INTO", head)
	assert.Equal(t, " ON CONFLICT DO NOTHING", tail)

	head, _ = NewSQLiteDialect().InsertIgnore()
	assert.Equal(t, "INSERT OR IGNORE INTO", head)
}

type status string

func TestRenderValue(t *testing.T) {
	d := NewMySQLDialect()
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	var nilPtr *int
	n := 7

	assert.Equal(t, "NULL", d.RenderValue(nil))
	assert.Equal(t, "'it''s'", d.RenderValue("it's"))
	assert.Equal(t, "TRUE", d.RenderValue(true))
	assert.Equal(t, "42", d.RenderValue(int64(42)))
	assert.Equal(t, "1.5", d.RenderValue(1.5))
	assert.Equal(t, "'2024-01-02 03:04:05.000000'", d.RenderValue(ts))
	assert.Equal(t, "X'0aff'", d.RenderValue([]byte{0x0a, 0xff}))
	assert.Equal(t, "'active'", d.RenderValue(status("active")))
	assert.Equal(t, "NULL", d.RenderValue(nilPtr))
	assert.Equal(t, "7", d.RenderValue(&n))

	assert.Equal(t, `'\x0aff'`, NewPostgresDialect().RenderValue([]byte{0x0a, 0xff}))
}

func TestLookup(t *testing.T) {
	d, err := Lookup("MySQL")
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	d, err = Lookup("pg")
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	d, err = Lookup("tidb")
	require.NoError(t, err)
	assert.Equal(t, "tidb", d.Name())
	assert.Equal(t, "`x`", d.QuoteIdentifier("x"))

	_, err = Lookup("oracle")
	assert.ErrorContains(t, err, "unknown dialect")
	assert.Contains(t, Names(), "sqlite")
}
