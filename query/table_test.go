package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRefValidate(t *testing.T) {
	assert.NoError(t, Table("test").Validate())
	assert.NoError(t, Table("schema", "test").As("t").Validate())
	assert.NoError(t, Table("database", "schema", "test").As("t").Validate())

	assert.ErrorIs(t, Table().Validate(), ErrInvalidTableName)
	assert.ErrorIs(t, Table("a", "b", "c", "d").Validate(), ErrInvalidTableName)
	assert.ErrorIs(t, Table(" ").Validate(), ErrInvalidTableName)
	assert.ErrorIs(t, Table("t").As(" ").Validate(), ErrInvalidTableName)
}

func TestTableRefAccessors(t *testing.T) {
	ref := Table("db", "public", "users")
	aliased := ref.As("u")

	assert.Equal(t, "users", ref.Name())
	assert.Equal(t, "users", ref.Ref())
	assert.Equal(t, "u", aliased.Ref())
	assert.Equal(t, "db.public.users as u", aliased.String())
	assert.Equal(t, "", ref.Alias)

	aliased.Qualifiers[0] = "other"
	assert.Equal(t, "db", ref.Qualifiers[0])
}

func TestParseTable(t *testing.T) {
	tests := []struct {
		in   string
		want TableRef
	}{
		{"test", Table("test")},
		{"schema.test", Table("schema", "test")},
		{"database.schema.test as t", Table("database", "schema", "test").As("t")},
		{"database.schema.test AS t", Table("database", "schema", "test").As("t")},
		{"test t", Table("test").As("t")},
		{"  test   as   t  ", Table("test").As("t")},
		{"`my.db`.`odd table` as x", Table("my.db", "odd table").As("x")},
		{`"public"."users"`, Table("public", "users")},
		{"assets", Table("assets")},
		{"as_of.rates", Table("as_of", "rates")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTable(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTableErrors(t *testing.T) {
	for _, in := range []string{"", "   ", "a.b.c.d", "a..b", "a.b as", "a b c", "1abc"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseTable(in)
			assert.ErrorIs(t, err, ErrInvalidTableName)
		})
	}

	assert.Panics(t, func() { MustParseTable("a.b.c.d") })
	assert.Equal(t, Table("x"), MustParseTable("x"))
}

func TestParsedTableResolves(t *testing.T) {
	sql, _, err := Select(MustParseTable("database.schema.test as t"), "id").Resolve()
	require.NoError(t, err)
	assert.Equal(t, "SELECT `id` FROM `database`.`schema`.`test` as `t`", sql)
}

func TestParseJoinType(t *testing.T) {
	for _, kind := range []string{"", "inner", "INNER", " Left "} {
		_, err := ParseJoinType(kind)
		assert.NoError(t, err, kind)
	}
	_, err := ParseJoinType("outer")
	assert.ErrorIs(t, err, ErrUnknownJoinType)
}
