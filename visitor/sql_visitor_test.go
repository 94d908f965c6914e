package visitor

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/Konsultn-Engineering/sqlqb/ast"
	"github.com/Konsultn-Engineering/sqlqb/cache"
	"github.com/Konsultn-Engineering/sqlqb/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joinedSelect(id any, in []any) *ast.SelectStmt {
	stmt := ast.NewSelectStmt()
	stmt.Columns = append(stmt.Columns, ast.NewColumn("", "id", ""))
	stmt.From = ast.NewTable([]string{"test"}, "t")
	stmt.Joins = append(stmt.Joins, ast.NewJoinClause(ast.JoinLeft,
		ast.NewTable([]string{"join_table"}, "jt"),
		ast.NewBinaryExpr(ast.NewColumn("jt", "id", ""), ast.OpEqual, ast.NewColumn("t", "id", "")),
	))
	stmt.Where = ast.NewWhereClause(
		ast.NewBinaryExpr(ast.NewColumn("t", "id", ""), ast.OpEqual, ast.NewValue(id)),
		ast.NewBinaryExpr(ast.NewColumn("t", "data", ""), ast.OpIn, ast.NewArray(in)),
	)
	return stmt
}

func TestSQLVisitor_Select(t *testing.T) {
	stmt := joinedSelect(7, []any{1, 2, 3})
	defer stmt.Release()

	v := NewSQLVisitor(dialect.NewMySQLDialect(), nil)
	defer v.Release()

	sql, args, err := v.Build(stmt)
	require.NoError(t, err)
	assert.Equal(t, "SELECT `id` FROM `test` as `t` LEFT JOIN `join_table` as `jt` ON `jt`.`id` = `t`.`id` WHERE `t`.`id` = ? AND `t`.`data` in (?,?,?)", sql)
	assert.Equal(t, []any{7, 1, 2, 3}, args)
}

func TestSQLVisitor_PostgresPlaceholders(t *testing.T) {
	stmt := joinedSelect("x", []any{"a", "b"})
	defer stmt.Release()

	v := NewSQLVisitor(dialect.NewPostgresDialect(), nil)
	defer v.Release()

	sql, args, err := v.Build(stmt)
	require.NoError(t, err)
	assert.Equal(t, `SELECT "id" FROM "test" as "t" LEFT JOIN "join_table" as "jt" ON "jt"."id" = "t"."id" WHERE "t"."id" = $1 AND "t"."data" in ($2,$3)`, sql)
	assert.Equal(t, []any{"x", "a", "b"}, args)
}

func TestSQLVisitor_Statements(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		sql  string
		args []any
	}{
		{
			name: "insert",
			node: &ast.InsertStmt{
				Table:   ast.NewTable([]string{"test"}, ""),
				Columns: []*ast.Column{ast.NewColumn("", "id", ""), ast.NewColumn("", "value", "")},
				Values:  []ast.Node{ast.NewValue(1), ast.NewValue("foo")},
			},
			sql:  "INSERT INTO `test` (`id`, `value`) VALUES (?, ?)",
			args: []any{1, "foo"},
		},
		{
			name: "insert ignore",
			node: &ast.InsertStmt{
				Table:   ast.NewTable([]string{"test"}, ""),
				Columns: []*ast.Column{ast.NewColumn("", "id", "")},
				Values:  []ast.Node{ast.NewValue(1)},
				Ignore:  true,
			},
			sql:  "INSERT IGNORE INTO `test` (`id`) VALUES (?)",
			args: []any{1},
		},
		{
			name: "update",
			node: &ast.UpdateStmt{
				Table: ast.NewTable([]string{"test"}, ""),
				Set: []*ast.Assignment{
					{Column: ast.NewColumn("", "id", ""), Value: ast.NewValue(1)},
					{Column: ast.NewColumn("", "value", ""), Value: ast.NewValue("foo")},
				},
			},
			sql:  "UPDATE `test` SET `id` = ?, `value` = ?",
			args: []any{1, "foo"},
		},
		{
			name: "delete",
			node: &ast.DeleteStmt{
				Table: ast.NewTable([]string{"test"}, ""),
				Where: ast.NewWhereClause(ast.NewBinaryExpr(ast.NewColumn("", "id", ""), ast.OpEqual, ast.NewValue(1))),
			},
			sql:  "DELETE FROM `test` WHERE `id` = ?",
			args: []any{1},
		},
		{
			name: "count",
			node: func() ast.Node {
				s := ast.NewSelectStmt()
				s.Columns = append(s.Columns, &ast.Function{Name: "COUNT", Args: []ast.Node{&ast.Raw{SQL: "*"}}, Alias: "count"})
				s.From = ast.NewTable([]string{"test"}, "")
				return s
			}(),
			sql: "SELECT COUNT(*) as count FROM `test`",
		},
		{
			name: "literal and null",
			node: func() ast.Node {
				s := ast.NewSelectStmt()
				s.Columns = append(s.Columns, ast.NewColumn("t", "*", ""))
				s.From = ast.NewTable([]string{"database", "schema", "test"}, "t")
				s.Where = ast.NewWhereClause(&ast.Literal{Val: false}, ast.NewUnaryExpr(ast.NewColumn("t", "deleted_at", ""), ast.OpIsNull))
				return s
			}(),
			sql: "SELECT `t`.* FROM `database`.`schema`.`test` as `t` WHERE false AND `t`.`deleted_at` IS NULL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer ast.Release(tt.node)

			v := NewSQLVisitor(dialect.NewMySQLDialect(), nil)
			defer v.Release()

			sql, args, err := v.Build(tt.node)
			require.NoError(t, err)
			assert.Equal(t, tt.sql, sql)
			if tt.args == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.args, args)
			}
		})
	}
}

func TestSQLVisitor_CacheHitCollectsArgs(t *testing.T) {
	qc := cache.NewQueryCache()

	first := joinedSelect(1, []any{10, 20})
	v := NewSQLVisitor(dialect.NewMySQLDialect(), qc)
	sql1, args1, err := v.Build(first)
	require.NoError(t, err)
	v.Release()
	first.Release()
	assert.Equal(t, 1, qc.Len())

	second := joinedSelect(2, []any{30, 40})
	defer second.Release()
	v = NewSQLVisitor(dialect.NewMySQLDialect(), qc)
	defer v.Release()
	sql2, args2, err := v.Build(second)
	require.NoError(t, err)

	assert.Equal(t, sql1, sql2)
	assert.Equal(t, []any{1, 10, 20}, args1)
	assert.Equal(t, []any{2, 30, 40}, args2)
	assert.Equal(t, 1, qc.Len())
}

func TestSQLVisitor_CacheSeparatesShapes(t *testing.T) {
	qc := cache.NewQueryCache()

	for _, in := range [][]any{{1}, {1, 2}, {1, 2, 3}} {
		stmt := joinedSelect(0, in)
		v := NewSQLVisitor(dialect.NewMySQLDialect(), qc)
		_, args, err := v.Build(stmt)
		require.NoError(t, err)
		assert.Len(t, args, len(in)+1)
		v.Release()
		stmt.Release()
	}
	assert.Equal(t, 3, qc.Len())
}

func TestSQLVisitor_StaleCacheEntryIsReplaced(t *testing.T) {
	qc := cache.NewQueryCache()
	stmt := joinedSelect(1, []any{2})
	defer stmt.Release()

	v := NewSQLVisitor(dialect.NewMySQLDialect(), qc)
	defer v.Release()
	key := v.cacheKey(stmt)
	qc.Set(key, &cache.CachedQuery{SQL: "stale", ArgCount: 99})

	sql, args, err := v.Build(stmt)
	require.NoError(t, err)
	assert.NotEqual(t, "stale", sql)
	assert.Equal(t, []any{1, 2}, args)

	cached, ok := qc.Get(key)
	require.True(t, ok)
	assert.Equal(t, sql, cached.SQL)
}

func TestSQLVisitor_CacheKeyIncludesDialect(t *testing.T) {
	qc := cache.NewQueryCache()
	stmt := joinedSelect(1, []any{2})
	defer stmt.Release()

	my := NewSQLVisitor(dialect.NewMySQLDialect(), qc)
	defer my.Release()
	pg := NewSQLVisitor(dialect.NewPostgresDialect(), qc)
	defer pg.Release()

	assert.NotEqual(t, my.cacheKey(stmt), pg.cacheKey(stmt))

	mySQL, _, err := my.Build(stmt)
	require.NoError(t, err)
	pgSQL, _, err := pg.Build(stmt)
	require.NoError(t, err)

	assert.Contains(t, mySQL, "`t`.`id` = ?")
	assert.Contains(t, pgSQL, `"t"."id" = $1`)
	assert.Equal(t, 2, qc.Len())
}

func TestSQLVisitor_LogsToSetLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	qc := cache.NewQueryCache()

	for i := 0; i < 2; i++ {
		stmt := joinedSelect(i, []any{1})
		v := NewSQLVisitor(dialect.NewMySQLDialect(), qc)
		v.SetLogger(logger)
		_, _, err := v.Build(stmt)
		require.NoError(t, err)
		v.Release()
		stmt.Release()
	}

	assert.Contains(t, buf.String(), "query cache miss")
	assert.Contains(t, buf.String(), "query cache hit")
}

func TestSQLVisitor_QuotesEmbeddedQuotes(t *testing.T) {
	tbl := ast.NewTable([]string{"we`ird"}, "")
	defer tbl.Release()

	v := NewSQLVisitor(dialect.NewMySQLDialect(), nil)
	defer v.Release()
	sql, _, err := v.Build(tbl)
	require.NoError(t, err)
	assert.Equal(t, "`we``ird`", sql)
}

func BenchmarkSQLVisitor_Build(b *testing.B) {
	qc := cache.NewQueryCache()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		stmt := joinedSelect(i, []any{1, 2, 3})
		v := NewSQLVisitor(dialect.NewMySQLDialect(), qc)
		_, _, _ = v.Build(stmt)
		v.Release()
		stmt.Release()
	}
}

func BenchmarkSQLVisitor_BuildNoCache(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		stmt := joinedSelect(i, []any{1, 2, 3})
		v := NewSQLVisitor(dialect.NewMySQLDialect(), nil)
		_, _, _ = v.Build(stmt)
		v.Release()
		stmt.Release()
	}
}
