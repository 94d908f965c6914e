package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func selectWithWhere(val any, inCount int) *SelectStmt {
	values := make([]any, inCount)
	for i := range values {
		values[i] = i
	}

	stmt := NewSelectStmt()
	stmt.Columns = append(stmt.Columns, NewColumn("", "id", ""))
	stmt.From = NewTable([]string{"db", "schema", "test"}, "t")
	stmt.Where = NewWhereClause(
		NewBinaryExpr(NewColumn("t", "id", ""), OpEqual, NewValue(val)),
		NewBinaryExpr(NewColumn("t", "data", ""), OpIn, NewArray(values)),
	)
	return stmt
}

func TestFingerprintIgnoresBoundValues(t *testing.T) {
	a := selectWithWhere(1, 3)
	b := selectWithWhere("other", 3)
	defer a.Release()
	defer b.Release()

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprintTracksShape(t *testing.T) {
	base := selectWithWhere(1, 3)
	longer := selectWithWhere(1, 4)
	defer base.Release()
	defer longer.Release()

	assert.NotEqual(t, base.Fingerprint(), longer.Fingerprint(), "IN list length changes the SQL")

	aliased := &Table{Parts: []string{"test"}, Alias: "t"}
	plain := &Table{Parts: []string{"test"}}
	assert.NotEqual(t, aliased.Fingerprint(), plain.Fingerprint())

	qualified := &Table{Parts: []string{"a", "b"}}
	joined := &Table{Parts: []string{"a.b"}}
	assert.NotEqual(t, qualified.Fingerprint(), joined.Fingerprint())
}

func TestFingerprintDistinguishesStatements(t *testing.T) {
	del := &DeleteStmt{Table: &Table{Parts: []string{"t"}}}
	upd := &UpdateStmt{Table: &Table{Parts: []string{"t"}}}
	assert.NotEqual(t, del.Fingerprint(), upd.Fingerprint())

	ins := &InsertStmt{Table: &Table{Parts: []string{"t"}}, Columns: []*Column{{Name: "id"}}, Values: []Node{&Value{Val: 1}}}
	insIgnore := &InsertStmt{Table: &Table{Parts: []string{"t"}}, Columns: []*Column{{Name: "id"}}, Values: []Node{&Value{Val: 1}}, Ignore: true}
	assert.NotEqual(t, ins.Fingerprint(), insIgnore.Fingerprint())

	inner := &JoinClause{JoinType: JoinInner, Table: &Table{Parts: []string{"j"}}}
	left := &JoinClause{JoinType: JoinLeft, Table: &Table{Parts: []string{"j"}}}
	assert.NotEqual(t, inner.Fingerprint(), left.Fingerprint())
}

func TestLiteralFingerprint(t *testing.T) {
	assert.NotEqual(t, (&Literal{Val: true}).Fingerprint(), (&Literal{Val: false}).Fingerprint())
}

func TestJoinKeyword(t *testing.T) {
	assert.Equal(t, "JOIN", JoinInner.Keyword())
	assert.Equal(t, "LEFT JOIN", JoinLeft.Keyword())
}

func TestReleaseClearsPooledNodes(t *testing.T) {
	col := NewColumn("t", "id", "x")
	val := NewValue(42)
	expr := NewBinaryExpr(col, OpEqual, val)
	expr.Release()

	assert.Empty(t, col.Name)
	assert.Nil(t, val.Val)
	assert.Nil(t, expr.Left)

	Release(nil)
	Release(&Literal{Val: true})
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "test", (&Table{Parts: []string{"db", "schema", "test"}}).Name())
	assert.Equal(t, "", (&Table{}).Name())
}

func BenchmarkSelectStmtFingerprint(b *testing.B) {
	stmt := selectWithWhere(1, 5)
	defer stmt.Release()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = stmt.Fingerprint()
	}
}

func BenchmarkSelectStmtPooled(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		stmt := selectWithWhere(i, 3)
		stmt.Release()
	}
}
