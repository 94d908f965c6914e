package visitor

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/Konsultn-Engineering/sqlqb/ast"
	"github.com/Konsultn-Engineering/sqlqb/cache"
	"github.com/Konsultn-Engineering/sqlqb/dialect"
	"github.com/Konsultn-Engineering/sqlqb/internal/debug"
	"github.com/Konsultn-Engineering/sqlqb/utils"
)

var visitorPool = sync.Pool{
	New: func() any {
		return &SQLVisitor{
			args: make([]any, 0, 8),
		}
	},
}

// SQLVisitor renders an AST into SQL text and the ordered list of bound
// arguments. Arguments are appended in exactly the order their placeholders
// are written. A visitor is not safe for concurrent use; take one per build.
type SQLVisitor struct {
	sb      strings.Builder
	args    []any
	dialect dialect.Dialect
	qcache  cache.QueryCache
	logger  *slog.Logger

	// collectOnly skips writing text; used when the SQL came from the cache
	// and only the arguments are needed.
	collectOnly bool
}

// NewSQLVisitor takes a visitor from the pool. qcache may be nil.
func NewSQLVisitor(d dialect.Dialect, q cache.QueryCache) *SQLVisitor {
	v := visitorPool.Get().(*SQLVisitor)
	v.dialect = d
	v.qcache = q
	v.Reset()
	return v
}

func (v *SQLVisitor) Release() {
	v.dialect = nil
	v.qcache = nil
	v.logger = nil
	v.Reset()
	visitorPool.Put(v)
}

// SetLogger sends cache activity to l instead of the debug logger.
func (v *SQLVisitor) SetLogger(l *slog.Logger) {
	v.logger = l
}

func (v *SQLVisitor) log() *slog.Logger {
	if v.logger != nil {
		return v.logger
	}
	return debug.Logger()
}

func (v *SQLVisitor) Reset() {
	v.sb.Reset()
	clear(v.args)
	v.args = v.args[:0]
	v.collectOnly = false
}

// Build renders root. The returned argument slice is owned by the caller.
func (v *SQLVisitor) Build(root ast.Node) (string, []any, error) {
	if v.qcache == nil {
		return v.render(root)
	}

	fp := v.cacheKey(root)
	if cached, ok := v.qcache.Get(fp); ok && cached != nil {
		v.Reset()
		v.collectOnly = true
		err := root.Accept(v)
		v.collectOnly = false
		if err != nil {
			return "", nil, err
		}
		if len(v.args) == cached.ArgCount {
			v.log().Debug("query cache hit", "fingerprint", fp, "args", len(v.args))
			return cached.SQL, v.copyArgs(), nil
		}
		v.log().Warn("query cache entry does not match statement, rendering again",
			"fingerprint", fp, "cached_args", cached.ArgCount, "args", len(v.args))
	}

	sql, args, err := v.render(root)
	if err != nil {
		return "", nil, err
	}
	v.qcache.Set(fp, &cache.CachedQuery{SQL: sql, ArgCount: len(args)})
	v.log().Debug("query cache miss", "fingerprint", fp, "sql", sql)
	return sql, args, nil
}

// cacheKey is the statement shape mixed with the dialect, so caches shared
// between compilers never hand out another dialect's SQL.
func (v *SQLVisitor) cacheKey(root ast.Node) uint64 {
	return utils.Mix64(root.Fingerprint(), utils.U64(v.dialect.Name()))
}

func (v *SQLVisitor) render(root ast.Node) (string, []any, error) {
	v.Reset()
	if err := root.Accept(v); err != nil {
		return "", nil, err
	}
	return v.sb.String(), v.copyArgs(), nil
}

func (v *SQLVisitor) copyArgs() []any {
	out := make([]any, len(v.args))
	copy(out, v.args)
	return out
}

func (v *SQLVisitor) Arg(a any) {
	v.args = append(v.args, a)
}

func (v *SQLVisitor) write(s string) {
	if !v.collectOnly {
		v.sb.WriteString(s)
	}
}

func (v *SQLVisitor) writeByte(c byte) {
	if !v.collectOnly {
		v.sb.WriteByte(c)
	}
}

func (v *SQLVisitor) quote(name string) {
	if !v.collectOnly {
		v.sb.WriteString(v.dialect.QuoteIdentifier(name))
	}
}

func (v *SQLVisitor) VisitSelect(s *ast.SelectStmt) error {
	//	SELECT column_list
	//	FROM table [as alias]
	//	[JOIN ...]
	//	[WHERE condition]

	v.write("SELECT ")
	if err := v.list(s.Columns, ", "); err != nil {
		return err
	}

	if s.From != nil {
		v.write(" FROM ")
		if err := s.From.Accept(v); err != nil {
			return err
		}
	}

	if err := v.joins(s.Joins); err != nil {
		return err
	}

	if s.Where != nil {
		return s.Where.Accept(v)
	}
	return nil
}

func (v *SQLVisitor) VisitInsert(stmt *ast.InsertStmt) error {
	head, tail := "INSERT INTO", ""
	if stmt.Ignore {
		head, tail = v.dialect.InsertIgnore()
	}

	v.write(head)
	v.writeByte(' ')
	if err := stmt.Table.Accept(v); err != nil {
		return err
	}

	v.write(" (")
	for i, col := range stmt.Columns {
		if i > 0 {
			v.write(", ")
		}
		if err := col.Accept(v); err != nil {
			return err
		}
	}
	v.write(") VALUES (")
	if err := v.list(stmt.Values, ", "); err != nil {
		return err
	}
	v.writeByte(')')
	v.write(tail)
	return nil
}

func (v *SQLVisitor) VisitUpdate(stmt *ast.UpdateStmt) error {
	v.write("UPDATE ")
	if err := stmt.Table.Accept(v); err != nil {
		return err
	}

	// MySQL multi-table form: joins sit between the table and SET.
	if err := v.joins(stmt.Joins); err != nil {
		return err
	}

	v.write(" SET ")
	for i, a := range stmt.Set {
		if i > 0 {
			v.write(", ")
		}
		if err := a.Accept(v); err != nil {
			return err
		}
	}

	if stmt.Where != nil {
		return stmt.Where.Accept(v)
	}
	return nil
}

func (v *SQLVisitor) VisitDelete(stmt *ast.DeleteStmt) error {
	v.write("DELETE FROM ")
	if err := stmt.Table.Accept(v); err != nil {
		return err
	}
	if stmt.Where != nil {
		return stmt.Where.Accept(v)
	}
	return nil
}

func (v *SQLVisitor) VisitColumn(c *ast.Column) error {
	if c.Table != "" {
		v.quote(c.Table)
		v.writeByte('.')
	}
	if c.Name == "*" {
		v.writeByte('*')
	} else {
		v.quote(c.Name)
	}

	if c.Alias != "" && c.Alias != c.Name {
		v.write(" as ")
		v.quote(c.Alias)
	}

	return nil
}

func (v *SQLVisitor) VisitTable(t *ast.Table) error {
	for i, part := range t.Parts {
		if i > 0 {
			v.writeByte('.')
		}
		v.quote(part)
	}

	if t.Alias != "" {
		v.write(" as ")
		v.quote(t.Alias)
	}

	return nil
}

func (v *SQLVisitor) VisitValue(val *ast.Value) error {
	v.write(v.dialect.Placeholder(len(v.args) + 1))
	v.Arg(val.Val)
	return nil
}

func (v *SQLVisitor) VisitArray(a *ast.Array) error {
	v.writeByte('(')
	for i := range a.Values {
		if i > 0 {
			v.writeByte(',')
		}
		if err := a.Values[i].Accept(v); err != nil {
			return err
		}
	}
	v.writeByte(')')
	return nil
}

func (v *SQLVisitor) VisitLiteral(l *ast.Literal) error {
	if l.Val {
		v.write("true")
	} else {
		v.write("false")
	}
	return nil
}

func (v *SQLVisitor) VisitRaw(r *ast.Raw) error {
	v.write(r.SQL)
	return nil
}

func (v *SQLVisitor) VisitFunction(f *ast.Function) error {
	v.write(f.Name)
	v.writeByte('(')
	if err := v.list(f.Args, ", "); err != nil {
		return err
	}
	v.writeByte(')')

	if f.Alias != "" {
		v.write(" as ")
		v.write(f.Alias)
	}
	return nil
}

func (v *SQLVisitor) VisitBinaryExpr(expr *ast.BinaryExpr) error {
	if err := expr.Left.Accept(v); err != nil {
		return err
	}

	v.writeByte(' ')
	v.write(expr.Operator)
	v.writeByte(' ')

	return expr.Right.Accept(v)
}

func (v *SQLVisitor) VisitUnaryExpr(expr *ast.UnaryExpr) error {
	if err := expr.Operand.Accept(v); err != nil {
		return err
	}
	v.writeByte(' ')
	v.write(expr.Operator)
	return nil
}

func (v *SQLVisitor) VisitAssignment(a *ast.Assignment) error {
	if err := a.Column.Accept(v); err != nil {
		return err
	}
	v.write(" = ")
	return a.Value.Accept(v)
}

func (v *SQLVisitor) VisitWhereClause(clause *ast.WhereClause) error {
	if clause == nil || len(clause.Conditions) == 0 {
		return nil
	}

	v.write(" WHERE ")
	return v.list(clause.Conditions, " "+ast.OpAnd+" ")
}

func (v *SQLVisitor) VisitJoinClause(clause *ast.JoinClause) error {
	if clause == nil || clause.Table == nil {
		return nil
	}

	// <KIND> JOIN <table>
	v.writeByte(' ')
	v.write(clause.JoinType.Keyword())
	v.writeByte(' ')
	if err := clause.Table.Accept(v); err != nil {
		return err
	}

	// ON <cond1> [AND <cond2> ...]
	if len(clause.Conditions) > 0 {
		v.write(" ON ")
		return v.list(clause.Conditions, " "+ast.OpAnd+" ")
	}

	return nil
}

// --- helpers ---

func (v *SQLVisitor) list(nodes []ast.Node, sep string) error {
	for i, n := range nodes {
		if i > 0 {
			v.write(sep)
		}
		if err := n.Accept(v); err != nil {
			return err
		}
	}
	return nil
}

func (v *SQLVisitor) joins(joins []*ast.JoinClause) error {
	for _, join := range joins {
		if err := join.Accept(v); err != nil {
			return err
		}
	}
	return nil
}

var _ ast.Visitor = (*SQLVisitor)(nil)
