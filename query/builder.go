package query

import (
	"errors"
	"fmt"
	"strings"
)

type Verb int

const (
	verbNone Verb = iota
	VerbSelect
	VerbCount
	VerbInsert
	VerbUpdate
	VerbDelete
)

func (v Verb) String() string {
	switch v {
	case VerbSelect:
		return "select"
	case VerbCount:
		return "count"
	case VerbInsert:
		return "insert"
	case VerbUpdate:
		return "update"
	case VerbDelete:
		return "delete"
	default:
		return "none"
	}
}

type selectColumn struct {
	Ident
	Alias string
}

type assignment struct {
	column Ident
	kind   valueKind
	value  any
}

// Builder accumulates one statement. Configuration errors are collected and
// reported by Err and Resolve, so calls can be chained without checks.
//
// A Builder must not be configured from several goroutines at once.
// Resolve does not modify it and may be called any number of times.
type Builder struct {
	compiler *Compiler
	verb     Verb
	table    TableRef
	columns  []selectColumn
	count    string
	values   []assignment
	ignore   bool
	joins    []*join
	where    []Condition
	errors   []error
}

func newBuilder(c *Compiler, verb Verb, table TableRef) *Builder {
	b := &Builder{compiler: c, verb: verb, table: table}
	b.AddError(table.Validate())
	return b
}

// Select starts `SELECT columns FROM table` on the default compiler.
func Select(table TableRef, columns ...string) *Builder {
	return std.Select(table, columns...)
}

// Count starts `SELECT COUNT(expr) as count FROM table`.
func Count(table TableRef, expr string) *Builder {
	return std.Count(table, expr)
}

// Insert starts an INSERT of one row. With ignore set, rows that collide
// with an existing key are skipped.
func Insert(table TableRef, values Map, ignore bool) *Builder {
	return std.Insert(table, values, ignore)
}

func Update(table TableRef, values Map) *Builder {
	return std.Update(table, values)
}

// Delete starts `DELETE FROM table WHERE where`. An empty map deletes every
// row.
func Delete(table TableRef, where Map) *Builder {
	return std.Delete(table, where)
}

func (c *Compiler) Select(table TableRef, columns ...string) *Builder {
	b := newBuilder(c, VerbSelect, table)
	if len(columns) == 0 {
		b.AddError(ErrNoColumns)
	}
	for _, raw := range columns {
		col, err := parseSelectColumn(raw)
		if err != nil {
			b.AddError(err)
			continue
		}
		b.columns = append(b.columns, col)
	}
	return b
}

func (c *Compiler) Count(table TableRef, expr string) *Builder {
	b := newBuilder(c, VerbCount, table)
	b.count = strings.TrimSpace(expr)
	if b.count == "" {
		b.count = "*"
	}
	return b
}

func (c *Compiler) Insert(table TableRef, values Map, ignore bool) *Builder {
	b := newBuilder(c, VerbInsert, table)
	b.ignore = ignore
	b.values = b.assignments(values, false)
	return b
}

func (c *Compiler) Update(table TableRef, values Map) *Builder {
	b := newBuilder(c, VerbUpdate, table)
	b.values = b.assignments(values, true)
	return b
}

func (c *Compiler) Delete(table TableRef, where Map) *Builder {
	b := newBuilder(c, VerbDelete, table)
	return b.Where(where)
}

// Join declares a join. kind is "inner" (the default) or "left". Later
// JoinOn and JoinWhere calls apply to this join until the next one.
func (b *Builder) Join(table TableRef, kind ...string) *Builder {
	if b.verb == VerbInsert || b.verb == VerbDelete {
		b.AddError(fmt.Errorf("%w: %s", ErrJoinNotSupported, b.verb))
		return b
	}
	if len(kind) > 1 {
		b.AddError(fmt.Errorf("%w: %q", ErrUnknownJoinType, strings.Join(kind, " ")))
		return b
	}

	var k string
	if len(kind) == 1 {
		k = kind[0]
	}
	jt, err := ParseJoinType(k)
	if err != nil {
		b.AddError(err)
		return b
	}
	if err := table.Validate(); err != nil {
		b.AddError(err)
		return b
	}

	b.joins = append(b.joins, &join{kind: jt, table: table})
	return b
}

func (b *Builder) LeftJoin(table TableRef) *Builder {
	return b.Join(table, JoinLeft)
}

// JoinOn adds ON conditions to the last join. String values that look like
// column names compare against that column.
func (b *Builder) JoinOn(on Map) *Builder {
	j := b.lastJoin()
	if j == nil {
		return b
	}
	conds, err := ParseConditions(on, ScopeOn)
	if err != nil {
		b.AddError(err)
		return b
	}
	j.on = append(j.on, conds...)
	return b
}

// JoinWhere adds filters scoped to the last join. They are written into its
// ON clause.
func (b *Builder) JoinWhere(where Map) *Builder {
	j := b.lastJoin()
	if j == nil {
		return b
	}
	conds, err := ParseConditions(where, ScopeWhere)
	if err != nil {
		b.AddError(err)
		return b
	}
	j.where = append(j.where, conds...)
	return b
}

// Where appends to the top-level WHERE group, keeping the order of where.
func (b *Builder) Where(where Map) *Builder {
	conds, err := ParseConditions(where, ScopeWhere)
	if err != nil {
		b.AddError(err)
		return b
	}
	b.where = append(b.where, conds...)
	return b
}

// WhereCond appends already built conditions.
func (b *Builder) WhereCond(conds ...Condition) *Builder {
	for _, c := range conds {
		if c == nil {
			continue
		}
		b.where = append(b.where, c)
	}
	return b
}

func (b *Builder) Verb() Verb      { return b.verb }
func (b *Builder) Table() TableRef { return b.table }

// Resolve compiles the statement with the compiler that created it.
func (b *Builder) Resolve() (string, []any, error) {
	c := b.compiler
	if c == nil {
		c = std
	}
	return c.Resolve(b)
}

// Clone returns an independent copy. Bound values are shared, not copied.
func (b *Builder) Clone() *Builder {
	out := *b
	out.table = b.table.As(b.table.Alias)
	out.columns = append([]selectColumn(nil), b.columns...)
	out.values = append([]assignment(nil), b.values...)
	out.where = append([]Condition(nil), b.where...)
	out.errors = append([]error(nil), b.errors...)
	out.joins = make([]*join, len(b.joins))
	for i, j := range b.joins {
		out.joins[i] = j.clone()
	}
	return &out
}

// AddError records err. nil is ignored.
func (b *Builder) AddError(err error) {
	if err != nil {
		b.errors = append(b.errors, err)
	}
}

func (b *Builder) HasErrors() bool {
	return len(b.errors) > 0
}

// Errors returns the accumulated errors in the order they were recorded.
func (b *Builder) Errors() []error {
	return append([]error(nil), b.errors...)
}

// Err joins the accumulated errors, or returns nil.
func (b *Builder) Err() error {
	return errors.Join(b.errors...)
}

func (b *Builder) lastJoin() *join {
	if len(b.joins) == 0 {
		b.AddError(ErrNoJoin)
		return nil
	}
	return b.joins[len(b.joins)-1]
}

func (b *Builder) assignments(values Map, allowColumns bool) []assignment {
	if len(values) == 0 {
		b.AddError(fmt.Errorf("%w: %s needs at least one column", ErrNoValues, b.verb))
		return nil
	}

	out := make([]assignment, 0, len(values))
	for _, e := range values {
		col, err := ParseIdent(e.Key)
		if err != nil {
			b.AddError(err)
			continue
		}
		kind, scalar, _, err := classify(e.Value)
		if err != nil {
			b.AddError(fmt.Errorf("%w (column %q)", err, e.Key))
			continue
		}
		switch {
		case kind == kindList:
			b.AddError(fmt.Errorf("%w: sequence for column %q", ErrUnsupportedValue, e.Key))
			continue
		case kind == kindColumn && !allowColumns:
			b.AddError(fmt.Errorf("%w: column reference for %q in %s", ErrUnsupportedValue, e.Key, b.verb))
			continue
		case kind == kindColumn:
			ref, err := ParseIdent(string(scalar.(ColumnRef)))
			if err != nil {
				b.AddError(err)
				continue
			}
			scalar = ref
		}
		out = append(out, assignment{column: col, kind: kind, value: scalar})
	}
	return out
}

// parseSelectColumn reads `col`, `t.col`, `*`, `t.*` and `col as alias`.
func parseSelectColumn(raw string) (selectColumn, error) {
	fields := strings.Fields(raw)
	var alias string
	switch {
	case len(fields) == 3 && strings.EqualFold(fields[1], "as"):
		alias = fields[2]
	case len(fields) != 1:
		return selectColumn{}, fmt.Errorf("%w: %q", ErrInvalidColumn, raw)
	}

	id, err := ParseIdent(fields[0])
	if err != nil {
		return selectColumn{}, err
	}
	if id.Name == "*" && alias != "" {
		return selectColumn{}, fmt.Errorf("%w: cannot alias %q", ErrInvalidColumn, raw)
	}
	return selectColumn{Ident: id, Alias: alias}, nil
}
