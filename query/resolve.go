package query

import (
	"fmt"

	"github.com/Konsultn-Engineering/sqlqb/ast"
)

// lower converts the builder state into a fresh AST. The caller releases it.
func (b *Builder) lower() (ast.Node, error) {
	switch b.verb {
	case VerbSelect, VerbCount:
		return b.lowerSelect(), nil
	case VerbInsert:
		return b.lowerInsert(), nil
	case VerbUpdate:
		return b.lowerUpdate(), nil
	case VerbDelete:
		return &ast.DeleteStmt{
			Table: b.table.node(),
			Where: b.whereNode(),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrNoStatement, b.verb)
	}
}

func (b *Builder) lowerSelect() *ast.SelectStmt {
	stmt := ast.NewSelectStmt()

	if b.verb == VerbCount {
		stmt.Columns = append(stmt.Columns, &ast.Function{
			Name:  "COUNT",
			Args:  []ast.Node{&ast.Raw{SQL: b.count}},
			Alias: "count",
		})
	} else {
		for _, col := range b.columns {
			stmt.Columns = append(stmt.Columns, ast.NewColumn(col.Table, col.Name, col.Alias))
		}
	}

	stmt.From = b.table.node()
	for _, j := range b.joins {
		stmt.Joins = append(stmt.Joins, j.node())
	}
	stmt.Where = b.whereNode()
	return stmt
}

func (b *Builder) lowerInsert() *ast.InsertStmt {
	stmt := &ast.InsertStmt{
		Table:   b.table.node(),
		Columns: make([]*ast.Column, 0, len(b.values)),
		Values:  make([]ast.Node, 0, len(b.values)),
		Ignore:  b.ignore,
	}
	for _, a := range b.values {
		stmt.Columns = append(stmt.Columns, identNode(a.column))
		stmt.Values = append(stmt.Values, a.node())
	}
	return stmt
}

func (b *Builder) lowerUpdate() *ast.UpdateStmt {
	stmt := &ast.UpdateStmt{
		Table: b.table.node(),
		Set:   make([]*ast.Assignment, 0, len(b.values)),
		Where: b.whereNode(),
	}
	for _, j := range b.joins {
		stmt.Joins = append(stmt.Joins, j.node())
	}
	for _, a := range b.values {
		stmt.Set = append(stmt.Set, &ast.Assignment{Column: identNode(a.column), Value: a.node()})
	}
	return stmt
}

func (b *Builder) whereNode() *ast.WhereClause {
	if len(b.where) == 0 {
		return nil
	}
	return ast.NewWhereClause(conditionNodes(b.where)...)
}

func (a assignment) node() ast.Node {
	if a.kind == kindColumn {
		return identNode(a.value.(Ident))
	}
	return ast.NewValue(a.value)
}
