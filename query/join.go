package query

import (
	"fmt"
	"strings"

	"github.com/Konsultn-Engineering/sqlqb/ast"
)

const (
	JoinInner = "inner"
	JoinLeft  = "left"
)

// ParseJoinType maps a join kind name to its AST form. The empty string is
// an inner join.
func ParseJoinType(kind string) (ast.JoinType, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", JoinInner:
		return ast.JoinInner, nil
	case JoinLeft:
		return ast.JoinLeft, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownJoinType, kind)
	}
}

type join struct {
	kind  ast.JoinType
	table TableRef
	on    []Condition
	where []Condition
}

// node lowers the join. Join-scoped WHERE conditions are written ahead of
// the ON conditions, both under a single ON.
func (j *join) node() *ast.JoinClause {
	return ast.NewJoinClause(j.kind, j.table.node(), conditionNodes(j.where, j.on)...)
}

func (j *join) clone() *join {
	return &join{
		kind:  j.kind,
		table: j.table,
		on:    append([]Condition(nil), j.on...),
		where: append([]Condition(nil), j.where...),
	}
}
