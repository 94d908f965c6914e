package ast

import "sync"

var (
	selectStmtPool = sync.Pool{
		New: func() any {
			return &SelectStmt{
				Columns: make([]Node, 0, 8),
				Joins:   make([]*JoinClause, 0, 4),
			}
		},
	}

	columnPool = sync.Pool{
		New: func() any { return &Column{} },
	}

	tablePool = sync.Pool{
		New: func() any { return &Table{Parts: make([]string, 0, 3)} },
	}

	valuePool = sync.Pool{
		New: func() any { return &Value{} },
	}

	binaryExprPool = sync.Pool{
		New: func() any { return &BinaryExpr{} },
	}

	unaryExprPool = sync.Pool{
		New: func() any { return &UnaryExpr{} },
	}

	arrayPool = sync.Pool{
		New: func() any {
			return &Array{Values: make([]Value, 0, 16)}
		},
	}

	whereClausePool = sync.Pool{
		New: func() any {
			return &WhereClause{Conditions: make([]Node, 0, 8)}
		},
	}

	joinClausePool = sync.Pool{
		New: func() any {
			return &JoinClause{Conditions: make([]Node, 0, 4)}
		},
	}
)

func releaseAll(nodes []Node) {
	for i, n := range nodes {
		Release(n)
		nodes[i] = nil
	}
}
