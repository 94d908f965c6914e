package ast

type Visitor interface {
	VisitSelect(*SelectStmt) error
	VisitInsert(*InsertStmt) error
	VisitUpdate(*UpdateStmt) error
	VisitDelete(*DeleteStmt) error

	VisitColumn(*Column) error
	VisitTable(*Table) error
	VisitValue(*Value) error
	VisitArray(*Array) error
	VisitLiteral(*Literal) error
	VisitRaw(*Raw) error
	VisitFunction(*Function) error
	VisitBinaryExpr(*BinaryExpr) error
	VisitUnaryExpr(*UnaryExpr) error
	VisitAssignment(*Assignment) error

	VisitWhereClause(*WhereClause) error
	VisitJoinClause(*JoinClause) error
}
