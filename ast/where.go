package ast

import "github.com/Konsultn-Engineering/sqlqb/utils"

// WhereClause holds conditions joined with AND. An empty clause renders
// nothing.
type WhereClause struct {
	Conditions []Node
}

func NewWhereClause(conditions ...Node) *WhereClause {
	w := whereClausePool.Get().(*WhereClause)
	w.Conditions = append(w.Conditions[:0], conditions...)
	return w
}

func (w *WhereClause) Type() NodeType         { return NodeWhere }
func (w *WhereClause) Accept(v Visitor) error { return v.VisitWhereClause(w) }
func (w *WhereClause) Fingerprint() uint64 {
	return utils.Chain("where", fingerprints(w.Conditions)...)
}

func (w *WhereClause) Release() {
	releaseAll(w.Conditions)
	w.Conditions = w.Conditions[:0]
	whereClausePool.Put(w)
}
