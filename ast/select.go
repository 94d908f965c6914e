package ast

import "github.com/Konsultn-Engineering/sqlqb/utils"

type SelectStmt struct {
	Columns []Node
	From    *Table
	Joins   []*JoinClause
	Where   *WhereClause
}

func NewSelectStmt() *SelectStmt {
	s := selectStmtPool.Get().(*SelectStmt)
	s.Columns = s.Columns[:0]
	s.Joins = s.Joins[:0]
	s.From = nil
	s.Where = nil
	return s
}

func (s *SelectStmt) Type() NodeType         { return NodeSelect }
func (s *SelectStmt) Accept(v Visitor) error { return v.VisitSelect(s) }
func (s *SelectStmt) Fingerprint() uint64 {
	fp := utils.Chain("select:", fingerprints(s.Columns)...)
	fp = utils.Mix64(fp, fingerprintOf(tableNode(s.From)))
	fp = utils.Mix64(fp, utils.Chain("joins", joinFingerprints(s.Joins)...))
	return utils.Mix64(fp, fingerprintOf(whereNode(s.Where)))
}

func (s *SelectStmt) Release() {
	releaseAll(s.Columns)
	s.Columns = s.Columns[:0]
	if s.From != nil {
		s.From.Release()
		s.From = nil
	}
	releaseJoins(s.Joins)
	s.Joins = s.Joins[:0]
	if s.Where != nil {
		s.Where.Release()
		s.Where = nil
	}
	selectStmtPool.Put(s)
}

// tableNode and whereNode keep typed nil pointers out of Node interfaces.
func tableNode(t *Table) Node {
	if t == nil {
		return nil
	}
	return t
}

func whereNode(w *WhereClause) Node {
	if w == nil {
		return nil
	}
	return w
}
