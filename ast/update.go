package ast

import "github.com/Konsultn-Engineering/sqlqb/utils"

// Assignment is one `col = value` entry of a SET list.
type Assignment struct {
	Column *Column
	Value  Node
}

func (a *Assignment) Type() NodeType         { return NodeAssignment }
func (a *Assignment) Accept(v Visitor) error { return v.VisitAssignment(a) }
func (a *Assignment) Fingerprint() uint64 {
	return utils.Chain("set", a.Column.Fingerprint(), fingerprintOf(a.Value))
}

func (a *Assignment) Release() {
	if a.Column != nil {
		a.Column.Release()
		a.Column = nil
	}
	Release(a.Value)
	a.Value = nil
}

type UpdateStmt struct {
	Table *Table
	Joins []*JoinClause
	Set   []*Assignment
	Where *WhereClause
}

func (u *UpdateStmt) Type() NodeType         { return NodeUpdate }
func (u *UpdateStmt) Accept(v Visitor) error { return v.VisitUpdate(u) }
func (u *UpdateStmt) Fingerprint() uint64 {
	set := make([]uint64, len(u.Set))
	for i, a := range u.Set {
		set[i] = a.Fingerprint()
	}
	fp := utils.Chain("update:", set...)
	fp = utils.Mix64(fp, fingerprintOf(tableNode(u.Table)))
	fp = utils.Mix64(fp, utils.Chain("joins", joinFingerprints(u.Joins)...))
	return utils.Mix64(fp, fingerprintOf(whereNode(u.Where)))
}

func (u *UpdateStmt) Release() {
	if u.Table != nil {
		u.Table.Release()
		u.Table = nil
	}
	releaseJoins(u.Joins)
	for i, a := range u.Set {
		a.Release()
		u.Set[i] = nil
	}
	if u.Where != nil {
		u.Where.Release()
		u.Where = nil
	}
	u.Joins, u.Set = nil, nil
}
