package ast

import "github.com/Konsultn-Engineering/sqlqb/utils"

type DeleteStmt struct {
	Table *Table
	Where *WhereClause
}

func (d *DeleteStmt) Type() NodeType         { return NodeDelete }
func (d *DeleteStmt) Accept(v Visitor) error { return v.VisitDelete(d) }
func (d *DeleteStmt) Fingerprint() uint64 {
	return utils.Chain("delete:", fingerprintOf(tableNode(d.Table)), fingerprintOf(whereNode(d.Where)))
}

func (d *DeleteStmt) Release() {
	if d.Table != nil {
		d.Table.Release()
		d.Table = nil
	}
	if d.Where != nil {
		d.Where.Release()
		d.Where = nil
	}
}
