package ast

import "github.com/Konsultn-Engineering/sqlqb/utils"

type InsertStmt struct {
	Table   *Table
	Columns []*Column
	Values  []Node
	Ignore  bool
}

func (i *InsertStmt) Type() NodeType         { return NodeInsert }
func (i *InsertStmt) Accept(v Visitor) error { return v.VisitInsert(i) }
func (i *InsertStmt) Fingerprint() uint64 {
	cols := make([]uint64, len(i.Columns))
	for n, c := range i.Columns {
		cols[n] = c.Fingerprint()
	}
	tag := "insert:"
	if i.Ignore {
		tag = "insert:ignore:"
	}
	fp := utils.Chain(tag, cols...)
	fp = utils.Mix64(fp, fingerprintOf(tableNode(i.Table)))
	return utils.Mix64(fp, utils.Chain("values", fingerprints(i.Values)...))
}

func (i *InsertStmt) Release() {
	if i.Table != nil {
		i.Table.Release()
		i.Table = nil
	}
	for n, c := range i.Columns {
		c.Release()
		i.Columns[n] = nil
	}
	releaseAll(i.Values)
	i.Columns, i.Values = nil, nil
}
