package ast

import "github.com/Konsultn-Engineering/sqlqb/utils"

// Table is a qualified table name: database, schema and table parts in that
// order, the trailing ones required. Alias is optional.
type Table struct {
	Parts []string
	Alias string
}

func NewTable(parts []string, alias string) *Table {
	t := tablePool.Get().(*Table)
	t.Parts = append(t.Parts[:0], parts...)
	t.Alias = alias
	return t
}

// Name returns the unqualified table name.
func (t *Table) Name() string {
	if len(t.Parts) == 0 {
		return ""
	}
	return t.Parts[len(t.Parts)-1]
}

func (t *Table) Type() NodeType         { return NodeTable }
func (t *Table) Accept(v Visitor) error { return v.VisitTable(t) }
func (t *Table) Fingerprint() uint64 {
	return utils.Mix64(utils.Strings("table", t.Parts...), utils.U64(t.Alias))
}

func (t *Table) Release() {
	t.Parts = t.Parts[:0]
	t.Alias = ""
	tablePool.Put(t)
}
