package ast

import "github.com/Konsultn-Engineering/sqlqb/utils"

// Column is a column reference, optionally qualified by a table alias and
// renamed with an output alias. Name "*" renders unquoted.
type Column struct {
	Table string
	Name  string
	Alias string
}

func NewColumn(table, name, alias string) *Column {
	c := columnPool.Get().(*Column)
	c.Table = table
	c.Name = name
	c.Alias = alias
	return c
}

func (c *Column) Type() NodeType { return NodeColumn }

func (c *Column) Accept(v Visitor) error { return v.VisitColumn(c) }

func (c *Column) Fingerprint() uint64 {
	return utils.Strings("col", c.Table, c.Name, c.Alias)
}

func (c *Column) Release() {
	c.Table, c.Name, c.Alias = "", "", ""
	columnPool.Put(c)
}
