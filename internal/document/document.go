// Package document reads query descriptions from YAML:
//
//	select: database.schema.test as t
//	columns: [id]
//	joins:
//	  - table: join_table as jt
//	    on: {jt.id: t.id}
//	    where: {jt.id: 1}
//	where:
//	  t.id: 2
//	  t.owner_id: !col t.id
//
// Mapping order is kept, so conditions and values compile in the order they
// are written.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/Konsultn-Engineering/sqlqb/query"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ColumnTag marks a scalar as a column reference: `owner_id: !col u.id`.
const ColumnTag = "!col"

var ErrInvalidDocument = errors.New("document: invalid query document")

// Document describes one statement. Exactly one of Select, Count, Insert,
// Update and Delete names the table. Expr is the COUNT argument, "*" when
// empty.
type Document struct {
	Select  string   `yaml:"select"`
	Count   string   `yaml:"count"`
	Insert  string   `yaml:"insert"`
	Update  string   `yaml:"update"`
	Delete  string   `yaml:"delete"`
	Columns []string `yaml:"columns"`
	Expr    string   `yaml:"expr"`
	Values  Ordered  `yaml:"values"`
	Ignore  bool     `yaml:"ignore"`
	Joins   []Join   `yaml:"joins"`
	Where   Ordered  `yaml:"where"`
}

type Join struct {
	Table string  `yaml:"table"`
	Kind  string  `yaml:"kind"`
	On    Ordered `yaml:"on"`
	Where Ordered `yaml:"where"`
}

// Ordered is a YAML mapping decoded into a query.Map in document order.
type Ordered query.Map

func (o *Ordered) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		*o = nil
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", n.Line)
	}

	m := make(Ordered, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: keys must be column names", k.Line)
		}
		val, err := decodeValue(v)
		if err != nil {
			return err
		}
		m = append(m, query.Entry{Key: k.Value, Value: val})
	}
	*o = m
	return nil
}

func decodeValue(n *yaml.Node) (any, error) {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind == yaml.ScalarNode && n.Tag == ColumnTag {
		return query.Col(n.Value), nil
	}
	if n.Kind == yaml.SequenceNode {
		list := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := decodeValue(item)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	}

	var v any
	if err := n.Decode(&v); err != nil {
		return nil, fmt.Errorf("line %d: %w", n.Line, err)
	}
	return v, nil
}

// Parse decodes one document. Unknown fields are rejected.
func Parse(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &doc, nil
}

func ParseBytes(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data))
}

// Load reads and parses path from fs.
func Load(fs afero.Fs, path string) (*Document, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	doc, err := ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Builder turns the document into a query builder on c. Configuration
// errors surface from the builder's Resolve, except for problems with the
// document itself.
func (d *Document) Builder(c *query.Compiler) (*query.Builder, error) {
	verb, tableExpr, err := d.verb()
	if err != nil {
		return nil, err
	}
	table, err := query.ParseTable(tableExpr)
	if err != nil {
		return nil, err
	}

	var b *query.Builder
	switch verb {
	case query.VerbSelect:
		b = c.Select(table, d.Columns...)
	case query.VerbCount:
		b = c.Count(table, d.Expr)
	case query.VerbInsert:
		b = c.Insert(table, query.Map(d.Values), d.Ignore)
	case query.VerbUpdate:
		b = c.Update(table, query.Map(d.Values))
	case query.VerbDelete:
		b = c.Delete(table, nil)
	}

	for i, j := range d.Joins {
		jt, err := query.ParseTable(j.Table)
		if err != nil {
			return nil, fmt.Errorf("join %d: %w", i+1, err)
		}
		b.Join(jt, j.Kind)
		if len(j.On) > 0 {
			b.JoinOn(query.Map(j.On))
		}
		if len(j.Where) > 0 {
			b.JoinWhere(query.Map(j.Where))
		}
	}

	return b.Where(query.Map(d.Where)), nil
}

func (d *Document) verb() (query.Verb, string, error) {
	candidates := []struct {
		verb  query.Verb
		table string
	}{
		{query.VerbSelect, d.Select},
		{query.VerbCount, d.Count},
		{query.VerbInsert, d.Insert},
		{query.VerbUpdate, d.Update},
		{query.VerbDelete, d.Delete},
	}

	var (
		verb  query.Verb
		table string
		found int
	)
	for _, c := range candidates {
		if c.table != "" {
			verb, table = c.verb, c.table
			found++
		}
	}
	if found != 1 {
		return 0, "", fmt.Errorf("%w: need exactly one of select, count, insert, update or delete, got %d", ErrInvalidDocument, found)
	}
	return verb, table, nil
}
