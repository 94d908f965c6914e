package query

import (
	"fmt"
	"strings"

	"github.com/Konsultn-Engineering/sqlqb/ast"
)

// Entry is one key/value pair of a condition or assignment map.
type Entry struct {
	Key   string
	Value any
}

// Map is an ordered column→value mapping. Its order decides both the order
// of the emitted fragments and the order of the bound values.
type Map []Entry

// M builds a Map from alternating keys and values:
//
//	M("t.id", 1, "!t.state", []string{"deleted"})
//
// It panics on an odd number of arguments or a non-string key.
func M(kv ...any) Map {
	if len(kv)%2 == 1 {
		panic("query.M: odd argument count")
	}
	m := make(Map, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("query.M: key %d is %T, not string", i/2, kv[i]))
		}
		m = append(m, Entry{Key: key, Value: kv[i+1]})
	}
	return m
}

// Set returns a copy of m with key set to v. An existing key keeps its
// position.
func (m Map) Set(key string, v any) Map {
	out := append(Map(nil), m...)
	for i := range out {
		if out[i].Key == key {
			out[i].Value = v
			return out
		}
	}
	return append(out, Entry{Key: key, Value: v})
}

func (m Map) Keys() []string {
	keys := make([]string, len(m))
	for i, e := range m {
		keys[i] = e.Key
	}
	return keys
}

// NegationPrefix inverts a condition when it leads the key.
const NegationPrefix = "!"

// Scope says where a condition is compiled. In ScopeOn a string value that
// looks like a column name is read as a column reference.
type Scope int

const (
	ScopeWhere Scope = iota
	ScopeOn
)

// Condition is one compiled comparison. The concrete types are Equals,
// NotEquals, In, NotIn, ColumnEquals, IsNull and Always.
type Condition interface {
	node() ast.Node
}

type Equals struct {
	Column Ident
	Value  any
}

type NotEquals struct {
	Column Ident
	Value  any
}

// In with no values is always false.
type In struct {
	Column Ident
	Values []any
}

// NotIn with no values is always true.
type NotIn struct {
	Column Ident
	Values []any
}

type ColumnEquals struct {
	Column  Ident
	Other   Ident
	Negated bool
}

type IsNull struct {
	Column  Ident
	Negated bool
}

// Always is a constant predicate.
type Always bool

func (c Equals) node() ast.Node {
	return ast.NewBinaryExpr(identNode(c.Column), ast.OpEqual, ast.NewValue(c.Value))
}

func (c NotEquals) node() ast.Node {
	return ast.NewBinaryExpr(identNode(c.Column), ast.OpNotEqual, ast.NewValue(c.Value))
}

func (c In) node() ast.Node {
	if len(c.Values) == 0 {
		return &ast.Literal{Val: false}
	}
	return ast.NewBinaryExpr(identNode(c.Column), ast.OpIn, ast.NewArray(c.Values))
}

func (c NotIn) node() ast.Node {
	if len(c.Values) == 0 {
		return &ast.Literal{Val: true}
	}
	return ast.NewBinaryExpr(identNode(c.Column), ast.OpNotIn, ast.NewArray(c.Values))
}

func (c ColumnEquals) node() ast.Node {
	op := ast.OpEqual
	if c.Negated {
		op = ast.OpNotEqual
	}
	return ast.NewBinaryExpr(identNode(c.Column), op, identNode(c.Other))
}

func (c IsNull) node() ast.Node {
	op := ast.OpIsNull
	if c.Negated {
		op = ast.OpIsNotNull
	}
	return ast.NewUnaryExpr(identNode(c.Column), op)
}

func (c Always) node() ast.Node {
	return &ast.Literal{Val: bool(c)}
}

func identNode(i Ident) *ast.Column {
	return ast.NewColumn(i.Table, i.Name, "")
}

// ParseCondition turns one map entry into a Condition. The key's negation
// prefix and the shape of the value are inspected here and nowhere else.
func ParseCondition(e Entry, scope Scope) (Condition, error) {
	key, negated := strings.CutPrefix(strings.TrimSpace(e.Key), NegationPrefix)
	col, err := ParseIdent(key)
	if err != nil {
		return nil, err
	}

	if s, ok := e.Value.(string); ok && scope == ScopeOn && looksLikeIdent(s) {
		e.Value = ColumnRef(s)
	}

	kind, scalar, list, err := classify(e.Value)
	if err != nil {
		return nil, fmt.Errorf("%w (key %q)", err, e.Key)
	}

	switch kind {
	case kindNull:
		return IsNull{Column: col, Negated: negated}, nil
	case kindColumn:
		other, err := ParseIdent(string(scalar.(ColumnRef)))
		if err != nil {
			return nil, err
		}
		return ColumnEquals{Column: col, Other: other, Negated: negated}, nil
	case kindList:
		if len(list) == 0 {
			return Always(negated), nil
		}
		if negated {
			return NotIn{Column: col, Values: list}, nil
		}
		return In{Column: col, Values: list}, nil
	default:
		if negated {
			return NotEquals{Column: col, Value: scalar}, nil
		}
		return Equals{Column: col, Value: scalar}, nil
	}
}

// ParseConditions parses every entry of m in order. It stops at the first
// invalid entry.
func ParseConditions(m Map, scope Scope) ([]Condition, error) {
	conds := make([]Condition, 0, len(m))
	for _, e := range m {
		c, err := ParseCondition(e, scope)
		if err != nil {
			return nil, err
		}
		conds = append(conds, c)
	}
	return conds, nil
}

func conditionNodes(groups ...[]Condition) []ast.Node {
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	nodes := make([]ast.Node, 0, n)
	for _, g := range groups {
		for _, c := range g {
			nodes = append(nodes, c.node())
		}
	}
	return nodes
}
