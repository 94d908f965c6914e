package query

import (
	"fmt"
	"strings"

	"github.com/Konsultn-Engineering/sqlqb/ast"
)

const maxQualifierDepth = 3

// TableRef names a table: database, schema and table in that order, the
// leading parts optional. Alias is empty when the table is not aliased.
type TableRef struct {
	Qualifiers []string
	Alias      string
}

// Table builds a reference from its dotted parts, e.g.
// Table("database", "schema", "test").
func Table(parts ...string) TableRef {
	return TableRef{Qualifiers: append([]string(nil), parts...)}
}

// As returns a copy of t aliased as alias.
func (t TableRef) As(alias string) TableRef {
	return TableRef{
		Qualifiers: append([]string(nil), t.Qualifiers...),
		Alias:      alias,
	}
}

// Name is the unqualified table name.
func (t TableRef) Name() string {
	if len(t.Qualifiers) == 0 {
		return ""
	}
	return t.Qualifiers[len(t.Qualifiers)-1]
}

// Ref is the name other clauses use to qualify columns of this table.
func (t TableRef) Ref() string {
	if t.Alias != "" {
		return t.Alias
	}
	return t.Name()
}

func (t TableRef) Validate() error {
	depth := len(t.Qualifiers)
	if depth == 0 || depth > maxQualifierDepth {
		return fmt.Errorf("%w: %d qualifiers in %q, want 1 to %d", ErrInvalidTableName, depth, t.String(), maxQualifierDepth)
	}
	for _, part := range t.Qualifiers {
		if strings.TrimSpace(part) == "" {
			return fmt.Errorf("%w: empty segment in %q", ErrInvalidTableName, t.String())
		}
	}
	if t.Alias != "" && strings.TrimSpace(t.Alias) == "" {
		return fmt.Errorf("%w: blank alias", ErrInvalidTableName)
	}
	return nil
}

// String returns the unquoted textual form accepted by ParseTable.
func (t TableRef) String() string {
	s := strings.Join(t.Qualifiers, ".")
	if t.Alias != "" {
		s += " as " + t.Alias
	}
	return s
}

func (t TableRef) node() *ast.Table {
	return ast.NewTable(t.Qualifiers, t.Alias)
}
