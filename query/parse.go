package query

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var tableLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "As", Pattern: `\b[aA][sS]\b`},
	{Name: "Quoted", Pattern: "`[^`]*`" + `|"(?:\\.|[^"\\])*"`},
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_$]*`},
	{Name: "Dot", Pattern: `\.`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// tableExpr is the grammar of `database.schema.test as t`. The alias keyword
// is optional, so `test t` is accepted too.
type tableExpr struct {
	Parts []string `parser:"(@Ident | @Quoted) ( Dot (@Ident | @Quoted) )*"`
	Alias string   `parser:"( As? (@Ident | @Quoted) )?"`
}

var tableParser = participle.MustBuild[tableExpr](
	participle.Lexer(tableLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("Quoted"),
	participle.UseLookahead(2),
)

// ParseTable reads a table reference written as SQL would name it, for
// example "database.schema.test as t". Quoted segments may contain dots.
func ParseTable(s string) (TableRef, error) {
	if strings.TrimSpace(s) == "" {
		return TableRef{}, fmt.Errorf("%w: empty table expression", ErrInvalidTableName)
	}

	expr, err := tableParser.ParseString("", s)
	if err != nil {
		return TableRef{}, fmt.Errorf("%w: %q: %v", ErrInvalidTableName, s, err)
	}

	ref := TableRef{Qualifiers: expr.Parts, Alias: expr.Alias}
	if err := ref.Validate(); err != nil {
		return TableRef{}, err
	}
	return ref, nil
}

// MustParseTable is ParseTable for expressions known to be valid. It panics
// on error.
func MustParseTable(s string) TableRef {
	ref, err := ParseTable(s)
	if err != nil {
		panic(err)
	}
	return ref
}
