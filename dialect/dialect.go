package dialect

import (
	"fmt"
	"sort"
	"strings"
)

// Dialect describes how a SQL flavour quotes identifiers, marks bound
// parameters and spells the duplicate-tolerant insert.
type Dialect interface {
	Name() string
	QuoteIdentifier(name string) string
	// Placeholder returns the marker for the n-th bound value (1-based).
	Placeholder(n int) string
	// RenderValue renders v as an inline literal. Only for display.
	RenderValue(v any) string
	// InsertIgnore returns the statement head and tail used when duplicate
	// rows must be skipped instead of failing.
	InsertIgnore() (head, tail string)
}

var registry = map[string]func() Dialect{
	"mysql":      NewMySQLDialect,
	"tidb":       NewTiDBDialect,
	"postgres":   NewPostgresDialect,
	"postgresql": NewPostgresDialect,
	"pg":         NewPostgresDialect,
	"sqlite":     NewSQLiteDialect,
	"sqlite3":    NewSQLiteDialect,
}

// Lookup returns the dialect registered under name (case-insensitive).
func Lookup(name string) (Dialect, error) {
	ctor, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return ctor(), nil
}

// Names lists the registered dialect names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func quoteWith(q byte, name string) string {
	s := string(q)
	return s + strings.ReplaceAll(name, s, s+s) + s
}
