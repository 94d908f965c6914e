package dialect

import "fmt"

type SQLite struct{}

func NewSQLiteDialect() Dialect {
	return &SQLite{}
}

func (s SQLite) Name() string { return "sqlite" }

func (s SQLite) QuoteIdentifier(name string) string {
	return quoteWith('"', name)
}

func (s SQLite) Placeholder(n int) string {
	return "?"
}

func (s SQLite) RenderValue(v any) string {
	return renderLiteral(v, func(b []byte) string {
		return fmt.Sprintf("X'%x'", b)
	})
}

func (s SQLite) InsertIgnore() (string, string) {
	return "INSERT OR IGNORE INTO", ""
}
