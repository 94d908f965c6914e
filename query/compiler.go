package query

import (
	"log/slog"

	"github.com/Konsultn-Engineering/sqlqb/ast"
	"github.com/Konsultn-Engineering/sqlqb/cache"
	"github.com/Konsultn-Engineering/sqlqb/dialect"
	"github.com/Konsultn-Engineering/sqlqb/internal/debug"
	"github.com/Konsultn-Engineering/sqlqb/visitor"
)

const defaultCacheSize = 512

// std backs the package-level constructors: MySQL quoting, `?`
// placeholders and a bounded statement cache.
var std = newDefaultCompiler()

func newDefaultCompiler() *Compiler {
	var opts []Option
	if qc, err := cache.NewLRUQueryCache(defaultCacheSize); err == nil {
		opts = append(opts, WithCache(qc))
	}
	return NewCompiler(dialect.NewMySQLDialect(), opts...)
}

// Default returns the compiler used by Select, Insert and the other
// package-level constructors.
func Default() *Compiler {
	return std
}

// Compiler turns builders into SQL for one dialect. It is safe for
// concurrent use.
type Compiler struct {
	dialect dialect.Dialect
	cache   cache.QueryCache
	logger  *slog.Logger
}

type Option func(*Compiler)

// WithCache reuses rendered SQL for statements of the same shape.
func WithCache(qc cache.QueryCache) Option {
	return func(c *Compiler) {
		c.cache = qc
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = l
	}
}

// NewCompiler returns a compiler for d. A nil dialect means MySQL.
func NewCompiler(d dialect.Dialect, opts ...Option) *Compiler {
	if d == nil {
		d = dialect.NewMySQLDialect()
	}
	c := &Compiler{dialect: d}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Compiler) Dialect() dialect.Dialect {
	return c.dialect
}

// Resolve returns the SQL text of b and its bound values in placeholder
// order. b is not modified.
func (c *Compiler) Resolve(b *Builder) (string, []any, error) {
	if err := b.Err(); err != nil {
		c.log().Debug("refusing to resolve", "verb", b.verb, "table", b.table.String(), "error", err)
		return "", nil, err
	}

	root, err := b.lower()
	if err != nil {
		return "", nil, err
	}
	defer ast.Release(root)

	v := visitor.NewSQLVisitor(c.dialect, c.cache)
	defer v.Release()
	v.SetLogger(c.logger)

	sql, args, err := v.Build(root)
	if err != nil {
		return "", nil, err
	}

	c.log().Debug("resolved query", "dialect", c.dialect.Name(), "verb", b.verb, "sql", sql, "args", len(args))
	return sql, args, nil
}

func (c *Compiler) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return debug.Logger()
}
