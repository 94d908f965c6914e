package main

import (
	"fmt"
	"io"

	"github.com/Konsultn-Engineering/sqlqb/cache"
	"github.com/Konsultn-Engineering/sqlqb/dialect"
	"github.com/Konsultn-Engineering/sqlqb/internal/config"
	"github.com/Konsultn-Engineering/sqlqb/internal/debug"
	"github.com/Konsultn-Engineering/sqlqb/internal/document"
	"github.com/Konsultn-Engineering/sqlqb/query"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	sqlColor   = color.New(color.FgCyan, color.Bold)
	indexColor = color.New(color.FgYellow)
	typeColor  = color.New(color.Faint)
)

func newResolveCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <file>...",
		Short: "Print the SQL and bound values of query documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.compiler()
			if err != nil {
				return err
			}
			for i, path := range args {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				if err := a.resolve(cmd.OutOrStdout(), c, path); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&a.inline, "inline", false, "write values into the SQL instead of listing them (display only)")
	return cmd
}

func (a *app) compiler() (*query.Compiler, error) {
	d, err := dialect.Lookup(a.cfg.Dialect)
	if err != nil {
		return nil, err
	}

	var opts []query.Option
	if a.cfg.CacheSize > 0 {
		qc, err := cache.NewLRUQueryCache(a.cfg.CacheSize, cache.WithEvictionCallback(func(fp uint64) {
			debug.Debug("query cache eviction", "fingerprint", fp)
		}))
		if err != nil {
			return nil, err
		}
		opts = append(opts, query.WithCache(qc))
	}
	return query.NewCompiler(d, opts...), nil
}

func (a *app) resolve(w io.Writer, c *query.Compiler, path string) error {
	doc, err := document.Load(config.AppFs, path)
	if err != nil {
		return err
	}
	b, err := doc.Builder(c)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	sql, args, err := b.Resolve()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if a.cfg.Inline {
		inlined, err := query.Interpolate(c.Dialect(), sql, args)
		if err != nil {
			return err
		}
		sqlColor.Fprintln(w, inlined)
		return nil
	}

	sqlColor.Fprintln(w, sql)
	for i, arg := range args {
		indexColor.Fprintf(w, "  %d: ", i+1)
		fmt.Fprintf(w, "%s ", c.Dialect().RenderValue(arg))
		typeColor.Fprintf(w, "(%T)\n", arg)
	}
	return nil
}
