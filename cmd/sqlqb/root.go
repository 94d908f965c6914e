package main

import (
	"github.com/Konsultn-Engineering/sqlqb/internal/config"
	"github.com/Konsultn-Engineering/sqlqb/internal/debug"
	"github.com/spf13/cobra"
)

type app struct {
	cfg *config.Config

	cfgFile string
	dialect string
	debug   bool
	inline  bool
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "sqlqb",
		Short:         "Compile query documents into parameterized SQL",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: .sqlqb.yaml in the working or home directory)")
	flags.StringVar(&a.dialect, "dialect", "", "SQL dialect, see `sqlqb dialects`")
	flags.BoolVar(&a.debug, "debug", false, "log compiler activity to stderr")

	root.AddCommand(newResolveCommand(a))
	root.AddCommand(newDialectsCommand())

	return root
}

// load reads the configuration; flags given on the command line win.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(config.Options{Fs: config.AppFs, File: a.cfgFile})
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("dialect") {
		cfg.Dialect = a.dialect
	}
	if flags.Changed("debug") {
		cfg.Debug = a.debug
	}
	if flags.Changed("inline") {
		cfg.Inline = a.inline
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	debug.InitWriter(cfg.Debug, cmd.ErrOrStderr())
	a.cfg = cfg
	return nil
}
