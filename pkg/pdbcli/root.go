// Package pdbcli is the command tree of pdbstruct. Each command reads
// structure files with the pdb packages and prints or stores what it
// found.
package pdbcli

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/andrew-torda/pdbstruct/internal/config"
	"github.com/andrew-torda/pdbstruct/internal/logger"
	"github.com/andrew-torda/pdbstruct/pdb/cmmn"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// Version is set by build flags
var Version = "dev"

// app is what the commands share once flags and config are read
type app struct {
	cfgPath  string
	cfg      *config.Config
	baseURL  string // fetch from here instead of the real sites
	closeLog func() error
	progress bool
}

// usageError is a command line the user has to fix
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

// NewRootCmd builds the whole command tree
func NewRootCmd() *cobra.Command {
	return newRoot(&app{})
}

func newRoot(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:     "pdbstruct",
		Short:   "Read PDB, PQR and mmCIF structure files",
		Version: Version,
		Long: `pdbstruct reads macromolecular structure files in PDB, PQR or
PDBx/mmCIF format, possibly gzipped, and assembles residues, chains,
secondary structure and metadata.

Settings come from flags, PDBSTRUCT_ environment variables,
a pdbstruct.yaml file and defaults, in that order.`,
		PersistentPreRunE: a.bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgPath, "config", "c", "", "config file (default ./pdbstruct.yaml)")
	pf.IntP("jobs", "j", 0, "number of files read at the same time")
	pf.Bool("all-altlocs", false, "keep every alternate location, not just the first")
	pf.String("log-level", "", "debug, info, warn or error")
	pf.BoolVar(&a.progress, "progress", true, "show a progress bar when reading many files")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})
	root.AddCommand(
		a.summaryCmd(),
		a.indexCmd(),
		a.searchCmd(),
		a.subsetCmd(),
		a.contactsCmd(),
		a.fetchCmd(),
		a.residCmd(),
	)
	return root
}

// bootstrap loads the config, lets flags override it and starts logging
func (a *app) bootstrap(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if err = config.BindFlags(cmd, cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if a.closeLog, err = logger.Init(cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	a.cfg = cfg
	slog.Debug("configuration loaded", "config_file", a.cfgPath, "jobs", cfg.Jobs)
	return nil
}

// shutdown closes the log file, if there is one
func (a *app) shutdown() {
	if a.closeLog != nil {
		a.closeLog()
	}
}

// needArgs is cobra.MinimumNArgs with errors we can tell apart
func needArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// Run executes the commands with args and gives an exit code
func Run(args []string, stdout, stderr io.Writer) int {
	a := &app{}
	defer a.shutdown()
	root := newRoot(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	cmd, err := root.ExecuteC()
	var ue usageError
	switch {
	case err == nil:
		return cmmn.ExitSuccess
	case errors.As(err, &ue), strings.HasPrefix(err.Error(), "unknown command"):
		cmd.PrintErrln("Error:", err)
		cmd.PrintErrln(cmd.UsageString())
		return cmmn.ExitUsageError
	default:
		return cmmn.ExitFailure
	}
}

// Execute runs pdbstruct with the program's arguments
func Execute() int {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}
