package pdbcli

import (
	"fmt"
	"io"
	"strings"

	"github.com/andrew-torda/pdbstruct/pkg/summary"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// fail prints err for the user and hands it back to cobra
func fail(err error) error {
	gn.PrintErrorMessage(err)
	return err
}

func writeSummaries(w io.Writer, format string, sums []*summary.Summary) error {
	if format == "yaml" {
		return summary.WriteYAML(w, sums...)
	}
	for i, s := range sums {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := s.WriteText(w); err != nil {
			return err
		}
	}
	return nil
}

func formatFlag(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVarP(format, "format", "f", "text", "output format, text or yaml")
}

func checkFormat(format string) error {
	if format != "text" && format != "yaml" {
		return usageError{fmt.Errorf("format %q is not text or yaml", format)}
	}
	return nil
}

func (a *app) summaryCmd() *cobra.Command {
	var (
		format  string
		maxFile int
	)
	cmd := &cobra.Command{
		Use:   "summary FILE...",
		Short: "Print what is in structure files",
		Long: `summary reads each file and prints its chains, residue and atom
counts, secondary structure, modified residues and header metadata.
Reader warnings are listed with each structure. Directories are
searched for files with a structure file extension.`,
		Args: needArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			names, err := structureFiles(args, maxFile)
			if err != nil {
				return fail(err)
			}
			files, err := a.readFiles(cmd.Context(), cmd.ErrOrStderr(), names)
			if err != nil {
				return fail(err)
			}
			sums := make([]*summary.Summary, len(files))
			for i, l := range files {
				sums[i] = l.summary()
			}
			if err = writeSummaries(cmd.OutOrStdout(), format, sums); err != nil {
				return fail(WriteOutputError("summaries", err))
			}
			return nil
		},
	}
	formatFlag(cmd, &format)
	maxFileFlag(cmd, &maxFile)
	return cmd
}

func maxFileFlag(cmd *cobra.Command, maxFile *int) {
	cmd.Flags().IntVar(maxFile, "max-files", 0, "stop after this many files from directories, 0 for all")
}

func (a *app) subsetCmd() *cobra.Command {
	var (
		format string
		chains []string
	)
	cmd := &cobra.Command{
		Use:   "subset FILE --chains A,B",
		Short: "Summarise only some chains of a structure",
		Long: `subset reads one file, keeps the chains given and rebuilds the
structure from them. Helices and sheets reaching into a dropped chain
go too. The summary of what is left is printed.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			if len(chains) == 0 {
				return usageError{fmt.Errorf("no chains given")}
			}
			l, err := a.readOne(args[0])
			if err != nil {
				return fail(err)
			}
			for i, c := range chains {
				chains[i] = strings.TrimSpace(c)
				if _, ok := l.s.Chains[chains[i]]; !ok {
					return fail(ChainNotFoundError(args[0], chains[i]))
				}
			}
			sub, err := l.s.CloneWithChains(chains...)
			if err != nil {
				return fail(ReadStructureError(args[0], err))
			}
			l.s = sub
			err = writeSummaries(cmd.OutOrStdout(), format, []*summary.Summary{l.summary()})
			if err != nil {
				return fail(WriteOutputError("summary", err))
			}
			return nil
		},
	}
	formatFlag(cmd, &format)
	cmd.Flags().StringSliceVar(&chains, "chains", nil, "chain identifiers to keep, comma separated")
	return cmd
}
