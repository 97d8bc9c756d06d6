package pdbcli

import (
	"fmt"

	"github.com/andrew-torda/pdbstruct/pdb/resid"
	"github.com/spf13/cobra"
)

func (a *app) residCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resid TEXT...",
		Short: "Check residue identifiers",
		Long: `resid parses identifiers written as NUMBER [CHAIN] [i:CODE], for
example "175 i:A" or "143 B", and prints each in canonical form with
its number, chain and insertion code. Quote identifiers with spaces.`,
		Args: needArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, txt := range args {
				id, err := resid.Parse(txt)
				if err != nil {
					return fail(ResidueIDError(txt, err))
				}
				icode := "-"
				if id.ICode != ' ' {
					icode = string(id.ICode)
				}
				_, err = fmt.Fprintf(w, "%s\tchain %s\tnumber %d\tinsertion %s\n", id, orDash(id.Chain), id.Number, icode)
				if err != nil {
					return fail(WriteOutputError("identifiers", err))
				}
			}
			return nil
		},
	}
}
