package pdbcli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) contactsCmd() *cobra.Command {
	var cutoff float64
	cmd := &cobra.Command{
		Use:   "contacts FILE",
		Short: "List residue pairs with C-alpha atoms close together",
		Long: `contacts prints each pair of residues whose C-alpha atoms are
within the cutoff distance, in angstrom, followed by the distance.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cutoff <= 0 {
				return usageError{fmt.Errorf("cutoff must be positive, not %g", cutoff)}
			}
			l, err := a.readOne(args[0])
			if err != nil {
				return fail(err)
			}
			w := cmd.OutOrStdout()
			for _, c := range l.s.Contacts(cutoff) {
				if _, err = fmt.Fprintf(w, "%s\t%s\t%.2f\n", c.A, c.B, c.Dist); err != nil {
					return fail(WriteOutputError("contacts", err))
				}
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&cutoff, "cutoff", 8, "largest C-alpha distance in angstrom")
	return cmd
}
