// schemes.go implements the "vanity schemes" command.
package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/vanity-keygen/pkg/keygen"
)

func newSchemesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schemes",
		Short: "List supported key schemes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tALIASES\tDESCRIPTION")
			for _, s := range keygen.Schemes() {
				name := s.Name
				if name == keygen.DefaultScheme {
					name += " (default)"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", name, strings.Join(s.Aliases, ", "), s.Description)
			}
			return tw.Flush()
		},
	}
}
