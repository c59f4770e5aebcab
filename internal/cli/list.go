// list.go implements the "vanity list" command showing recorded matches.
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/vanity-keygen/internal/errors"
	"github.com/mahdiidarabi/vanity-keygen/internal/store"
	"github.com/mahdiidarabi/vanity-keygen/pkg/vanity"
)

func newListCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List public keys recorded in the output file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}
}

func runList(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	out, err := store.Open(cfg.Output)
	if err != nil {
		return errors.WithStackTrace(&vanity.PersistError{Op: "open", Err: err})
	}
	defer out.Close()

	records, err := out.Records(cmd.Context())
	if err != nil {
		return errors.WithStackTrace(&vanity.PersistError{Op: "read", Err: err})
	}

	if len(records) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No matches recorded in %s\n", cfg.Output)
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PUBLIC KEY\tNOTE")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\n", r.PublicIdentifier, r.Note)
	}
	return tw.Flush()
}
