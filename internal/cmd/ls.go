package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marlowe/exhume/internal/catalog"
)

// NewLsCommand creates the ls command
func NewLsCommand() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List the entries currently flagged as interesting",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := catalog.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			hits, err := store.InterestingHits(ctx)
			if err != nil {
				return err
			}

			if len(hits) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No interesting entries flagged.")
				return nil
			}

			for _, hit := range hits {
				entry, err := store.Resolve(ctx, hit.EntryID)
				if err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%8d  <unresolved>  [%s]\n",
						hit.EntryID, strings.Join(hit.Labels, ", "))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%8d  %-9s  %s  [%s]\n",
					entry.ID, entry.Kind, entry.Name, strings.Join(hit.Labels, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "catalog.db", "Path to the catalog database")

	return cmd
}
