package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marlowe/exhume/internal/catalog"
)

// NewSeedCommand creates the hidden seed command, which builds a small
// example catalog for demos and manual testing.
func NewSeedCommand() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:    "seed",
		Short:  "Create an example catalog database",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := catalog.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := seedCatalog(cmd.Context(), store); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded example catalog at %s\n", dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "catalog.db", "Path for the catalog database")

	return cmd
}

func seedCatalog(ctx context.Context, store *catalog.Store) error {
	entries := []catalog.Entry{
		{ID: 10, Name: "docs", Kind: catalog.KindDirectory},
		{ID: 11, Name: "notes.txt", Kind: catalog.KindFile, ParentID: 10},
		{ID: 12, Name: "img", Kind: catalog.KindDirectory, ParentID: 10},
		{ID: 13, Name: "cat.jpg", Kind: catalog.KindFile, ParentID: 12},
		{ID: 20, Name: "wallet.dat", Kind: catalog.KindFile},
	}
	for _, e := range entries {
		if err := store.InsertEntry(ctx, e); err != nil {
			return err
		}
	}

	contents := map[int64][]byte{
		11: []byte("meeting notes\n"),
		13: []byte{0xff, 0xd8, 0xff, 0xe0},
		20: []byte("wallet bytes"),
	}
	for id, data := range contents {
		if err := store.AttachContent(ctx, id, data); err != nil {
			return err
		}
	}

	if err := store.FlagInteresting(ctx, 10, "KeywordMatches"); err != nil {
		return err
	}
	if err := store.FlagInteresting(ctx, 20, "CryptoArtifacts", "LargeFiles"); err != nil {
		return err
	}

	return nil
}
