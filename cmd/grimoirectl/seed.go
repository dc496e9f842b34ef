package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/crystal-grimoire/backend/internal/catalog"
	"github.com/crystal-grimoire/backend/internal/docstore"
	"github.com/crystal-grimoire/backend/internal/docstore/postgres"
	"github.com/crystal-grimoire/backend/internal/docstore/sqlite"
	"github.com/crystal-grimoire/backend/internal/plan"
	"github.com/crystal-grimoire/backend/internal/ritual"
)

func init() {
	var driver, sqlitePath, postgresDSN string

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the reference documents into the document store",
		Long: "Seeds the crystal catalog, the plan catalog, and the current moon\n" +
			"snapshot directly into the configured document store.",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openSeedStore(cmd.Context(), driver, sqlitePath, postgresDSN)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			n, err := seedReferenceDocs(cmd.Context(), store)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(os.Stdout, "seeded %d documents\n", n)
			return nil
		},
	}
	seedCmd.Flags().StringVar(&driver, "driver", "sqlite", "Document store driver (sqlite, postgres)")
	seedCmd.Flags().StringVar(&sqlitePath, "db", "./data/grimoire.db", "SQLite database path")
	seedCmd.Flags().StringVar(&postgresDSN, "dsn", "", "Postgres DSN (required for the postgres driver)")

	rootCmd.AddCommand(seedCmd)
}

func openSeedStore(ctx context.Context, driver, sqlitePath, postgresDSN string) (docstore.Store, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(sqlitePath)
	case "postgres":
		if postgresDSN == "" {
			return nil, fmt.Errorf("--dsn required for the postgres driver")
		}
		return postgres.Open(ctx, postgresDSN)
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}

// seedReferenceDocs writes the compiled-in reference data so that operator
// tooling and reporting queries can read it without a running service.
func seedReferenceDocs(ctx context.Context, store docstore.Store) (int, error) {
	count := 0

	for _, rec := range catalog.Default().All() {
		doc, err := docstore.ToDocument(rec)
		if err != nil {
			return count, err
		}
		key := strings.ToLower(strings.ReplaceAll(rec.Name, " ", "-"))
		if err := store.Set(ctx, "catalog/"+key, doc, false); err != nil {
			return count, err
		}
		count++
	}

	for _, meta := range plan.CatalogMetadata() {
		doc, err := docstore.ToDocument(meta)
		if err != nil {
			return count, err
		}
		if err := store.Set(ctx, "plans/"+meta.PlanID, doc, false); err != nil {
			return count, err
		}
		count++
	}

	moonDoc, err := docstore.ToDocument(ritual.MoonAt(time.Now().UTC()))
	if err != nil {
		return count, err
	}
	if err := store.Set(ctx, "moon/current", moonDoc, false); err != nil {
		return count, err
	}
	count++

	return count, nil
}
