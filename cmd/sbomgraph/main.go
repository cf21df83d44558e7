// Command sbomgraph is a CLI front end for the SBOM graph analysis
// engine: status, warm (load all graphs), query (ancestor/descendant
// traversal) and render (DOT export).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/JimFuller-RedHat/trustify/internal/config"
	"github.com/JimFuller-RedHat/trustify/internal/engine"
	"github.com/JimFuller-RedHat/trustify/internal/store"
)

var (
	dsn          string
	maxCacheSize string
	eng          *engine.Engine
)

var rootCmd = &cobra.Command{
	Use:   "sbomgraph",
	Short: "Inspect and query the SBOM package-graph cache",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		pool, err := pgxpool.New(cmd.Context(), dsn)
		if err != nil {
			return fmt.Errorf("sbomgraph: connect: %w", err)
		}

		opts := []config.Option{}
		if maxCacheSize != "" {
			opts = append(opts, config.WithMaxCacheSizeString(maxCacheSize))
		}
		cfg, err := config.New(opts...)
		if err != nil {
			return err
		}

		eng = engine.New(store.NewPgxStore(pool), cfg)
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", os.Getenv("TRUSTIFY_DSN"), "Postgres connection string")
	rootCmd.PersistentFlags().StringVar(&maxCacheSize, "max-cache-size", "", "graph cache byte budget, e.g. 256MiB")

	rootCmd.AddCommand(statusCmd, warmCmd, queryCmd, renderCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
