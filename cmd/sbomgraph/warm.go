package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Build and cache every known SBOM's graph",
	RunE: func(cmd *cobra.Command, args []string) error {
		graphs, err := eng.LoadAllGraphs(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("loaded %d graphs\n", len(graphs))
		return nil
	},
}
