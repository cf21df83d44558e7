package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the number of known SBOMs and cached graphs",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := eng.Status(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("sboms: %d\ncached graphs: %d\n", st.SBOMCount, st.GraphCount)
		return nil
	},
}
