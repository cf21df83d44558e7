package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	renderSBOM   string
	renderFormat string
	renderOut    string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render an SBOM's graph",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, _, ok, err := eng.Render(cmd.Context(), renderSBOM, renderFormat)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("sbomgraph: render: unknown format %q", renderFormat)
		}
		if renderOut == "" || renderOut == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		return os.WriteFile(renderOut, data, 0o644)
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderSBOM, "sbom", "", "sbom_id to render")
	renderCmd.Flags().StringVar(&renderFormat, "format", "dot", "renderer name")
	renderCmd.Flags().StringVar(&renderOut, "out", "-", "output path, or - for stdout")
	renderCmd.MarkFlagRequired("sbom")
}
