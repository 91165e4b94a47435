package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vizboard/vizboard/charts"
)

func newRenderCmd(a *app) *cobra.Command {
	var outputDir string
	var withJSON bool
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the dashboard page (and optionally chart JSON) to files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			board, err := a.loadBoard(cmd.Context())
			if err != nil {
				return err
			}
			rendered := charts.RenderAll(board.Views())

			path, err := charts.ExportHTML(outputDir, rendered)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)

			if withJSON {
				path, err := charts.ExportJSON(outputDir, rendered)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outputDir, "out", ".", "Output directory")
	cmd.Flags().BoolVar(&withJSON, "json", false, "Also write charts.json")
	return cmd
}
