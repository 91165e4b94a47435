package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vizboard/vizboard/db"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Replace the stored records with a JSON or zipped JSON dataset",
		Long:  "Replace the stored records with the JSON array in file (or in the .json\nentry of a .zip archive). Defaults to the configured dataset file.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.Store.DatasetPath()
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return errors.New("no dataset file given")
			}

			conn, err := a.openDB()
			if err != nil {
				return err
			}
			defer conn.Close()

			imp, err := db.ImportFile(cmd.Context(), conn, path)
			if err != nil {
				return fmt.Errorf("import %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records from %s into %s\n", imp.Count, path, a.cfg.Store.DBPath())
			return nil
		},
	}
}
