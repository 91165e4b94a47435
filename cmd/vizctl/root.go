package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vizboard/vizboard/config"
	"github.com/vizboard/vizboard/db"
	"github.com/vizboard/vizboard/logger"
	"github.com/vizboard/vizboard/source"
	"github.com/vizboard/vizboard/view"
)

// version is set at build time via -ldflags.
var version = "dev"

type rootFlags struct {
	configPath string
	dbPath     string
	sourceURL  string
}

// app carries the configuration resolved by the root command to its
// subcommands.
type app struct {
	flags rootFlags
	cfg   *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "vizctl",
		Short: "Manage and inspect the vizboard dataset",
		Long:  "vizctl imports datasets into the record store, prints grouped or ranked\nreports and renders the dashboard charts to files.",
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage: true,
		Version:      version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.flags.configPath)
			if err != nil {
				return err
			}
			if a.flags.dbPath != "" {
				cfg.Store.DataFolder, cfg.Store.Database = "", a.flags.dbPath
			}
			a.cfg = cfg
			logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
			return nil
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.flags.configPath, "config", "", "Path to YAML config file")
	f.StringVar(&a.flags.dbPath, "db", "", "Path to the sqlite store (overrides config)")
	f.StringVar(&a.flags.sourceURL, "url", "", "Read records from this record source URL instead of the store")

	root.AddCommand(newImportCmd(a))
	root.AddCommand(newReportCmd(a))
	root.AddCommand(newRenderCmd(a))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) openDB() (*sql.DB, error) {
	return db.OpenDB(a.cfg.Store.DBPath())
}

// source returns the record source selected by the flags and a function
// releasing it. Records are read once per run however many views load them.
func (a *app) source() (view.Source, func(), error) {
	if a.flags.sourceURL != "" {
		s := source.NewHTTPSource(a.flags.sourceURL, nil)
		s.Client.Timeout = a.cfg.Dashboard.FetchTimeout
		return source.NewShared(s, nil), func() {}, nil
	}
	conn, err := a.openDB()
	if err != nil {
		return nil, nil, err
	}
	return source.NewShared(&source.StoreSource{DB: conn}, nil), func() { _ = conn.Close() }, nil
}

// loadBoard loads all views from the selected source.
func (a *app) loadBoard(ctx context.Context) (*view.Board, error) {
	src, release, err := a.source()
	if err != nil {
		return nil, err
	}
	defer release()

	board := view.NewBoard()
	if err := board.Load(ctx, src); err != nil {
		return nil, err
	}
	return board, nil
}
