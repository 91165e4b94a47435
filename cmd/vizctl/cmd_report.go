package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vizboard/vizboard/projection"
	"github.com/vizboard/vizboard/record"
	"github.com/vizboard/vizboard/view"
)

type reportFlags struct {
	kind   string
	field  string
	top    bool
	asJSON bool
}

func newReportCmd(a *app) *cobra.Command {
	var flags reportFlags
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the grouped or top five values one chart would show",
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, ok := view.ParseKind(flags.kind)
			if !ok {
				return fmt.Errorf("unknown chart kind %q (want bar, line, pie or doughnut)", flags.kind)
			}
			field, known := record.ParseField(flags.field)
			if !known {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %q is not a known field\n", flags.field)
			}

			board, err := a.loadBoard(cmd.Context())
			if err != nil {
				return err
			}
			v, _ := board.View(kind)
			v.Dispatch(view.SelectField{Field: field})
			if flags.top {
				v.Dispatch(view.Rank{})
			}

			p, err := v.Projection()
			if errors.Is(err, projection.ErrNoChart) {
				fmt.Fprintln(cmd.OutOrStdout(), "No data available")
				return nil
			}
			if err != nil {
				return err
			}
			if flags.asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}
			printProjection(cmd.OutOrStdout(), p)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.kind, "kind", string(view.Bar), "Chart kind: bar, line, pie or doughnut")
	f.StringVar(&flags.field, "field", string(record.Region), "Field to group by")
	f.BoolVar(&flags.top, "top", false, "Show the top five instead of every group")
	f.BoolVar(&flags.asJSON, "json", false, "Print the chart projection as JSON")
	return cmd
}

func printProjection(w io.Writer, p *projection.Projection) {
	fmt.Fprintf(w, "%s:\n", p.Title)
	for i, label := range p.Labels {
		if label == "" {
			label = "(none)"
		}
		fmt.Fprintf(w, "%8.2f | %s\n", p.Values[i], label)
	}
}
