package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/matzehuels/radialstack/pkg/errors"
	"github.com/matzehuels/radialstack/pkg/pipeline"
	"github.com/matzehuels/radialstack/pkg/transform"
)

// transformCommand creates the transform command.
func (c *CLI) transformCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "transform [table]",
		Short: "Print the segment records of a table",
		Long: `Print the segment records of a table: one row per segment with each
layer's value and the segment total, in first-seen order.

Segments marked with ! have a total that differs from the sum of their layer
values, which happens when a layer is repeated within a segment.`,
		Example: `  radialstack transform sales.csv
  radialstack transform sales.parquet --json | jq '.[0]'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			in, err := loadInput(args[0], cfg)
			if err != nil {
				return err
			}
			records, err := pipeline.NewRunner(c.Logger).Transform(cmd.Context(), in.table)
			if err != nil && !errors.Is(err, errors.ErrCodeEmptyInput) {
				return fmt.Errorf("transform: %w", err)
			}
			if asJSON {
				return writeRecordsJSON(c.out, records)
			}
			writeRecordsTable(c.out, records)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as JSON")
	cmd.Flags().String("segment", "", "column holding segments (default: first column)")
	cmd.Flags().String("layer", "", "column holding layers (default: second column)")
	cmd.Flags().String("value", "", "column holding values (default: third column)")

	return cmd
}

func writeRecordsJSON(w io.Writer, records []transform.SegmentRecord) error {
	if records == nil {
		records = []transform.SegmentRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// writeRecordsTable prints records as a table with one column per layer.
func writeRecordsTable(w io.Writer, records []transform.SegmentRecord) {
	out := newPrinter(w)
	if len(records) == 0 {
		out.info("No segments")
		return
	}

	layers := transform.AllLayerNames(records)
	headers := append(append([]string{"", "Segment"}, layers...), "Total")

	rows := lo.Map(records, func(r transform.SegmentRecord, _ int) []string {
		mark := ""
		if !r.Consistent() {
			mark = iconWarning
		}
		row := []string{mark, r.Segment}
		for _, l := range layers {
			v, ok := r.Value(l)
			if !ok {
				row = append(row, "—")
				continue
			}
			row = append(row, humanize.Ftoa(v))
		}
		return append(row, humanize.Ftoa(r.Total))
	})

	last := len(headers) - 1
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == 0:
				return StyleWarning
			case col == 1:
				return StyleValue
			case col == last:
				return StyleHighlight.Bold(true)
			}
			return StyleNumber
		})

	out.line(t.Render())
	out.detail("%d segments · %d layers · max total %s",
		len(records), len(layers), humanize.Ftoa(transform.MaxTotal(records)))
}
