package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/radialstack/pkg/render/radial/styles"
)

// optionsCommand creates the options command.
func (c *CLI) optionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Print the editable style options",
		Long: `Print the editable style options as JSON, each property with its editor
type and current value. Values reflect the font flags and the config file,
so the output shows what render would use.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			style := cfg.Style()
			if err := style.Validate(); err != nil {
				return err
			}
			enc := json.NewEncoder(c.out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(styles.Schema(style.WithDefaults())); err != nil {
				return fmt.Errorf("encode options: %w", err)
			}
			return nil
		},
	}

	d := styles.Defaults()
	cmd.Flags().String("font-family", d.FontFamily, "font family")
	cmd.Flags().Float64("layer-font-size", d.LayerFontSize, "layer label font size")
	cmd.Flags().Float64("legend-font-size", d.LegendFontSize, "legend and segment label font size")

	return cmd
}
