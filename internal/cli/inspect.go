package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/radialstack/pkg/host"
	"github.com/matzehuels/radialstack/pkg/render/radial/layout"
	"github.com/matzehuels/radialstack/pkg/render/radial/scene"
	"github.com/matzehuels/radialstack/pkg/transform"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

const defaultListHeight = 15

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [table]",
		Short: "Browse segments and their layer bands",
		Long: `Lay out a chart and browse it in the terminal: one line per segment with
its total, and for the selected segment every layer band with its value,
radii, angles and color.`,
		Example: `  radialstack inspect sales.csv --palette brand.toml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			in, err := loadInput(args[0], cfg)
			if err != nil {
				return err
			}

			v := host.New()
			v.OnInit(nil)
			st := v.OnUpdate(host.Update{
				Table:    in.table,
				Viewport: layout.Viewport{Width: cfg.Width, Height: cfg.Height},
				Palette:  in.palette.Colors,
				Style:    cfg.Style(),
				Static:   true,
			})
			out := newPrinter(c.out)
			for _, w := range st.Warnings {
				out.warning("%s", w)
			}
			if !st.Drawn {
				out.warning("%s", st)
				return nil
			}

			m := newInspectModel(v.Records(), v.Scene(), st)
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithOutput(c.out)).Run()
			return err
		},
	}

	addChartFlags(cmd.Flags())
	return cmd
}

// =============================================================================
// inspectModel - Segment browser
// =============================================================================

// inspectModel is the bubbletea model for browsing a laid-out chart.
type inspectModel struct {
	records  []transform.SegmentRecord
	layers   []string
	scene    scene.Scene
	status   host.Status
	cursor   int
	offset   int
	height   int
	expanded bool
}

func newInspectModel(records []transform.SegmentRecord, sc scene.Scene, st host.Status) inspectModel {
	return inspectModel{
		records:  records,
		layers:   transform.LayerNames(records),
		scene:    sc,
		status:   st,
		height:   defaultListHeight,
		expanded: true,
	}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.records)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter", " ":
			m.expanded = !m.expanded
		}
	case tea.WindowSizeMsg:
		// Leave room for the header and the band table.
		m.height = max(msg.Height-len(m.layers)-12, 5)
		if m.cursor >= m.offset+m.height {
			m.offset = m.cursor - m.height + 1
		}
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Segments"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(m.status.String()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ bands  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.records))
	width := 0
	for _, r := range m.records {
		width = max(width, lipgloss.Width(r.Segment))
	}
	for i := m.offset; i < end; i++ {
		r := m.records[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-*s  %s", cursor, width, r.Segment, humanize.Ftoa(r.Total))
		switch {
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case r.Total == 0:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.expanded && len(m.records) > 0 {
		b.WriteString("\n")
		b.WriteString(m.bands(m.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.records))))
	return b.String()
}

// bands renders the layer bands of segment i.
func (m inspectModel) bands(i int) string {
	rows := make([][]string, 0, len(m.layers))
	fills := make([]string, 0, len(m.layers))
	for l, name := range m.layers {
		el, ok := m.scene.Find(layout.ArcID(l, i))
		if !ok {
			continue
		}
		v, _ := m.records[i].Value(name)
		g := el.Geometry
		fill := el.Final("fill")
		fills = append(fills, fill)
		rows = append(rows, []string{
			"■",
			name,
			humanize.Ftoa(v),
			layout.FormatCoord(g.InnerRadius),
			layout.FormatCoord(g.OuterRadius),
			degrees(g.StartAngle),
			degrees(g.EndAngle),
			fill,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Layer", "Value", "Inner", "Outer", "Start", "End", "Fill").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == 0 && row < len(fills):
				return lipgloss.NewStyle().Foreground(lipgloss.Color(fills[row]))
			case col == 1:
				return StyleValue
			case col == 7:
				return StyleDim
			}
			return StyleNumber
		})
	return t.Render()
}

func degrees(rad float64) string {
	return fmt.Sprintf("%.1f°", rad*180/math.Pi)
}
