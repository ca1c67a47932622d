package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	jio "github.com/matzehuels/jewelry/pkg/io"
	"github.com/matzehuels/jewelry/pkg/pipeline"
	"github.com/matzehuels/jewelry/pkg/tile"
)

// Grid cell styles.
var (
	gridHeaderStyle    = lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	gridCellStyle      = lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
	gridHugeStyle      = lipgloss.NewStyle().Foreground(colorCyan).Bold(true).Padding(0, 1)
	gridCompanionStyle = lipgloss.NewStyle().Foreground(colorGreen).Padding(0, 1)
	gridClearStyle     = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
)

const clearanceGlyph = "·"

// gridCommand creates the grid command.
func (c *CLI) gridCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "grid [tiles.yaml]",
		Short: "Print the occupancy grid of a tile set",
		Long: `Print the occupancy grid of a tile set as a table.

Occupied cells show the tile ID. Huge tiles are highlighted, companions are
shown in green and reserved clearance cells are shown as a dot.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, target, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			set, err := jio.ReadTileSetFile(args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), target, flags.noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			res, err := runner.Layout(cmd.Context(), set, opts)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderGrid(res))
			printStats(len(res.Tiles), res.Rows, res.Columns, res.CacheHit)
			printKeyValue("height", strconv.FormatFloat(res.ContentHeight, 'f', -1, 64)+"px")
			for _, msg := range res.Skipped {
				printWarning("%s", msg)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// renderGrid draws res.Grid as a bordered table with a row-number column.
func renderGrid(res *pipeline.Result) string {
	classes := make(map[string]tile.SizeClass, len(res.Tiles))
	for _, p := range res.Tiles {
		classes[p.ID] = p.Class
	}

	headers := make([]string, res.Columns+1)
	for c := 0; c < res.Columns; c++ {
		headers[c+1] = strconv.Itoa(c)
	}

	rows := make([][]string, len(res.Grid))
	for r, row := range res.Grid {
		cells := make([]string, len(row)+1)
		cells[0] = strconv.Itoa(r)
		for c, v := range row {
			if v == pipeline.CellClearance {
				v = clearanceGlyph
			}
			cells[c+1] = v
		}
		rows[r] = cells
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 || col == 0 {
				return gridHeaderStyle
			}
			if row < 0 || row >= len(res.Grid) || col-1 >= len(res.Grid[row]) {
				return gridCellStyle
			}
			v := res.Grid[row][col-1]
			switch {
			case v == pipeline.CellClearance:
				return gridClearStyle
			case classes[v] == tile.Huge:
				return gridHugeStyle
			case classes[v] == tile.Companion:
				return gridCompanionStyle
			}
			return gridCellStyle
		})

	return t.Render()
}
