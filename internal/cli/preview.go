package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jewelry/pkg/errors"
	jio "github.com/matzehuels/jewelry/pkg/io"
	"github.com/matzehuels/jewelry/pkg/pipeline"
)

var (
	previewHelpStyle = lipgloss.NewStyle().Foreground(colorDim)
	previewErrStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "preview [tiles.yaml]",
		Short: "Explore a tile set's layout interactively",
		Long: `Explore a tile set's layout interactively.

Use ←/→ to change the column count and r to toggle last-line reordering.`,
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

			m := NewPreviewModel(cmd.Context(), runner, set, opts, args[0])
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

// =============================================================================
// PreviewModel - Interactive layout preview
// =============================================================================

// PreviewModel is the bubbletea model for the layout preview.
type PreviewModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	set    *jio.TileSet
	opts   pipeline.Options
	name   string

	Result *pipeline.Result
	Err    error
}

// NewPreviewModel creates a preview and computes the initial layout.
func NewPreviewModel(ctx context.Context, runner *pipeline.Runner, set *jio.TileSet, opts pipeline.Options, name string) PreviewModel {
	opts.ApplyTileSet(set)
	if opts.Columns == 0 {
		opts.Columns = pipeline.DefaultColumns
	}
	m := PreviewModel{ctx: ctx, runner: runner, set: set, opts: opts, name: name}
	return m.relayout()
}

// Columns returns the current column count.
func (m PreviewModel) Columns() int { return m.opts.Columns }

// Reorder reports whether last-line reordering is on.
func (m PreviewModel) Reorder() bool { return m.opts.LastLineReorder }

func (m PreviewModel) relayout() PreviewModel {
	m.Result, m.Err = m.runner.Layout(m.ctx, m.set, m.opts)
	return m
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		if m.opts.Columns > 1 {
			m.opts.Columns--
			return m.relayout(), nil
		}
	case "right", "l":
		if m.opts.Columns < errors.MaxColumns {
			m.opts.Columns++
			return m.relayout(), nil
		}
	case "r":
		m.opts.LastLineReorder = !m.opts.LastLineReorder
		return m.relayout(), nil
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.name))
	b.WriteString("\n")
	reorder := "off"
	if m.opts.LastLineReorder {
		reorder = "on"
	}
	b.WriteString(previewHelpStyle.Render(fmt.Sprintf("columns %d · reorder %s", m.opts.Columns, reorder)))
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString(previewErrStyle.Render(errors.UserMessage(m.Err)))
		b.WriteString("\n")
	} else if m.Result != nil {
		b.WriteString(renderGrid(m.Result))
		b.WriteString("\n")
		b.WriteString(statsLine(len(m.Result.Tiles), m.Result.Rows, m.Result.Columns, m.Result.CacheHit))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(previewHelpStyle.Render("←/→ columns  r reorder  q quit"))
	return b.String()
}
