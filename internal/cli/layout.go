package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	jio "github.com/matzehuels/jewelry/pkg/io"
	"github.com/matzehuels/jewelry/pkg/pipeline"

	"github.com/matzehuels/jewelry/internal/watch"
)

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags    layoutFlags
		output   string
		watching bool
	)

	cmd := &cobra.Command{
		Use:   "layout [tiles.yaml]",
		Short: "Compute a diamond grid layout for a tile set",
		Long: `Compute a diamond grid layout for a tile set.

The tile set is a JSON or YAML file listing tiles in sequence order. The
output lists every tile's grid slot and pixel position plus the grid itself
and the content height for every host column. Output format follows the
output file extension (.json, .yaml or .yml).

With --watch the layout is recomputed whenever the tile set or config file
changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, target, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), target, flags.noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			input := args[0]
			if output == "" {
				output = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
			}

			if !watching {
				return c.runLayout(cmd.Context(), runner, input, output, opts)
			}
			watched := []string{input}
			if path := flags.configPath(); path != "" {
				watched = append(watched, path)
			}
			resolve := func() (pipeline.Options, error) {
				opts, _, err := flags.resolve(cmd)
				return opts, err
			}
			return c.watchLayout(cmd.Context(), runner, input, output, resolve, watched)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVarP(&watching, "watch", "w", false, "recompute when the tile set changes")

	return cmd
}

// runLayout reads the tile set, runs one pass and writes the result.
func (c *CLI) runLayout(ctx context.Context, runner *pipeline.Runner, input, output string, opts pipeline.Options) error {
	set, err := jio.ReadTileSetFile(input)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()
	prog := newProgress(c.Logger)

	res, err := runner.Layout(ctx, set, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := jio.WriteLayoutFile(output, res); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	prog.done("Layout complete")
	printFile(output)
	printStats(len(res.Tiles), res.Rows, res.Columns, res.CacheHit)
	for _, msg := range res.Skipped {
		printWarning("%s", msg)
	}
	return nil
}

// watchLayout runs a pass now and again on every change to watched. Options
// are re-resolved before each pass so config edits take effect. Errors from
// individual passes are reported and watching continues.
func (c *CLI) watchLayout(ctx context.Context, runner *pipeline.Runner, input, output string, resolve func() (pipeline.Options, error), watched []string) error {
	w, err := watch.New(watched...)
	if err != nil {
		return fmt.Errorf("watch %s: %w", input, err)
	}
	defer w.Close()

	pass := func() {
		opts, err := resolve()
		if err == nil {
			err = c.runLayout(ctx, runner, input, output, opts)
		}
		if err != nil && ctx.Err() == nil {
			printError("%v", err)
		}
	}

	pass()
	printNewline()
	printInfo("Watching %s (ctrl+c to stop)", strings.Join(watched, ", "))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			c.Logger.Debug("change detected", "path", path)
			pass()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watch error", "err", err)
		}
	}
}
