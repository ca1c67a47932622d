package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jewelry/internal/server"
)

// serveCommand creates the serve command for the HTTP layout API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		target  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout API",
		Long: `Run the HTTP layout API.

POST a tile set as JSON to /v1/layout to receive the computed layout.
GET /healthz reports liveness. Use --cache with a redis:// or mongodb://
URL to share cached layouts between server instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), target, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			printSuccess("Serving layout API")
			printKeyValue("address", addr)
			if target != "" {
				printKeyValue("cache", target)
			}
			printNewline()
			printNextStep("Try", "curl -X POST --data @tiles.json http://localhost"+addr+"/v1/layout")

			err = server.New(runner, c.Logger).ListenAndServe(cmd.Context(), addr)
			if err != nil {
				return err
			}
			c.Logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&target, "cache", "", "cache target: directory, redis:// or mongodb:// URL")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
