package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"loopwalk.dev/internal/render"
	"loopwalk.dev/internal/route"
)

func newMapCmd(opts *cliOptions) *cobra.Command {
	var flags routeFlags
	var output string

	cmd := &cobra.Command{
		Use:   "map [FROM TO]",
		Short: "Draw the loop as an SVG circle map, optionally with a route marked",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("map takes no stations or both FROM and TO, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := opts.registry()
			if err != nil {
				return err
			}

			var result *route.Result
			if len(args) == 2 {
				req, _, err := flags.request(opts, args[0], args[1])
				if err != nil {
					return err
				}
				computed, err := route.NewCalculator(registry).Compute(req)
				if err != nil {
					return err
				}
				result = &computed
			}

			svg, err := render.SVG(render.NewCircleMap(registry, result))
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), svg)
				return err
			}
			return os.WriteFile(output, []byte(svg), 0o644)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the SVG to this file instead of stdout")
	return cmd
}
