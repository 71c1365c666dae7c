package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"loopwalk.dev/internal/stations"
)

func newStationsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stations",
		Short: "List the stations of the loop with walking distances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := opts.registry()
			if err != nil {
				return err
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("#", "Station", "Next", "km")
			for i, s := range registry.Stations() {
				next := registry.Name(registry.Next(i, stations.Clockwise))
				t.Row(strconv.Itoa(i+1), s.Name, next, fmt.Sprintf("%.1f", s.DistanceToNext))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, t.Render())
			fmt.Fprintf(out, "%d stations, %.1f km around the loop\n", registry.Len(), registry.LoopLength())
			return nil
		},
	}
}
