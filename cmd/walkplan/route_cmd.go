package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"loopwalk.dev/internal/logging"
	"loopwalk.dev/internal/plans"
	"loopwalk.dev/internal/render"
	"loopwalk.dev/internal/route"
	"loopwalk.dev/internal/stations"
	"loopwalk.dev/internal/utils"
)

// routeFlags are the computation inputs shared by the route and map commands.
type routeFlags struct {
	speed        string
	direction    string
	start        string
	restInterval int
	restMinutes  int
}

func (f *routeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.speed, "speed", stations.DefaultSpeedName, "walking speed preset (slow|normal|fast) or km/h")
	cmd.Flags().StringVar(&f.direction, "direction", "clockwise", "clockwise or counterclockwise")
	cmd.Flags().StringVar(&f.start, "start", "", "start time: HH:MM, YYYY-MM-DDTHH:MM or RFC3339 (default now)")
	cmd.Flags().IntVar(&f.restInterval, "rest-interval", route.DefaultRestInterval, "rest after every n-th station, 0 disables rests")
	cmd.Flags().IntVar(&f.restMinutes, "rest-minutes", route.DefaultRestMinutes, "minutes per rest")
}

func (f *routeFlags) request(opts *cliOptions, from, to string) (route.Request, stations.WalkingSpeed, error) {
	loc, err := opts.location()
	if err != nil {
		return route.Request{}, stations.WalkingSpeed{}, err
	}

	speed, err := stations.ResolveSpeed(f.speed)
	if err != nil {
		return route.Request{}, stations.WalkingSpeed{}, err
	}
	direction, err := stations.ParseDirection(f.direction)
	if err != nil {
		return route.Request{}, stations.WalkingSpeed{}, err
	}
	start, err := utils.ParseStartTime(f.start, loc, opts.now())
	if err != nil {
		return route.Request{}, stations.WalkingSpeed{}, fmt.Errorf("--start: %w", err)
	}
	if fieldErrors := utils.ValidateRestParams(f.restInterval, f.restMinutes); len(fieldErrors) > 0 {
		return route.Request{}, stations.WalkingSpeed{}, fieldErrorsToError(fieldErrors)
	}

	return route.Request{
		From:         from,
		To:           to,
		SpeedKmh:     speed.SpeedKmh,
		StartTime:    start,
		Direction:    direction,
		RestInterval: f.restInterval,
		RestMinutes:  f.restMinutes,
	}, speed, nil
}

func fieldErrorsToError(fieldErrors map[string][]string) error {
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var errs []error
	for _, field := range fields {
		errs = append(errs, fmt.Errorf("%s: %s", field, strings.Join(fieldErrors[field], ", ")))
	}
	return errors.Join(errs...)
}

func newRouteCmd(opts *cliOptions) *cobra.Command {
	var flags routeFlags
	var save bool

	cmd := &cobra.Command{
		Use:   "route FROM TO",
		Short: "Compute a walking itinerary between two stations",
		Example: `  walkplan route 東京 池袋 --start 09:00
  walkplan route 新宿 渋谷 --direction counterclockwise --speed 4.5 --save`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := opts.registry()
			if err != nil {
				return err
			}
			loc, err := opts.location()
			if err != nil {
				return err
			}
			req, speed, err := flags.request(opts, args[0], args[1])
			if err != nil {
				return err
			}

			result, err := route.NewCalculator(registry).Compute(req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s → %s  %s, %s\n\n", req.From, req.To, req.Direction, speed.Label)
			fmt.Fprint(out, render.Terminal(result, loc))

			if !save {
				return nil
			}

			store, db, err := opts.openStore(cmd)
			if err != nil {
				return err
			}
			defer logging.SafeCloseWithLogging(db, opts.logger(cmd), "plan_database")

			saved, err := store.Save(cmd.Context(), plans.NewDraft(req, speed.Name, result))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "saved plan %s\n", saved.ID)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&save, "save", false, "store the computed plan")
	return cmd
}
