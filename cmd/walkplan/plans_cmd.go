package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"loopwalk.dev/internal/logging"
	"loopwalk.dev/internal/plans"
	"loopwalk.dev/internal/render"
	"loopwalk.dev/internal/utils"
)

func newPlansCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Manage saved plans",
	}
	cmd.AddCommand(
		newPlansListCmd(opts),
		newPlansShowCmd(opts),
		newPlansDeleteCmd(opts),
		newPlansClearCmd(opts),
	)
	return cmd
}

// withStore opens the plan database around fn.
func withStore(opts *cliOptions, cmd *cobra.Command, fn func(*plans.Store) error) error {
	store, db, err := opts.openStore(cmd)
	if err != nil {
		return err
	}
	defer logging.SafeCloseWithLogging(db, opts.logger(cmd), "plan_database")
	return fn(store)
}

func validPlanID(id string) error {
	if err := utils.ValidateID(id); err != nil {
		return fmt.Errorf("invalid plan id: %w", err)
	}
	return nil
}

func notFound(id string, err error) error {
	if errors.Is(err, plans.ErrNotFound) {
		return fmt.Errorf("plan %s not found", id)
	}
	return err
}

func newPlansListCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := opts.location()
			if err != nil {
				return err
			}

			return withStore(opts, cmd, func(store *plans.Store) error {
				stored := store.List(cmd.Context())
				out := cmd.OutOrStdout()
				if len(stored) == 0 {
					fmt.Fprintln(out, "no saved plans")
					return nil
				}

				t := table.New().
					Border(lipgloss.NormalBorder()).
					Headers("ID", "Saved", "From", "To", "Direction", "Start", "km", "Time")
				for _, p := range stored {
					t.Row(
						p.ID,
						p.CreatedAt.In(loc).Format("2006-01-02 15:04"),
						p.FromStation,
						p.ToStation,
						string(p.Direction),
						p.StartTime.In(loc).Format("15:04"),
						fmt.Sprintf("%.1f", p.TotalDistance),
						render.FormatElapsed(p.Result().Elapsed()),
					)
				}
				fmt.Fprintln(out, t.Render())
				return nil
			})
		},
	}
}

func newPlansShowCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Print the timeline of a saved plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := validPlanID(id); err != nil {
				return err
			}
			loc, err := opts.location()
			if err != nil {
				return err
			}

			return withStore(opts, cmd, func(store *plans.Store) error {
				p, err := store.Get(cmd.Context(), id)
				if err != nil {
					return notFound(id, err)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s → %s  %s, %s, saved %s\n\n",
					p.FromStation, p.ToStation, p.Direction, p.WalkingSpeed,
					p.CreatedAt.In(loc).Format("2006-01-02 15:04"))
				fmt.Fprint(out, render.Terminal(p.Result(), loc))
				return nil
			})
		},
	}
}

func newPlansDeleteCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a saved plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := validPlanID(id); err != nil {
				return err
			}

			return withStore(opts, cmd, func(store *plans.Store) error {
				if err := store.DeleteOne(cmd.Context(), id); err != nil {
					return notFound(id, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted plan %s\n", id)
				return nil
			})
		},
	}
}

func newPlansClearCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts, cmd, func(store *plans.Store) error {
				removed := len(store.List(cmd.Context()))
				if err := store.DeleteAll(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %d plans\n", removed)
				return nil
			})
		},
	}
}
