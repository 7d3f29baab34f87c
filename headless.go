package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"sepsim/internal/runner"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the simulation without a window",
		Long: `Run a fixed number of steps headless and print move statistics.
Ctrl-C stops the run early and still prints the partial result.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			logEvery, _ := cmd.Flags().GetInt("log-every")
			if steps < 0 {
				return fmt.Errorf("--steps must be non-negative, got %d", steps)
			}

			_, logger, engine, err := setup(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			sum, err := runner.Run(ctx, engine, steps, logEvery, logger)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			logger.Info("simulation finished",
				"steps", sum.Steps,
				"accepted", sum.Accepted,
				"rejected", sum.Rejected,
				"collisions", sum.Collisions)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "steps:          %d\n", sum.Steps)
			fmt.Fprintf(out, "move attempts:  %d\n", sum.Eligible)
			fmt.Fprintf(out, "accepted:       %d\n", sum.Accepted)
			fmt.Fprintf(out, "rejected:       %d (%.1f%%)\n", sum.Rejected, 100*sum.RejectionRate())
			fmt.Fprintf(out, "shared cells:   %d\n", sum.Collisions)
			return nil
		},
	}

	cmd.Flags().Int("steps", 1000, "number of steps to run")
	cmd.Flags().Int("log-every", 100, "log progress every N steps at debug level (0 disables)")
	return cmd
}
