// Triagesim runs a simulated emergency department shift and prints its report.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomasbasham/triage"
	"github.com/tomasbasham/triage/internal/config"
	"github.com/tomasbasham/triage/internal/shift"
	"github.com/tomasbasham/triage/internal/statsd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd, err := newRootCmd()
	if err == nil {
		err = cmd.ExecuteContext(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() (*cobra.Command, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	root := &cobra.Command{
		Use:           "triagesim",
		Short:         "Simulate an emergency department triage queue",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(cfg), newScoreCmd())
	return root, nil
}

func newRunCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a shift and print its report as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShift(cmd, cfg)
		},
	}

	f := cmd.Flags()
	f.Uint64Var(&cfg.ShiftLength, "shift-length", cfg.ShiftLength, "Ticks during which patients may arrive")
	f.Float64Var(&cfg.ArrivalProbability, "arrival-probability", cfg.ArrivalProbability, "Probability of an arrival per tick")
	f.IntVar(&cfg.Doctors, "doctors", cfg.Doctors, "Number of doctors on shift")
	f.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for reproducibility (0 picks one from the clock)")
	f.Float64Var(&cfg.MinBurnoutRate, "min-burnout", cfg.MinBurnoutRate, "Lowest per-treatment efficiency loss")
	f.Float64Var(&cfg.MaxBurnoutRate, "max-burnout", cfg.MaxBurnoutRate, "Highest per-treatment efficiency loss")
	f.BoolVar(&cfg.Rescore, "rescore", cfg.Rescore, "Re-score queued patients every tick as their wait grows")
	f.StringVar(&cfg.TieBreak, "tie-break", cfg.TieBreak, "Order of tied patients: insertion or id")
	f.StringVar(&cfg.StatsdAddress, "statsd", cfg.StatsdAddress, "Statsd agent address (disabled if empty)")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: trace, debug, info, warn, error")

	return cmd
}

func runShift(cmd *cobra.Command, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	var opts []shift.Option
	opts = append(opts, shift.WithLogger(logger))

	if cfg.StatsdAddress != "" {
		hook, err := statsd.New(cfg.StatsdAddress, nil, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := hook.Close(); err != nil {
				logger.Warn().Err(err).Msg("failed to close statsd client")
			}
		}()
		opts = append(opts, shift.WithQueueMetrics(hook), shift.WithObserver(hook))
	}

	s, err := shift.New(cfg, opts...)
	if err != nil {
		return err
	}

	report, runErr := s.Run(cmd.Context())

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return eris.Wrap(err, "failed to write report")
	}
	return runErr
}

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score SEVERITY WAITED TO_TREAT",
		Short: "Print the position score of a patient",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]uint64, len(args))
			for i, arg := range args {
				v, err := strconv.ParseUint(arg, 10, 64)
				if err != nil {
					return eris.Wrapf(err, "invalid argument %q", arg)
				}
				values[i] = v
			}

			p := triage.Patient{SeverityScore: values[0], TimeWaited: values[1], TimeToTreat: values[2]}
			if err := triage.ValidatePatient(p); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.5f (%s)\n", triage.PositionScore(p), p.Acuity())
			return nil
		},
	}
}
