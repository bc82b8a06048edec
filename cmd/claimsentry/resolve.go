package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aurelianware/claimsentry/internal/common"
	"github.com/aurelianware/claimsentry/internal/metrics"
	"github.com/aurelianware/claimsentry/internal/model"
	"github.com/aurelianware/claimsentry/internal/pipeline"
	"github.com/aurelianware/claimsentry/internal/provider"
)

func resolveCmd() *cobra.Command {
	var (
		simulated bool
		retries   int
	)

	cmd := &cobra.Command{
		Use:   "resolve [file]",
		Short: "Resolve a rejection record from a JSON file or stdin",
		Long: `Resolve reads one rejection record (JSON) from the given file, or from
stdin when the argument is omitted or "-", runs the resolution pipeline,
and prints the outcome as JSON. On failure it prints a typed failure and
exits non-zero.

Retry/backoff around recoverable failures is a caller concern; the
--retries flag applies it here, outside the pipeline.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := readRecord(args)
			if err != nil {
				return err
			}

			cfg := pipelineConfig()
			if simulated {
				cfg.UseSimulated = true
			}

			p, err := provider.New(cfg)
			if err != nil {
				return err
			}

			var store *metrics.Store
			if cfg.MetricsEnabled {
				store = metrics.NewStore()
			}
			resolver := pipeline.New(p, store)

			var outcome model.ResolutionOutcome
			operation := func() error {
				var resolveErr error
				outcome, resolveErr = resolver.Resolve(cmd.Context(), rec)
				return resolveErr
			}

			if retries > 0 {
				err = common.WithRetry(cmd.Context(), operation, common.RetryOptions{MaxAttempts: retries + 1})
			} else {
				err = operation()
			}
			if err != nil {
				printJSON(map[string]string{"kind": failureKind(err), "message": err.Error()})
				return err
			}

			printJSON(outcome)
			return nil
		},
	}

	cmd.Flags().BoolVar(&simulated, "simulated", false, "force the local simulated provider")
	cmd.Flags().IntVar(&retries, "retries", 0, "retry recoverable failures this many times with backoff")

	return cmd
}

// readRecord loads the rejection record from the file argument or stdin.
func readRecord(args []string) (model.RejectionRecord, error) {
	var (
		rec model.RejectionRecord
		in  io.Reader = os.Stdin
	)

	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return rec, fmt.Errorf("failed to open record file: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	if err := json.NewDecoder(in).Decode(&rec); err != nil {
		return rec, fmt.Errorf("failed to decode rejection record: %w", err)
	}

	return rec, nil
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
