package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vango-dev/netsync/internal/capture"
	"github.com/vango-dev/netsync/pkg/transport/memtransport"
)

type replayOptions struct {
	tickRate     float64
	snapshotRate float64
	localID      string
	simulate     bool
	shape        memtransport.Config
	asJSON       bool
}

func replayCmd(g *globals) *cobra.Command {
	opts := replayOptions{}

	cmd := &cobra.Command{
		Use:   "replay <file>",
		Short: "Run a capture file through the sync pipeline",
		Long: `Replay feeds every recorded frame through the delta decoder,
per-entity snapshot buffers and the game event queue at its recorded
receive time, then prints what the pipeline made of it.

With --simulate, unreliable frames first pass through an in-memory link
that drops, duplicates and reorders them.

Examples:
  netsync replay session.nscap
  netsync replay session.nscap --simulate --loss 0.1 --reorder 0.05
  netsync replay session.nscap --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.OutOrStdout(), g, args[0], opts)
		},
	}

	cmd.Flags().Float64Var(&opts.tickRate, "tick-rate", 0, "Override the captured tick rate (Hz)")
	cmd.Flags().Float64Var(&opts.snapshotRate, "snapshot-rate", 0, "Override the captured snapshot rate (Hz)")
	cmd.Flags().StringVar(&opts.localID, "local-id", "", "Entity whose render clock drives event delivery")
	cmd.Flags().BoolVar(&opts.simulate, "simulate", false, "Shape unreliable frames through a lossy link")
	cmd.Flags().Float64Var(&opts.shape.Loss, "loss", 0, "Drop probability with --simulate")
	cmd.Flags().Float64Var(&opts.shape.Duplicate, "dup", 0, "Duplicate probability with --simulate")
	cmd.Flags().Float64Var(&opts.shape.Reorder, "reorder", 0, "Reorder probability with --simulate")
	cmd.Flags().Int64Var(&opts.shape.Seed, "seed", 1, "Shaping seed with --simulate")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the summary as JSON")

	return cmd
}

func runReplay(out io.Writer, g *globals, path string, opts replayOptions) error {
	logger := slog.Default()
	if cfg, err := g.loadConfig(); err == nil {
		logger = newLogger(cfg)
	}

	r, err := capture.Open(path)
	if err != nil {
		return err
	}
	records, err := r.All()
	if err != nil {
		if len(records) == 0 {
			return err
		}
		logger.Warn("corrupt capture tail, replaying what was read",
			"path", path, "records", len(records), "error", err)
	}

	rc := capture.ReplayConfig{
		TickRate:     opts.tickRate,
		SnapshotRate: opts.snapshotRate,
		LocalID:      opts.localID,
		Logger:       logger,
	}
	if opts.simulate {
		shape := opts.shape
		rc.Shape = &shape
	}
	sum := capture.Replay(records, rc)

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	}
	printSummary(out, path, sum)
	return nil
}

func printSummary(out io.Writer, path string, s capture.Summary) {
	fmt.Fprintf(out, "\n  %s\n\n", path)
	fmt.Fprintf(out, "  Records:     %d (%d reliable, %d unreliable), %.0f ms\n", s.Records, s.Reliable, s.Unreliable, s.DurationMs)
	fmt.Fprintf(out, "  Delivered:   %d frames, %d malformed\n", s.Delivered, s.Malformed)
	fmt.Fprintf(out, "  Rates:       tick %g Hz, snapshot %g Hz\n", s.TickRate, s.SnapshotRate)
	fmt.Fprintf(out, "  Local:       %q\n", s.LocalID)
	fmt.Fprintf(out, "  Ticks:       %d to %d\n", s.FirstTick, s.LastTick)
	fmt.Fprintf(out, "  Snapshots:   %d full, %d deltas (%d rejected)\n", s.Snapshots, s.Deltas, s.DeltasRejected)
	fmt.Fprintf(out, "  Buffered:    %d applied, %d stale, %d entities\n", s.SnapshotsApplied, s.SnapshotsStale, s.Entities)
	fmt.Fprintf(out, "  Events:      %d in %d batches: %d on time, %d late, %d dropped\n",
		s.Events, s.EventBatches, s.EventsOnTime, s.EventsLate, s.EventsDropped)
	if s.ShapedDropped+s.ShapedDuplicated+s.ShapedReordered > 0 {
		fmt.Fprintf(out, "  Shaping:     %d dropped, %d duplicated, %d reordered\n",
			s.ShapedDropped, s.ShapedDuplicated, s.ShapedReordered)
	}

	types := make([]string, 0, len(s.MessageTypes))
	for t := range s.MessageTypes {
		types = append(types, t)
	}
	sort.Strings(types)
	fmt.Fprintln(out, "\n  Message types:")
	for _, t := range types {
		fmt.Fprintf(out, "    %-22s %d\n", t, s.MessageTypes[t])
	}
	fmt.Fprintln(out)
}
