package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/OpenFusionProject/ffmonitor/internal/capture"
	"github.com/OpenFusionProject/ffmonitor/internal/parser"
	"github.com/OpenFusionProject/ffmonitor/pkg/ffmonitor"
)

var (
	// replay flags
	replayFormat       string
	replayIncludeTypes []string
	replayExcludeTypes []string
	replayFollow       bool
	replayStopOnError  bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <files...>",
	Short: "Parse captured monitor streams (batch mode)",
	Long: `Parse capture files of monitor output and output their events.

Unlike 'watch', this command processes recorded streams without a live
connection, for example captures made with:

  nc server 8003 > capture.txt

With --follow, the capture file is tailed as it grows, so a capture can
be replayed while it is still being written.

Examples:
  # Replay a capture
  ffmonitor replay capture.txt

  # Replay several captures in order
  ffmonitor replay morning.txt afternoon.txt

  # Follow a capture that is still being written
  ffmonitor replay --follow capture.txt

  # Only chat events, human-readable
  ffmonitor replay capture.txt --include-types chat --format pretty

  # Fail loudly on corrupt records instead of skipping them
  ffmonitor replay capture.txt --stop-on-error`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVarP(&replayFormat, "format", "f", "jsonl",
		"Output format: jsonl, pretty")
	replayCmd.Flags().StringSliceVar(&replayIncludeTypes, "include-types", nil,
		"Event types to include (comma-separated: bcast,chat,email,namereq,player)")
	replayCmd.Flags().StringSliceVar(&replayExcludeTypes, "exclude-types", nil,
		"Event types to exclude (comma-separated)")
	replayCmd.Flags().BoolVar(&replayFollow, "follow", false,
		"Keep reading as the capture file grows (single file only)")
	replayCmd.Flags().BoolVar(&replayStopOnError, "stop-on-error", false,
		"Stop on first malformed record instead of skipping")

	// Register completion for event type flags
	registerEventTypeCompletion(replayCmd, "include-types")
	registerEventTypeCompletion(replayCmd, "exclude-types")
}

func runReplay(cmd *cobra.Command, args []string) error {
	if !ValidFormats[replayFormat] {
		return fmt.Errorf("invalid format %q: must be one of: jsonl, pretty", replayFormat)
	}
	if replayFollow && len(args) > 1 {
		return fmt.Errorf("--follow supports a single capture file")
	}

	includes, err := NormalizeEventTypes(replayIncludeTypes)
	if err != nil {
		return err
	}
	excludes, err := NormalizeEventTypes(replayExcludeTypes)
	if err != nil {
		return err
	}
	if err := RejectOverlap(includes, excludes); err != nil {
		return err
	}

	// Setup context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if replayFollow {
		return followCapture(ctx, args[0], includes, excludes)
	}

	var opts []ffmonitor.ParseOption
	if len(includes) > 0 || len(excludes) > 0 {
		opts = append(opts, ffmonitor.WithParseFilter(includes, excludes))
	}
	if replayStopOnError {
		opts = append(opts, ffmonitor.WithParseStopOnError(true))
	}
	if logger := newLogger(); logger != nil {
		opts = append(opts, ffmonitor.WithParseLogger(logger))
	}

	for _, path := range args {
		for update, err := range ffmonitor.ParseFile(ctx, path, opts...) {
			if err != nil {
				// Ctrl+C: exit silently
				if errors.Is(err, context.Canceled) && ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("replaying %s: %w", path, err)
			}
			if err := OutputUpdate(replayFormat, update, os.Stdout); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
		}
	}
	return nil
}

// followCapture tails a growing capture file and outputs updates as each
// tick completes.
func followCapture(ctx context.Context, path string, includes, excludes []ffmonitor.EventType) error {
	follower, err := capture.New(ctx, path, capture.DefaultConfig())
	if err != nil {
		return err
	}
	defer func() { _ = follower.Stop() }()

	filter := func(events []ffmonitor.Event) []ffmonitor.Event { return events }
	if len(includes) > 0 || len(excludes) > 0 {
		allowed := allowedTypes(includes, excludes)
		filter = func(events []ffmonitor.Event) []ffmonitor.Event {
			kept := events[:0:0]
			for _, ev := range events {
				if allowed[ev.Type()] {
					kept = append(kept, ev)
				}
			}
			return kept
		}
	}

	framer := parser.NewFramer(newLogger())
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-follower.Lines():
			if !ok {
				return nil
			}
			events, done := framer.Feed(line)
			if !done {
				continue
			}
			update := ffmonitor.NewMonitorUpdate(filter(events))
			if err := OutputUpdate(replayFormat, update, os.Stdout); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
		case err, ok := <-follower.Errors():
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}
}

// allowedTypes resolves include/exclude lists into one membership set over
// all event types; exclude takes precedence.
func allowedTypes(includes, excludes []ffmonitor.EventType) map[ffmonitor.EventType]bool {
	allowed := make(map[ffmonitor.EventType]bool)
	if len(includes) > 0 {
		for _, t := range includes {
			allowed[t] = true
		}
	} else {
		for _, name := range ValidEventTypeNames() {
			allowed[ffmonitor.EventType(name)] = true
		}
	}
	for _, t := range excludes {
		delete(allowed, t)
	}
	return allowed
}
