package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/OpenFusionProject/ffmonitor/pkg/ffmonitor"
)

var (
	// watch flags
	watchConfigPath   string
	watchFormat       string
	watchIncludeTypes []string
	watchExcludeTypes []string
	watchDialTimeout  time.Duration
	watchPollInterval time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [address]",
	Short: "Connect to a monitor port and output events",
	Long: `Connect to the monitor port of a running OpenFusion server and output
each tick's events as they arrive.

Events are output as JSON Lines by default (one JSON object per tick),
which makes it easy to process with tools like jq.

Examples:
  # Watch a local server
  ffmonitor watch 127.0.0.1:8003

  # Human-readable output
  ffmonitor watch 127.0.0.1:8003 --format pretty

  # Only chat and broadcast traffic
  ffmonitor watch 127.0.0.1:8003 --include-types chat,bcast

  # Read the address and filters from a config file
  ffmonitor watch --config ffmonitor.yaml

  # Pipe to jq for filtering
  ffmonitor watch 127.0.0.1:8003 | jq '.player_count'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchConfigPath, "config", "c", "",
		"YAML config file (flags take precedence)")
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", "jsonl",
		"Output format: jsonl, pretty")
	watchCmd.Flags().StringSliceVar(&watchIncludeTypes, "include-types", nil,
		"Event types to include (comma-separated: bcast,chat,email,namereq,player)")
	watchCmd.Flags().StringSliceVar(&watchExcludeTypes, "exclude-types", nil,
		"Event types to exclude (comma-separated)")
	watchCmd.Flags().DurationVar(&watchDialTimeout, "dial-timeout", 10*time.Second,
		"Timeout for the initial connect")
	watchCmd.Flags().DurationVar(&watchPollInterval, "poll-interval", 500*time.Millisecond,
		"How often to drain buffered updates")

	// Register completion for event type flags
	registerEventTypeCompletion(watchCmd, "include-types")
	registerEventTypeCompletion(watchCmd, "exclude-types")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := DefaultConfig()
	if watchConfigPath != "" {
		loaded, err := LoadConfig(watchConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flags override config file values.
	if len(args) > 0 {
		cfg.Address = args[0]
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = watchFormat
	}
	if cmd.Flags().Changed("dial-timeout") {
		cfg.DialTimeout = watchDialTimeout
	}
	if cmd.Flags().Changed("poll-interval") {
		cfg.PollInterval = watchPollInterval
	}
	if cmd.Flags().Changed("include-types") {
		cfg.IncludeTypes = watchIncludeTypes
	}
	if cmd.Flags().Changed("exclude-types") {
		cfg.ExcludeTypes = watchExcludeTypes
	}

	if cfg.Address == "" {
		return fmt.Errorf("no address given (pass it as an argument or set it in --config)")
	}
	if !ValidFormats[cfg.Format] {
		return fmt.Errorf("invalid format %q: must be one of: jsonl, pretty", cfg.Format)
	}

	// Normalize and validate event types
	includes, err := NormalizeEventTypes(cfg.IncludeTypes)
	if err != nil {
		return err
	}
	excludes, err := NormalizeEventTypes(cfg.ExcludeTypes)
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

	opts := []ffmonitor.Option{
		ffmonitor.WithDialTimeout(cfg.DialTimeout),
		ffmonitor.WithLogger(newLogger()),
	}
	if len(includes) > 0 || len(excludes) > 0 {
		opts = append(opts, ffmonitor.WithFilter(includes, excludes))
	}

	monitor, err := ffmonitor.New(cfg.Address, opts...)
	if err != nil {
		return err
	}
	defer monitor.Close()

	fmt.Fprintf(os.Stderr, "connected to monitor at %s\n", cfg.Address)

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := drainUpdates(monitor, cfg.Format); err != nil {
				return err
			}
			if !monitor.IsConnected() {
				// The worker queues nothing further once disconnected, so
				// one more drain empties the queue for good.
				if err := drainUpdates(monitor, cfg.Format); err != nil {
					return err
				}
				fmt.Fprintln(os.Stderr, "monitor disconnected")
				return nil
			}
		}
	}
}

func drainUpdates(monitor *ffmonitor.Monitor, format string) error {
	for update, ok := monitor.Poll(); ok; update, ok = monitor.Poll() {
		if err := OutputUpdate(format, update, os.Stdout); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
	return nil
}
