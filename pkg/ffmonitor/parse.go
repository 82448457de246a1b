package ffmonitor

import (
	"bufio"
	"context"
	"errors"
	"io"
	"iter"
	"os"

	"github.com/OpenFusionProject/ffmonitor/internal/parser"
)

// ParseStream parses a captured monitor stream and returns an iterator over
// the updates it contains, one per begin/end tick. A trailing partial tick
// (no closing "end") is discarded, matching live behavior.
//
// The iterator yields (MonitorUpdate, error) pairs. Malformed records are
// skipped by default, or stop the iteration with a *ParseError if
// WithParseStopOnError is set. Context cancellation yields
// (MonitorUpdate{}, ctx.Err()) and stops.
//
// Example:
//
//	for update, err := range ffmonitor.ParseStream(ctx, r) {
//	    if err != nil {
//	        log.Printf("error: %v", err)
//	        break
//	    }
//	    fmt.Printf("players: %d\n", update.PlayerCount())
//	}
func ParseStream(ctx context.Context, r io.Reader, opts ...ParseOption) iter.Seq2[MonitorUpdate, error] {
	cfg := applyParseOptions(opts)

	return func(yield func(MonitorUpdate, error) bool) {
		framer := parser.NewFramer(cfg.logger)

		var recordErr *parser.ParseError
		if cfg.stopOnError {
			framer.OnError(func(err *parser.ParseError) {
				if recordErr == nil {
					recordErr = err
				}
			})
		}

		scanner := bufio.NewScanner(r)
		buf := make([]byte, 0, 64*1024)
		scanner.Buffer(buf, 512*1024)

		for scanner.Scan() {
			if err := ctx.Err(); err != nil {
				yield(MonitorUpdate{}, err)
				return
			}

			events, ok := framer.Feed(scanner.Text())
			if recordErr != nil {
				yield(MonitorUpdate{}, recordErr)
				return
			}
			if !ok {
				continue
			}

			if !yield(NewMonitorUpdate(cfg.filter.apply(events)), nil) {
				return // Consumer requested stop (break)
			}
		}

		if err := scanner.Err(); err != nil {
			yield(MonitorUpdate{}, err)
		}
	}
}

// ParseFile parses a capture file of monitor output. The file is opened
// lazily on first iteration, so the returned iterator is cheap to create
// but must be consumed to release resources.
func ParseFile(ctx context.Context, path string, opts ...ParseOption) iter.Seq2[MonitorUpdate, error] {
	if path == "" {
		return func(yield func(MonitorUpdate, error) bool) {
			yield(MonitorUpdate{}, errors.New("ffmonitor: path required"))
		}
	}

	return func(yield func(MonitorUpdate, error) bool) {
		file, err := os.Open(path)
		if err != nil {
			yield(MonitorUpdate{}, err)
			return
		}
		defer file.Close()

		for update, err := range ParseStream(ctx, file, opts...) {
			if !yield(update, err) {
				return
			}
			if err != nil {
				return
			}
		}
	}
}

// ParseFileAll is a convenience function that parses a capture file and
// collects all updates into a slice. Stops on first error and returns the
// updates collected so far.
func ParseFileAll(ctx context.Context, path string, opts ...ParseOption) ([]MonitorUpdate, error) {
	var updates []MonitorUpdate
	for update, err := range ParseFile(ctx, path, opts...) {
		if err != nil {
			return updates, err
		}
		updates = append(updates, update)
	}
	return updates, nil
}
