package clusters

import (
	"context"
	"fmt"
	"strings"
)

// Event is consumed by the clusters table.
type Event struct {
	Cluster Cluster
	Line    int
	Err     error
}

// Connect parses a line stream into cluster events. Blank lines are skipped;
// lines that fail to parse become events carrying the error.
func Connect(ctx context.Context, in <-chan LineEvent) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-in:
				if !ok {
					return
				}
				var next Event
				switch {
				case evt.Err != nil:
					next = Event{Line: evt.Number, Err: evt.Err}
				case strings.TrimSpace(evt.Line) == "":
					continue
				default:
					c, err := ParseLine(evt.Line)
					if err != nil {
						err = fmt.Errorf("line %d: %w", evt.Number, err)
					}
					next = Event{Cluster: c, Line: evt.Number, Err: err}
				}
				select {
				case out <- next:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// Open tails cfg.Path and returns parsed events.
func Open(ctx context.Context, cfg FeedConfig) (<-chan Event, error) {
	lines, err := TailFeed(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return Connect(ctx, lines), nil
}
