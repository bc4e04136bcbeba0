package clusters

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/nxadm/tail"
)

// LineEvent is a raw line read from a feed file.
type LineEvent struct {
	Line   string
	Number int
	Err    error
}

// FeedConfig configures TailFeed.
type FeedConfig struct {
	Path string
	// Follow keeps reading as the file grows. Without it the feed closes at EOF.
	Follow bool
}

// TailFeed streams lines of an NDJSON cluster file.
func TailFeed(ctx context.Context, cfg FeedConfig) (<-chan LineEvent, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("no cluster feed provided")
	}

	t, err := tail.TailFile(cfg.Path, tail.Config{
		Follow:    cfg.Follow,
		ReOpen:    cfg.Follow,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
		Location:  &tail.SeekInfo{Offset: 0, Whence: io.SeekStart},
	})
	if err != nil {
		return nil, fmt.Errorf("tail %s: %w", cfg.Path, err)
	}

	out := make(chan LineEvent)
	go func() {
		defer close(out)
		defer t.Cleanup()
		defer t.Stop()
		n := 0
		for {
			select {
			case <-ctx.Done():
				return
			case line, ok := <-t.Lines:
				if !ok {
					return
				}
				n++
				evt := LineEvent{Number: n}
				if line.Err != nil {
					evt.Err = line.Err
				} else {
					evt.Line = strings.TrimRight(line.Text, "\r")
				}
				select {
				case out <- evt:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
