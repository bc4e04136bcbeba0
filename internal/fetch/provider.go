package fetch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"advisor/internal/logging"
	"advisor/internal/rules"
)

// ProviderConfig configures a file-backed provider.
type ProviderConfig struct {
	// Path is a YAML or JSON recommendation response.
	Path string
	// Watch refetches whenever the file is written.
	Watch bool
}

// Provider turns a recommendation file into a stream of States.
type Provider struct {
	cfg ProviderConfig
	log zerolog.Logger
}

// NewProvider creates a provider for cfg.
func NewProvider(cfg ProviderConfig) *Provider {
	return &Provider{cfg: cfg, log: logging.WithComponent("fetch")}
}

// Load performs a single fetch and returns its terminal State.
func Load(path string) State {
	resp, err := rules.LoadResponse(path)
	if err != nil {
		return Failed(err)
	}
	return Success(resp)
}

// Start emits Uninitialized, Loading and the first result, then in watch mode
// Fetching plus a fresh result for every change. The channel closes when ctx
// is done or, without watch, after the first result.
func (p *Provider) Start(ctx context.Context) (<-chan State, error) {
	if p.cfg.Path == "" {
		return nil, fmt.Errorf("no recommendation file provided")
	}

	var watcher *fsnotify.Watcher
	if p.cfg.Watch {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			return nil, fmt.Errorf("watch %s: %w", p.cfg.Path, err)
		}
		// Editors replace files on save, so watch the directory.
		if err := w.Add(filepath.Dir(p.cfg.Path)); err != nil {
			w.Close()
			return nil, fmt.Errorf("watch %s: %w", p.cfg.Path, err)
		}
		watcher = w
	}

	out := make(chan State, 4)
	go func() {
		defer close(out)
		if watcher != nil {
			defer watcher.Close()
		}

		if !p.send(ctx, out, Uninitialized()) || !p.send(ctx, out, Loading()) {
			return
		}
		if !p.send(ctx, out, Load(p.cfg.Path)) || watcher == nil {
			return
		}

		target := filepath.Clean(p.cfg.Path)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != target || evt.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if !p.send(ctx, out, Fetching()) || !p.send(ctx, out, Load(p.cfg.Path)) {
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				p.log.Warn().Err(err).Str("path", p.cfg.Path).Msg("watch error")
			}
		}
	}()
	return out, nil
}

func (p *Provider) send(ctx context.Context, out chan<- State, st State) bool {
	if st.Err != nil {
		p.log.Warn().Err(st.Err).Str("status", st.Status.String()).Str("path", p.cfg.Path).Msg("fetch state")
	} else {
		p.log.Debug().Str("status", st.Status.String()).Str("path", p.cfg.Path).Msg("fetch state")
	}

	select {
	case <-ctx.Done():
		return false
	case out <- st:
		return true
	}
}
