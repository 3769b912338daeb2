package provider

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bassista/go_records/internal/logger"
	"github.com/bassista/go_records/internal/record"
	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// FileFixtureProvider reads records from a bundled JSON fixture on every fetch.
type FileFixtureProvider struct {
	path string
	dir  string
	base string
}

// NewFileFixtureProvider creates a provider for the given JSON file path.
// The file is not opened until the first fetch.
func NewFileFixtureProvider(path string) (*FileFixtureProvider, error) {
	if path == "" {
		return nil, errors.New("fixture file path is required")
	}

	return &FileFixtureProvider{path: path, dir: filepath.Dir(path), base: filepath.Base(path)}, nil
}

func (p *FileFixtureProvider) Name() string { return "file" }

// FetchRecords reads, parses and validates the fixture. A missing or malformed
// file yields a SourceUnavailableError and no records.
func (p *FileFixtureProvider) FetchRecords(ctx context.Context) ([]record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable(p.Name(), "fetch cancelled", err)
	}

	file, err := os.Open(p.path)
	if err != nil {
		return nil, unavailable(p.Name(), "open fixture file", err)
	}
	defer file.Close()

	records, err := decodeRecords(file)
	if err != nil {
		return nil, unavailable(p.Name(), fmt.Sprintf("malformed fixture %s", p.path), err)
	}

	logger.WithComponent("file-provider").Debugf("loaded %d records from %s", len(records), p.path)
	return records, nil
}

// StartWatcher calls onChange after the fixture file changes.
// It watches the parent directory (not the file) so atomic replace sequences (temp+rename)
// are still observed. Events are filtered by basename and debounced to avoid double
// reloads on write+chmod/rename cycles. Cancel ctx to stop the goroutine and close the watcher.
func (p *FileFixtureProvider) StartWatcher(ctx context.Context, onChange func()) error {
	if onChange == nil {
		return errors.New("onChange callback is required")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(p.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch dir: %w", err)
	}

	log := logger.WithComponent("file-watcher")
	log.Debugf("watching %s for changes to %s", p.dir, p.base)

	go func() {
		defer watcher.Close()

		var debounce *time.Timer
		schedule := func() {
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, onChange)
		}
		defer func() {
			if debounce != nil {
				debounce.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				log.Debug("file watcher stopped")
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != p.base {
					continue
				}
				// Remove/Rename means the file is being replaced; the reload will
				// surface a SourceUnavailable if it does not come back.
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Chmod|fsnotify.Remove|fsnotify.Rename) != 0 {
					log.Tracef("fixture event: %s", event.Op)
					schedule()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Errorf("watcher error: %v", err)
			}
		}
	}()

	return nil
}
