package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/PatrickAngrezani/IA-video-generator/internal/compositor"
	"github.com/PatrickAngrezani/IA-video-generator/internal/logger"
	"github.com/PatrickAngrezani/IA-video-generator/internal/pipeline"
)

type implWatcher struct {
	inputDir    string
	outputDir   string
	useChapters bool
	pipe        pipeline.Pipeline
	logger      logger.Logger
	watcher     *fsnotify.Watcher
	semaphore   chan struct{}
	wg          sync.WaitGroup

	mu       sync.Mutex
	inflight map[string]bool
}

// Start monitors the ingest directory. A <name>.txt script file paired with
// a <name>.<image|video ext> sibling triggers one pipeline run; the rendered
// video is moved into the output directory.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Ingest watcher started. Monitoring: %s", w.inputDir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing generations to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Ingest watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}

			// Either half of a pair may land last, so both script and
			// media creation are dispatch points.
			var scriptPath string
			switch {
			case strings.EqualFold(filepath.Ext(event.Name), ".txt"):
				scriptPath = event.Name
			case compositor.IsImage(event.Name) || compositor.IsVideo(event.Name):
				scriptPath = pairScript(event.Name)
				if scriptPath == "" {
					w.logger.Debug(ctx, "No script sibling yet for %s", event.Name)
					continue
				}
			default:
				w.logger.Debug(ctx, "Ignoring unrelated file: %s", event.Name)
				continue
			}

			if !w.begin(scriptPath) {
				w.logger.Debug(ctx, "Already processing %s", scriptPath)
				continue
			}

			w.logger.Info(ctx, "New script detected: %s", scriptPath)

			// Small delay to ensure the file is fully written
			time.Sleep(500 * time.Millisecond)

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(scriptPath string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()
					defer w.end(scriptPath)

					if err := w.handle(ctx, scriptPath); err != nil {
						w.logger.Error(ctx, "Failed to process %s: %v", scriptPath, err)
					}
				}(scriptPath)
			case <-ctx.Done():
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) handle(ctx context.Context, scriptPath string) error {
	mediaPath, err := findMedia(scriptPath)
	if err != nil {
		return fmt.Errorf("pair media: %w", err)
	}

	script, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	media, err := os.Open(mediaPath)
	if err != nil {
		return fmt.Errorf("open media: %w", err)
	}
	defer media.Close()

	res, err := w.pipe.Generate(ctx, pipeline.Request{
		Script:      string(script),
		MediaName:   filepath.Base(mediaPath),
		Media:       media,
		UseChapters: w.useChapters,
	})
	defer w.pipe.Cleanup(ctx, res)

	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	destPath := filepath.Join(w.outputDir, filepath.Base(res.VideoPath))
	if err := os.Rename(res.VideoPath, destPath); err != nil {
		return fmt.Errorf("move video to output: %w", err)
	}

	// The consumed pair leaves the ingest folder; the copy under uploads is
	// cleaned up by the pipeline.
	if err := os.Remove(scriptPath); err != nil {
		w.logger.Warn(ctx, "Failed to remove ingested script %s: %v", scriptPath, err)
	}
	if err := os.Remove(mediaPath); err != nil {
		w.logger.Warn(ctx, "Failed to remove ingested media %s: %v", mediaPath, err)
	}

	w.logger.Info(ctx, "Generated video ready: %s", destPath)
	return nil
}

// begin marks a script as in-flight; false means another goroutine is
// already processing it (the script and its media arriving back to back
// fire two events for the same pair).
func (w *implWatcher) begin(scriptPath string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inflight[scriptPath] {
		return false
	}
	w.inflight[scriptPath] = true
	return true
}

func (w *implWatcher) end(scriptPath string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inflight, scriptPath)
}

// pairScript returns the script sibling of a media file, or "" when none
// is waiting yet.
func pairScript(mediaPath string) string {
	scriptPath := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath)) + ".txt"
	if _, err := os.Stat(scriptPath); err != nil {
		return ""
	}
	return scriptPath
}

/// findMedia locates the media sibling of a script: same directory, same
// base name, recognized image or video extension.
func findMedia(scriptPath string) (string, error) {
	dir := filepath.Dir(scriptPath)
	base := strings.TrimSuffix(filepath.Base(scriptPath), filepath.Ext(scriptPath))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read ingest dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.TrimSuffix(name, filepath.Ext(name)) != base {
			continue
		}
		if compositor.IsImage(name) || compositor.IsVideo(name) {
			return filepath.Join(dir, name), nil
		}
	}

	return "", fmt.Errorf("no media sibling found for %s", filepath.Base(scriptPath))
}
