package watcher

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/PatrickAngrezani/IA-video-generator/internal/config"
	"github.com/PatrickAngrezani/IA-video-generator/internal/logger"
	"github.com/PatrickAngrezani/IA-video-generator/internal/pipeline"
)

// New creates a Watcher over cfg.Watch.Input with bounded concurrency.
func New(cfg *config.Config, pipe pipeline.Pipeline, log logger.Logger) (Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsWatcher.Add(cfg.Watch.Input); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	maxConcurrent := cfg.Watch.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}

	return &implWatcher{
		inputDir:    cfg.Watch.Input,
		outputDir:   cfg.Paths.Output,
		useChapters: cfg.Watch.UseChapters,
		pipe:        pipe,
		logger:      log,
		watcher:     fsWatcher,
		semaphore:   make(chan struct{}, maxConcurrent),
		inflight:    make(map[string]bool),
	}, nil
}
