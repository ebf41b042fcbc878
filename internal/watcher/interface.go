package watcher

import "context"

// Watcher monitors the ingest directory and runs the pipeline for every
// script file that lands in it.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}
