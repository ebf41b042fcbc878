package pipeline

import (
	"context"
	"io"
)

// Request is one generation job: a narration script plus an uploaded media
// asset, and the flags selecting how the script is segmented.
type Request struct {
	Script      string
	MediaName   string
	Media       io.Reader
	UseChapters bool
	UseThemes   bool
}

// Result tracks every artifact a request created. It is returned even on
// failure so Cleanup can remove partial work.
type Result struct {
	VideoPath  string
	MediaPath  string
	AudioPaths []string

	workDir string
}

// Pipeline runs the generation stages in sequence and owns artifact
// lifetimes. Callers must invoke Cleanup after the result has been
// consumed, success or failure.
type Pipeline interface {
	Generate(ctx context.Context, req Request) (*Result, error)
	Cleanup(ctx context.Context, res *Result)
}
