package pipeline

import "errors"

// Failure classes of the generation pipeline. Callers classify with
// errors.Is; everything below wraps the underlying cause into the message.
var (
	// ErrMissingInput marks an absent script or media file, or a media
	// type the compositor does not recognize.
	ErrMissingInput = errors.New("missing input")

	// ErrStorage marks a failed upload persist.
	ErrStorage = errors.New("storage failure")

	// ErrSynthesis marks a failed speech-synthesis call or audio persist.
	ErrSynthesis = errors.New("synthesis failure")

	// ErrRender marks a failed or absent video render.
	ErrRender = errors.New("render failure")
)
