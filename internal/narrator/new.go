package narrator

import (
	"github.com/PatrickAngrezani/IA-video-generator/internal/logger"
)

type implNarrator struct {
	synth    Synthesizer
	mediaDir string
	logger   logger.Logger
}

// New creates a Narrator that writes audio artifacts into mediaDir.
func New(synth Synthesizer, mediaDir string, log logger.Logger) Narrator {
	return &implNarrator{
		synth:    synth,
		mediaDir: mediaDir,
		logger:   log,
	}
}
