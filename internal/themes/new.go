package themes

import (
	"github.com/PatrickAngrezani/IA-video-generator/internal/logger"
)

type implExtractor struct {
	language  string
	threshold float64
	logger    logger.Logger
}

// New creates an Extractor for the given stop-word language. Terms whose
// relative frequency reaches threshold are kept as keywords.
func New(language string, threshold float64, log logger.Logger) Extractor {
	return &implExtractor{
		language:  language,
		threshold: threshold,
		logger:    log,
	}
}
