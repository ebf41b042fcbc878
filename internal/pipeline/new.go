package pipeline

import (
	"github.com/PatrickAngrezani/IA-video-generator/internal/compositor"
	"github.com/PatrickAngrezani/IA-video-generator/internal/config"
	"github.com/PatrickAngrezani/IA-video-generator/internal/logger"
	"github.com/PatrickAngrezani/IA-video-generator/internal/narrator"
	"github.com/PatrickAngrezani/IA-video-generator/internal/themes"
)

type implPipeline struct {
	cfg        *config.Config
	extractor  themes.Extractor
	narrator   narrator.Narrator
	compositor compositor.Compositor
	logger     logger.Logger
}

// New creates a new Pipeline instance
func New(cfg *config.Config, ext themes.Extractor, narr narrator.Narrator, comp compositor.Compositor, log logger.Logger) Pipeline {
	return &implPipeline{
		cfg:        cfg,
		extractor:  ext,
		narrator:   narr,
		compositor: comp,
		logger:     log,
	}
}
