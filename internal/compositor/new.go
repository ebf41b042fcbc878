package compositor

import (
	"github.com/PatrickAngrezani/IA-video-generator/internal/config"
	"github.com/PatrickAngrezani/IA-video-generator/internal/logger"
	"github.com/PatrickAngrezani/IA-video-generator/pkg/executor"
)

type implCompositor struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Compositor that renders through the given executor.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Compositor {
	return &implCompositor{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
