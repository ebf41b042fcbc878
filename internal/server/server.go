package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PatrickAngrezani/IA-video-generator/internal/config"
	"github.com/PatrickAngrezani/IA-video-generator/internal/logger"
	"github.com/PatrickAngrezani/IA-video-generator/internal/pipeline"
)

type Server struct {
	cfg    *config.Config
	pipe   pipeline.Pipeline
	logger logger.Logger
	router *gin.Engine
}

// New wires the HTTP routes onto a gin engine.
func New(cfg *config.Config, pipe pipeline.Pipeline, log logger.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		pipe:   pipe,
		logger: log,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestLogger())

	router.GET("/healthz", s.handleHealth)
	router.POST("/generate", s.handleGenerate)

	s.router = router
	return s
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run blocks serving HTTP on the configured address.
func (s *Server) Run() error {
	return s.router.Run(s.cfg.Server.Addr)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "%s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
