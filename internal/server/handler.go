package server

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/PatrickAngrezani/IA-video-generator/internal/pipeline"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleGenerate accepts the multipart form (script, media, use_chapters,
// use_themes), runs the pipeline and streams the rendered video back as an
// attachment. Artifact cleanup is deferred so it runs after the response
// has been written, on every exit path.
func (s *Server) handleGenerate(c *gin.Context) {
	ctx := c.Request.Context()

	req := pipeline.Request{
		Script: c.PostForm("script"),
	}
	_, req.UseChapters = c.GetPostForm("use_chapters")
	_, req.UseThemes = c.GetPostForm("use_themes")

	if fileHeader, err := c.FormFile("media"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "media file unreadable: " + err.Error()})
			return
		}
		defer file.Close()
		req.Media = file
		req.MediaName = fileHeader.Filename
	}

	res, err := s.pipe.Generate(ctx, req)
	defer s.pipe.Cleanup(ctx, res)

	if err != nil {
		s.logger.Error(ctx, "Generation failed: %v", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.FileAttachment(res.VideoPath, filepath.Base(res.VideoPath))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrMissingInput):
		return http.StatusBadRequest
	case errors.Is(err, pipeline.ErrSynthesis), errors.Is(err, pipeline.ErrRender):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
