package compositor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Render turns the ordered clips into the final video artifact under the
// media dir. One clip is promoted as-is; several are concatenated with the
// concat demuxer. The media dir is created if absent.
func (c *implCompositor) Render(ctx context.Context, workDir string, clipPaths []string) (string, error) {
	if len(clipPaths) == 0 {
		return "", fmt.Errorf("no clips to render")
	}

	if err := os.MkdirAll(c.cfg.Paths.Media, 0755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	if len(clipPaths) == 1 {
		outputPath := filepath.Join(c.cfg.Paths.Media, fmt.Sprintf("video_%s.mp4", uuid.New()))
		if err := c.promote(clipPaths[0], outputPath); err != nil {
			return "", err
		}
		c.logger.Info(ctx, "Rendered video: %s", outputPath)
		return outputPath, nil
	}

	outputPath, err := filepath.Abs(filepath.Join(c.cfg.Paths.Media, fmt.Sprintf("long_video_%s.mp4", uuid.New())))
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}

	// The concat demuxer resolves list entries relative to the working
	// directory, so the list holds base names and ffmpeg runs in workDir.
	listPath := filepath.Join(workDir, "clips.txt")
	lines := make([]string, 0, len(clipPaths))
	for _, clip := range clipPaths {
		lines = append(lines, fmt.Sprintf("file '%s'", filepath.Base(clip)))
	}
	if err := os.WriteFile(listPath, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return "", fmt.Errorf("write concat list: %w", err)
	}

	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", "clips.txt",
		"-c", "copy",
		outputPath,
	}

	c.logger.Debug(ctx, "Concatenating %d clips", len(clipPaths))

	if _, err := c.executor.ExecuteInDir(ctx, workDir, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("ffmpeg concat: %w", err)
	}

	if _, err := os.Stat(outputPath); err != nil {
		return "", fmt.Errorf("verify rendered video %s: %w", outputPath, err)
	}

	c.logger.Info(ctx, "Rendered concatenated video: %s", outputPath)
	return outputPath, nil
}

// promote moves a clip to its final artifact name, copying when the rename
// crosses filesystems.
func (c *implCompositor) promote(clipPath, outputPath string) error {
	if err := os.Rename(clipPath, outputPath); err != nil {
		if err := copyFile(clipPath, outputPath); err != nil {
			return fmt.Errorf("move clip to final location: %w", err)
		}
	}
	if _, err := os.Stat(outputPath); err != nil {
		return fmt.Errorf("verify rendered video %s: %w", outputPath, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("write destination: %w", err)
	}
	return nil
}
