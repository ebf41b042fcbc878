package pipeline

import (
	"context"
	"os"
)

// Cleanup removes every artifact the request created. Deletions are
// attempted independently; a missing file is not an error and one failure
// never prevents the others. Failures are logged, never escalated.
func (p *implPipeline) Cleanup(ctx context.Context, res *Result) {
	if res == nil {
		return
	}

	p.removeFile(ctx, res.MediaPath)
	for _, audioPath := range res.AudioPaths {
		p.removeFile(ctx, audioPath)
	}
	p.removeFile(ctx, res.VideoPath)

	if res.workDir != "" {
		if err := os.RemoveAll(res.workDir); err != nil {
			p.logger.Warn(ctx, "Failed to remove work dir %s: %v", res.workDir, err)
		}
	}
}

func (p *implPipeline) removeFile(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil {
		if !os.IsNotExist(err) {
			p.logger.Warn(ctx, "Failed to cleanup %s: %v", path, err)
		}
		return
	}
	p.logger.Debug(ctx, "Cleaned up: %s", path)
}
