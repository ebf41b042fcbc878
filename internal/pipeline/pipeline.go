package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/PatrickAngrezani/IA-video-generator/internal/compositor"
	"github.com/PatrickAngrezani/IA-video-generator/internal/segment"
)

// Generate runs the linear pipeline: validate, persist the upload, segment,
// narrate one segment at a time, build clips and render. The returned
// Result is non-nil even on failure and lists every artifact created so
// far; the caller owns invoking Cleanup.
func (p *implPipeline) Generate(ctx context.Context, req Request) (*Result, error) {
	startTime := time.Now()
	res := &Result{}

	if strings.TrimSpace(req.Script) == "" {
		return res, fmt.Errorf("%w: script is empty", ErrMissingInput)
	}
	if req.Media == nil || req.MediaName == "" {
		return res, fmt.Errorf("%w: media file is required", ErrMissingInput)
	}
	if !compositor.IsImage(req.MediaName) && !compositor.IsVideo(req.MediaName) {
		return res, fmt.Errorf("%w: unsupported media type %q", ErrMissingInput, filepath.Ext(req.MediaName))
	}

	mediaPath, err := p.storeUpload(req)
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	res.MediaPath = mediaPath
	p.logger.Info(ctx, "Upload stored: %s", mediaPath)

	workDir, err := p.makeWorkDir()
	if err != nil {
		return res, err
	}
	res.workDir = workDir

	plan, overlayPhrases, err := p.segmentScript(ctx, req)
	if err != nil {
		return res, err
	}
	p.logger.Info(ctx, "Script segmented: mode=%s segments=%d", plan.Mode, len(plan.Segments))

	for _, seg := range plan.Segments {
		audioPath, err := p.narrator.Narrate(ctx, seg.Text)
		if err != nil {
			return res, fmt.Errorf("%w: segment %d: %v", ErrSynthesis, seg.Index, err)
		}
		res.AudioPaths = append(res.AudioPaths, audioPath)
	}

	clips := make([]string, 0, len(plan.Segments))
	for i, seg := range plan.Segments {
		spec := compositor.ClipSpec{
			MediaPath: mediaPath,
			AudioPath: res.AudioPaths[i],
		}
		switch plan.Mode {
		case segment.ModeDelimiter, segment.ModeThemes:
			spec.Subtitle = seg.Text
		default:
			spec.Phrases = overlayPhrases
		}

		clip, err := p.compositor.BuildClip(ctx, workDir, spec)
		if err != nil {
			return res, fmt.Errorf("%w: segment %d: %v", ErrRender, seg.Index, err)
		}
		clips = append(clips, clip)
	}

	videoPath, err := p.compositor.Render(ctx, workDir, clips)
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrRender, err)
	}
	res.VideoPath = videoPath

	p.logger.Info(ctx, "Video generated in %s: %s", time.Since(startTime), videoPath)
	return res, nil
}

// segmentScript applies the mode the request flags select. Theme extraction
// with chapters makes each phrase its own chapter; themes without chapters
// keep one clip and return the phrases as subtitle overlays.
func (p *implPipeline) segmentScript(ctx context.Context, req Request) (segment.Plan, []string, error) {
	switch {
	case req.UseThemes && req.UseChapters:
		phrases, err := p.extractor.Extract(ctx, req.Script)
		if err != nil {
			return segment.Plan{}, nil, fmt.Errorf("extract themes: %w", err)
		}
		if len(phrases) == 0 {
			return segment.Plan{}, nil, fmt.Errorf("%w: no themes extracted from script", ErrMissingInput)
		}
		return segment.ByThemes(phrases), nil, nil

	case req.UseThemes:
		phrases, err := p.extractor.Extract(ctx, req.Script)
		if err != nil {
			return segment.Plan{}, nil, fmt.Errorf("extract themes: %w", err)
		}
		if len(phrases) == 0 {
			p.logger.Warn(ctx, "No themes extracted, rendering without subtitle overlays")
		}
		return segment.Unsegmented(req.Script), phrases, nil

	case req.UseChapters:
		return segment.ByDelimiter(req.Script, p.cfg.Segments.Delimiter), nil, nil

	default:
		return segment.Unsegmented(req.Script), nil, nil
	}
}

// storeUpload persists the uploaded media under a sanitized, collision-free
// name and verifies it landed on disk.
func (p *implPipeline) storeUpload(req Request) (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Uploads, 0755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}

	ext := filepath.Ext(req.MediaName)
	base := strings.TrimSuffix(filepath.Base(req.MediaName), ext)
	name := fmt.Sprintf("%s_%s%s", slug.Make(base), uuid.New(), strings.ToLower(ext))
	path := filepath.Join(p.cfg.Paths.Uploads, name)

	// A failed copy is rolled back here: the path only reaches the Result
	// (and thus Cleanup) once the file is fully written, so nothing may
	// stay behind on the error branches.
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(dst, req.Media); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close upload file: %w", err)
	}

	if _, err := os.Stat(path); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("verify upload file %s: %w", path, err)
	}

	return path, nil
}

// makeWorkDir creates an isolated per-request temp dir for clips and the
// concat list, so concurrent requests never share scratch space.
func (p *implPipeline) makeWorkDir() (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Temp, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	workDir, err := os.MkdirTemp(p.cfg.Paths.Temp, "request-*")
	if err != nil {
		return "", fmt.Errorf("create request work dir: %w", err)
	}
	return workDir, nil
}
