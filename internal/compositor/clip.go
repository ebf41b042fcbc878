package compositor

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// BuildClip encodes one segment clip. A still image is stretched to exactly
// the narration's duration; a video keeps its native frames and the clip
// ends at the shorter of the video and audio streams. The asymmetry is
// deliberate and matches how the generator has always treated video media.
func (c *implCompositor) BuildClip(ctx context.Context, workDir string, spec ClipSpec) (string, error) {
	clipPath := filepath.Join(workDir, fmt.Sprintf("clip_%s.mp4", uuid.New()))

	var clipDur float64
	var err error
	if IsImage(spec.MediaPath) {
		clipDur, err = c.probeDuration(ctx, spec.AudioPath)
	} else {
		clipDur, err = c.probeDuration(ctx, spec.MediaPath)
	}
	if err != nil {
		return "", fmt.Errorf("probe clip duration: %w", err)
	}

	args := []string{"-y"}
	if IsImage(spec.MediaPath) {
		args = append(args,
			"-loop", "1",
			"-i", spec.MediaPath,
			"-i", spec.AudioPath,
			"-t", formatSeconds(clipDur),
		)
	} else {
		args = append(args,
			"-i", spec.MediaPath,
			"-i", spec.AudioPath,
			"-map", "0:v:0",
			"-map", "1:a:0",
			"-shortest",
		)
	}

	if filter := c.subtitleFilter(spec, clipDur); filter != "" {
		args = append(args, "-vf", filter)
	}

	args = append(args,
		"-c:v", c.cfg.FFmpeg.VideoCodec,
		"-c:a", c.cfg.FFmpeg.AudioCodec,
		"-r", strconv.Itoa(c.cfg.FFmpeg.FPS),
		"-pix_fmt", "yuv420p",
		clipPath,
	)

	c.logger.Debug(ctx, "Building clip: media=%s audio=%s", spec.MediaPath, spec.AudioPath)

	if _, err := c.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("ffmpeg build clip: %w", err)
	}

	return clipPath, nil
}

// subtitleFilter builds the drawtext chain: white bottom-centered text,
// either one overlay for the full clip or the phrases back to back in even
// time slices. Even division ignores phrase length and speech timing; that
// approximation is kept because the synthesizer response carries no word
// timings to divide by.
func (c *implCompositor) subtitleFilter(spec ClipSpec, clipDur float64) string {
	base := fmt.Sprintf("fontcolor=white:fontsize=%d:x=(w-text_w)/2:y=h-text_h-40", c.cfg.FFmpeg.FontSize)

	if len(spec.Phrases) > 0 {
		slice := clipDur / float64(len(spec.Phrases))
		parts := make([]string, 0, len(spec.Phrases))
		for i, phrase := range spec.Phrases {
			start := float64(i) * slice
			end := start + slice
			parts = append(parts, fmt.Sprintf("drawtext=text='%s':%s:enable='between(t,%s,%s)'",
				escapeDrawtext(phrase), base, formatSeconds(start), formatSeconds(end)))
		}
		return strings.Join(parts, ",")
	}

	if spec.Subtitle != "" {
		return fmt.Sprintf("drawtext=text='%s':%s", escapeDrawtext(spec.Subtitle), base)
	}

	return ""
}

// escapeDrawtext escapes the characters that terminate or expand a quoted
// drawtext value.
func escapeDrawtext(s string) string {
	return strings.NewReplacer(
		`\`, `\\`,
		`'`, `'\''`,
		`%`, `\%`,
	).Replace(s)
}

func formatSeconds(d float64) string {
	return strconv.FormatFloat(d, 'f', 3, 64)
}
