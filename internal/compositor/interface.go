package compositor

import "context"

// ClipSpec describes one visual clip: the media base, its narration audio,
// and an optional subtitle overlay. When Phrases is set the phrases are
// overlaid one after another, evenly dividing the clip's duration;
// otherwise Subtitle (if non-empty) covers the whole clip.
type ClipSpec struct {
	MediaPath string
	AudioPath string
	Subtitle  string
	Phrases   []string
}

// Compositor builds per-segment clips and renders the final timeline.
type Compositor interface {
	// BuildClip writes an encoded clip into workDir and returns its path.
	BuildClip(ctx context.Context, workDir string, spec ClipSpec) (string, error)

	// Render produces the final video artifact from the ordered clips:
	// a single clip is promoted to the final name, multiple clips are
	// concatenated end-to-end with no transition or gap.
	Render(ctx context.Context, workDir string, clipPaths []string) (string, error)
}
