package narrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Narrate synthesizes the text once and persists the audio bytes to a fresh
// audio_<uuid>.mp3 under the media dir. The file is stat-verified after the
// write so a silently failed persist surfaces here, not at render time.
func (n *implNarrator) Narrate(ctx context.Context, text string) (string, error) {
	audio, err := n.synth.Synthesize(ctx, text)
	if err != nil {
		return "", fmt.Errorf("synthesize: %w", err)
	}

	if err := os.MkdirAll(n.mediaDir, 0755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	audioPath := filepath.Join(n.mediaDir, fmt.Sprintf("audio_%s.mp3", uuid.New()))
	if err := persistAudio(audioPath, audio); err != nil {
		return "", err
	}

	n.logger.Debug(ctx, "Narration written: %s (%d bytes)", audioPath, len(audio))
	return audioPath, nil
}

// persistAudio writes the audio bytes and verifies the file landed. A
// failed write or verify is rolled back so the caller never has to track
// a path it was not given.
func persistAudio(path string, audio []byte) error {
	if err := os.WriteFile(path, audio, 0644); err != nil {
		os.Remove(path)
		return fmt.Errorf("write audio file: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		os.Remove(path)
		return fmt.Errorf("verify audio file %s: %w", path, err)
	}
	return nil
}
