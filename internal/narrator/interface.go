package narrator

import "context"

// Synthesizer converts text to encoded audio bytes. The concrete
// implementation wraps the speech-synthesis provider client.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Narrator synthesizes one narration and persists it to a uniquely named
// audio file, returning the file path.
type Narrator interface {
	Narrate(ctx context.Context, text string) (string, error)
}
