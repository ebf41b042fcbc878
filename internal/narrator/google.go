package narrator

import (
	"context"
	"fmt"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
)

// googleSynthesizer wraps the Google Cloud Text-to-Speech client. The client
// is created once at startup and is safe for concurrent use.
type googleSynthesizer struct {
	client       *texttospeech.Client
	languageCode string
	gender       texttospeechpb.SsmlVoiceGender
}

// NewGoogleSynthesizer returns a Synthesizer backed by Google Cloud TTS.
// Output encoding is fixed to MP3.
func NewGoogleSynthesizer(client *texttospeech.Client, languageCode, voiceGender string) Synthesizer {
	return &googleSynthesizer{
		client:       client,
		languageCode: languageCode,
		gender:       parseGender(voiceGender),
	}
}

func (g *googleSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := g.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: g.languageCode,
			SsmlGender:   g.gender,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}

	return resp.AudioContent, nil
}

func parseGender(s string) texttospeechpb.SsmlVoiceGender {
	switch strings.ToLower(s) {
	case "male":
		return texttospeechpb.SsmlVoiceGender_MALE
	case "female":
		return texttospeechpb.SsmlVoiceGender_FEMALE
	case "neutral":
		return texttospeechpb.SsmlVoiceGender_NEUTRAL
	default:
		return texttospeechpb.SsmlVoiceGender_SSML_VOICE_GENDER_UNSPECIFIED
	}
}
