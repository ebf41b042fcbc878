package compositor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PatrickAngrezani/IA-video-generator/internal/config"
	"github.com/PatrickAngrezani/IA-video-generator/internal/logger"
)

// fakeExecutor records every command and simulates ffprobe/ffmpeg: probes
// return a fixed duration, renders create their output file.
type fakeExecutor struct {
	duration string
	failNext bool
	commands [][]string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.ExecuteInDir(ctx, "", name, args...)
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	f.commands = append(f.commands, append([]string{name}, args...))
	if f.failNext {
		f.failNext = false
		return "", os.ErrInvalid
	}
	if name == "ffprobe" {
		return f.duration + "\n", nil
	}
	// ffmpeg: create the output file (last argument)
	out := args[len(args)-1]
	if !filepath.IsAbs(out) {
		out = filepath.Join(dir, out)
	}
	return "", os.WriteFile(out, []byte("video"), 0644)
}

func (f *fakeExecutor) LookPath(name string) error { return nil }

func (f *fakeExecutor) lastCommand() []string {
	if len(f.commands) == 0 {
		return nil
	}
	return f.commands[len(f.commands)-1]
}

func testConfig(mediaDir string) *config.Config {
	return &config.Config{
		FFmpeg: config.FFmpegConfig{
			VideoCodec: "libx264",
			AudioCodec: "aac",
			FPS:        24,
			FontSize:   24,
		},
		Paths: config.PathsConfig{Media: mediaDir},
	}
}

func hasArg(cmd []string, arg string) bool {
	for _, a := range cmd {
		if a == arg {
			return true
		}
	}
	return false
}

func argAfter(cmd []string, flag string) string {
	for i, a := range cmd {
		if a == flag && i+1 < len(cmd) {
			return cmd[i+1]
		}
	}
	return ""
}

func TestIsImage(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"photo.jpg", true},
		{"photo.JPEG", true},
		{"photo.png", true},
		{"clip.mp4", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsImage(tt.path); got != tt.want {
			t.Errorf("IsImage(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestBuildClipImageStretchedToAudio(t *testing.T) {
	workDir := t.TempDir()
	exec := &fakeExecutor{duration: "3.500"}
	c := New(testConfig(t.TempDir()), exec, logger.New("error"))

	clip, err := c.BuildClip(context.Background(), workDir, ClipSpec{
		MediaPath: "photo.jpg",
		AudioPath: "audio.mp3",
	})
	if err != nil {
		t.Fatalf("BuildClip() error = %v", err)
	}
	if filepath.Dir(clip) != workDir {
		t.Errorf("clip built in %s, want %s", filepath.Dir(clip), workDir)
	}

	// First command probes the audio, second encodes.
	if probed := exec.commands[0][len(exec.commands[0])-1]; probed != "audio.mp3" {
		t.Errorf("probed %s, want audio.mp3", probed)
	}
	cmd := exec.lastCommand()
	if !hasArg(cmd, "-loop") {
		t.Error("image clip should loop the still frame")
	}
	if got := argAfter(cmd, "-t"); got != "3.500" {
		t.Errorf("-t = %s, want 3.500", got)
	}
	if hasArg(cmd, "-shortest") {
		t.Error("image clip should not use -shortest")
	}
}

func TestBuildClipVideoKeepsNativeDuration(t *testing.T) {
	workDir := t.TempDir()
	exec := &fakeExecutor{duration: "10.000"}
	c := New(testConfig(t.TempDir()), exec, logger.New("error"))

	_, err := c.BuildClip(context.Background(), workDir, ClipSpec{
		MediaPath: "clip.mp4",
		AudioPath: "audio.mp3",
	})
	if err != nil {
		t.Fatalf("BuildClip() error = %v", err)
	}

	cmd := exec.lastCommand()
	if hasArg(cmd, "-loop") {
		t.Error("video clip should not loop")
	}
	if !hasArg(cmd, "-shortest") {
		t.Error("video clip should end at the shorter stream")
	}
	if hasArg(cmd, "-t") {
		t.Error("video duration must not be stretched to the narration")
	}
}

func TestBuildClipSubtitleOverlay(t *testing.T) {
	exec := &fakeExecutor{duration: "4.0"}
	c := New(testConfig(t.TempDir()), exec, logger.New("error"))

	_, err := c.BuildClip(context.Background(), t.TempDir(), ClipSpec{
		MediaPath: "photo.png",
		AudioPath: "audio.mp3",
		Subtitle:  "Chapter one",
	})
	if err != nil {
		t.Fatalf("BuildClip() error = %v", err)
	}

	filter := argAfter(exec.lastCommand(), "-vf")
	if !strings.Contains(filter, "drawtext=text='Chapter one'") {
		t.Errorf("filter = %q, want drawtext overlay", filter)
	}
	if strings.Contains(filter, "between(t,") {
		t.Error("single subtitle should cover the whole clip, not a time slice")
	}
}

func TestBuildClipPhrasesDivideDurationEvenly(t *testing.T) {
	exec := &fakeExecutor{duration: "6.000"}
	c := New(testConfig(t.TempDir()), exec, logger.New("error"))

	_, err := c.BuildClip(context.Background(), t.TempDir(), ClipSpec{
		MediaPath: "photo.png",
		AudioPath: "audio.mp3",
		Phrases:   []string{"first", "second", "third"},
	})
	if err != nil {
		t.Fatalf("BuildClip() error = %v", err)
	}

	filter := argAfter(exec.lastCommand(), "-vf")
	for _, want := range []string{
		"between(t,0.000,2.000)",
		"between(t,2.000,4.000)",
		"between(t,4.000,6.000)",
	} {
		if !strings.Contains(filter, want) {
			t.Errorf("filter missing %q: %q", want, filter)
		}
	}
}

func TestEscapeDrawtext(t *testing.T) {
	got := escapeDrawtext(`it's 100% done`)
	if strings.Contains(got, "100%") {
		t.Errorf("percent not escaped: %q", got)
	}
	if strings.Contains(got, `it's`) {
		t.Errorf("quote not escaped: %q", got)
	}
}

func TestRenderSingleClip(t *testing.T) {
	workDir := t.TempDir()
	mediaDir := filepath.Join(t.TempDir(), "media")
	exec := &fakeExecutor{duration: "1.0"}
	c := New(testConfig(mediaDir), exec, logger.New("error"))

	clip := filepath.Join(workDir, "clip_a.mp4")
	if err := os.WriteFile(clip, []byte("clip"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := c.Render(context.Background(), workDir, []string{clip})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if filepath.Dir(out) != mediaDir {
		t.Errorf("output in %s, want %s", filepath.Dir(out), mediaDir)
	}
	if !strings.HasPrefix(filepath.Base(out), "video_") {
		t.Errorf("unexpected artifact name %s", filepath.Base(out))
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("rendered file missing: %v", err)
	}
	if len(exec.commands) != 0 {
		t.Error("single clip should be promoted without another ffmpeg run")
	}
}

func TestRenderConcatenatesClips(t *testing.T) {
	workDir := t.TempDir()
	mediaDir := t.TempDir()
	exec := &fakeExecutor{duration: "1.0"}
	c := New(testConfig(mediaDir), exec, logger.New("error"))

	clips := []string{
		filepath.Join(workDir, "clip_a.mp4"),
		filepath.Join(workDir, "clip_b.mp4"),
	}

	out, err := c.Render(context.Background(), workDir, clips)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.HasPrefix(filepath.Base(out), "long_video_") {
		t.Errorf("unexpected artifact name %s", filepath.Base(out))
	}

	list, err := os.ReadFile(filepath.Join(workDir, "clips.txt"))
	if err != nil {
		t.Fatalf("concat list not written: %v", err)
	}
	want := "file 'clip_a.mp4'\nfile 'clip_b.mp4'"
	if string(list) != want {
		t.Errorf("concat list = %q, want %q", list, want)
	}

	cmd := exec.lastCommand()
	if !hasArg(cmd, "concat") {
		t.Errorf("expected concat demuxer in %v", cmd)
	}
}

func TestRenderNoClips(t *testing.T) {
	exec := &fakeExecutor{}
	c := New(testConfig(t.TempDir()), exec, logger.New("error"))

	if _, err := c.Render(context.Background(), t.TempDir(), nil); err == nil {
		t.Error("Render() expected error for empty timeline")
	}
}

func TestRenderBackendFailure(t *testing.T) {
	workDir := t.TempDir()
	exec := &fakeExecutor{duration: "1.0", failNext: true}
	c := New(testConfig(t.TempDir()), exec, logger.New("error"))

	clips := []string{
		filepath.Join(workDir, "clip_a.mp4"),
		filepath.Join(workDir, "clip_b.mp4"),
	}
	if _, err := c.Render(context.Background(), workDir, clips); err == nil {
		t.Error("Render() expected error when ffmpeg fails")
	}
}
