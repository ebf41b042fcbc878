package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"github.com/joho/godotenv"

	"github.com/PatrickAngrezani/IA-video-generator/internal/compositor"
	"github.com/PatrickAngrezani/IA-video-generator/internal/config"
	"github.com/PatrickAngrezani/IA-video-generator/internal/logger"
	"github.com/PatrickAngrezani/IA-video-generator/internal/narrator"
	"github.com/PatrickAngrezani/IA-video-generator/internal/pipeline"
	"github.com/PatrickAngrezani/IA-video-generator/internal/server"
	"github.com/PatrickAngrezani/IA-video-generator/internal/themes"
	"github.com/PatrickAngrezani/IA-video-generator/internal/watcher"
	"github.com/PatrickAngrezani/IA-video-generator/pkg/executor"
)

func main() {
	ctx := context.Background()

	// Provider credentials travel through the environment
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found, using system environment")
	}

	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Narrated Video Generator")
	log.Info(ctx, "========================================")

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	exec := executor.New()
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if err := exec.LookPath(bin); err != nil {
			log.Error(ctx, "Rendering backend unavailable: %v", err)
			os.Exit(1)
		}
	}

	// One TTS client for the process lifetime, reused across requests
	ttsClient, err := texttospeech.NewClient(ctx)
	if err != nil {
		log.Error(ctx, "Failed to create TTS client: %v", err)
		os.Exit(1)
	}
	defer ttsClient.Close()

	synth := narrator.NewGoogleSynthesizer(ttsClient, cfg.TTS.LanguageCode, cfg.TTS.VoiceGender)
	narr := narrator.New(synth, cfg.Paths.Media, log)
	comp := compositor.New(cfg, exec, log)
	ext := themes.New(cfg.Themes.Language, cfg.Themes.RelevanceThreshold, log)
	pipe := pipeline.New(cfg, ext, narr, comp, log)

	srv := server.New(cfg, pipe, log)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 2)

	if cfg.Watch.Enabled {
		w, err := watcher.New(cfg, pipe, log)
		if err != nil {
			log.Error(ctx, "Failed to create ingest watcher: %v", err)
			os.Exit(1)
		}
		defer w.Stop()

		go func() {
			if err := w.Start(ctx); err != nil && err != context.Canceled {
				errChan <- err
			}
		}()
		log.Info(ctx, "Ingest folder: %s", cfg.Watch.Input)
	}

	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	log.Info(ctx, "Listening on %s", cfg.Server.Addr)
	log.Info(ctx, "Voice: %s (%s), output %s fps=%d",
		cfg.TTS.LanguageCode, cfg.TTS.VoiceGender, cfg.FFmpeg.VideoCodec, cfg.FFmpeg.FPS)
	log.Info(ctx, "Press Ctrl+C to stop")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Server error: %v", err)
	}

	cancel()
	log.Info(ctx, "Video generator stopped")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Uploads,
		cfg.Paths.Media,
		cfg.Paths.Temp,
		cfg.Paths.Output,
	}
	if cfg.Watch.Enabled {
		dirs = append(dirs, cfg.Watch.Input)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
