package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	TTS      TTSConfig      `yaml:"tts"`
	Segments SegmentsConfig `yaml:"segments"`
	Themes   ThemesConfig   `yaml:"themes"`
	FFmpeg   FFmpegConfig   `yaml:"ffmpeg"`
	Paths    PathsConfig    `yaml:"paths"`
	Logging  LoggingConfig  `yaml:"logging"`
	Watch    WatchConfig    `yaml:"watch"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type TTSConfig struct {
	LanguageCode string `yaml:"language_code"`
	VoiceGender  string `yaml:"voice_gender"`
}

type SegmentsConfig struct {
	Delimiter string `yaml:"delimiter"`
}

type ThemesConfig struct {
	Language           string  `yaml:"language"`
	RelevanceThreshold float64 `yaml:"relevance_threshold"`
}

type FFmpegConfig struct {
	VideoCodec string `yaml:"video_codec"`
	AudioCodec string `yaml:"audio_codec"`
	FPS        int    `yaml:"fps"`
	FontSize   int    `yaml:"font_size"`
}

type PathsConfig struct {
	Uploads string `yaml:"uploads"`
	Media   string `yaml:"media"`
	Temp    string `yaml:"temp"`
	Output  string `yaml:"output"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type WatchConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Input         string `yaml:"input"`
	UseChapters   bool   `yaml:"use_chapters"`
	MaxConcurrent int    `yaml:"max_concurrent"`
}

// Load reads a YAML config file and applies defaults via Validate.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Paths.Uploads == "" {
		return fmt.Errorf("paths.uploads is required")
	}
	if c.Paths.Media == "" {
		return fmt.Errorf("paths.media is required")
	}
	if c.Watch.Enabled && c.Watch.Input == "" {
		return fmt.Errorf("watch.input is required when watch.enabled is true")
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.TTS.LanguageCode == "" {
		c.TTS.LanguageCode = "pt-BR"
	}
	if c.TTS.VoiceGender == "" {
		c.TTS.VoiceGender = "unspecified"
	}
	if c.Segments.Delimiter == "" {
		c.Segments.Delimiter = "---"
	}
	if c.Themes.Language == "" {
		c.Themes.Language = "pt"
	}
	if c.Themes.RelevanceThreshold == 0 {
		c.Themes.RelevanceThreshold = 0.1
	}
	if c.FFmpeg.VideoCodec == "" {
		c.FFmpeg.VideoCodec = "libx264"
	}
	if c.FFmpeg.AudioCodec == "" {
		c.FFmpeg.AudioCodec = "aac"
	}
	if c.FFmpeg.FPS == 0 {
		c.FFmpeg.FPS = 24
	}
	if c.FFmpeg.FontSize == 0 {
		c.FFmpeg.FontSize = 24
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Watch.MaxConcurrent == 0 {
		c.Watch.MaxConcurrent = 2
	}

	return nil
}
