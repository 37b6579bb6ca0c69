package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/tilerun/constant"
)

// Settings is the runtime configuration; zero-valued fields in a file keep their defaults
type Settings struct {
	PixelsPerMeter float64       `yaml:"pixels_per_meter"`
	TileSize       float64       `yaml:"tile_size"`
	TimeSpeed      float64       `yaml:"time_speed"`
	Gravity        float64       `yaml:"gravity"`
	FrameInterval  time.Duration `yaml:"frame_interval"`

	// Level is a YAML level file, empty uses the built-in map
	Level string `yaml:"level"`

	Audio AudioConfig `yaml:"audio"`
	Input InputConfig `yaml:"input"`
	Log   LogConfig   `yaml:"log"`
}

type AudioConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Volume   float64 `yaml:"volume"`
	SoundDir string  `yaml:"sound_dir"`
}

type InputConfig struct {
	ReleaseAfter time.Duration `yaml:"release_after"`
}

type LogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	File    string `yaml:"file"`
}

// Default returns the built-in settings
func Default() *Settings {
	return &Settings{
		PixelsPerMeter: constant.PixelsPerMeter,
		TileSize:       constant.TileSize,
		TimeSpeed:      constant.TimeSpeed,
		Gravity:        constant.Gravity,
		FrameInterval:  constant.FrameUpdateInterval,
		Audio: AudioConfig{
			Enabled:  true,
			Volume:   constant.DefaultVolume,
			SoundDir: "sounds",
		},
		Input: InputConfig{
			ReleaseAfter: constant.KeyReleaseAfter,
		},
		Log: LogConfig{
			Level: "info",
			File:  "logs/tilerun.log",
		},
	}
}

// Load reads path over the defaults; a missing file yields the defaults
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	s, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return s, nil
}

// Decode parses YAML from r over the defaults and validates the result
func Decode(r io.Reader) (*Settings, error) {
	s := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate rejects values the simulation cannot run with
func (s *Settings) Validate() error {
	switch {
	case s.PixelsPerMeter <= 0:
		return fmt.Errorf("pixels_per_meter must be positive, got %v", s.PixelsPerMeter)
	case s.TileSize <= 0:
		return fmt.Errorf("tile_size must be positive, got %v", s.TileSize)
	case s.TimeSpeed < 0:
		return fmt.Errorf("time_speed must not be negative, got %v", s.TimeSpeed)
	case s.FrameInterval <= 0:
		return fmt.Errorf("frame_interval must be positive, got %v", s.FrameInterval)
	case s.Audio.Volume < 0 || s.Audio.Volume > 1:
		return fmt.Errorf("audio.volume must be within [0,1], got %v", s.Audio.Volume)
	case s.Input.ReleaseAfter < constant.MinKeyReleaseAfter:
		return fmt.Errorf("input.release_after must be at least %v, got %v", constant.MinKeyReleaseAfter, s.Input.ReleaseAfter)
	}
	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", s.Log.Level)
	}
	return nil
}
