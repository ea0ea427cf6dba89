// Package config loads viewer tuning from an optional YAML file.
// Every constant the projection, camera, and selection layers use is
// overridable here; missing values keep their defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full viewer configuration.
type Config struct {
	Map       MapConfig       `yaml:"map"`
	Camera    CameraConfig    `yaml:"camera"`
	Selection SelectionConfig `yaml:"selection"`
	PostGIS   PostGISConfig   `yaml:"postgis"`
	Log       LogConfig       `yaml:"log"`
}

type MapConfig struct {
	Padding float64 `yaml:"padding"`
	// Fallback viewport used when the host layout is not ready yet.
	FallbackWidth  float64 `yaml:"fallback_width"`
	FallbackHeight float64 `yaml:"fallback_height"`
}

type CameraConfig struct {
	MinZoom    float64 `yaml:"min_zoom"`
	MaxZoom    float64 `yaml:"max_zoom"`
	ZoomFactor float64 `yaml:"zoom_factor"`
	PanSpeed   float64 `yaml:"pan_speed"`
	Smoothing  bool    `yaml:"smoothing"`
}

type SelectionConfig struct {
	HighlightMs int     `yaml:"highlight_ms"`
	BlendRatio  float64 `yaml:"blend_ratio"`
}

type PostGISConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Map: MapConfig{
			Padding:        50,
			FallbackWidth:  1000,
			FallbackHeight: 600,
		},
		Camera: CameraConfig{
			MinZoom:    0.25,
			MaxZoom:    8.0,
			ZoomFactor: 1.2,
			PanSpeed:   1.0,
			Smoothing:  true,
		},
		Selection: SelectionConfig{
			HighlightMs: 150,
			BlendRatio:  0.5,
		},
		PostGIS: PostGISConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Database: "geodb",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load reads a YAML config file over the defaults. A missing file is not
// an error; a file that exists but does not parse is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// HighlightDuration returns the highlight lifetime as a duration.
func (c SelectionConfig) HighlightDuration() time.Duration {
	return time.Duration(c.HighlightMs) * time.Millisecond
}
