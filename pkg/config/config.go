package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config represents the main configuration
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Engine   EngineConfig   `yaml:"engine"`
	Console  ConsoleConfig  `yaml:"console"`
	Audio    AudioConfig    `yaml:"audio"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig contains window and context configuration
type GraphicsConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

// EngineConfig contains frame loop and input configuration
type EngineConfig struct {
	// MaxFrameDelta caps the per-tick delta in seconds, so a backgrounded
	// window does not produce one huge simulation step on resume.
	MaxFrameDelta  float64 `yaml:"max_frame_delta"`
	InputQueueSize int     `yaml:"input_queue_size"`
}

// ConsoleConfig contains debug console overlay configuration
type ConsoleConfig struct {
	Capacity int  `yaml:"capacity"`
	Visible  bool `yaml:"visible"`
}

// AudioConfig contains interaction audio cue configuration
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// LoggingConfig contains logger configuration
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:  800,
			Height: 600,
			Title:  "glimmer",
			VSync:  true,
		},
		Engine: EngineConfig{
			MaxFrameDelta:  0.1,
			InputQueueSize: 256,
		},
		Console: ConsoleConfig{
			Capacity: 32,
			Visible:  false,
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  0.5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads the configuration from a file
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("config file not found, using defaults: %v", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return config, fmt.Errorf("error parsing config: %v", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %v", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %v", err)
	}

	return nil
}
