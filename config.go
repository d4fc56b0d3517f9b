package bramble

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// envPrefix namespaces every environment variable read by LoadLoopConfigEnv.
const envPrefix = "BRAMBLE_"

// LoopConfig holds the GameLoop tuning knobs. Start from DefaultLoopConfig:
// the zero value selects pass-through mode.
type LoopConfig struct {
	FPS          float64 `env:"FPS" envDefault:"60" yaml:"fps"`
	MaxFrameSkip int     `env:"MAX_FRAME_SKIP" envDefault:"5" yaml:"maxFrameSkip"`
	FPSLimited   bool    `env:"FPS_LIMITED" envDefault:"true" yaml:"fpsLimited"`
}

// DefaultLoopConfig returns 60 fixed steps per second with a catch-up cap of
// five steps.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		FPS:          defaultFPS,
		MaxFrameSkip: defaultMaxFrameSkip,
		FPSLimited:   true,
	}
}

// LoadLoopConfigEnv reads BRAMBLE_FPS, BRAMBLE_MAX_FRAME_SKIP and
// BRAMBLE_FPS_LIMITED, falling back to the defaults for unset variables.
func LoadLoopConfigEnv() (LoopConfig, error) {
	return parseLoopConfigEnv(env.Options{Prefix: envPrefix})
}

func parseLoopConfigEnv(opts env.Options) (LoopConfig, error) {
	var cfg LoopConfig
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return LoopConfig{}, fmt.Errorf("parse loop config env: %w", err)
	}
	return cfg, nil
}

// LoadLoopConfigYAML parses a YAML document on top of DefaultLoopConfig, so
// keys missing from the document keep their defaults.
func LoadLoopConfigYAML(data []byte) (LoopConfig, error) {
	cfg := DefaultLoopConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return LoopConfig{}, fmt.Errorf("parse loop config yaml: %w", err)
	}
	return cfg, nil
}
