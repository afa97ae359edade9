// Package config holds the settings shared by the bitflood commands
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/lixenwraith/bitflood/bitplane"
	"github.com/lixenwraith/bitflood/flood"
	"github.com/lixenwraith/bitflood/maze"
)

// Occupancy patterns
const (
	PatternEmpty   = "empty"
	PatternFull    = "full"
	PatternChecker = "checker"
	PatternWorst   = "worst"
	PatternNoise   = "noise"
	PatternFrame   = "frame"
	PatternMaze    = "maze"
	PatternFile    = "file"
)

var patterns = []string{
	PatternEmpty, PatternFull, PatternChecker, PatternWorst,
	PatternNoise, PatternFrame, PatternMaze, PatternFile,
}

// Speed bounds for incremental playback
const (
	MinIterations = 1
	MaxIterations = 1 << 16
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Dim       int     `toml:"dim"`
	Algorithm string  `toml:"algorithm"`
	Pattern   string  `toml:"pattern"`
	Density   float64 `toml:"density"`
	NoiseSeed int64   `toml:"noise_seed"`
	Braiding  float64 `toml:"braiding"`

	SeedX int `toml:"seed_x"`
	SeedY int `toml:"seed_y"`

	PlaneDir  string `toml:"plane_dir"`
	PlaneName string `toml:"plane_name"`

	StepMode           bool `toml:"step_mode"`
	IterationsPerFrame int  `toml:"iterations_per_frame"`
	FrameMS            int  `toml:"frame_ms"`

	Sound bool `toml:"sound"`
	Debug bool `toml:"debug"`
}

// Default returns the settings the viewer starts with
func Default() Config {
	return Config{
		Dim:                64,
		Algorithm:          flood.DFS.Key(),
		Pattern:            PatternWorst,
		Density:            0.6,
		NoiseSeed:          1,
		PlaneDir:           "planes",
		PlaneName:          "saved",
		IterationsPerFrame: 1,
		FrameMS:            16,
		Sound:              true,
	}
}

// Load reads path over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.Wrapf(ErrInvalid, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Save writes the config as TOML, creating parent directories
func (c Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "create config dir")
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create config")
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return errors.Wrapf(err, "encode config %s", path)
	}
	return nil
}

func (c Config) Validate() error {
	if !bitplane.ValidDim(c.Dim) {
		return errors.Wrapf(ErrInvalid, "dim %d", c.Dim)
	}
	a, err := flood.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	if !a.Supports(c.Dim) {
		return errors.Wrapf(ErrInvalid, "%s needs dim <= %d, got %d", a, bitplane.WordBits, c.Dim)
	}
	if !ValidPattern(c.Pattern) {
		return errors.Wrapf(ErrInvalid, "pattern %q", c.Pattern)
	}
	if c.Density < 0 || c.Density > 1 {
		return errors.Wrapf(ErrInvalid, "density %g outside [0,1]", c.Density)
	}
	if c.Braiding < 0 || c.Braiding > 1 {
		return errors.Wrapf(ErrInvalid, "braiding %g outside [0,1]", c.Braiding)
	}
	if c.IterationsPerFrame < MinIterations || c.IterationsPerFrame > MaxIterations {
		return errors.Wrapf(ErrInvalid, "iterations_per_frame %d", c.IterationsPerFrame)
	}
	if c.FrameMS <= 0 {
		return errors.Wrapf(ErrInvalid, "frame_ms %d", c.FrameMS)
	}
	if c.Pattern == PatternFile && c.PlaneName == "" {
		return errors.Wrap(ErrInvalid, "pattern file needs plane_name")
	}
	return nil
}

// Algo returns the parsed algorithm
func (c Config) Algo() (flood.Algorithm, error) {
	return flood.ParseAlgorithm(c.Algorithm)
}

func (c Config) FrameDuration() time.Duration {
	return time.Duration(c.FrameMS) * time.Millisecond
}

// Store opens the plane directory
func (c Config) Store() *bitplane.Store {
	return bitplane.NewStore(c.PlaneDir)
}

func ValidPattern(name string) bool {
	for _, p := range patterns {
		if p == name {
			return true
		}
	}
	return false
}

// Patterns lists the accepted pattern names
func Patterns() []string {
	return append([]string(nil), patterns...)
}

// BuildPlane creates the occupancy plane described by c
func BuildPlane(c Config) (*bitplane.Plane, error) {
	if c.Pattern == PatternMaze {
		res, err := maze.Generate(maze.Config{Dim: c.Dim, Braiding: c.Braiding, Seed: c.NoiseSeed})
		if err != nil {
			return nil, errors.Wrap(err, "generate maze")
		}
		return res.Plane, nil
	}
	if c.Pattern == PatternFile {
		p, err := c.Store().Load(c.PlaneName, c.Dim)
		if err != nil {
			return nil, errors.Wrapf(err, "load plane %s", c.PlaneName)
		}
		return p, nil
	}

	p, err := bitplane.New(c.Dim)
	if err != nil {
		return nil, err
	}
	switch c.Pattern {
	case PatternEmpty:
	case PatternFull:
		p.FillAll()
	case PatternChecker:
		bitplane.Checkerboard(p, 0)
	case PatternWorst:
		bitplane.WorstCase(p)
	case PatternNoise:
		bitplane.Noise(p, c.Density, c.NoiseSeed)
	case PatternFrame:
		bitplane.Frame(p)
	default:
		return nil, errors.Wrapf(ErrInvalid, "pattern %q", c.Pattern)
	}
	return p, nil
}
