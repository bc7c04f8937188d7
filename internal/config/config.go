// Package config loads render settings from JSON and merges CLI flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/taigrr/x3dgl/pkg/render"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("config: invalid")

// Defaults applied by Resolve.
const (
	DefaultWidth       = 320
	DefaultHeight      = 240
	DefaultNear        = 0.01
	DefaultFar         = 1000
	DefaultSupersample = render.DefaultSupersampling
	DefaultOutput      = "out.png"
	DefaultLogLevel    = "warn"
	DefaultFPS         = 30
)

// Config holds the render and CLI settings.
type Config struct {
	// Image
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Near        float64   `json:"near"`
	Far         float64   `json:"far"`
	Supersample int       `json:"supersample"`
	Background  []float64 `json:"background"` // RGB in 0..1

	// Output
	Output   string `json:"output"`
	LogLevel string `json:"log_level"`
	FPS      int    `json:"fps"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width       int
	Height      int
	Supersample int
	Output      string
	LogLevel    string
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Near <= 0 {
		c.Near = DefaultNear
	}
	if c.Far <= 0 {
		c.Far = DefaultFar
	}
	if c.Supersample <= 0 {
		c.Supersample = DefaultSupersample
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.FPS <= 0 {
		c.FPS = DefaultFPS
	}
	if len(c.Background) < 3 {
		c.Background = []float64{0, 0, 0}
	}
}

// Validate reports settings that Resolve cannot repair.
func (c Config) Validate() error {
	if c.Far <= c.Near {
		return fmt.Errorf("%w: far %v must exceed near %v", ErrInvalid, c.Far, c.Near)
	}
	if c.Supersample > 8 {
		return fmt.Errorf("%w: supersample %d exceeds 8", ErrInvalid, c.Supersample)
	}
	switch strings.ToLower(filepath.Ext(c.Output)) {
	case ".png", ".webp":
	default:
		return fmt.Errorf("%w: output %q must end in .png or .webp", ErrInvalid, c.Output)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return l, nil
}

// BackgroundColor returns Background scaled to 0..255.
func (c Config) BackgroundColor() render.RGB {
	if len(c.Background) < 3 {
		return render.Black
	}
	return render.FromUnit(c.Background[0], c.Background[1], c.Background[2])
}
