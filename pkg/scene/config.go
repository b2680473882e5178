package scene

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/engine3d/pkg/math3d"
	"github.com/taigrr/engine3d/pkg/models"
	"github.com/taigrr/engine3d/pkg/render"
)

// maxConfigSize bounds how much of a scene file is read.
const maxConfigSize = 1 << 20

// Config describes what to draw and how. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`

	Effect string `yaml:"effect"` // flat, gouraud, texture, color or wireframe

	// Mesh is "cube", "sphere" or the path of a .gltf or .glb file.
	Mesh            string `yaml:"mesh"`
	SphereDivisions int    `yaml:"sphere_divisions"`

	// Texture is a PNG, JPEG or BMP image. Empty means the mesh's own
	// texture, or a checkerboard.
	Texture string `yaml:"texture"`

	Light LightConfig `yaml:"light"`

	// Distance from the camera to the mesh center. It is raised if the
	// mesh would not fit in view.
	Distance float64 `yaml:"distance"`

	// Spin is the constant rotation in radians per second about each axis.
	Spin SpinConfig `yaml:"spin"`

	// Workers is the number of row bands rasterized concurrently. 0 and 1
	// draw on the calling goroutine.
	Workers int `yaml:"workers"`

	// Background is a color name, "#RRGGBB" or "R,G,B".
	Background string `yaml:"background"`
}

// LightConfig configures the directional light.
type LightConfig struct {
	Direction [3]float64 `yaml:"direction"`
	Ambient   float64    `yaml:"ambient"`
	Color     string     `yaml:"color"`
}

// SpinConfig holds per-axis angular velocities.
type SpinConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Vec returns the spin as a vector.
func (s SpinConfig) Vec() math3d.Vec3 {
	return math3d.V3(s.X, s.Y, s.Z)
}

// DefaultConfig returns the classic demo: a textured unit cube two units in
// front of the camera, tumbling at 0.002 rad per frame about Z, twice that
// about X and half of it about Y.
func DefaultConfig() Config {
	return Config{
		Width:           640,
		Height:          640,
		FPS:             60,
		Effect:          string(EffectTexture),
		Mesh:            "cube",
		SphereDivisions: models.DefaultSphereDivisions,
		Light: LightConfig{
			Direction: [3]float64{1, -1, 2},
			Ambient:   0.2,
			Color:     "white",
		},
		Distance:   2,
		Spin:       SpinConfig{X: 0.24, Y: 0.06, Z: 0.12},
		Workers:    1,
		Background: "black",
	}
}

// LoadConfig reads a YAML scene file. Keys missing from the file keep
// their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	info, err := os.Stat(path)
	if err != nil {
		return cfg, fmt.Errorf("stat config: %w", err)
	}
	if info.Size() > maxConfigSize {
		return cfg, fmt.Errorf("config %s is %d bytes, limit %d", path, info.Size(), maxConfigSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field and returns all problems found.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("size %dx%d must be positive", c.Width, c.Height))
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps %d must be positive", c.FPS))
	}
	if _, err := ParseEffect(c.Effect); err != nil {
		errs = append(errs, err)
	}
	if c.Mesh == "" {
		errs = append(errs, errors.New("mesh is empty"))
	}
	if c.SphereDivisions < 2 {
		errs = append(errs, fmt.Errorf("sphere_divisions %d must be at least 2", c.SphereDivisions))
	}
	if c.Light.Ambient < 0 || c.Light.Ambient > 1 {
		errs = append(errs, fmt.Errorf("light ambient %v outside [0, 1]", c.Light.Ambient))
	}
	if c.Light.Direction == [3]float64{} {
		errs = append(errs, errors.New("light direction is zero"))
	}
	if _, err := ParseColor(c.Light.Color); err != nil {
		errs = append(errs, fmt.Errorf("light color: %w", err))
	}
	if _, err := ParseColor(c.Background); err != nil {
		errs = append(errs, fmt.Errorf("background: %w", err))
	}
	if c.Distance <= 0 {
		errs = append(errs, fmt.Errorf("distance %v must be positive", c.Distance))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d must not be negative", c.Workers))
	}
	return errors.Join(errs...)
}

var namedColors = map[string]render.Color{
	"black":   render.ColorBlack,
	"white":   render.ColorWhite,
	"red":     render.ColorRed,
	"lime":    render.ColorLime,
	"blue":    render.ColorBlue,
	"yellow":  render.ColorYellow,
	"cyan":    render.ColorCyan,
	"magenta": render.ColorMagenta,
	"silver":  render.ColorSilver,
	"gray":    render.ColorGray,
	"maroon":  render.ColorMaroon,
	"olive":   render.ColorOlive,
	"green":   render.ColorGreen,
	"purple":  render.ColorPurple,
	"teal":    render.ColorTeal,
	"navy":    render.ColorNavy,
}

// ParseColor accepts a palette name, "#RRGGBB" or "R,G,B".
func ParseColor(s string) (render.Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}

	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if len(hex) != 6 {
			return 0, fmt.Errorf("color %q: want #RRGGBB", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("color %q: %w", s, err)
		}
		return render.Color(v), nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return 0, fmt.Errorf("unknown color %q", s)
	}
	var rgb [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return 0, fmt.Errorf("color %q: %w", s, err)
		}
		rgb[i] = uint8(v)
	}
	return render.RGB(rgb[0], rgb[1], rgb[2]), nil
}
