// Package manifest reads the project's pubspec.yaml for the gen-logo and
// gen-branding configuration blocks. Flags override manifest values, which
// override the defaults here.
package manifest

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Defaults used when neither flags nor the manifest provide a value.
const (
	DefaultSource        = "assets/logo/webfly_logo.png"
	DefaultOutputDir     = "assets/gen"
	DefaultTargetSize    = 512
	DefaultPadding       = 20 // pixels
	DefaultLogoPattern   = "{name}_{theme}.png"
	DefaultBrandPattern  = "{text}_branding_{theme}.png"
	DefaultBrandText     = "WebFly"
	DefaultBrandWidth    = 400
	DefaultBrandHeight   = 120
	DefaultBrandFontSize = 48
)

// Manifest is the subset of pubspec.yaml this tool reads.
type Manifest struct {
	Name     string         `yaml:"name"`
	Logo     LogoConfig     `yaml:"gen-logo"`
	Branding BrandingConfig `yaml:"gen-branding"`
}

// LogoConfig is the gen-logo block.
type LogoConfig struct {
	Source          string   `yaml:"source"`
	OutputDir       string   `yaml:"output_dir"`
	TargetSize      int      `yaml:"target_size"`
	Padding         *float64 `yaml:"padding"` // pixels, or a ratio when < 1
	OutputPattern   string   `yaml:"output_pattern"`
	Tolerance       *int     `yaml:"tolerance"`
	BrightnessLight *float64 `yaml:"brightness_light"`
	BrightnessDark  *float64 `yaml:"brightness_dark"`
}

// BrandingConfig is the gen-branding block.
type BrandingConfig struct {
	Text          string `yaml:"text"`
	OutputDir     string `yaml:"output_dir"`
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	FontSize      int    `yaml:"font_size"`
	FontFamily    string `yaml:"font_family"`
	LightColor    string `yaml:"light_color"`
	DarkColor     string `yaml:"dark_color"`
	OutputPattern string `yaml:"output_pattern"`
}

// Load reads and parses a pubspec.yaml. A missing or malformed manifest is a
// fatal configuration error for the caller.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// PaddingRatio converts a padding value to a ratio of the target size.
// Values below 1 are already ratios; larger values are pixels.
func PaddingRatio(padding float64, targetSize int) float64 {
	if padding < 0 || targetSize < 1 {
		return 0
	}
	if padding < 1 {
		return padding
	}
	return padding / float64(targetSize)
}

// ExpandPattern substitutes {name}, {text} and {theme} placeholders in an
// output file pattern.
func ExpandPattern(pattern, name, theme string) string {
	return strings.NewReplacer(
		"{name}", name,
		"{text}", name,
		"{theme}", theme,
	).Replace(pattern)
}

// ParseHex parses a #RRGGBB or #RRGGBBAA color. The leading '#' is optional.
func ParseHex(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	alpha := uint8(255)
	switch len(hex) {
	case 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
		}
		alpha = uint8(a)
		hex = hex[:6]
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}
