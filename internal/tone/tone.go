// Package tone adjusts the finished logo for a theme: brightness scaling,
// color inversion, and optional solid-background compositing.
package tone

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/webfly/logogen/internal/raster"
)

// Theme selects one of the generated variants.
type Theme string

const (
	ThemeNeutral Theme = "neutral"
	ThemeLight   Theme = "light"
	ThemeDark    Theme = "dark"
)

// Background returns the solid canvas color used when a non-transparent
// deliverable is requested for the theme.
func (t Theme) Background() color.NRGBA {
	if t == ThemeDark {
		return color.NRGBA{18, 18, 18, 255}
	}
	return color.NRGBA{255, 255, 255, 255}
}

// Brightness scales the RGB channels of every visible pixel by factor,
// clamping to [0,255]. Alpha and fully transparent pixels are untouched.
// A factor of 1 is the identity.
func Brightness(r *raster.Raster, factor float64) *raster.Raster {
	out := r.Clone()
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i+3] == 0 {
			continue
		}
		out.Pix[i] = clamp(float64(out.Pix[i]) * factor)
		out.Pix[i+1] = clamp(float64(out.Pix[i+1]) * factor)
		out.Pix[i+2] = clamp(float64(out.Pix[i+2]) * factor)
	}
	return out
}

// Invert replaces every RGB channel with its complement, leaving alpha
// unchanged. Applying it twice restores the original.
func Invert(r *raster.Raster) *raster.Raster {
	out := r.Clone()
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i] = 255 - out.Pix[i]
		out.Pix[i+1] = 255 - out.Pix[i+1]
		out.Pix[i+2] = 255 - out.Pix[i+2]
	}
	return out
}

// AverageBrightness returns the mean Rec. 709 luminance of visible pixels,
// or 128 for a fully transparent raster.
func AverageBrightness(r *raster.Raster) float64 {
	var sum float64
	var n int
	for i := 0; i < len(r.Pix); i += 4 {
		if r.Pix[i+3] == 0 {
			continue
		}
		sum += 0.2126*float64(r.Pix[i]) + 0.7152*float64(r.Pix[i+1]) + 0.0722*float64(r.Pix[i+2])
		n++
	}
	if n == 0 {
		return 128
	}
	return sum / float64(n)
}

// CompositeBackground alpha-blends the raster over an opaque canvas of the
// theme's background color.
func CompositeBackground(r *raster.Raster, theme Theme) *raster.Raster {
	bg := imaging.New(r.W, r.H, theme.Background())
	flat := imaging.Overlay(bg, r.NRGBA(), image.Point{}, 1.0)
	return raster.FromNRGBA(flat)
}

func clamp(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
