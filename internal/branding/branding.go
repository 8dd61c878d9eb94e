// Package branding renders text wordmark images for light and dark themes,
// matching the logo variants produced by the pipeline.
package branding

import (
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/webfly/logogen/internal/raster"
)

// Options describes one branding image.
type Options struct {
	Text       string
	Width      int
	Height     int
	FontSize   float64
	FontFamily string       // optional family name resolved against known paths
	TextColor  color.NRGBA
	Background *color.NRGBA // nil keeps the canvas transparent

	Logger *slog.Logger
}

// Render draws the text centered on the canvas and returns the raster.
func Render(opts Options) (*raster.Raster, error) {
	if opts.Width < 1 || opts.Height < 1 {
		return nil, fmt.Errorf("invalid branding canvas %dx%d", opts.Width, opts.Height)
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	if opts.Background != nil {
		dc.SetColor(*opts.Background)
		dc.Clear()
	}

	dc.SetFontFace(loadFace(opts.FontFamily, opts.FontSize, log))
	dc.SetColor(opts.TextColor)
	dc.DrawStringAnchored(opts.Text, float64(opts.Width)/2, float64(opts.Height)/2, 0.5, 0.5)

	return raster.FromImage(dc.Image()), nil
}

// loadFace tries the requested family and then a list of common system font
// files, falling back to the built-in bitmap face when none loads.
func loadFace(family string, size float64, log *slog.Logger) font.Face {
	var candidates []string
	if family != "" {
		candidates = append(candidates,
			family+".ttf",
			fmt.Sprintf("/usr/share/fonts/truetype/%s/%s.ttf", strings.ToLower(family), family),
		)
	}
	candidates = append(candidates,
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
		"/System/Library/Fonts/Supplemental/Arial.ttf",
	)

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		face, err := gg.LoadFontFace(path, size)
		if err != nil {
			continue
		}
		log.Debug("using font", "path", path)
		return face
	}
	log.Warn("no TrueType font found, using built-in bitmap face")
	return basicfont.Face7x13
}
