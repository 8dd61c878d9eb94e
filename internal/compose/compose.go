// Package compose handles the geometric stages: trimming empty borders and
// fitting the content onto a padded square canvas.
package compose

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/webfly/logogen/internal/raster"
)

// DefaultTrimThreshold is the alpha level below which a pixel counts as
// empty when computing the content bounding box.
const DefaultTrimThreshold = 10

// Trim crops the raster to the bounding box of pixels whose alpha exceeds
// threshold. A raster with no such pixel is returned unchanged; trimming is
// idempotent.
func Trim(r *raster.Raster, threshold uint8) *raster.Raster {
	minX, minY := r.W, r.H
	maxX, maxY := -1, -1
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			if r.Pix[r.Offset(x, y)+3] > threshold {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	if maxX < 0 {
		return r.Clone()
	}
	cropped := imaging.Crop(r.NRGBA(), image.Rect(minX, minY, maxX+1, maxY+1))
	return raster.FromNRGBA(cropped)
}

// Fit scales the content uniformly so its longer side fits the inner budget
// size−2·⌊size·padding⌋, resamples with Lanczos, and centers it on a fully
// transparent size×size canvas. Aspect ratio is preserved exactly and nothing
// is cropped.
func Fit(r *raster.Raster, size int, padding float64) (*raster.Raster, error) {
	if size < 1 {
		return nil, fmt.Errorf("invalid target size %d", size)
	}
	if padding < 0 || padding >= 0.5 {
		return nil, fmt.Errorf("padding ratio %v outside [0, 0.5)", padding)
	}
	if r.W < 1 || r.H < 1 {
		return nil, fmt.Errorf("degenerate content %dx%d", r.W, r.H)
	}

	inner := size - 2*int(float64(size)*padding)
	if inner < 1 {
		inner = 1
	}

	scale := min(float64(inner)/float64(r.W), float64(inner)/float64(r.H))
	w := max(1, int(float64(r.W)*scale))
	h := max(1, int(float64(r.H)*scale))

	resized := imaging.Resize(r.NRGBA(), w, h, imaging.Lanczos)
	canvas := imaging.New(size, size, color.NRGBA{})
	canvas = imaging.PasteCenter(canvas, resized)
	return raster.FromNRGBA(canvas), nil
}
