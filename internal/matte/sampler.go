package matte

import (
	"image"

	"github.com/cenkalti/dominantcolor"

	"github.com/webfly/logogen/internal/raster"
)

// DefaultEdgeSamples is the number of sample points taken per edge direction.
const DefaultEdgeSamples = 5

// SampleEdgeColor estimates the background color as the most frequent color
// among evenly spaced samples on the four image borders. Top and bottom edges
// are sampled per column step, left and right per row step; corners can be
// counted twice since each edge samples independently. Ties go to the first
// color that reaches the winning count, in sampling order.
func SampleEdgeColor(r *raster.Raster, samples int) Color {
	if samples < 1 {
		samples = DefaultEdgeSamples
	}

	counts := make(map[Color]int)
	var best Color
	bestN := 0
	vote := func(x, y int) {
		cr, cg, cb, _ := r.RGBA(x, y)
		c := Color{cr, cg, cb}
		counts[c]++
		if counts[c] > bestN {
			best, bestN = c, counts[c]
		}
	}

	xStep := max(1, r.W/samples)
	for x := 0; x < r.W; x += xStep {
		vote(x, 0)
		vote(x, r.H-1)
	}
	yStep := max(1, r.H/samples)
	for y := 0; y < r.H; y += yStep {
		vote(0, y)
		vote(r.W-1, y)
	}
	return best
}

// DominantBorderColor is an alternative detector that clusters every pixel in
// a thin border band and returns the dominant cluster color. It is slower but
// more robust against noisy or dithered backgrounds than point sampling.
func DominantBorderColor(r *raster.Raster) Color {
	band := max(1, min(r.W, r.H)/32)

	// The clusterer wants a 2D raster; pack the band pixels into a roughly
	// square image, their layout is irrelevant to the result.
	var pix []uint8
	appendPixel := func(x, y int) {
		cr, cg, cb, _ := r.RGBA(x, y)
		pix = append(pix, cr, cg, cb, 255)
	}
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			if x < band || x >= r.W-band || y < band || y >= r.H-band {
				appendPixel(x, y)
			}
		}
	}

	n := len(pix) / 4
	if n == 0 {
		return Color{}
	}
	side := 1
	for side*side < n {
		side++
	}
	packed := image.NewNRGBA(image.Rect(0, 0, side, side))
	for i := 0; i < side*side; i++ {
		copy(packed.Pix[i*4:i*4+4], pix[(i%n)*4:(i%n)*4+4])
	}

	c := dominantcolor.Find(packed)
	return Color{c.R, c.G, c.B}
}
