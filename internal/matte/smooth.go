package matte

import (
	"image"

	"github.com/anthonynsimon/bild/blur"

	"github.com/webfly/logogen/internal/raster"
)

// SmoothAlpha smooths matte boundaries. The alpha plane is blurred
// (Gaussian, radius 1) and then opened with a 3×3 erosion followed by a 3×3
// dilation; the smoothed value replaces the original only where the original
// alpha lies strictly inside the uncertain band (th.Background, th.Foreground).
// Fully opaque interiors and fully transparent exteriors are left untouched,
// so the smoothing never bleeds beyond the existing edge region.
func SmoothAlpha(r *raster.Raster, th Thresholds) *raster.Raster {
	alpha := r.Alpha()

	gray := &image.Gray{Pix: alpha, Stride: r.W, Rect: image.Rect(0, 0, r.W, r.H)}
	blurred := blur.Gaussian(gray, 1)

	smoothed := make([]uint8, r.W*r.H)
	for i := range smoothed {
		smoothed[i] = blurred.Pix[i*4]
	}
	smoothed = minFilter3(smoothed, r.W, r.H)
	smoothed = maxFilter3(smoothed, r.W, r.H)

	out := r.Clone()
	for i := 0; i < r.W*r.H; i++ {
		a := out.Pix[i*4+3]
		if a > th.Background && a < th.Foreground {
			out.Pix[i*4+3] = smoothed[i]
		}
	}
	return out
}

// minFilter3 erodes the plane with a 3×3 window, clamped at the borders.
func minFilter3(src []uint8, w, h int) []uint8 {
	return window3(src, w, h, func(acc, v uint8) uint8 { return min(acc, v) })
}

// maxFilter3 dilates the plane with a 3×3 window, clamped at the borders.
func maxFilter3(src []uint8, w, h int) []uint8 {
	return window3(src, w, h, func(acc, v uint8) uint8 { return max(acc, v) })
}

func window3(src []uint8, w, h int, fold func(uint8, uint8) uint8) []uint8 {
	dst := make([]uint8, len(src))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			acc := src[y*w+x]
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					acc = fold(acc, src[ny*w+nx])
				}
			}
			dst[y*w+x] = acc
		}
	}
	return dst
}
