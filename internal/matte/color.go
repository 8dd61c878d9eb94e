// Package matte implements background removal and alpha refinement: edge
// color detection, color-distance matting, hybrid composition of a learned
// segmentation mask with the color matte, and boundary smoothing.
package matte

// Color is an opaque RGB reference color used for distance comparisons.
type Color struct {
	R, G, B uint8
}

// Within reports whether (r,g,b) lies within Chebyshev distance tol of c,
// i.e. every channel differs by at most tol.
func (c Color) Within(r, g, b, tol uint8) bool {
	return absDiff(r, c.R) <= tol && absDiff(g, c.G) <= tol && absDiff(b, c.B) <= tol
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

// Thresholds split segmentation confidence into three verdicts: alpha below
// Background is background, above Foreground is foreground, anything between
// is the uncertain edge band. The defaults are empirical and shared by the
// hybrid compositor and the alpha smoother.
type Thresholds struct {
	Background uint8
	Foreground uint8
}

// DefaultThresholds matches the tuning the pipeline ships with.
var DefaultThresholds = Thresholds{Background: 10, Foreground: 245}
