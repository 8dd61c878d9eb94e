package matte

import "github.com/webfly/logogen/internal/raster"

// RemoveByColor returns a copy of r in which every pixel within Chebyshev
// distance tol of the reference color has its alpha forced to 0. All other
// pixels keep their channels, including any pre-existing partial
// transparency.
func RemoveByColor(r *raster.Raster, ref Color, tol uint8) *raster.Raster {
	out := r.Clone()
	for i := 0; i < len(out.Pix); i += 4 {
		if ref.Within(out.Pix[i], out.Pix[i+1], out.Pix[i+2], tol) {
			out.Pix[i+3] = 0
		}
	}
	return out
}
