package matte

import (
	"fmt"

	"github.com/webfly/logogen/internal/raster"
)

// Compose reconciles a segmentation mask with the color matte into a single
// alpha channel over the original RGB. Per pixel:
//
//   - mask alpha below th.Background: the model is sure this is background,
//     output alpha 0;
//   - mask alpha above th.Foreground: the model is sure this is foreground,
//     output alpha 255 — unless the pixel matches the detected background
//     color within tol, which overrides the model (guards against confident
//     false positives on flat background regions);
//   - anything between: the model is uncertain, its alpha passes through
//     unchanged.
//
// RGB is always taken from orig, never from the mask.
func Compose(orig, mask *raster.Raster, ref Color, tol uint8, th Thresholds) (*raster.Raster, error) {
	if orig.W != mask.W || orig.H != mask.H {
		return nil, fmt.Errorf("mask size %dx%d does not match source %dx%d",
			mask.W, mask.H, orig.W, orig.H)
	}

	out := orig.Clone()
	for i := 0; i < len(out.Pix); i += 4 {
		ma := mask.Pix[i+3]
		switch {
		case ma < th.Background:
			out.Pix[i+3] = 0
		case ma > th.Foreground:
			if ref.Within(out.Pix[i], out.Pix[i+1], out.Pix[i+2], tol) {
				out.Pix[i+3] = 0
			} else {
				out.Pix[i+3] = 255
			}
		default:
			out.Pix[i+3] = ma
		}
	}
	return out, nil
}
