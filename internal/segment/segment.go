// Package segment abstracts the learned foreground-segmentation model as an
// injected capability. The pipeline only ever sees the Engine interface; the
// real model runs out of process (see CommandEngine) and tests inject
// deterministic fakes.
package segment

import (
	"context"
	"image"

	"golang.org/x/image/draw"

	"github.com/webfly/logogen/internal/raster"
)

// Engine produces a foreground-confidence mask for a raster. The returned
// raster has the same dimensions as the input; its alpha channel holds the
// per-pixel foreground confidence (0 background, 255 foreground). RGB content
// of the result is unspecified — callers must take color from the source.
type Engine interface {
	Segment(ctx context.Context, r *raster.Raster) (*raster.Raster, error)
}

// Func adapts a plain function to the Engine interface.
type Func func(ctx context.Context, r *raster.Raster) (*raster.Raster, error)

func (f Func) Segment(ctx context.Context, r *raster.Raster) (*raster.Raster, error) {
	return f(ctx, r)
}

// Normalize rescales a model mask to the source dimensions. Models commonly
// infer at a fixed resolution, so the mask coming back may not match the
// input; resampling with Catmull-Rom keeps confidence gradients smooth.
func Normalize(mask *raster.Raster, w, h int) *raster.Raster {
	if mask.W == w && mask.H == h {
		return mask
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), mask.NRGBA(), mask.NRGBA().Bounds(), draw.Src, nil)
	return raster.FromNRGBA(dst)
}
