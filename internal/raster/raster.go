package raster

import (
	"fmt"
	"image"
	"image/draw"
)

// Raster is the pixel buffer passed between pipeline stages. Pixels are
// stored as interleaved non-premultiplied R,G,B,A bytes (4 bytes per pixel,
// row-major order).
type Raster struct {
	W, H int
	Pix  []uint8 // len = W * H * 4
}

// New returns a fully transparent W×H raster.
func New(w, h int) *Raster {
	return &Raster{W: w, H: h, Pix: make([]uint8, w*h*4)}
}

// FromImage normalizes any decoded image into an RGBA raster.
func FromImage(img image.Image) *Raster {
	b := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	return &Raster{W: b.Dx(), H: b.Dy(), Pix: nrgba.Pix}
}

// FromNRGBA wraps an *image.NRGBA, copying only when the layout is not the
// tight zero-origin layout Raster assumes.
func FromNRGBA(img *image.NRGBA) *Raster {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if b.Min == (image.Point{}) && img.Stride == w*4 && len(img.Pix) == w*h*4 {
		return &Raster{W: w, H: h, Pix: img.Pix}
	}
	return FromImage(img)
}

// NRGBA returns an *image.NRGBA view sharing the raster's pixel storage.
// Mutations through the view are visible in the raster and vice versa.
func (r *Raster) NRGBA() *image.NRGBA {
	return &image.NRGBA{Pix: r.Pix, Stride: r.W * 4, Rect: image.Rect(0, 0, r.W, r.H)}
}

// Clone returns an independent copy. Stages operate copy-on-transform, so a
// stage clones its input rather than aliasing the caller's buffer.
func (r *Raster) Clone() *Raster {
	pix := make([]uint8, len(r.Pix))
	copy(pix, r.Pix)
	return &Raster{W: r.W, H: r.H, Pix: pix}
}

// Offset returns the index of pixel (x,y) in Pix.
func (r *Raster) Offset(x, y int) int { return (y*r.W + x) * 4 }

// RGBA returns the channel values of pixel (x,y).
func (r *Raster) RGBA(x, y int) (uint8, uint8, uint8, uint8) {
	i := r.Offset(x, y)
	return r.Pix[i], r.Pix[i+1], r.Pix[i+2], r.Pix[i+3]
}

// SetRGBA stores the channel values of pixel (x,y).
func (r *Raster) SetRGBA(x, y int, cr, cg, cb, ca uint8) {
	i := r.Offset(x, y)
	r.Pix[i], r.Pix[i+1], r.Pix[i+2], r.Pix[i+3] = cr, cg, cb, ca
}

// Alpha extracts the alpha plane as a single-channel byte slice of length W*H.
func (r *Raster) Alpha() []uint8 {
	a := make([]uint8, r.W*r.H)
	for i := range a {
		a[i] = r.Pix[i*4+3]
	}
	return a
}

func (r *Raster) String() string {
	return fmt.Sprintf("raster %dx%d", r.W, r.H)
}
