package pipeline

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/webfly/logogen/internal/raster"
	"github.com/webfly/logogen/internal/segment"
)

// logoOnWhite builds a 200x100 solid-white image with a centered 50x50 black
// square, standing in for a logo scanned against a flat background.
func logoOnWhite() *raster.Raster {
	r := raster.New(200, 100)
	for i := 0; i < len(r.Pix); i += 4 {
		r.Pix[i], r.Pix[i+1], r.Pix[i+2], r.Pix[i+3] = 255, 255, 255, 255
	}
	for y := 25; y < 75; y++ {
		for x := 75; x < 125; x++ {
			r.SetRGBA(x, y, 0, 0, 0, 255)
		}
	}
	return r
}

func stage(t *testing.T, res *Result, name string) StageReport {
	t.Helper()
	for _, st := range res.Stages {
		if st.Name == name {
			return st
		}
	}
	t.Fatalf("stage %q not reported", name)
	return StageReport{}
}

func TestRunColorOnlyEndToEnd(t *testing.T) {
	opts := DefaultOptions()
	opts.Mode = ModeColor
	opts.TargetSize = 100
	opts.Padding = 0.1
	opts.BrightnessLight = 1.0
	opts.BrightnessDark = 1.0

	res, err := Run(context.Background(), logoOnWhite(), opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, img := range []*raster.Raster{res.Neutral, res.Light, res.Dark} {
		if img.W != 100 || img.H != 100 {
			t.Fatalf("output is %dx%d, want 100x100", img.W, img.H)
		}
	}

	// The white background was removed, the square trimmed and scaled to
	// an 80x80 centered block (boundary accurate to a pixel).
	neutral := res.Neutral
	if cr, cg, cb, a := neutral.RGBA(50, 50); a != 255 || cr != 0 || cg != 0 || cb != 0 {
		t.Errorf("center pixel = %d,%d,%d,%d, want opaque black", cr, cg, cb, a)
	}
	if _, _, _, a := neutral.RGBA(5, 5); a != 0 {
		t.Errorf("corner alpha = %d, want 0", a)
	}
	if _, _, _, a := neutral.RGBA(50, 13); a != 255 {
		t.Errorf("inside content edge alpha = %d, want 255", a)
	}
	if _, _, _, a := neutral.RGBA(50, 7); a != 0 {
		t.Errorf("outside content edge alpha = %d, want 0", a)
	}

	// With unit brightness both variants equal the neutral output.
	if !bytes.Equal(res.Light.Pix, neutral.Pix) {
		t.Error("light variant differs from neutral at factor 1.0")
	}
	if !bytes.Equal(res.Dark.Pix, neutral.Pix) {
		t.Error("dark variant differs from neutral at factor 1.0")
	}
}

func TestRunBrightnessBranches(t *testing.T) {
	opts := DefaultOptions()
	// Uniform image: the edge color would match everything, so background
	// removal stays off for this fixture.
	opts.Mode = ModeNone
	opts.TargetSize = 64
	opts.Padding = 0
	opts.BrightnessLight = 0.5
	opts.BrightnessDark = 2.0

	src := raster.New(10, 10)
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 200, 100, 50, 255
	}

	res, err := Run(context.Background(), src, opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if cr, cg, cb, _ := res.Light.RGBA(32, 32); cr != 100 || cg != 50 || cb != 25 {
		t.Errorf("light variant = %d,%d,%d, want 100,50,25", cr, cg, cb)
	}
	if cr, cg, cb, _ := res.Dark.RGBA(32, 32); cr != 255 || cg != 200 || cb != 100 {
		t.Errorf("dark variant = %d,%d,%d, want 255,200,100", cr, cg, cb)
	}
	if cr, _, _, _ := res.Neutral.RGBA(32, 32); cr != 200 {
		t.Errorf("neutral mutated by theme branches: R=%d", cr)
	}
}

func TestRunSegmentationFailureDegrades(t *testing.T) {
	opts := DefaultOptions()
	opts.Mode = ModeHybrid
	opts.TargetSize = 32
	opts.Engine = segment.Func(func(ctx context.Context, r *raster.Raster) (*raster.Raster, error) {
		return nil, errors.New("model exploded")
	})

	res, err := Run(context.Background(), logoOnWhite(), opts)
	if err != nil {
		t.Fatalf("Run should degrade, got fatal error: %v", err)
	}
	st := stage(t, res, "remove-background")
	if st.Err == nil {
		t.Error("degraded stage should carry its error")
	}
	// Pipeline continued with the unmodified image: the white background
	// survives into the composed content region (the 200x100 source lands
	// as a 24x12 block at offset (4,10) on the 32px canvas).
	if cr, _, _, a := res.Neutral.RGBA(5, 16); a != 255 || cr != 255 {
		t.Errorf("content pixel = R%d A%d, want opaque white background preserved", cr, a)
	}
}

func TestRunHybridWithMask(t *testing.T) {
	opts := DefaultOptions()
	opts.TargetSize = 100
	opts.Padding = 0.1
	opts.BrightnessLight = 1.0
	opts.BrightnessDark = 1.0
	opts.Engine = segment.Func(func(ctx context.Context, r *raster.Raster) (*raster.Raster, error) {
		// Confident everywhere: foreground on the square, background out.
		mask := raster.New(r.W, r.H)
		for y := 0; y < r.H; y++ {
			for x := 0; x < r.W; x++ {
				a := uint8(0)
				if x >= 75 && x < 125 && y >= 25 && y < 75 {
					a = 255
				}
				mask.SetRGBA(x, y, 0, 0, 0, a)
			}
		}
		return mask, nil
	})

	res, err := Run(context.Background(), logoOnWhite(), opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st := stage(t, res, "remove-background"); st.Err != nil || st.Skipped {
		t.Fatalf("hybrid stage: %+v", st)
	}
	if _, _, _, a := res.Neutral.RGBA(50, 50); a != 255 {
		t.Errorf("center alpha = %d, want 255", a)
	}
	if _, _, _, a := res.Neutral.RGBA(5, 5); a != 0 {
		t.Errorf("corner alpha = %d, want 0", a)
	}
}

func TestRunHybridWithoutEngineFallsBackToColor(t *testing.T) {
	opts := DefaultOptions()
	opts.TargetSize = 50
	res, err := Run(context.Background(), logoOnWhite(), opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st := stage(t, res, "remove-background"); st.Skipped || st.Err != nil {
		t.Fatalf("fallback stage: %+v", st)
	}
	if _, _, _, a := res.Neutral.RGBA(1, 1); a != 0 {
		t.Errorf("background not removed by color fallback: alpha %d", a)
	}
}

func TestRunModeNoneSkips(t *testing.T) {
	opts := DefaultOptions()
	opts.Mode = ModeNone
	opts.TargetSize = 32
	res, err := Run(context.Background(), logoOnWhite(), opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st := stage(t, res, "remove-background"); !st.Skipped {
		t.Error("mode none should report the stage skipped")
	}
}

func TestRunSkipFlags(t *testing.T) {
	opts := DefaultOptions()
	opts.Mode = ModeColor
	opts.TargetSize = 32
	opts.SkipTrim = true
	opts.SkipMatting = true
	res, err := Run(context.Background(), logoOnWhite(), opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st := stage(t, res, "trim"); !st.Skipped {
		t.Error("trim not skipped")
	}
	if st := stage(t, res, "alpha-matting"); !st.Skipped {
		t.Error("alpha matting not skipped")
	}
}

func TestRunAutoContrastInvertsDarkVariant(t *testing.T) {
	// Near-black logo on white: the dark variant would vanish on a dark
	// background, so auto-contrast inverts it.
	opts := DefaultOptions()
	opts.Mode = ModeColor
	opts.TargetSize = 40
	opts.AutoContrast = true
	opts.BrightnessLight = 1.0
	opts.BrightnessDark = 1.1

	res, err := Run(context.Background(), logoOnWhite(), opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	cr, _, _, a := res.Dark.RGBA(20, 20)
	if a != 255 {
		t.Fatalf("center alpha = %d", a)
	}
	if cr != 255 {
		t.Errorf("dark variant center R = %d, want inverted 255", cr)
	}
	// Light variant is left alone (average brightness is low, not high).
	if cr, _, _, _ := res.Light.RGBA(20, 20); cr != 0 {
		t.Errorf("light variant center R = %d, want 0", cr)
	}
}

func TestRunSolidBackground(t *testing.T) {
	opts := DefaultOptions()
	opts.Mode = ModeColor
	opts.TargetSize = 40
	opts.SolidBackground = true
	res, err := Run(context.Background(), logoOnWhite(), opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if cr, _, _, a := res.Light.RGBA(1, 1); a != 255 || cr != 255 {
		t.Errorf("light corner = R%d A%d, want opaque white", cr, a)
	}
	if cr, _, _, a := res.Dark.RGBA(1, 1); a != 255 || cr != 18 {
		t.Errorf("dark corner = R%d A%d, want opaque near-black", cr, a)
	}
	// The neutral deliverable keeps its transparency.
	if _, _, _, a := res.Neutral.RGBA(1, 1); a != 0 {
		t.Errorf("neutral corner alpha = %d, want 0", a)
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"hybrid", "model", "color", "none"} {
		if _, err := ParseMode(s); err != nil {
			t.Errorf("ParseMode(%q): %v", s, err)
		}
	}
	if _, err := ParseMode("ai"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if _, err := ParseDetector("edge"); err != nil {
		t.Error("edge detector should parse")
	}
	if _, err := ParseDetector("magic"); err == nil {
		t.Error("expected error for unknown detector")
	}
}
