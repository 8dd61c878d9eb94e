package branding

import (
	"image/color"
	"testing"
)

func TestRenderTransparentCanvas(t *testing.T) {
	img, err := Render(Options{
		Text:      "WebFly",
		Width:     200,
		Height:    60,
		FontSize:  24,
		TextColor: color.NRGBA{50, 50, 50, 255},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if img.W != 200 || img.H != 60 {
		t.Fatalf("canvas is %dx%d", img.W, img.H)
	}
	if _, _, _, a := img.RGBA(0, 0); a != 0 {
		t.Errorf("corner alpha = %d, want transparent canvas", a)
	}

	// Some text pixels must have landed near the center line.
	found := false
	for y := 0; y < img.H && !found; y++ {
		for x := 0; x < img.W; x++ {
			if _, _, _, a := img.RGBA(x, y); a > 0 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("no visible text pixels rendered")
	}
}

func TestRenderSolidBackground(t *testing.T) {
	bg := color.NRGBA{18, 18, 18, 255}
	img, err := Render(Options{
		Text:       "WebFly",
		Width:      100,
		Height:     40,
		FontSize:   16,
		TextColor:  color.NRGBA{220, 220, 220, 255},
		Background: &bg,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if cr, cg, cb, a := img.RGBA(0, 0); cr != 18 || cg != 18 || cb != 18 || a != 255 {
		t.Errorf("corner = %d,%d,%d,%d, want solid background", cr, cg, cb, a)
	}
}

func TestRenderRejectsDegenerateCanvas(t *testing.T) {
	if _, err := Render(Options{Text: "x", Width: 0, Height: 10}); err == nil {
		t.Error("expected error for zero width")
	}
}
