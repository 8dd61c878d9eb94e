// Package pipeline wires the processing stages into the full logo run:
// background removal, trim, alpha matting, canvas fit, and the two theme
// branches.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/webfly/logogen/internal/compose"
	"github.com/webfly/logogen/internal/matte"
	"github.com/webfly/logogen/internal/raster"
	"github.com/webfly/logogen/internal/segment"
	"github.com/webfly/logogen/internal/tone"
)

// Mode selects the background-removal strategy.
type Mode string

const (
	ModeHybrid Mode = "hybrid" // model mask reconciled with color matte
	ModeModel  Mode = "model"  // model mask only
	ModeColor  Mode = "color"  // color-distance matte only
	ModeNone   Mode = "none"   // keep the source alpha as-is
)

// ParseMode validates a mode string from flags or manifest.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeHybrid, ModeModel, ModeColor, ModeNone:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown background-removal mode %q", s)
}

// Detector selects how the background reference color is found.
type Detector string

const (
	DetectEdge     Detector = "edge"     // most frequent border sample
	DetectDominant Detector = "dominant" // dominant color of the border band
)

// ParseDetector validates a detector string from flags or manifest.
func ParseDetector(s string) (Detector, error) {
	switch Detector(s) {
	case DetectEdge, DetectDominant:
		return Detector(s), nil
	}
	return "", fmt.Errorf("unknown background detector %q", s)
}

// Options controls a full pipeline run.
type Options struct {
	Mode       Mode
	Engine     segment.Engine // nil when no model is configured
	Detector   Detector
	Tolerance  uint8            // Chebyshev radius for color matching
	Thresholds matte.Thresholds // hybrid verdict / matting band thresholds

	SkipTrim      bool
	SkipMatting   bool
	TrimThreshold uint8

	TargetSize int
	Padding    float64 // ratio of target size reserved per side

	BrightnessLight float64
	BrightnessDark  float64
	AutoContrast    bool // invert a variant that would vanish into its background
	SolidBackground bool // composite variants over the theme color

	Logger *slog.Logger
}

// Auto-contrast bounds: a variant whose average brightness falls outside
// these is inverted for its theme instead of merely scaled.
const (
	lightInvertAbove = 200
	darkInvertBelow  = 55
)

// DefaultOptions returns the shipping defaults.
func DefaultOptions() Options {
	return Options{
		Mode:            ModeHybrid,
		Detector:        DetectEdge,
		Tolerance:       30,
		Thresholds:      matte.DefaultThresholds,
		TrimThreshold:   compose.DefaultTrimThreshold,
		TargetSize:      512,
		Padding:         0.15,
		BrightnessLight: 0.9,
		BrightnessDark:  1.1,
	}
}

// StageReport records the outcome of one stage so callers and tests can
// assert on what actually ran without parsing logs.
type StageReport struct {
	Name    string
	Skipped bool
	Err     error // non-nil when the stage degraded
}

// Result holds the three theme variants and the per-stage reports.
type Result struct {
	Neutral *raster.Raster
	Light   *raster.Raster
	Dark    *raster.Raster
	Stages  []StageReport
}

// Run executes the pipeline on a decoded source raster. Background removal,
// trimming, and matting degrade to warnings on failure; canvas composition is
// fatal since nothing downstream can recover from it.
func Run(ctx context.Context, src *raster.Raster, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	res := &Result{}
	report := func(name string, skipped bool, err error) {
		res.Stages = append(res.Stages, StageReport{Name: name, Skipped: skipped, Err: err})
	}

	// 1. Background removal (degradable).
	img, skipped, err := removeBackground(ctx, src, opts, log)
	report("remove-background", skipped, err)
	if err != nil {
		log.Warn("background removal failed, continuing with original image", "err", err)
		img = src.Clone()
	}

	// 2. Trim empty borders (degradable).
	if opts.SkipTrim {
		report("trim", true, nil)
	} else {
		img = compose.Trim(img, opts.TrimThreshold)
		report("trim", false, nil)
		log.Debug("trimmed to content bounds", "w", img.W, "h", img.H)
	}

	// 3. Alpha matting (degradable).
	if opts.SkipMatting {
		report("alpha-matting", true, nil)
	} else {
		img = matte.SmoothAlpha(img, opts.Thresholds)
		report("alpha-matting", false, nil)
	}

	// 4. Canvas fit (fatal).
	img, err = compose.Fit(img, opts.TargetSize, opts.Padding)
	if err != nil {
		report("canvas-fit", false, err)
		return nil, fmt.Errorf("canvas fit: %w", err)
	}
	report("canvas-fit", false, nil)
	res.Neutral = img

	// 5. Theme branches operate on independent copies and share no state,
	// so they run concurrently.
	avg := tone.AverageBrightness(img)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		res.Light = themeVariant(img, tone.ThemeLight, opts.BrightnessLight, avg, opts)
	}()
	go func() {
		defer wg.Done()
		res.Dark = themeVariant(img, tone.ThemeDark, opts.BrightnessDark, avg, opts)
	}()
	wg.Wait()
	report("theme-variants", false, nil)

	return res, nil
}

// removeBackground applies the configured strategy. A non-nil error marks a
// degradable failure; skipped reports that the stage did not run at all.
func removeBackground(ctx context.Context, src *raster.Raster, opts Options, log *slog.Logger) (*raster.Raster, bool, error) {
	mode := opts.Mode

	if mode == ModeNone {
		return src.Clone(), true, nil
	}
	if opts.Engine == nil {
		switch mode {
		case ModeHybrid:
			log.Warn("no segmentation engine configured, falling back to color-only removal")
			mode = ModeColor
		case ModeModel:
			log.Warn("no segmentation engine configured, skipping background removal")
			return src.Clone(), true, nil
		}
	}

	switch mode {
	case ModeColor:
		ref := detectBackground(src, opts)
		log.Info("removing background by color distance",
			"r", ref.R, "g", ref.G, "b", ref.B, "tolerance", opts.Tolerance)
		return matte.RemoveByColor(src, ref, opts.Tolerance), false, nil

	case ModeModel:
		log.Info("removing background with segmentation model")
		mask, err := opts.Engine.Segment(ctx, src)
		if err != nil {
			return nil, false, fmt.Errorf("segmentation: %w", err)
		}
		mask = segment.Normalize(mask, src.W, src.H)
		out := src.Clone()
		for i := 3; i < len(out.Pix); i += 4 {
			out.Pix[i] = mask.Pix[i]
		}
		return out, false, nil

	default: // ModeHybrid
		log.Info("removing background with hybrid model + color matte")
		mask, err := opts.Engine.Segment(ctx, src)
		if err != nil {
			return nil, false, fmt.Errorf("segmentation: %w", err)
		}
		mask = segment.Normalize(mask, src.W, src.H)
		ref := detectBackground(src, opts)
		log.Debug("detected background color", "r", ref.R, "g", ref.G, "b", ref.B)
		out, err := matte.Compose(src, mask, ref, opts.Tolerance, opts.Thresholds)
		if err != nil {
			return nil, false, fmt.Errorf("hybrid compose: %w", err)
		}
		return out, false, nil
	}
}

func detectBackground(src *raster.Raster, opts Options) matte.Color {
	if opts.Detector == DetectDominant {
		return matte.DominantBorderColor(src)
	}
	return matte.SampleEdgeColor(src, matte.DefaultEdgeSamples)
}

// themeVariant derives one theme branch from the composed neutral raster.
func themeVariant(neutral *raster.Raster, theme tone.Theme, factor, avg float64, opts Options) *raster.Raster {
	out := neutral.Clone()
	if opts.AutoContrast && wouldVanish(theme, avg) {
		out = tone.Invert(out)
	} else if factor != 1.0 {
		out = tone.Brightness(out, factor)
	}
	if opts.SolidBackground {
		out = tone.CompositeBackground(out, theme)
	}
	return out
}

func wouldVanish(theme tone.Theme, avg float64) bool {
	switch theme {
	case tone.ThemeLight:
		return avg > lightInvertAbove
	case tone.ThemeDark:
		return avg < darkInvertBelow
	}
	return false
}
