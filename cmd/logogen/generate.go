package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/webfly/logogen/internal/manifest"
	"github.com/webfly/logogen/internal/pipeline"
	"github.com/webfly/logogen/internal/raster"
	"github.com/webfly/logogen/internal/segment"
	"github.com/webfly/logogen/internal/tone"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate neutral, light and dark logo variants from the source image",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringP("input", "i", "", "Input logo file (overrides pubspec config)")
	generateCmd.Flags().StringP("output-dir", "o", "", "Output directory (overrides pubspec config)")
	generateCmd.Flags().Int("target-size", manifest.DefaultTargetSize, "Target canvas size in pixels")
	generateCmd.Flags().Float64("padding", manifest.DefaultPadding, "Padding around the logo (pixels, or a ratio when < 1)")
	generateCmd.Flags().Float64("brightness-light", 0.9, "Brightness factor for the light theme variant")
	generateCmd.Flags().Float64("brightness-dark", 1.1, "Brightness factor for the dark theme variant")
	generateCmd.Flags().String("mode", "hybrid", "Background removal mode (hybrid, model, color, none)")
	generateCmd.Flags().String("bg-detect", "edge", "Background color detector (edge, dominant)")
	generateCmd.Flags().Int("tolerance", 30, "Color tolerance for background matching (0-255)")
	generateCmd.Flags().Bool("skip-trim", false, "Skip trimming transparent borders")
	generateCmd.Flags().Bool("skip-matting", false, "Skip alpha matting (edge smoothing)")
	generateCmd.Flags().String("segment-cmd", "", "External segmentation command, PNG on stdin/stdout (e.g. \"rembg i\")")
	generateCmd.Flags().Duration("segment-timeout", segment.DefaultTimeout, "Timeout for one segmentation call")
	generateCmd.Flags().Bool("auto-contrast", false, "Invert a variant that would vanish into its theme background")
	generateCmd.Flags().Bool("solid-background", false, "Composite variants over the theme background color")
	generateCmd.Flags().Bool("no-apply", false, "Only generate assets, skip running flutter tools")
	generateCmd.Flags().Bool("skip-icons", false, "Skip running flutter_launcher_icons")
	generateCmd.Flags().Bool("skip-splash", false, "Skip running flutter_native_splash")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)
	flags := cmd.Flags()

	pubspecPath, _ := flags.GetString("pubspec")
	m, err := manifest.Load(pubspecPath)
	if err != nil {
		return err
	}

	inputPath, _ := flags.GetString("input")
	if inputPath == "" {
		inputPath = m.Logo.Source
	}
	if inputPath == "" {
		inputPath = manifest.DefaultSource
	}
	outputDir, _ := flags.GetString("output-dir")
	if outputDir == "" {
		outputDir = m.Logo.OutputDir
	}
	if outputDir == "" {
		outputDir = manifest.DefaultOutputDir
	}

	opts := pipeline.DefaultOptions()
	opts.Logger = log

	targetSize, _ := flags.GetInt("target-size")
	if !flags.Changed("target-size") && m.Logo.TargetSize > 0 {
		targetSize = m.Logo.TargetSize
	}
	opts.TargetSize = targetSize

	padding, _ := flags.GetFloat64("padding")
	if !flags.Changed("padding") && m.Logo.Padding != nil {
		padding = *m.Logo.Padding
	}
	opts.Padding = manifest.PaddingRatio(padding, targetSize)

	tolerance, _ := flags.GetInt("tolerance")
	if !flags.Changed("tolerance") && m.Logo.Tolerance != nil {
		tolerance = *m.Logo.Tolerance
	}
	if tolerance < 0 || tolerance > 255 {
		return fmt.Errorf("tolerance %d outside [0,255]", tolerance)
	}
	opts.Tolerance = uint8(tolerance)

	opts.BrightnessLight, _ = flags.GetFloat64("brightness-light")
	if !flags.Changed("brightness-light") && m.Logo.BrightnessLight != nil {
		opts.BrightnessLight = *m.Logo.BrightnessLight
	}
	opts.BrightnessDark, _ = flags.GetFloat64("brightness-dark")
	if !flags.Changed("brightness-dark") && m.Logo.BrightnessDark != nil {
		opts.BrightnessDark = *m.Logo.BrightnessDark
	}

	modeStr, _ := flags.GetString("mode")
	if opts.Mode, err = pipeline.ParseMode(modeStr); err != nil {
		return err
	}
	detectStr, _ := flags.GetString("bg-detect")
	if opts.Detector, err = pipeline.ParseDetector(detectStr); err != nil {
		return err
	}

	opts.SkipTrim, _ = flags.GetBool("skip-trim")
	opts.SkipMatting, _ = flags.GetBool("skip-matting")
	opts.AutoContrast, _ = flags.GetBool("auto-contrast")
	opts.SolidBackground, _ = flags.GetBool("solid-background")

	if cmdline, _ := flags.GetString("segment-cmd"); cmdline != "" {
		timeout, _ := flags.GetDuration("segment-timeout")
		engine, err := segment.NewCommandEngine(strings.Fields(cmdline), timeout)
		if err != nil {
			log.Warn("segmentation engine unavailable", "err", err)
		} else {
			opts.Engine = engine
		}
	}

	log.Info("reading logo", "path", inputPath)
	src, err := raster.Decode(inputPath)
	if err != nil {
		return err
	}
	log.Info("generating variants",
		"size", opts.TargetSize, "padding", opts.Padding, "mode", opts.Mode)

	res, err := pipeline.Run(cmd.Context(), src, opts)
	if err != nil {
		return err
	}
	for _, st := range res.Stages {
		log.Debug("stage finished", "stage", st.Name, "skipped", st.Skipped, "err", st.Err)
	}

	pattern := m.Logo.OutputPattern
	if pattern == "" {
		pattern = manifest.DefaultLogoPattern
	}
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	outputs := []struct {
		theme tone.Theme
		img   *raster.Raster
	}{
		{tone.ThemeNeutral, res.Neutral},
		{tone.ThemeLight, res.Light},
		{tone.ThemeDark, res.Dark},
	}
	for _, out := range outputs {
		path := filepath.Join(outputDir, manifest.ExpandPattern(pattern, stem, string(out.theme)))
		if err := raster.WritePNG(path, out.img); err != nil {
			return err
		}
		log.Info("saved variant", "theme", out.theme, "path", path)
	}

	if noApply, _ := flags.GetBool("no-apply"); noApply {
		log.Info("skipping flutter tools (--no-apply)")
		return nil
	}
	skipIcons, _ := flags.GetBool("skip-icons")
	skipSplash, _ := flags.GetBool("skip-splash")
	return applyFlutterTools(log, skipIcons, skipSplash)
}
