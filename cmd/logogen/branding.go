package main

import (
	"image/color"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/webfly/logogen/internal/branding"
	"github.com/webfly/logogen/internal/manifest"
	"github.com/webfly/logogen/internal/raster"
	"github.com/webfly/logogen/internal/tone"
)

var brandingCmd = &cobra.Command{
	Use:   "branding",
	Short: "Generate text branding images for light and dark themes",
	RunE:  runBranding,
}

func init() {
	brandingCmd.Flags().StringP("text", "t", "", "Text to render (overrides pubspec config)")
	brandingCmd.Flags().StringP("output-dir", "o", "", "Output directory (overrides pubspec config)")
	brandingCmd.Flags().Int("width", 0, "Image width in pixels")
	brandingCmd.Flags().Int("height", 0, "Image height in pixels")
	brandingCmd.Flags().Int("font-size", 0, "Font size in pixels")
	brandingCmd.Flags().String("font-family", "", "Font family name")
	brandingCmd.Flags().String("light-color", "", "Text color for the light theme as hex (e.g. #323232)")
	brandingCmd.Flags().String("dark-color", "", "Text color for the dark theme as hex (e.g. #DCDCDC)")
	brandingCmd.Flags().Bool("background", false, "Fill a solid theme background instead of transparent")
	rootCmd.AddCommand(brandingCmd)
}

func runBranding(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)
	flags := cmd.Flags()

	pubspecPath, _ := flags.GetString("pubspec")
	m, err := manifest.Load(pubspecPath)
	if err != nil {
		return err
	}
	cfg := m.Branding

	text, _ := flags.GetString("text")
	if text == "" {
		text = cfg.Text
	}
	if text == "" {
		text = manifest.DefaultBrandText
	}
	outputDir, _ := flags.GetString("output-dir")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	if outputDir == "" {
		outputDir = manifest.DefaultOutputDir
	}

	width := pickInt(flags, "width", cfg.Width, manifest.DefaultBrandWidth)
	height := pickInt(flags, "height", cfg.Height, manifest.DefaultBrandHeight)
	fontSize := pickInt(flags, "font-size", cfg.FontSize, manifest.DefaultBrandFontSize)

	fontFamily, _ := flags.GetString("font-family")
	if fontFamily == "" {
		fontFamily = cfg.FontFamily
	}

	lightFlag, _ := flags.GetString("light-color")
	lightColor, err := resolveColor(lightFlag, cfg.LightColor, color.NRGBA{50, 50, 50, 255})
	if err != nil {
		return err
	}
	darkFlag, _ := flags.GetString("dark-color")
	darkColor, err := resolveColor(darkFlag, cfg.DarkColor, color.NRGBA{220, 220, 220, 255})
	if err != nil {
		return err
	}

	withBackground, _ := flags.GetBool("background")
	pattern := cfg.OutputPattern
	if pattern == "" {
		pattern = manifest.DefaultBrandPattern
	}
	stem := strings.ReplaceAll(strings.ToLower(text), " ", "_")

	log.Info("generating branding images", "text", text, "w", width, "h", height)

	themes := []struct {
		theme tone.Theme
		color color.NRGBA
	}{
		{tone.ThemeLight, lightColor},
		{tone.ThemeDark, darkColor},
	}
	for _, t := range themes {
		opts := branding.Options{
			Text:       text,
			Width:      width,
			Height:     height,
			FontSize:   float64(fontSize),
			FontFamily: fontFamily,
			TextColor:  t.color,
			Logger:     log,
		}
		if withBackground {
			bg := t.theme.Background()
			opts.Background = &bg
		}
		img, err := branding.Render(opts)
		if err != nil {
			return err
		}
		path := filepath.Join(outputDir, manifest.ExpandPattern(pattern, stem, string(t.theme)))
		if err := raster.WritePNG(path, img); err != nil {
			return err
		}
		log.Info("saved branding image", "theme", t.theme, "path", path)
	}
	return nil
}

// pickInt resolves an integer setting: explicit flag, then manifest, then
// the built-in default.
func pickInt(flags *pflag.FlagSet, name string, fromManifest, fallback int) int {
	if flags.Changed(name) {
		if v, _ := flags.GetInt(name); v > 0 {
			return v
		}
	}
	if fromManifest > 0 {
		return fromManifest
	}
	return fallback
}

func resolveColor(fromFlag, fromManifest string, fallback color.NRGBA) (color.NRGBA, error) {
	switch {
	case fromFlag != "":
		return manifest.ParseHex(fromFlag)
	case fromManifest != "":
		return manifest.ParseHex(fromManifest)
	}
	return fallback, nil
}
