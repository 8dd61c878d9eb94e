package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleManifest = `
name: webfly
gen-logo:
  source: assets/logo/webfly_logo.png
  output_dir: assets/gen
  target_size: 256
  padding: 16
  tolerance: 40
  brightness_light: 0.85
  brightness_dark: 1.2
  output_pattern: "{name}.{theme}.png"
gen-branding:
  text: WebFly
  width: 360
  height: 96
  font_size: 40
  light_color: "#323232"
  dark_color: "#DCDCDC"
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pubspec.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	m, err := Load(writeManifest(t, sampleManifest))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Name != "webfly" {
		t.Errorf("name = %q", m.Name)
	}
	if m.Logo.TargetSize != 256 {
		t.Errorf("target_size = %d", m.Logo.TargetSize)
	}
	if m.Logo.Padding == nil || *m.Logo.Padding != 16 {
		t.Errorf("padding = %v", m.Logo.Padding)
	}
	if m.Logo.Tolerance == nil || *m.Logo.Tolerance != 40 {
		t.Errorf("tolerance = %v", m.Logo.Tolerance)
	}
	if m.Logo.BrightnessLight == nil || *m.Logo.BrightnessLight != 0.85 {
		t.Errorf("brightness_light = %v", m.Logo.BrightnessLight)
	}
	if m.Branding.Width != 360 || m.Branding.LightColor != "#323232" {
		t.Errorf("branding = %+v", m.Branding)
	}
}

func TestLoadMissingBlocksIsFine(t *testing.T) {
	m, err := Load(writeManifest(t, "name: bare\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Logo.Source != "" || m.Logo.Padding != nil {
		t.Errorf("unexpected defaults materialized: %+v", m.Logo)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing manifest")
	}
	if _, err := Load(writeManifest(t, "gen-logo: [not, a, map]\n")); err == nil {
		t.Error("expected error for malformed manifest")
	}
}

func TestPaddingRatio(t *testing.T) {
	tests := []struct {
		padding float64
		size    int
		want    float64
	}{
		{20, 512, 20.0 / 512},
		{0.15, 512, 0.15},
		{0, 512, 0},
		{-5, 512, 0},
		{64, 0, 0},
	}
	for _, tt := range tests {
		if got := PaddingRatio(tt.padding, tt.size); got != tt.want {
			t.Errorf("PaddingRatio(%v, %d) = %v, want %v", tt.padding, tt.size, got, tt.want)
		}
	}
}

func TestExpandPattern(t *testing.T) {
	if got := ExpandPattern("{name}_{theme}.png", "logo", "dark"); got != "logo_dark.png" {
		t.Errorf("ExpandPattern = %q", got)
	}
	if got := ExpandPattern("{text}_branding_{theme}.png", "webfly", "light"); got != "webfly_branding_light.png" {
		t.Errorf("ExpandPattern = %q", got)
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#323232")
	if err != nil || c.R != 0x32 || c.G != 0x32 || c.B != 0x32 || c.A != 255 {
		t.Errorf("ParseHex(#323232) = %v, %v", c, err)
	}
	c, err = ParseHex("DCDCDC")
	if err != nil || c.R != 0xDC {
		t.Errorf("ParseHex(DCDCDC) = %v, %v", c, err)
	}
	c, err = ParseHex("#11223344")
	if err != nil || c.A != 0x44 || c.B != 0x33 {
		t.Errorf("ParseHex(#11223344) = %v, %v", c, err)
	}
	for _, bad := range []string{"", "#12", "#xyzxyz", "#1234567"} {
		if _, err := ParseHex(bad); err == nil {
			t.Errorf("ParseHex(%q) should fail", bad)
		}
	}
}
