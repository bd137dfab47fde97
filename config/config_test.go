package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rudraojhaif/AetherGL/core"
	"github.com/rudraojhaif/AetherGL/lighting"
	"github.com/rudraojhaif/AetherGL/math"
	"github.com/rudraojhaif/AetherGL/terrain"
)

// TestDefaults pins the session startup look the viewer relies on.
func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Noise.Seed != 42 {
		t.Errorf("default seed = %d, want 42", cfg.Noise.Seed)
	}
	if cfg.Terrain.WidthSegments != 100 || cfg.Terrain.DepthSegments != 100 {
		t.Errorf("default segments = %dx%d, want 100x100", cfg.Terrain.WidthSegments, cfg.Terrain.DepthSegments)
	}
	if cfg.Terrain.AutoExport {
		t.Error("auto_export should default to off")
	}
	if cfg.Post.Enabled {
		t.Error("post-processing master toggle should default to off")
	}
	if cfg.Post.BloomThreshold != 0.7 || cfg.Post.BloomIntensity != 1.2 || cfg.Post.BloomBlurPasses != 6 {
		t.Errorf("default bloom = %g/%g/%d, want 0.7/1.2/6",
			cfg.Post.BloomThreshold, cfg.Post.BloomIntensity, cfg.Post.BloomBlurPasses)
	}
	if cfg.Post.EnableDOF {
		t.Error("depth of field should default to off")
	}
	if cfg.Post.AberrationStrength != 0.8 {
		t.Errorf("default aberration strength = %g, want 0.8", cfg.Post.AberrationStrength)
	}
	if !cfg.Lighting.IBL || cfg.Lighting.IBLIntensity != 0.8 {
		t.Errorf("default IBL = %t/%g, want on/0.8", cfg.Lighting.IBL, cfg.Lighting.IBLIntensity)
	}
}

// TestLoadMissingFile returns the defaults without an error when the
// path does not exist.
func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.cfg"))
	if err != nil {
		t.Fatalf("Load returned error for missing file: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("missing-file config = %+v, want defaults", *cfg)
	}
}

// TestLoadOverrides applies known keys and leaves everything else at its
// default.
func TestLoadOverrides(t *testing.T) {
	content := `# session for a 1080p run
[window]
width = 1920
height = 1080
title = Terrain Test

; alternate comment style
[noise]
seed = 7
height_scale = 22.5

[lighting]
preset = sunset
animate = false

[post]
enabled = true
bloom_blur_passes = 4
`
	path := filepath.Join(t.TempDir(), "session.cfg")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("window = %dx%d, want 1920x1080", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Title != "Terrain Test" {
		t.Errorf("title = %q, want %q", cfg.Window.Title, "Terrain Test")
	}
	if cfg.Noise.Seed != 7 || cfg.Noise.HeightScale != 22.5 {
		t.Errorf("noise = seed %d height %g, want 7/22.5", cfg.Noise.Seed, cfg.Noise.HeightScale)
	}
	if cfg.Lighting.Preset != lighting.PresetSunset || cfg.Lighting.Animate {
		t.Errorf("lighting = %s animate %t, want sunset/false", cfg.Lighting.Preset, cfg.Lighting.Animate)
	}
	if !cfg.Post.Enabled || cfg.Post.BloomBlurPasses != 4 {
		t.Errorf("post = enabled %t passes %d, want true/4", cfg.Post.Enabled, cfg.Post.BloomBlurPasses)
	}

	// Untouched keys keep their defaults.
	if !cfg.Window.VSync {
		t.Error("vsync default lost")
	}
	if cfg.Noise.Scale != 0.08 {
		t.Errorf("noise scale = %g, want default 0.08", cfg.Noise.Scale)
	}
	if cfg.Post.BloomThreshold != 0.7 {
		t.Errorf("bloom threshold = %g, want default 0.7", cfg.Post.BloomThreshold)
	}
}

// TestLoadMalformedValues skips bad values with the defaults intact and
// keeps parsing the rest of the file.
func TestLoadMalformedValues(t *testing.T) {
	content := `[window]
width = wide
vsync = maybe

[noise]
seed = 12.5
scale = 0.1

[terrain]
depth
`
	path := filepath.Join(t.TempDir(), "broken.cfg")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Window.Width != 1200 {
		t.Errorf("width = %d, want default 1200 after malformed value", cfg.Window.Width)
	}
	if !cfg.Window.VSync {
		t.Error("vsync changed by malformed boolean")
	}
	if cfg.Noise.Seed != 42 {
		t.Errorf("seed = %d, want default 42 after malformed value", cfg.Noise.Seed)
	}
	if cfg.Noise.Scale != 0.1 {
		t.Errorf("scale = %g, want 0.1 (valid key after malformed ones)", cfg.Noise.Scale)
	}
	if cfg.Terrain.Depth != 80 {
		t.Errorf("depth = %g, want default 80 after key without value", cfg.Terrain.Depth)
	}
}

// TestLoadUnknownKeys ignores unrecognised keys and sections without
// erroring, so files from newer builds still load.
func TestLoadUnknownKeys(t *testing.T) {
	content := `[window]
frobnicate = 3

[plasma]
strength = 11
`
	path := filepath.Join(t.TempDir(), "future.cfg")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("unknown keys changed the config: %+v", *cfg)
	}
}

// TestLoadUnknownPreset keeps the default preset when the file names one
// that does not exist.
func TestLoadUnknownPreset(t *testing.T) {
	content := "[lighting]\npreset = disco\n"
	path := filepath.Join(t.TempDir(), "preset.cfg")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Lighting.Preset != lighting.PresetDefault {
		t.Errorf("preset = %q, want %q", cfg.Lighting.Preset, lighting.PresetDefault)
	}
}

// TestLoadMalformedSection drops keys under a broken header instead of
// attributing them to the previous section.
func TestLoadMalformedSection(t *testing.T) {
	content := "[window\nwidth = 640\n"
	path := filepath.Join(t.TempDir(), "header.cfg")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Window.Width != 1200 {
		t.Errorf("width = %d, want default 1200 under malformed header", cfg.Window.Width)
	}
}

// TestSaveLoadRoundTrip writes a heavily customised config and reads it
// back bit-identical.
func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Window.Width = 1024
	cfg.Window.Height = 768
	cfg.Window.Title = "Round Trip"
	cfg.Window.VSync = false
	cfg.Terrain.Width = 120.5
	cfg.Terrain.DepthSegments = 64
	cfg.Terrain.CenterY = -2.25
	cfg.Terrain.AutoExport = true
	cfg.Noise.Seed = -9001
	cfg.Noise.Scale = 0.031
	cfg.Noise.HeightScale = 18
	cfg.Lighting.Preset = lighting.PresetNight
	cfg.Lighting.TimeOfDay = 0.85
	cfg.Lighting.DaySpeed = 0.2
	cfg.Lighting.Animate = false
	cfg.Lighting.IBLIntensity = 0.45
	cfg.Fog.Enabled = false
	cfg.Fog.Density = 0.002
	cfg.Post.Enabled = true
	cfg.Post.EnableDOF = true
	cfg.Post.FocusDistance = 33.5
	cfg.Post.Gamma = 1.8

	path := filepath.Join(t.TempDir(), "session", "viewer.cfg")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", *got, *cfg)
	}
}

// TestSaveFormat spot-checks the written text so hand-edited files and
// saved files stay interchangeable.
func TestSaveFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "format.cfg")
	if err := Default().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)

	if !strings.HasPrefix(text, "# AetherGL session configuration\n") {
		t.Error("missing header comment")
	}
	for _, want := range []string{
		"[window]", "[terrain]", "[noise]", "[lighting]", "[fog]", "[post]",
		"width = 1200", "seed = 42", "preset = default", "bloom_threshold = 0.7",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("saved config missing %q", want)
		}
	}
}

// TestApplyWindow maps the window section onto a window configuration
// without touching fields the file does not cover.
func TestApplyWindow(t *testing.T) {
	cfg := Default()
	cfg.Window.Width = 640
	cfg.Window.Height = 480
	cfg.Window.Title = "Tiny"
	cfg.Window.VSync = false

	w := core.DefaultWindowConfig()
	cfg.ApplyWindow(&w)

	if w.Width != 640 || w.Height != 480 || w.Title != "Tiny" || w.VSync {
		t.Errorf("window config = %+v, want 640x480 Tiny vsync off", w)
	}
	if !w.Resizable {
		t.Error("Resizable should be untouched by ApplyWindow")
	}
}

// TestApplyTerrain merges the terrain and noise sections into generation
// parameters, overriding only the centre height.
func TestApplyTerrain(t *testing.T) {
	cfg := Default()
	cfg.Terrain.Width = 40
	cfg.Terrain.Depth = 60
	cfg.Terrain.WidthSegments = 10
	cfg.Terrain.DepthSegments = 20
	cfg.Terrain.CenterY = 3
	cfg.Noise.Seed = 5
	cfg.Noise.Scale = 0.2
	cfg.Noise.HeightScale = 9

	p := terrain.Params{Center: math.Vec3{X: 1, Y: 0, Z: -1}}
	cfg.ApplyTerrain(&p)

	if p.Width != 40 || p.Depth != 60 || p.WidthSegments != 10 || p.DepthSegments != 20 {
		t.Errorf("params = %+v, want 40x60 world 10x20 segments", p)
	}
	want := math.Vec3{X: 1, Y: 3, Z: -1}
	if p.Center != want {
		t.Errorf("center = %v, want %v (X/Z preserved, Y from config)", p.Center, want)
	}
	if p.Seed != 5 || p.NoiseScale != 0.2 || p.HeightScale != 9 {
		t.Errorf("noise params = seed %d scale %g height %g, want 5/0.2/9", p.Seed, p.NoiseScale, p.HeightScale)
	}
}

// TestApplyLighting applies the preset first and then the scalar keys on
// top of it.
func TestApplyLighting(t *testing.T) {
	cfg := Default()
	cfg.Lighting.Preset = lighting.PresetNight
	cfg.Lighting.TimeOfDay = 0.9
	cfg.Lighting.DaySpeed = 0
	cfg.Lighting.IBL = false
	cfg.Fog.Density = 0.5

	s := lighting.New()
	cfg.ApplyLighting(s)

	if s.Directional.Enabled {
		t.Error("night preset should disable the directional light")
	}
	if len(s.PointLights) != 5 {
		t.Errorf("night preset point lights = %d, want 5", len(s.PointLights))
	}
	if s.TimeOfDay.Value != 0.9 || s.TimeOfDay.Speed != 0 {
		t.Errorf("time of day = %g speed %g, want 0.9/0 from config", s.TimeOfDay.Value, s.TimeOfDay.Speed)
	}
	if s.IBL.Enabled {
		t.Error("IBL should be off per config")
	}
	if s.Fog.Density != 0.5 {
		t.Errorf("fog density = %g, want 0.5", s.Fog.Density)
	}
}

// TestApplyLightingDefaultPreset keeps the rig New built instead of
// reapplying it.
func TestApplyLightingDefaultPreset(t *testing.T) {
	cfg := Default()
	s := lighting.New()
	before := len(s.PointLights)

	cfg.ApplyLighting(s)

	if len(s.PointLights) != before {
		t.Errorf("point lights = %d, want %d (default preset untouched)", len(s.PointLights), before)
	}
	if !s.Directional.Enabled {
		t.Error("directional light should remain enabled")
	}
}
