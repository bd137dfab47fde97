// Package config reads and writes the session configuration file: a flat
// text format of [section] headers and key = value lines that overrides
// the viewer's startup defaults. Unknown sections and keys are ignored so
// files written by newer builds still load; malformed values are logged
// per line and skipped without aborting the load.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rudraojhaif/AetherGL/core"
	"github.com/rudraojhaif/AetherGL/internal/opengl"
	"github.com/rudraojhaif/AetherGL/lighting"
	"github.com/rudraojhaif/AetherGL/terrain"
)

// WindowSettings is the [window] section.
type WindowSettings struct {
	Width  int
	Height int
	Title  string
	VSync  bool
}

// TerrainSettings is the [terrain] section. AutoExport writes a
// timestamped OBJ copy of the mesh right after generation.
type TerrainSettings struct {
	Width         float32
	Depth         float32
	WidthSegments int
	DepthSegments int
	CenterY       float32
	AutoExport    bool
}

// NoiseSettings is the [noise] section. Seed 0 asks the generator for a
// time-derived seed, so every run produces a different terrain.
type NoiseSettings struct {
	Seed        int64
	Scale       float32
	HeightScale float32
}

// LightingSettings is the [lighting] section. The preset is applied
// before the scalar keys, so an explicit time_of_day wins over the
// preset's starting time.
type LightingSettings struct {
	Preset       string
	TimeOfDay    float32
	DaySpeed     float32
	Animate      bool
	IBL          bool
	IBLIntensity float32
}

// FogSettings is the [fog] section. The fog colour is not configurable;
// it follows the time of day.
type FogSettings struct {
	Enabled                bool
	Density                float32
	HeightFalloff          float32
	AtmosphericPerspective float32
}

// PostSettings is the [post] section: the compositor configuration plus
// the session's master toggle. The chain starts disabled and is switched
// on at runtime, so a bad driver never blocks the first frame.
type PostSettings struct {
	Enabled bool
	opengl.PostConfig
}

// Config aggregates every tunable the viewer reads at startup.
type Config struct {
	Window   WindowSettings
	Terrain  TerrainSettings
	Noise    NoiseSettings
	Lighting LightingSettings
	Fog      FogSettings
	Post     PostSettings
}

// Default returns the session defaults: the library defaults overlaid
// with the viewer's startup look (boosted bloom, depth of field off,
// stronger aberration, image-based ambient on).
func Default() *Config {
	win := core.DefaultWindowConfig()

	post := opengl.DefaultPostConfig()
	post.BloomThreshold = 0.7
	post.BloomIntensity = 1.2
	post.BloomBlurPasses = 6
	post.EnableDOF = false
	post.AberrationStrength = 0.8

	return &Config{
		Window: WindowSettings{
			Width:  win.Width,
			Height: win.Height,
			Title:  win.Title,
			VSync:  win.VSync,
		},
		Terrain: TerrainSettings{
			Width:         80,
			Depth:         80,
			WidthSegments: 100,
			DepthSegments: 100,
			CenterY:       0,
			AutoExport:    false,
		},
		Noise: NoiseSettings{
			Seed:        42,
			Scale:       0.08,
			HeightScale: 15,
		},
		Lighting: LightingSettings{
			Preset:       lighting.PresetDefault,
			TimeOfDay:    0.3,
			DaySpeed:     0.05,
			Animate:      true,
			IBL:          true,
			IBLIntensity: 0.8,
		},
		Fog: FogSettings{
			Enabled:                true,
			Density:                0.015,
			HeightFalloff:          0.08,
			AtmosphericPerspective: 0.7,
		},
		Post: PostSettings{
			Enabled:    false,
			PostConfig: post,
		},
	}
}

// ── Loading ───────────────────────────────────────────────────────────────────

// Load reads a session file and returns the defaults overlaid with its
// values. A missing file is not an error; the defaults are returned
// unchanged so a fresh checkout runs without a config.
func Load(path string) (*Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	section := ""
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				fmt.Printf("[Config] line %d: malformed section header %q\n", lineNum, line)
				section = ""
				continue
			}
			section = strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			fmt.Printf("[Config] line %d: expected key = value, got %q\n", lineNum, line)
			continue
		}
		cfg.set(section, strings.ToLower(strings.TrimSpace(key)), strings.TrimSpace(value), lineNum)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return cfg, nil
}

// set routes one key to its field. Keys outside the known sections fall
// through silently.
func (c *Config) set(section, key, value string, line int) {
	switch section {
	case "window":
		switch key {
		case "width":
			setInt(&c.Window.Width, key, value, line)
		case "height":
			setInt(&c.Window.Height, key, value, line)
		case "title":
			c.Window.Title = value
		case "vsync":
			setBool(&c.Window.VSync, key, value, line)
		}
	case "terrain":
		switch key {
		case "width":
			setFloat(&c.Terrain.Width, key, value, line)
		case "depth":
			setFloat(&c.Terrain.Depth, key, value, line)
		case "width_segments":
			setInt(&c.Terrain.WidthSegments, key, value, line)
		case "depth_segments":
			setInt(&c.Terrain.DepthSegments, key, value, line)
		case "center_y":
			setFloat(&c.Terrain.CenterY, key, value, line)
		case "auto_export":
			setBool(&c.Terrain.AutoExport, key, value, line)
		}
	case "noise":
		switch key {
		case "seed":
			setInt64(&c.Noise.Seed, key, value, line)
		case "scale":
			setFloat(&c.Noise.Scale, key, value, line)
		case "height_scale":
			setFloat(&c.Noise.HeightScale, key, value, line)
		}
	case "lighting":
		switch key {
		case "preset":
			preset := strings.ToLower(value)
			switch preset {
			case lighting.PresetDefault, lighting.PresetSunset, lighting.PresetNight:
				c.Lighting.Preset = preset
			default:
				fmt.Printf("[Config] line %d: unknown lighting preset %q\n", line, value)
			}
		case "time_of_day":
			setFloat(&c.Lighting.TimeOfDay, key, value, line)
		case "day_speed":
			setFloat(&c.Lighting.DaySpeed, key, value, line)
		case "animate":
			setBool(&c.Lighting.Animate, key, value, line)
		case "ibl":
			setBool(&c.Lighting.IBL, key, value, line)
		case "ibl_intensity":
			setFloat(&c.Lighting.IBLIntensity, key, value, line)
		}
	case "fog":
		switch key {
		case "enabled":
			setBool(&c.Fog.Enabled, key, value, line)
		case "density":
			setFloat(&c.Fog.Density, key, value, line)
		case "height_falloff":
			setFloat(&c.Fog.HeightFalloff, key, value, line)
		case "atmospheric_perspective":
			setFloat(&c.Fog.AtmosphericPerspective, key, value, line)
		}
	case "post":
		switch key {
		case "enabled":
			setBool(&c.Post.Enabled, key, value, line)
		case "bloom":
			setBool(&c.Post.EnableBloom, key, value, line)
		case "bloom_threshold":
			setFloat(&c.Post.BloomThreshold, key, value, line)
		case "bloom_intensity":
			setFloat(&c.Post.BloomIntensity, key, value, line)
		case "bloom_blur_passes":
			setInt(&c.Post.BloomBlurPasses, key, value, line)
		case "dof":
			setBool(&c.Post.EnableDOF, key, value, line)
		case "focus_distance":
			setFloat(&c.Post.FocusDistance, key, value, line)
		case "focus_range":
			setFloat(&c.Post.FocusRange, key, value, line)
		case "bokeh_radius":
			setFloat(&c.Post.BokehRadius, key, value, line)
		case "chromatic_aberration":
			setBool(&c.Post.EnableChromaticAberration, key, value, line)
		case "aberration_strength":
			setFloat(&c.Post.AberrationStrength, key, value, line)
		case "exposure":
			setFloat(&c.Post.Exposure, key, value, line)
		case "gamma":
			setFloat(&c.Post.Gamma, key, value, line)
		}
	}
}

func setFloat(dst *float32, key, value string, line int) {
	f, err := strconv.ParseFloat(value, 32)
	if err != nil {
		fmt.Printf("[Config] line %d: invalid number for %s: %q\n", line, key, value)
		return
	}
	*dst = float32(f)
}

func setInt(dst *int, key, value string, line int) {
	n, err := strconv.Atoi(value)
	if err != nil {
		fmt.Printf("[Config] line %d: invalid integer for %s: %q\n", line, key, value)
		return
	}
	*dst = n
}

func setInt64(dst *int64, key, value string, line int) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		fmt.Printf("[Config] line %d: invalid integer for %s: %q\n", line, key, value)
		return
	}
	*dst = n
}

func setBool(dst *bool, key, value string, line int) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		fmt.Printf("[Config] line %d: invalid boolean for %s: %q\n", line, key, value)
		return
	}
	*dst = b
}

// ── Applying ──────────────────────────────────────────────────────────────────

// ApplyWindow copies the window section onto a window configuration.
func (c *Config) ApplyWindow(w *core.WindowConfig) {
	w.Width = c.Window.Width
	w.Height = c.Window.Height
	w.Title = c.Window.Title
	w.VSync = c.Window.VSync
}

// ApplyTerrain copies the terrain and noise sections onto generation
// parameters.
func (c *Config) ApplyTerrain(p *terrain.Params) {
	p.Width = c.Terrain.Width
	p.Depth = c.Terrain.Depth
	p.WidthSegments = c.Terrain.WidthSegments
	p.DepthSegments = c.Terrain.DepthSegments
	p.Center.Y = c.Terrain.CenterY
	p.HeightScale = c.Noise.HeightScale
	p.NoiseScale = c.Noise.Scale
	p.Seed = c.Noise.Seed
}

// ApplyLighting overlays the lighting and fog sections onto a lighting
// state. A non-default preset replaces the light rig first; the scalar
// keys then win over whatever the preset set.
func (c *Config) ApplyLighting(s *lighting.State) {
	if c.Lighting.Preset != lighting.PresetDefault {
		if err := s.ApplyPreset(c.Lighting.Preset); err != nil {
			fmt.Printf("[Config] %v\n", err)
		}
	}
	s.TimeOfDay.Value = c.Lighting.TimeOfDay
	s.TimeOfDay.Speed = c.Lighting.DaySpeed
	s.TimeOfDay.Animate = c.Lighting.Animate
	s.IBL.Enabled = c.Lighting.IBL
	s.IBL.Intensity = c.Lighting.IBLIntensity
	s.Fog.Enabled = c.Fog.Enabled
	s.Fog.Density = c.Fog.Density
	s.Fog.HeightFalloff = c.Fog.HeightFalloff
	s.Fog.AtmosphericPerspective = c.Fog.AtmosphericPerspective
}

// ── Saving ────────────────────────────────────────────────────────────────────

// Save writes the configuration in the same format Load reads, one
// section per block. Floats use the shortest representation that
// round-trips, so Save followed by Load reproduces the values exactly.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	fmt.Fprintln(w, "# AetherGL session configuration")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "[window]")
	fmt.Fprintf(w, "width = %d\n", c.Window.Width)
	fmt.Fprintf(w, "height = %d\n", c.Window.Height)
	fmt.Fprintf(w, "title = %s\n", c.Window.Title)
	fmt.Fprintf(w, "vsync = %t\n", c.Window.VSync)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "[terrain]")
	fmt.Fprintf(w, "width = %g\n", c.Terrain.Width)
	fmt.Fprintf(w, "depth = %g\n", c.Terrain.Depth)
	fmt.Fprintf(w, "width_segments = %d\n", c.Terrain.WidthSegments)
	fmt.Fprintf(w, "depth_segments = %d\n", c.Terrain.DepthSegments)
	fmt.Fprintf(w, "center_y = %g\n", c.Terrain.CenterY)
	fmt.Fprintf(w, "auto_export = %t\n", c.Terrain.AutoExport)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "[noise]")
	fmt.Fprintf(w, "seed = %d\n", c.Noise.Seed)
	fmt.Fprintf(w, "scale = %g\n", c.Noise.Scale)
	fmt.Fprintf(w, "height_scale = %g\n", c.Noise.HeightScale)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "[lighting]")
	fmt.Fprintf(w, "preset = %s\n", c.Lighting.Preset)
	fmt.Fprintf(w, "time_of_day = %g\n", c.Lighting.TimeOfDay)
	fmt.Fprintf(w, "day_speed = %g\n", c.Lighting.DaySpeed)
	fmt.Fprintf(w, "animate = %t\n", c.Lighting.Animate)
	fmt.Fprintf(w, "ibl = %t\n", c.Lighting.IBL)
	fmt.Fprintf(w, "ibl_intensity = %g\n", c.Lighting.IBLIntensity)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "[fog]")
	fmt.Fprintf(w, "enabled = %t\n", c.Fog.Enabled)
	fmt.Fprintf(w, "density = %g\n", c.Fog.Density)
	fmt.Fprintf(w, "height_falloff = %g\n", c.Fog.HeightFalloff)
	fmt.Fprintf(w, "atmospheric_perspective = %g\n", c.Fog.AtmosphericPerspective)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "[post]")
	fmt.Fprintf(w, "enabled = %t\n", c.Post.Enabled)
	fmt.Fprintf(w, "bloom = %t\n", c.Post.EnableBloom)
	fmt.Fprintf(w, "bloom_threshold = %g\n", c.Post.BloomThreshold)
	fmt.Fprintf(w, "bloom_intensity = %g\n", c.Post.BloomIntensity)
	fmt.Fprintf(w, "bloom_blur_passes = %d\n", c.Post.BloomBlurPasses)
	fmt.Fprintf(w, "dof = %t\n", c.Post.EnableDOF)
	fmt.Fprintf(w, "focus_distance = %g\n", c.Post.FocusDistance)
	fmt.Fprintf(w, "focus_range = %g\n", c.Post.FocusRange)
	fmt.Fprintf(w, "bokeh_radius = %g\n", c.Post.BokehRadius)
	fmt.Fprintf(w, "chromatic_aberration = %t\n", c.Post.EnableChromaticAberration)
	fmt.Fprintf(w, "aberration_strength = %g\n", c.Post.AberrationStrength)
	fmt.Fprintf(w, "exposure = %g\n", c.Post.Exposure)
	fmt.Fprintf(w, "gamma = %g\n", c.Post.Gamma)

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
