package lighting

import (
	"fmt"
	stdmath "math"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/rudraojhaif/AetherGL/core"
	"github.com/rudraojhaif/AetherGL/math"
)

// MaxPointLights is the shader-side array size; AddPointLight rejects
// additions past it.
const MaxPointLights = 8

// ── Light aggregates ──────────────────────────────────────────────────────────

// DirectionalLight is the sun. Direction points from the light into the scene.
type DirectionalLight struct {
	Direction math.Vec3
	Color     core.Color
	Intensity float32
	Enabled   bool
}

// PointLight is a local emitter with range-based falloff.
type PointLight struct {
	Position  math.Vec3
	Color     core.Color
	Intensity float32
	Range     float32
}

// NewPointLight returns a light with the default intensity (10) and range (20).
func NewPointLight(position math.Vec3, color core.Color) PointLight {
	return PointLight{Position: position, Color: color, Intensity: 10, Range: 20}
}

// TerrainMaterial holds the biome height thresholds the terrain shader
// blends between.
type TerrainMaterial struct {
	GrassHeight float32
	RockHeight  float32
	SnowHeight  float32
}

// POM configures parallax occlusion mapping.
type POM struct {
	Enabled    bool
	Scale      float32
	MinSamples int32
	MaxSamples int32
	Sharpen    float32
}

// IBL configures image-based ambient lighting.
type IBL struct {
	Enabled   bool
	Intensity float32
}

// Fog holds the exponential height-fog parameters.
type Fog struct {
	Enabled                bool
	Density                float32
	HeightFalloff          float32
	Color                  core.Color
	AtmosphericPerspective float32
}

// Atmosphere holds the scattering parameters shared by the sky shader and
// the fog tint.
type Atmosphere struct {
	AtmosphereRadius float32
	PlanetRadius     float32
	RayleighCoeff    float32
	MieCoeff         float32
	MieG             float32
	SunDiskSize      float32
	Exposure         float32
}

// TimeOfDay drives the day/night cycle. Value 0 is midnight, 0.5 is noon.
type TimeOfDay struct {
	Value   float32
	Speed   float32
	Animate bool
}

// State aggregates every lighting parameter the shaders consume. All
// mutation happens on the render thread between frames; there is no
// concurrent writer.
type State struct {
	Directional DirectionalLight
	PointLights []PointLight
	Terrain     TerrainMaterial
	POM         POM
	IBL         IBL
	Fog         Fog
	Atmosphere  Atmosphere
	TimeOfDay   TimeOfDay
}

// New returns a State carrying the default daytime setup.
func New() *State {
	s := &State{
		Terrain: TerrainMaterial{GrassHeight: 2, RockHeight: 8, SnowHeight: 12},
		POM:     POM{Enabled: true, Scale: 0.08, MinSamples: 16, MaxSamples: 64, Sharpen: 1},
		IBL:     IBL{Enabled: false, Intensity: 0.3},
		Fog: Fog{
			Enabled:                true,
			Density:                0.015,
			HeightFalloff:          0.08,
			Color:                  dayFogColor,
			AtmosphericPerspective: 0.7,
		},
		Atmosphere: Atmosphere{
			AtmosphereRadius: 6420,
			PlanetRadius:     6360,
			RayleighCoeff:    1,
			MieCoeff:         1,
			MieG:             0.76,
			SunDiskSize:      1,
			Exposure:         1,
		},
		TimeOfDay: TimeOfDay{Value: 0.3, Speed: 0.05, Animate: true},
	}
	s.ApplyPreset(PresetDefault)
	return s
}

// AddPointLight appends a light unless the shader-side array is already full.
func (s *State) AddPointLight(light PointLight) {
	if len(s.PointLights) >= MaxPointLights {
		fmt.Printf("Warning: maximum number of point lights (%d) reached\n", MaxPointLights)
		return
	}
	s.PointLights = append(s.PointLights, light)
}

// ClearPointLights removes every point light.
func (s *State) ClearPointLights() {
	s.PointLights = s.PointLights[:0]
}

// ── Presets ───────────────────────────────────────────────────────────────────

const (
	PresetDefault = "default"
	PresetSunset  = "sunset"
	PresetNight   = "night"
)

// ApplyPreset replaces the directional light and the whole point-light
// collection with one of the named setups. The night preset additionally
// disables the directional light. Unknown names leave the state untouched.
func (s *State) ApplyPreset(name string) error {
	switch name {
	case PresetDefault:
		s.Directional = DirectionalLight{
			Direction: math.Vec3{X: 0.3, Y: -0.7, Z: -0.2},
			Color:     core.Color{R: 1, G: 0.95, B: 0.8, A: 1},
			Intensity: 1.2,
			Enabled:   true,
		}
		s.ClearPointLights()
		s.AddPointLight(PointLight{
			Position:  math.Vec3{X: 10, Y: 3, Z: 10},
			Color:     core.Color{R: 1, G: 0.6, B: 0.2, A: 1},
			Intensity: 8,
			Range:     25,
		})
		s.AddPointLight(PointLight{
			Position:  math.Vec3{X: -15, Y: 5, Z: -10},
			Color:     core.Color{R: 0.2, G: 0.4, B: 1, A: 1},
			Intensity: 6,
			Range:     20,
		})
		fmt.Println("Lighting: default daytime setup")

	case PresetSunset:
		s.Directional = DirectionalLight{
			Direction: math.Vec3{X: 0.8, Y: -0.3, Z: 0.2},
			Color:     core.Color{R: 1, G: 0.4, B: 0.1, A: 1},
			Intensity: 2.5,
			Enabled:   true,
		}
		s.ClearPointLights()
		s.AddPointLight(PointLight{
			Position:  math.Vec3{X: 20, Y: 2, Z: 15},
			Color:     core.Color{R: 1, G: 0.3, B: 0, A: 1},
			Intensity: 25,
			Range:     30,
		})
		s.AddPointLight(PointLight{
			Position:  math.Vec3{X: -10, Y: 1, Z: -5},
			Color:     core.Color{R: 0.4, G: 0.2, B: 0.6, A: 1},
			Intensity: 12,
			Range:     20,
		})
		fmt.Println("Lighting: sunset setup")

	case PresetNight:
		s.Directional.Enabled = false
		s.ClearPointLights()
		s.AddPointLight(PointLight{
			Position:  math.Vec3{X: 8, Y: 4, Z: 8},
			Color:     core.Color{R: 1, G: 0.7, B: 0.3, A: 1},
			Intensity: 30,
			Range:     15,
		})
		s.AddPointLight(PointLight{
			Position:  math.Vec3{X: -12, Y: 3, Z: 5},
			Color:     core.Color{R: 1, G: 0.8, B: 0.4, A: 1},
			Intensity: 25,
			Range:     18,
		})
		s.AddPointLight(PointLight{
			Position:  math.Vec3{X: 0, Y: 8, Z: -15},
			Color:     core.Color{R: 0.3, G: 0.8, B: 1, A: 1},
			Intensity: 20,
			Range:     25,
		})
		s.AddPointLight(PointLight{
			Position:  math.Vec3{X: 15, Y: 2, Z: -8},
			Color:     core.Color{R: 0.2, G: 1, B: 0.3, A: 1},
			Intensity: 18,
			Range:     20,
		})
		s.AddPointLight(PointLight{
			Position:  math.Vec3{X: -5, Y: 6, Z: 12},
			Color:     core.Color{R: 0.8, G: 0.2, B: 1, A: 1},
			Intensity: 22,
			Range:     16,
		})
		fmt.Println("Lighting: night setup with point lights")

	default:
		return fmt.Errorf("lighting: unknown preset %q", name)
	}
	return nil
}

// ── Day/night cycle ───────────────────────────────────────────────────────────

// sunBand holds the directional light color and intensity for a slice of the
// day. Bands are deliberately hard steps, not interpolated.
type sunBand struct {
	Start     float32
	End       float32
	Color     core.Color
	Intensity float32
}

// sunBands is scanned in order and the first band containing t wins, so
// values on a shared boundary resolve to the earlier entry.
var sunBands = []sunBand{
	{0.3, 0.7, core.Color{R: 1, G: 0.98, B: 0.95, A: 1}, 3.0}, // day
	{0.2, 0.3, core.Color{R: 1, G: 0.6, B: 0.3, A: 1}, 1.5},   // dawn
	{0.7, 0.8, core.Color{R: 1, G: 0.6, B: 0.3, A: 1}, 1.5},   // dusk
	{0.0, 0.2, core.Color{R: 0.2, G: 0.3, B: 0.5, A: 1}, 0.1}, // night
	{0.8, 1.0, core.Color{R: 0.2, G: 0.3, B: 0.5, A: 1}, 0.1}, // night
}

func sunBandFor(t float32) sunBand {
	for _, b := range sunBands {
		if t >= b.Start && t <= b.End {
			return b
		}
	}
	return sunBands[len(sunBands)-1]
}

// Fog palette for the cycle. Away from the day band the fog blends from
// nightFogColor toward sunsetFogColor with distance from noon.
var (
	nightFogColor  = core.Color{R: 0.4, G: 0.4, B: 0.6, A: 1}
	sunsetFogColor = core.Color{R: 0.8, G: 0.6, B: 0.4, A: 1}
	dayFogColor    = core.Color{R: 0.7, G: 0.8, B: 0.9, A: 1}
)

// SunDirection maps a time-of-day value to the sun's travel arc. Noon (0.5)
// points straight down with the fixed lateral drift; midnight points up,
// below the horizon.
func SunDirection(t float32) math.Vec3 {
	angle := (float64(t) - 0.5) * 2 * stdmath.Pi
	return math.Vec3{
		X: float32(stdmath.Sin(angle)) * 0.3,
		Y: float32(-stdmath.Cos(angle)),
		Z: -0.2,
	}.Normalize()
}

// UpdateTimeOfDay advances the cycle by dt seconds and recomputes the
// directional light and fog color. A no-op while animation is disabled.
func (s *State) UpdateTimeOfDay(dt float32) {
	if !s.TimeOfDay.Animate {
		return
	}

	t := float32(stdmath.Mod(float64(s.TimeOfDay.Value)+float64(dt)*float64(s.TimeOfDay.Speed), 1))
	if t < 0 {
		t += 1
	}
	s.TimeOfDay.Value = t

	s.Directional.Direction = SunDirection(t)
	band := sunBandFor(t)
	s.Directional.Color = band.Color
	s.Directional.Intensity = band.Intensity

	if t < 0.3 || t > 0.7 {
		// Triangular ramp: night fog at dawn/dusk, sunset fog at midnight.
		mix := float32(stdmath.Abs(float64(t)-0.5))*4 - 1
		if mix < 0 {
			mix = 0
		} else if mix > 1 {
			mix = 1
		}
		s.Fog.Color = nightFogColor.Lerp(sunsetFogColor, mix)
	} else {
		s.Fog.Color = dayFogColor
	}
}

// ── Shader application ────────────────────────────────────────────────────────

// Apply binds program and pushes the complete lighting uniform set. Uniforms
// a shader does not declare resolve to location -1, which GL ignores.
func (s *State) Apply(program uint32, viewPos math.Vec3) {
	gl.UseProgram(program)

	setVec3(program, "viewPos\x00", viewPos)

	setBool(program, "u_enableDirLight\x00", s.Directional.Enabled)
	if s.Directional.Enabled {
		setVec3(program, "u_dirLightDir\x00", s.Directional.Direction.Normalize())
		setColor(program, "u_dirLightColor\x00", s.Directional.Color)
		setFloat(program, "u_dirLightIntensity\x00", s.Directional.Intensity)
	}

	count := len(s.PointLights)
	if count > MaxPointLights {
		count = MaxPointLights
	}
	setInt(program, "u_numPointLights\x00", int32(count))
	for i := 0; i < count; i++ {
		light := s.PointLights[i]
		setVec3(program, fmt.Sprintf("u_pointLightPositions[%d]\x00", i), light.Position)
		setColor(program, fmt.Sprintf("u_pointLightColors[%d]\x00", i), light.Color)
		setFloat(program, fmt.Sprintf("u_pointLightIntensities[%d]\x00", i), light.Intensity)
		setFloat(program, fmt.Sprintf("u_pointLightRanges[%d]\x00", i), light.Range)
	}

	setBool(program, "u_enableIBL\x00", s.IBL.Enabled)
	setFloat(program, "u_iblIntensity\x00", s.IBL.Intensity)

	setFloat(program, "u_grassHeight\x00", s.Terrain.GrassHeight)
	setFloat(program, "u_rockHeight\x00", s.Terrain.RockHeight)
	setFloat(program, "u_snowHeight\x00", s.Terrain.SnowHeight)

	setBool(program, "u_enablePOM\x00", s.POM.Enabled)
	setFloat(program, "u_pomScale\x00", s.POM.Scale)
	setInt(program, "u_pomMinSamples\x00", s.POM.MinSamples)
	setInt(program, "u_pomMaxSamples\x00", s.POM.MaxSamples)
	setFloat(program, "u_pomSharpen\x00", s.POM.Sharpen)

	setBool(program, "u_enableAtmosphericFog\x00", s.Fog.Enabled)
	setFloat(program, "u_fogDensity\x00", s.Fog.Density)
	setFloat(program, "u_fogHeightFalloff\x00", s.Fog.HeightFalloff)
	setColor(program, "u_fogColor\x00", s.Fog.Color)
	setFloat(program, "u_atmosphericPerspective\x00", s.Fog.AtmosphericPerspective)
	setVec3(program, "u_sunDirection\x00", s.Directional.Direction)

	setFloat(program, "u_atmosphereRadius\x00", s.Atmosphere.AtmosphereRadius)
	setFloat(program, "u_planetRadius\x00", s.Atmosphere.PlanetRadius)
	setFloat(program, "u_rayleighCoeff\x00", s.Atmosphere.RayleighCoeff)
	setFloat(program, "u_mieCoeff\x00", s.Atmosphere.MieCoeff)
	setFloat(program, "u_mieG\x00", s.Atmosphere.MieG)
	setFloat(program, "u_sunDiskSize\x00", s.Atmosphere.SunDiskSize)
	setFloat(program, "u_exposure\x00", s.Atmosphere.Exposure)
}

func setFloat(program uint32, name string, v float32) {
	gl.Uniform1f(gl.GetUniformLocation(program, gl.Str(name)), v)
}

func setInt(program uint32, name string, v int32) {
	gl.Uniform1i(gl.GetUniformLocation(program, gl.Str(name)), v)
}

func setBool(program uint32, name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	gl.Uniform1i(gl.GetUniformLocation(program, gl.Str(name)), i)
}

func setVec3(program uint32, name string, v math.Vec3) {
	gl.Uniform3f(gl.GetUniformLocation(program, gl.Str(name)), v.X, v.Y, v.Z)
}

func setColor(program uint32, name string, c core.Color) {
	gl.Uniform3f(gl.GetUniformLocation(program, gl.Str(name)), c.R, c.G, c.B)
}
