package renderer

import (
	"fmt"
	"time"

	"github.com/rudraojhaif/AetherGL/core"
	"github.com/rudraojhaif/AetherGL/internal/opengl"
	"github.com/rudraojhaif/AetherGL/io"
	"github.com/rudraojhaif/AetherGL/lighting"
	"github.com/rudraojhaif/AetherGL/math"
	"github.com/rudraojhaif/AetherGL/terrain"
)

// Engine is the high-level terrain renderer. It owns the OpenGL backend,
// the procedural sky and the post-processing compositor, advances the
// lighting cycle, and sequences each frame. All methods must be called
// from the main thread with the window context current.
type Engine struct {
	gl     *opengl.Renderer
	window *core.Window
	sky    *opengl.Skybox
	post   *opengl.PostCompositor

	// Lighting is mutated freely by the application between frames;
	// RenderFrame pushes it to every shader that consumes it.
	Lighting *lighting.State

	mesh       *terrain.Mesh
	meshParams terrain.Params
	model      math.Mat4

	SkyboxEnabled bool // enable via EnableSky()
	// PostEnabled routes frames through the compositor when one exists.
	// Starts false; the application flips it once setup is complete.
	PostEnabled bool
	postBroken  bool // composite failed once; direct rendering for the rest of the session
}

// NewEngine initialises the OpenGL backend against the window's context.
func NewEngine(window *core.Window) (*Engine, error) {
	glRenderer, err := opengl.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenGL renderer: %w", err)
	}
	glRenderer.SetViewport(window.Width, window.Height)

	fmt.Println("Render engine initialized (OpenGL)")
	return &Engine{
		gl:       glRenderer,
		window:   window,
		Lighting: lighting.New(),
		model:    math.Mat4Identity(),
	}, nil
}

// EnableSky creates the procedural atmosphere skybox.
// Call once after NewEngine, before the first RenderFrame.
func (e *Engine) EnableSky() error {
	sky, err := opengl.NewSkybox()
	if err != nil {
		return fmt.Errorf("skybox: %w", err)
	}
	e.sky = sky
	e.SkyboxEnabled = true
	return nil
}

// EnablePostProcessing creates the HDR compositor at the current window
// size. Call once after NewEngine; frames go through it only while
// PostEnabled is set.
func (e *Engine) EnablePostProcessing() error {
	post, err := opengl.NewPostCompositor(e.window.Width, e.window.Height)
	if err != nil {
		return fmt.Errorf("post-process: %w", err)
	}
	e.post = post
	return nil
}

// PostConfig returns the compositor settings, or defaults when post
// processing was never enabled.
func (e *Engine) PostConfig() opengl.PostConfig {
	if e.post == nil {
		return opengl.DefaultPostConfig()
	}
	return e.post.Config()
}

// SetPostConfig replaces the compositor settings. A no-op without a
// compositor.
func (e *Engine) SetPostConfig(cfg opengl.PostConfig) {
	if e.post != nil {
		e.post.SetConfig(cfg)
	}
}

// SetTerrain replaces the active terrain mesh and remembers its build
// parameters for the export entrypoints. GPU buffers of the previous mesh
// are released.
func (e *Engine) SetTerrain(mesh *terrain.Mesh, params terrain.Params) {
	if e.mesh != nil && e.mesh != mesh {
		e.gl.ReleaseMesh(e.mesh)
	}
	e.mesh = mesh
	e.meshParams = params
}

// Mesh returns the active terrain mesh, or nil before SetTerrain.
func (e *Engine) Mesh() *terrain.Mesh {
	return e.mesh
}

// SetWireframe toggles wireframe rendering mode.
func (e *Engine) SetWireframe(enabled bool) {
	e.gl.SetWireframe(enabled)
}

// IsWireframe returns whether wireframe mode is currently active.
func (e *Engine) IsWireframe() bool {
	return e.gl.IsWireframe()
}

// ── Frame sequencing ──────────────────────────────────────────────────────────

// RenderFrame advances the day/night cycle by dt seconds and draws the
// scene with the given camera. While post-processing is enabled and
// healthy the scene goes through the compositor; any composite failure is
// logged once and the engine permanently falls back to direct rendering.
func (e *Engine) RenderFrame(view, proj math.Mat4, camPos math.Vec3, dt float32) {
	e.Lighting.UpdateTimeOfDay(dt)
	e.updateSkyColors()

	if e.PostEnabled && !e.postBroken && e.post != nil {
		e.post.BeginFrame()
		e.renderScene(view, proj, camPos)
		if err := e.post.EndFrame(); err != nil {
			fmt.Printf("Post-processing error: %v\n", err)
			fmt.Println("Disabling post-processing and using direct rendering")
			e.postBroken = true
			e.renderScene(view, proj, camPos)
		}
		return
	}

	e.renderScene(view, proj, camPos)
}

// renderScene clears the bound framebuffer and draws sky then terrain.
func (e *Engine) renderScene(view, proj math.Mat4, camPos math.Vec3) {
	if e.mesh == nil {
		return
	}

	e.gl.Clear()

	// Sky first: depth 1.0 via xyww, so terrain overdraws it for free.
	if e.sky != nil && e.SkyboxEnabled {
		e.Lighting.Apply(e.sky.Program(), camPos)
		e.sky.Draw(view.NoTranslation().Mul(proj))
	}

	e.Lighting.Apply(e.gl.Program(), camPos)
	e.gl.DrawTerrain(e.mesh, proj, view, e.model)
}

// updateSkyColors retints the sky gradient from the lighting state so the
// dome follows the day/night cycle. Daylight comes from the sun's
// elevation: the direction points down into the scene at noon.
func (e *Engine) updateSkyColors() {
	if e.sky == nil {
		return
	}

	daylight := -e.Lighting.Directional.Direction.Y
	if daylight < 0 {
		daylight = 0
	} else if daylight > 1 {
		daylight = 1
	}

	nightZenith := core.Color{R: 0.02, G: 0.03, B: 0.10, A: 1}
	dayZenith := core.Color{R: 0.10, G: 0.30, B: 0.70, A: 1}

	e.sky.ZenithColor = nightZenith.Lerp(dayZenith, daylight)
	e.sky.HorizonColor = e.Lighting.Fog.Color.Scale(0.35 + 0.65*daylight)
	e.sky.GroundColor = core.Color{R: 0.30, G: 0.25, B: 0.20, A: 1}.Scale(0.25 + 0.75*daylight)
}

// Present swaps the window buffers. Call after RenderFrame.
func (e *Engine) Present() {
	e.window.SwapBuffers()
}

// Resize propagates a new framebuffer size to the viewport and the
// compositor targets.
func (e *Engine) Resize(width, height int) {
	e.gl.SetViewport(width, height)
	if e.post != nil {
		e.post.Resize(width, height)
	}
}

// ── Exports ───────────────────────────────────────────────────────────────────

// ExportOBJ writes the active terrain to a Wavefront OBJ file with the
// generation parameters appended, then prints the mesh statistics report.
func (e *Engine) ExportOBJ(path string) error {
	if e.mesh == nil {
		return fmt.Errorf("no terrain to export")
	}
	meta := io.TerrainMeta{
		Width:       e.meshParams.Width,
		Depth:       e.meshParams.Depth,
		HeightScale: e.meshParams.HeightScale,
		Seed:        e.meshParams.Seed,
	}
	if err := io.ExportTerrainOBJ(path, e.mesh, "AetherGL_ProceduralTerrain", meta); err != nil {
		return err
	}
	fmt.Print(io.MeshStatistics(e.mesh))
	return nil
}

// ExportGLB writes the active terrain as a binary glTF file.
func (e *Engine) ExportGLB(path string) error {
	if e.mesh == nil {
		return fmt.Errorf("no terrain to export")
	}
	return io.ExportGLB(path, e.mesh)
}

// ExportHeightmap regenerates the height grid from the stored parameters
// and writes it as a 16-bit grayscale PNG, capped at 2048 pixels per side.
func (e *Engine) ExportHeightmap(path string) error {
	if e.mesh == nil {
		return fmt.Errorf("no terrain to export")
	}
	field, err := terrain.HeightField(e.meshParams)
	if err != nil {
		return err
	}
	return io.ExportHeightmapPNG(path, field, 2048)
}

// TimestampedExportPath builds an exports/ file name carrying the current
// time, e.g. exports/terrain_20240115_143025.obj.
func TimestampedExportPath(ext string) string {
	return fmt.Sprintf("exports/terrain_%s.%s", time.Now().Format("20060102_150405"), ext)
}

// Destroy releases every GPU resource in reverse creation order.
func (e *Engine) Destroy() {
	if e.post != nil {
		e.post.Destroy()
		e.post = nil
	}
	if e.sky != nil {
		e.sky.Destroy()
		e.sky = nil
	}
	e.gl.Destroy()
}
