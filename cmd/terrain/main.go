package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/xlab/closer"

	"github.com/rudraojhaif/AetherGL/config"
	"github.com/rudraojhaif/AetherGL/core"
	"github.com/rudraojhaif/AetherGL/io"
	"github.com/rudraojhaif/AetherGL/lighting"
	"github.com/rudraojhaif/AetherGL/renderer"
	"github.com/rudraojhaif/AetherGL/terrain"
)

// configPath is resolved relative to the working directory.
const configPath = "aethergl.cfg"

func main() {
	fmt.Println("Starting AetherGL terrain viewer...")
	if err := run(); err != nil {
		fmt.Printf("Fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		// First run: write the defaults so there is a file to edit.
		if err := cfg.Save(configPath); err != nil {
			fmt.Printf("[Config] Could not write default session file: %v\n", err)
		} else {
			fmt.Printf("[Config] Wrote default session file %s\n", configPath)
		}
	}

	windowConfig := core.DefaultWindowConfig()
	cfg.ApplyWindow(&windowConfig)

	window, err := core.NewWindow(windowConfig)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer window.Destroy()

	engine, err := renderer.NewEngine(window)
	if err != nil {
		return fmt.Errorf("failed to create render engine: %w", err)
	}
	defer engine.Destroy()

	// Ctrl-C requests a clean window close; cleanups run before the
	// forced exit.
	closer.Bind(func() {
		fmt.Println("Shutting down...")
		window.RequestClose()
	})
	defer closer.Close()

	if err := engine.EnableSky(); err != nil {
		fmt.Printf("Skybox init failed (continuing without it): %v\n", err)
	} else {
		fmt.Println("Skybox enabled (scattering gradient + sun disk)")
	}

	postAvailable := false
	if err := engine.EnablePostProcessing(); err != nil {
		fmt.Printf("Post-process init failed (continuing without it): %v\n", err)
	} else {
		postAvailable = true
		engine.SetPostConfig(cfg.Post.PostConfig)
		engine.PostEnabled = cfg.Post.Enabled
		fmt.Println("Post-processing ready (HDR bloom, depth of field, chromatic aberration)")
	}

	cfg.ApplyLighting(engine.Lighting)

	var params terrain.Params
	cfg.ApplyTerrain(&params)

	mesh, err := terrain.Generate(params)
	if err != nil {
		return fmt.Errorf("terrain generation failed: %w", err)
	}
	engine.SetTerrain(mesh, params)
	fmt.Print(io.MeshStatistics(mesh))

	if cfg.Terrain.AutoExport {
		if err := engine.ExportOBJ(renderer.TimestampedExportPath("obj")); err != nil {
			fmt.Printf("Warning: terrain auto-export failed: %v\n", err)
		}
	}

	cam := NewCameraController()
	window.SetScrollCallback(func(xoff, yoff float64) {
		cam.HandleScroll(yoff)
	})
	window.SetSizeCallback(func(width, height int) {
		engine.Resize(width, height)
	})

	printControls()

	applyPreset := func(name string) {
		if err := engine.Lighting.ApplyPreset(name); err != nil {
			fmt.Printf("[Lighting] %v\n", err)
		}
	}

	// Debounce state for toggle keys
	wireframeKeyWasDown := false
	bloomKeyWasDown := false
	dofKeyWasDown := false
	caKeyWasDown := false
	postKeyWasDown := false
	pauseKeyWasDown := false
	preset1KeyWasDown := false
	preset2KeyWasDown := false
	preset3KeyWasDown := false
	objKeyWasDown := false
	gltfKeyWasDown := false
	heightmapKeyWasDown := false
	regenKeyWasDown := false

	frameCount := 0
	lastFrame := time.Now()
	fpsLastTime := time.Now()

	for !window.ShouldClose() {
		window.PollEvents()

		if window.IsKeyPressed(core.KeyEscape) {
			break
		}

		now := time.Now()
		deltaTime := float32(now.Sub(lastFrame).Seconds())
		lastFrame = now

		// Z — toggle wireframe
		zDown := window.IsKeyPressed(core.KeyZ)
		if zDown && !wireframeKeyWasDown {
			engine.SetWireframe(!engine.IsWireframe())
			fmt.Printf("[Render] Wireframe %s\n", map[bool]string{true: "ON", false: "OFF"}[engine.IsWireframe()])
		}
		wireframeKeyWasDown = zDown

		// P — toggle the whole post-processing chain
		pDown := window.IsKeyPressed(core.KeyP)
		if pDown && !postKeyWasDown {
			if !postAvailable {
				fmt.Println("[Post] Unavailable on this context")
			} else {
				engine.PostEnabled = !engine.PostEnabled
				fmt.Printf("[Post] Chain %s\n", map[bool]string{true: "ON", false: "OFF"}[engine.PostEnabled])
			}
		}
		postKeyWasDown = pDown

		// B — toggle bloom
		bDown := window.IsKeyPressed(core.KeyB)
		if bDown && !bloomKeyWasDown {
			pc := engine.PostConfig()
			pc.EnableBloom = !pc.EnableBloom
			engine.SetPostConfig(pc)
			fmt.Printf("[Post] Bloom %s\n", map[bool]string{true: "ON", false: "OFF"}[pc.EnableBloom])
		}
		bloomKeyWasDown = bDown

		// F — toggle depth of field
		fDown := window.IsKeyPressed(core.KeyF)
		if fDown && !dofKeyWasDown {
			pc := engine.PostConfig()
			pc.EnableDOF = !pc.EnableDOF
			engine.SetPostConfig(pc)
			fmt.Printf("[Post] Depth of field %s\n", map[bool]string{true: "ON", false: "OFF"}[pc.EnableDOF])
		}
		dofKeyWasDown = fDown

		// C — toggle chromatic aberration
		cDown := window.IsKeyPressed(core.KeyC)
		if cDown && !caKeyWasDown {
			pc := engine.PostConfig()
			pc.EnableChromaticAberration = !pc.EnableChromaticAberration
			engine.SetPostConfig(pc)
			fmt.Printf("[Post] Chromatic aberration %s\n", map[bool]string{true: "ON", false: "OFF"}[pc.EnableChromaticAberration])
		}
		caKeyWasDown = cDown

		// N — pause/resume the day-night cycle
		nDown := window.IsKeyPressed(core.KeyN)
		if nDown && !pauseKeyWasDown {
			engine.Lighting.TimeOfDay.Animate = !engine.Lighting.TimeOfDay.Animate
			fmt.Printf("[DayNight] %s\n", map[bool]string{true: "RUNNING", false: "PAUSED"}[engine.Lighting.TimeOfDay.Animate])
		}
		pauseKeyWasDown = nDown

		// Comma/Period — slow down / speed up the cycle
		if window.IsKeyPressed(core.KeyComma) {
			engine.Lighting.TimeOfDay.Speed -= 0.02 * deltaTime
			if engine.Lighting.TimeOfDay.Speed < 0 {
				engine.Lighting.TimeOfDay.Speed = 0
			}
		}
		if window.IsKeyPressed(core.KeyPeriod) {
			engine.Lighting.TimeOfDay.Speed += 0.02 * deltaTime
			if engine.Lighting.TimeOfDay.Speed > 0.5 {
				engine.Lighting.TimeOfDay.Speed = 0.5
			}
		}

		// 1/2/3 — lighting presets
		oneDown := window.IsKeyPressed(core.Key1)
		if oneDown && !preset1KeyWasDown {
			applyPreset(lighting.PresetDefault)
		}
		preset1KeyWasDown = oneDown

		twoDown := window.IsKeyPressed(core.Key2)
		if twoDown && !preset2KeyWasDown {
			applyPreset(lighting.PresetSunset)
		}
		preset2KeyWasDown = twoDown

		threeDown := window.IsKeyPressed(core.Key3)
		if threeDown && !preset3KeyWasDown {
			applyPreset(lighting.PresetNight)
		}
		preset3KeyWasDown = threeDown

		// O — export the mesh to a timestamped OBJ
		oDown := window.IsKeyPressed(core.KeyO)
		if oDown && !objKeyWasDown {
			if err := engine.ExportOBJ(renderer.TimestampedExportPath("obj")); err != nil {
				fmt.Printf("[Export] OBJ error: %v\n", err)
			}
		}
		objKeyWasDown = oDown

		// G — export the mesh to a glTF binary
		gDown := window.IsKeyPressed(core.KeyG)
		if gDown && !gltfKeyWasDown {
			if err := engine.ExportGLB(renderer.TimestampedExportPath("glb")); err != nil {
				fmt.Printf("[Export] glTF error: %v\n", err)
			}
		}
		gltfKeyWasDown = gDown

		// H — export the heightmap as a 16-bit PNG
		hDown := window.IsKeyPressed(core.KeyH)
		if hDown && !heightmapKeyWasDown {
			if err := engine.ExportHeightmap(renderer.TimestampedExportPath("png")); err != nil {
				fmt.Printf("[Export] Heightmap error: %v\n", err)
			}
		}
		heightmapKeyWasDown = hDown

		// R — regenerate the terrain with a random seed
		rDown := window.IsKeyPressed(core.KeyR)
		if rDown && !regenKeyWasDown {
			params.Seed = rand.Int63()
			mesh, err := terrain.Generate(params)
			if err != nil {
				fmt.Printf("[Terrain] Regeneration failed: %v\n", err)
			} else {
				engine.SetTerrain(mesh, params)
				fmt.Printf("[Terrain] Regenerated with seed %d\n", params.Seed)
			}
		}
		regenKeyWasDown = rDown

		cam.Update(window, deltaTime)

		width, height := window.GetFramebufferSize()
		aspect := float32(1)
		if height > 0 {
			aspect = float32(width) / float32(height)
		}

		engine.RenderFrame(cam.View(), cam.Projection(aspect), cam.Position, deltaTime)
		engine.Present()

		frameCount++
		if now.Sub(fpsLastTime).Seconds() >= 1.0 {
			wireStr := ""
			if engine.IsWireframe() {
				wireStr = " [WIRE]"
			}
			window.SetTitle(fmt.Sprintf("%s | FPS: %d | Pos: (%.1f, %.1f, %.1f)%s",
				cfg.Window.Title, frameCount, cam.Position.X, cam.Position.Y, cam.Position.Z, wireStr))
			frameCount = 0
			fpsLastTime = now
		}
	}

	return nil
}

func printControls() {
	fmt.Println("===========================================")
	fmt.Println("  AetherGL - Procedural Terrain Viewer")
	fmt.Println("===========================================")
	fmt.Println("")
	fmt.Println("CAMERA CONTROLS:")
	fmt.Println("  W / S            - Move forward / backward")
	fmt.Println("  A / D            - Strafe left / right")
	fmt.Println("  Space / Shift    - Ascend / descend")
	fmt.Println("  Right Mouse Drag - Look around")
	fmt.Println("  Scroll           - Zoom (FOV 1-90)")
	fmt.Println("")
	fmt.Println("LIGHTING:")
	fmt.Println("  1 / 2 / 3        - Default / sunset / night preset")
	fmt.Println("  N                - Pause / resume day-night cycle")
	fmt.Println("  , / .            - Slow down / speed up the cycle")
	fmt.Println("")
	fmt.Println("POST-PROCESSING:")
	fmt.Println("  P                - Toggle the whole chain")
	fmt.Println("  B                - Toggle bloom")
	fmt.Println("  F                - Toggle depth of field")
	fmt.Println("  C                - Toggle chromatic aberration")
	fmt.Println("")
	fmt.Println("TERRAIN:")
	fmt.Println("  R                - Regenerate with a random seed")
	fmt.Println("  Z                - Toggle wireframe")
	fmt.Println("  O                - Export mesh to OBJ")
	fmt.Println("  G                - Export mesh to glTF binary")
	fmt.Println("  H                - Export heightmap PNG")
	fmt.Println("")
	fmt.Println("EXIT: ESC (or close the window)")
	fmt.Println("===========================================")
	fmt.Println("")
}
