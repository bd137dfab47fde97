package main

import (
	stdmath "math"

	"github.com/rudraojhaif/AetherGL/core"
	"github.com/rudraojhaif/AetherGL/math"
)

// CameraController is the free-flight viewer camera: WASD moves along
// the view direction, Space/Shift move vertically, right mouse drag
// looks around and the scroll wheel zooms.
type CameraController struct {
	Position math.Vec3

	yaw   float32 // degrees, -90 looks down -Z
	pitch float32 // degrees, clamped to ±89 so the view never flips
	fov   float32 // degrees, scroll-adjusted within [1, 90]

	moveSpeed  float32
	lookSpeed  float32
	lastMouseX float64
	lastMouseY float64
	firstMouse bool
}

// NewCameraController places the camera above and behind the terrain
// centre, pitched down onto it.
func NewCameraController() *CameraController {
	return &CameraController{
		Position:   math.Vec3{X: 0, Y: 12, Z: 20},
		yaw:        -90,
		pitch:      -20,
		fov:        45,
		moveSpeed:  15,
		lookSpeed:  0.1,
		firstMouse: true,
	}
}

// forward returns the unit view direction for the current yaw/pitch.
func (cc *CameraController) forward() math.Vec3 {
	yawRad := float64(cc.yaw) * stdmath.Pi / 180
	pitchRad := float64(cc.pitch) * stdmath.Pi / 180
	return math.Vec3{
		X: float32(stdmath.Cos(yawRad) * stdmath.Cos(pitchRad)),
		Y: float32(stdmath.Sin(pitchRad)),
		Z: float32(stdmath.Sin(yawRad) * stdmath.Cos(pitchRad)),
	}.Normalize()
}

// Update applies one frame of mouse look and keyboard movement.
func (cc *CameraController) Update(window *core.Window, deltaTime float32) {
	// Cap deltaTime to avoid huge jumps on hitches or the first frame
	if deltaTime > 0.05 {
		deltaTime = 0.05
	}

	// Mouse look (right mouse drag)
	if window.IsMouseButtonPressed(1) {
		mouseX, mouseY := window.GetCursorPos()
		if cc.firstMouse {
			cc.lastMouseX = mouseX
			cc.lastMouseY = mouseY
			cc.firstMouse = false
		}
		cc.yaw += float32(mouseX-cc.lastMouseX) * cc.lookSpeed
		cc.pitch += float32(cc.lastMouseY-mouseY) * cc.lookSpeed
		if cc.pitch > 89 {
			cc.pitch = 89
		}
		if cc.pitch < -89 {
			cc.pitch = -89
		}
		cc.lastMouseX = mouseX
		cc.lastMouseY = mouseY
	} else {
		cc.firstMouse = true
	}

	forward := cc.forward()
	right := forward.Cross(math.Vec3Up).Normalize()

	// Accumulate the move direction, then normalize so diagonals are not
	// faster than a single axis.
	move := math.Vec3{}
	if window.IsKeyPressed(core.KeyW) {
		move = move.Add(forward)
	}
	if window.IsKeyPressed(core.KeyS) {
		move = move.Sub(forward)
	}
	if window.IsKeyPressed(core.KeyD) {
		move = move.Add(right)
	}
	if window.IsKeyPressed(core.KeyA) {
		move = move.Sub(right)
	}
	if window.IsKeyPressed(core.KeySpace) {
		move = move.Add(math.Vec3Up)
	}
	if window.IsKeyPressed(core.KeyLeftShift) {
		move = move.Sub(math.Vec3Up)
	}
	if move.Length() > 0 {
		cc.Position = cc.Position.Add(move.Normalize().Mul(cc.moveSpeed * deltaTime))
	}
}

// HandleScroll zooms by narrowing or widening the field of view.
func (cc *CameraController) HandleScroll(yoff float64) {
	cc.fov -= float32(yoff)
	if cc.fov < 1 {
		cc.fov = 1
	}
	if cc.fov > 90 {
		cc.fov = 90
	}
}

// View returns the camera's view matrix.
func (cc *CameraController) View() math.Mat4 {
	return math.Mat4LookAt(cc.Position, cc.Position.Add(cc.forward()), math.Vec3Up)
}

// Projection returns the perspective matrix for the given aspect ratio.
// Near/far must stay in sync with the depth linearization constants in
// the post-processing composite shader.
func (cc *CameraController) Projection(aspect float32) math.Mat4 {
	return math.Mat4Perspective(cc.fov*stdmath.Pi/180, aspect, 0.1, 300.0)
}
