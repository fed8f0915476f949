package components

import (
	"github.com/spaghettifunk/vicki/engine/core"
	"github.com/spaghettifunk/vicki/engine/math"
)

// CameraMatrices are the view and projection matrices handed to the
// renderer each frame.
type CameraMatrices struct {
	View       math.Mat4
	Projection math.Mat4
}

/**
 * @brief A free-flying first person camera driven by the per-frame input
 * state: WASD movement relative to the view direction, mouse look while
 * the left button is held, shift to boost.
 */
type FirstPersonCamera struct {
	Position math.Vec3
	// Pitch and yaw in degrees. Roll is not supported.
	Pitch float32
	Yaw   float32

	fovDegrees  float32
	aspectRatio float32
	nearClip    float32
	farClip     float32

	moveSpeed float32
	lookSpeed float32
}

func NewFirstPersonCamera(position math.Vec3, aspectRatio float32) *FirstPersonCamera {
	return &FirstPersonCamera{
		Position:    position,
		fovDegrees:  60.0,
		aspectRatio: aspectRatio,
		nearClip:    0.1,
		farClip:     1000.0,
		moveSpeed:   4.0,
		lookSpeed:   0.1,
	}
}

// Update advances the camera from one frame's input state.
func (c *FirstPersonCamera) Update(input *core.InputState) {
	dt := float32(input.Delta)

	if input.Mouse.IsButtonDown(core.BUTTON_LEFT) {
		c.Yaw -= input.Mouse.DeltaX * c.lookSpeed
		c.Pitch -= input.Mouse.DeltaY * c.lookSpeed
		c.Pitch = math.Clamp(c.Pitch, -89.0, 89.0)
	}

	rotation := math.NewMat4EulerXY(math.DegToRad(c.Pitch), math.DegToRad(c.Yaw))
	forward := rotation.Forward()
	right := rotation.Right()
	up := math.NewVec3Up()

	move := math.NewVec3Zero()
	if input.Keys.IsKeyDown(core.KEY_W) || input.Keys.IsKeyDown(core.KEY_UP) {
		move = move.Add(forward)
	}
	if input.Keys.IsKeyDown(core.KEY_S) || input.Keys.IsKeyDown(core.KEY_DOWN) {
		move = move.Sub(forward)
	}
	if input.Keys.IsKeyDown(core.KEY_D) || input.Keys.IsKeyDown(core.KEY_RIGHT) {
		move = move.Add(right)
	}
	if input.Keys.IsKeyDown(core.KEY_A) || input.Keys.IsKeyDown(core.KEY_LEFT) {
		move = move.Sub(right)
	}
	if input.Keys.IsKeyDown(core.KEY_E) {
		move = move.Add(up)
	}
	if input.Keys.IsKeyDown(core.KEY_Q) {
		move = move.Sub(up)
	}

	speed := c.moveSpeed
	if input.Keys.IsKeyDown(core.KEY_LSHIFT) || input.Keys.IsKeyDown(core.KEY_RSHIFT) {
		speed *= 4.0
	}

	if move.Length() > 0 {
		c.Position = c.Position.Add(move.Normalized().MulScalar(speed * dt))
	}
}

// CalcMatrices builds the view and projection matrices for the current
// camera state.
func (c *FirstPersonCamera) CalcMatrices() CameraMatrices {
	rotation := math.NewMat4EulerXY(math.DegToRad(c.Pitch), math.DegToRad(c.Yaw))
	translation := math.NewMat4Translation(c.Position)
	view := rotation.Mul(translation).Inverse()

	projection := math.NewMat4Perspective(
		math.DegToRad(c.fovDegrees), c.aspectRatio, c.nearClip, c.farClip)

	return CameraMatrices{
		View:       view,
		Projection: projection,
	}
}
