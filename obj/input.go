package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
)

const stickDeadzone = 0.3

// KeyboardInput reads the keyboard and the first gamepad. It implements
// locomotion.InputSource and locomotion.Poller.
type KeyboardInput struct {
	// MoveX is -1 for left, 0 for none, +1 for right. The gamepad stick
	// reports analog values.
	MoveX float64
	// MoveZ is depth: +1 away from the camera.
	MoveZ float64
	// RunHeld is true while Shift or the right shoulder button is down.
	RunHeld bool
	// JumpHeld is true while Space or the primary gamepad button is down.
	JumpHeld bool
}

func NewKeyboardInput() *KeyboardInput {
	return &KeyboardInput{}
}

// Poll samples the devices. Call it once per frame before reading.
func (i *KeyboardInput) Poll() {
	var moveX, moveZ float64
	// Keyboard D/A or arrows
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		moveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		moveZ += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		moveZ -= 1
	}
	run := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	jump := ebiten.IsKeyPressed(ebiten.KeySpace)

	// Gamepad: if present, the left stick overrides the keys past the deadzone.
	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		gid := ids[0]
		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		leftY := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		if leftX < -stickDeadzone || leftX > stickDeadzone {
			moveX = leftX
		}
		// Stick up is negative.
		if leftY < -stickDeadzone || leftY > stickDeadzone {
			moveZ = -leftY
		}
		jump = jump || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		run = run || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontTopRight)
	}

	i.MoveX = moveX
	i.MoveZ = moveZ
	i.RunHeld = run
	i.JumpHeld = jump
}

func (i *KeyboardInput) MovementAxes() (x, z float64) { return i.MoveX, i.MoveZ }
func (i *KeyboardInput) RunRequested() bool           { return i.RunHeld }
func (i *KeyboardInput) JumpRequested() bool          { return i.JumpHeld }
