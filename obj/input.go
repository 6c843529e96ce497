package obj

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// stickAimDistance is how far in world units the right stick pushes the aim
// point away from the character.
const stickAimDistance = 400

// Input holds the swing demo's per-frame input state.
type Input struct {
	// MoveX is -1 for left, 0 for none, +1 for right.
	MoveX float64
	// JumpPressed is true on the frame the jump key is pressed.
	JumpPressed bool
	// FirePressed is true on the frame the hook is fired.
	FirePressed bool
	// FireReleased is true on the frame the fire button goes up.
	FireReleased bool
	// BoostHeld is true while boost is held.
	BoostHeld bool
	// RestartPressed replays the rope props.
	RestartPressed bool
	// PausePressed toggles the pause panel.
	PausePressed bool
	// AimWorldX/Z is the aim point in world coordinates.
	AimWorldX float64
	AimWorldZ float64

	camera *Camera
}

func NewInput(camera *Camera) *Input {
	return &Input{camera: camera}
}

// Update polls keyboard, mouse and the first gamepad. originX/Z is where the
// right stick aims from.
func (i *Input) Update(originX, originZ float64) {
	mx, my := ebiten.CursorPosition()
	i.AimWorldX, i.AimWorldZ = i.camera.ScreenToWorld(float64(mx), float64(my))

	var moveX float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		moveX += 1
	}

	var gpJump, gpFire, gpFireUp, gpBoost bool
	ids := ebiten.GamepadIDs()
	if len(ids) > 0 {
		gid := ids[0]

		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if leftX < -0.3 {
			moveX = -1
		} else if leftX > 0.3 {
			moveX = 1
		}

		gpJump = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		gpFire = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonFrontBottomRight)
		gpFireUp = inpututil.IsStandardGamepadButtonJustReleased(gid, ebiten.StandardGamepadButtonFrontBottomRight)
		gpBoost = ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomLeft)

		// right stick overrides the mouse aim; screen Y is down, world Z is up
		sx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickHorizontal)
		sy := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickVertical)
		if mag := math.Hypot(sx, sy); mag > 0.1 {
			i.AimWorldX = originX + sx/mag*stickAimDistance
			i.AimWorldZ = originZ - sy/mag*stickAimDistance
		}
	}

	i.MoveX = moveX
	i.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace) || gpJump
	i.FirePressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || gpFire
	i.FireReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) || gpFireUp
	i.BoostHeld = ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) || gpBoost
	i.RestartPressed = inpututil.IsKeyJustPressed(ebiten.KeyR)
	i.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}
